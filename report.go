package pmpatch

import "fmt"

// Per-item status codes, HTTP-like.
const (
	StatusOK          = 200
	StatusNotModified = 304
	StatusBadRequest  = 400
	StatusError       = 500
)

// ItemResult is the outcome for a single patch file.
type ItemResult struct {
	ItemID  string `json:"item_id"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Report accumulates per-file results in production order. It is owned by
// the orchestrator and exposed only through Finalize.
type Report struct {
	items []ItemResult
}

func (r *Report) Add(id string, status int, message string) {
	r.items = append(r.items, ItemResult{ItemID: id, Status: status, Message: message})
}

func (r *Report) Len() int { return len(r.items) }

// Metadata carries rendering hints for the envelope payload.
type Metadata struct {
	Fields []string `json:"fields"`
}

// Envelope is the finalized result shape returned to the caller.
type Envelope struct {
	Status   int          `json:"status"`
	Message  string       `json:"message"`
	Payload  []ItemResult `json:"payload"`
	Metadata Metadata     `json:"metadata"`
}

// Finalize shapes the accumulated results into the output envelope. The
// envelope status is 200 even when individual items failed; callers
// inspect the payload for per-file outcomes.
func (r *Report) Finalize() Envelope {
	payload := make([]ItemResult, len(r.items))
	copy(payload, r.items)

	return Envelope{
		Status:   StatusOK,
		Message:  fmt.Sprintf("%d patch file(s) processed", len(payload)),
		Payload:  payload,
		Metadata: Metadata{Fields: []string{"item_id", "status", "message"}},
	}
}
