package pmpatch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
)

// InvokeMode selects how the external patch program is run.
type InvokeMode int

const (
	// ModeProbe is a dry-run forward invocation; it never mutates.
	ModeProbe InvokeMode = iota
	// ModeApply applies the patch in the forward direction.
	ModeApply
	// ModeReverse applies the patch in the reverse direction.
	ModeReverse
)

func (m InvokeMode) String() string {
	switch m {
	case ModeProbe:
		return "probe"
	case ModeApply:
		return "apply"
	case ModeReverse:
		return "reverse"
	}
	return "unknown"
}

// InvokeResult carries the combined output and exit status of one
// invocation of the patch program.
type InvokeResult struct {
	Output   string
	ExitCode int
}

// Invoker runs the external patch program against a target directory with
// the patch content on standard input.
type Invoker interface {
	Invoke(mode InvokeMode, dir string, patch io.Reader) (InvokeResult, error)
}

// reversedRegex matches the patch program's own idempotency diagnostic.
// Its wording is an external contract; match it verbatim.
var reversedRegex = regexp.MustCompile(`Reversed .*patch detected`)

// AlreadyApplied reports whether probe output indicates the patch is
// already applied in the forward direction.
func AlreadyApplied(probeOutput string) bool {
	return reversedRegex.MatchString(probeOutput)
}

// PatchInvoker spawns the configured patch program directly with an
// argument vector, no shell in between. The working directory is the
// directory holding the target module file so relative paths inside the
// patch resolve against it.
type PatchInvoker struct {
	program string
	strip   int
}

func NewPatchInvoker(program string, strip int) *PatchInvoker {
	return &PatchInvoker{program: program, strip: strip}
}

func (p *PatchInvoker) args(mode InvokeMode) []string {
	strip := "-p" + strconv.Itoa(p.strip)
	switch mode {
	case ModeProbe:
		// -t, not -N: an already-applied patch must still exit 0 so
		// the reversal diagnostic in the output can be inspected.
		return []string{"-t", "--dry-run", strip}
	case ModeReverse:
		return []string{"-R", strip}
	default:
		return []string{"-N", strip}
	}
}

// Invoke runs the program synchronously and waits for completion. A
// non-zero exit is reported through InvokeResult, not as an error; the
// error return is reserved for failures to run the program at all.
func (p *PatchInvoker) Invoke(mode InvokeMode, dir string, patch io.Reader) (InvokeResult, error) {
	cmd := exec.Command(p.program, p.args(mode)...)
	cmd.Dir = dir
	cmd.Stdin = patch

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	res := InvokeResult{Output: out.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("run %s: %w", p.program, err)
	}
	return res, nil
}
