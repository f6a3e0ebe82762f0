package pmpatch

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	skipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	plainStyle  = lipgloss.NewStyle()
)

// RenderEnvelope draws the finalized report as a table, columns in the
// order the envelope metadata declares. With color disabled every cell is
// rendered plain.
func RenderEnvelope(env Envelope, color bool) string {
	var b strings.Builder

	if color {
		b.WriteString(headerStyle.Render(env.Message) + "\n")
	} else {
		b.WriteString(env.Message + "\n")
	}

	if len(env.Payload) == 0 {
		return b.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(env.Metadata.Fields...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle(env.Payload, row, color).Padding(0, 1)
		})

	for _, item := range env.Payload {
		t.Row(item.ItemID, strconv.Itoa(item.Status), item.Message)
	}

	b.WriteString(t.Render() + "\n")
	return b.String()
}

func cellStyle(items []ItemResult, row int, color bool) lipgloss.Style {
	if row == table.HeaderRow {
		if color {
			return headerStyle
		}
		return plainStyle
	}
	if !color || row < 0 || row >= len(items) {
		return plainStyle
	}

	switch items[row].Status {
	case StatusOK:
		return okStyle
	case StatusNotModified:
		return skipStyle
	default:
		return errorStyle
	}
}
