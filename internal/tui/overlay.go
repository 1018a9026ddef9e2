package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay constants.
const (
	overlayNone = 0
	overlayHelp = 1
)

// renderOverlay dims base and draws box centered over it.
func renderOverlay(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	for i, row := range rows {
		rows[i] = overlayDimStyle.Render(ansi.Strip(row))
	}

	boxRows := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	top := max((height-len(boxRows))/2, 0)
	left := max((width-boxWidth)/2, 0)

	for i, boxRow := range boxRows {
		y := top + i
		if y >= len(rows) {
			break
		}
		under := rows[y]
		underWidth := ansi.StringWidth(under)

		prefix := ansi.Truncate(under, left, "")
		if pad := left - ansi.StringWidth(prefix); pad > 0 {
			prefix += strings.Repeat(" ", pad)
		}
		suffix := ""
		if end := left + lipgloss.Width(boxRow); end < underWidth {
			suffix = ansi.Cut(under, end, underWidth)
		}
		rows[y] = prefix + ansi.ResetStyle + boxRow + ansi.ResetStyle + suffix
	}
	return strings.Join(rows, "\n")
}
