package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Minimum terminal size the layout supports.
const (
	minWidth  = 60
	minHeight = 12
)

// layout holds computed dimensions for the stacked console layout:
// header, bordered log panel, prompt, status bar.
type layout struct {
	width      int
	logWidth   int // inside the border
	logHeight  int // inside the border
	inputWidth int
}

func computeLayout(width, height int) layout {
	// 2 border rows around the log, 1 prompt row, 1 status row.
	logHeight := height - headerHeight - 2 - 1 - 1
	if logHeight < 1 {
		logHeight = 1
	}
	logWidth := width - 2
	if logWidth < 1 {
		logWidth = 1
	}
	return layout{
		width:      width,
		logWidth:   logWidth,
		logHeight:  logHeight,
		inputWidth: width - 1,
	}
}

func renderLogPanel(content string, l layout) string {
	return logPanelStyle.
		Width(l.logWidth).
		Height(l.logHeight).
		Render(truncateContent(content, l.logWidth, l.logHeight))
}

// truncateContent ensures content fits within the given dimensions.
func truncateContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
