package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/autodeploy/internal/console"
	"github.com/watchfire-io/autodeploy/internal/models"
)

// LogView is the scrollable log panel. It follows the newest entry unless the
// user has scrolled away from the bottom.
type LogView struct {
	viewport     viewport.Model
	entries      []models.LogEntry
	width        int
	height       int
	userScrolled bool // true when user has scrolled away from bottom
}

// NewLogView creates an empty log panel.
func NewLogView() *LogView {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()
	return &LogView{viewport: vp}
}

// Observe keeps the panel in step with a session. Register it with
// Session.Subscribe.
func (l *LogView) Observe(e console.Event) {
	switch e.Kind {
	case console.EventAppend:
		l.entries = append(l.entries, e.Entry)
		l.refresh()
	case console.EventClear:
		l.entries = nil
		l.userScrolled = false
		l.refresh()
	}
}

// SetEntries replaces the panel contents.
func (l *LogView) SetEntries(entries []models.LogEntry) {
	l.entries = append(l.entries[:0:0], entries...)
	l.refresh()
}

// Len returns the number of entries shown.
func (l *LogView) Len() int {
	return len(l.entries)
}

// SetSize updates panel dimensions.
func (l *LogView) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	l.width = width
	l.height = height
	l.viewport.Width = width
	l.viewport.Height = height
	l.refresh()
}

// ScrollUp scrolls the viewport up.
func (l *LogView) ScrollUp(n int) {
	l.viewport.ScrollUp(n)
	l.userScrolled = !l.viewport.AtBottom()
}

// ScrollDown scrolls the viewport down.
func (l *LogView) ScrollDown(n int) {
	l.viewport.ScrollDown(n)
	l.userScrolled = !l.viewport.AtBottom()
}

// PageUp scrolls half a page up.
func (l *LogView) PageUp() {
	l.viewport.HalfPageUp()
	l.userScrolled = !l.viewport.AtBottom()
}

// PageDown scrolls half a page down.
func (l *LogView) PageDown() {
	l.viewport.HalfPageDown()
	l.userScrolled = !l.viewport.AtBottom()
}

// GotoTop jumps to the oldest entry.
func (l *LogView) GotoTop() {
	l.viewport.GotoTop()
	l.userScrolled = !l.viewport.AtBottom()
}

// GotoBottom jumps to the newest entry and resumes following.
func (l *LogView) GotoBottom() {
	l.viewport.GotoBottom()
	l.userScrolled = false
}

// Following reports whether new entries scroll into view.
func (l *LogView) Following() bool {
	return !l.userScrolled
}

func (l *LogView) refresh() {
	lines := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		lines = append(lines, renderLogLine(e, l.width))
	}
	l.viewport.SetContent(strings.Join(lines, "\n"))
	if !l.userScrolled {
		l.viewport.GotoBottom()
	}
}

// renderLogLine renders "[HH:MM:SS] message", wrapping long messages under
// the message column.
func renderLogLine(e models.LogEntry, width int) string {
	ts := timestampStyle.Render("[" + e.Timestamp + "]")
	style := levelStyle(e.Level)
	if e.Level == models.LogLevelInfo && strings.HasPrefix(e.Message, console.EchoPrefix) {
		style = echoStyle
	}

	msgWidth := width - lipgloss.Width(ts) - 1
	if msgWidth < 10 {
		return ts + " " + style.Render(e.Message)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, ts, " ", style.Width(msgWidth).Render(e.Message))
}

// View renders the log panel.
func (l *LogView) View() string {
	if len(l.entries) == 0 {
		return emptyLogStyle.
			Width(l.width).
			Render("\nNo output yet. Type 'help' to list commands.")
	}
	return l.viewport.View()
}
