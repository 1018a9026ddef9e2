package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// confirmMode values.
const (
	confirmNone = 0
	confirmQuit = 1
)

func renderStatusBar(m *Model, width int) string {
	if m.confirmMode == confirmQuit {
		return renderConfirmBar("Pipeline running. Quit anyway? (y/n)", width)
	}

	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	left := " " + getKeyHints(m)
	if m.notice != "" {
		left = " " + lipgloss.NewStyle().Foreground(colorGreen).Render(m.notice)
	}

	right := hintStyle.Render(fmt.Sprintf("unit %s", m.session.TimeUnit()))
	if !m.logView.Following() {
		right = lipgloss.NewStyle().Foreground(colorYellow).Render("scrolled") + "  " + right
	}
	right += " "

	if room := width - lipgloss.Width(right) - 1; lipgloss.Width(left) > room {
		left = ansi.Truncate(left, room, "…")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.activeOverlay != overlayNone {
		return keyHint("Esc", "close")
	}

	hints := []string{keyHint("Enter", "run")}
	if !m.session.Busy() {
		hints = append(hints, keyHint("Ctrl+d", "deploy"))
	}
	hints = append(hints,
		keyHint("Ctrl+l", "clear"),
		keyHint("PgUp/PgDn", "scroll"),
		keyHint("Ctrl+h", "help"),
		keyHint("Ctrl+q", "quit"),
	)
	return strings.Join(hints, "  ")
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}
