package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/autodeploy/internal/console"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Commands",
		keys: []helpKey{
			{"deploy", "Analyze, build and deploy (any text with \"deploy\")"},
			{"analyze", "Analyze the repository only"},
			{"status", "Print the agent status"},
			{"clear", "Clear the log"},
			{"help", "List commands"},
		},
	},
	{
		title: "Keys",
		keys: []helpKey{
			{globalKeys.Deploy.Help().Key, "Deploy now (idle only)"},
			{globalKeys.Clear.Help().Key, "Same as typing clear"},
			{"PgUp/PgDn", "Scroll the log"},
			{"Ctrl+Home/End", "Oldest / newest entry"},
			{globalKeys.Help.Help().Key, "Toggle help"},
			{globalKeys.Quit.Help().Key + " Ctrl+c", "Quit"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 72
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	lines := []string{overlayTitleStyle.Render("autodeploy")}
	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		lines = append(lines, "", header)
		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(18).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			lines = append(lines, "  "+keyCol+hintStyle.Render(k.desc))
		}
	}

	lines = append(lines,
		"",
		hintStyle.Render("Commands typed while a pipeline runs are rejected: "+console.BusyMessage),
		"",
		hintStyle.Render("Press Esc or Ctrl+h to close"),
	)

	return overlayStyle.Width(maxWidth).Render(strings.Join(lines, "\n"))
}
