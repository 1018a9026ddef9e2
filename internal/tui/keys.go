package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active outside confirm prompts.
type GlobalKeys struct {
	Quit      key.Binding
	Interrupt key.Binding
	Help      key.Binding
	Deploy    key.Binding
	Clear     key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("Ctrl+q", "quit"),
	),
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("Ctrl+h", "help"),
	),
	Deploy: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("Ctrl+d", "deploy now"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("Ctrl+l", "clear"),
	),
}

// PromptKeys drive the command line.
type PromptKeys struct {
	Submit key.Binding
}

var promptKeys = PromptKeys{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run"),
	),
}

// LogKeys scroll the log panel.
type LogKeys struct {
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

var logKeys = LogKeys{
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("PgDn", "scroll down"),
	),
	Top: key.NewBinding(
		key.WithKeys("ctrl+home"),
		key.WithHelp("Ctrl+Home", "oldest"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("ctrl+end"),
		key.WithHelp("Ctrl+End", "newest"),
	),
}

// OverlayKeys are active when an overlay is shown.
type OverlayKeys struct {
	Cancel key.Binding
}

var overlayKeys = OverlayKeys{
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
}

// ConfirmKeys for inline confirmation prompts.
type ConfirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

var confirmKeys = ConfirmKeys{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "cancel"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}
