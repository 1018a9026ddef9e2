package tui

import "github.com/watchfire-io/autodeploy/internal/models"

// frameTickMsg advances the session clock while a pipeline is in flight.
type frameTickMsg struct{}

// SettingsReloadedMsg carries settings re-read after the file changed on disk.
type SettingsReloadedMsg struct {
	Settings *models.Settings
	Err      error
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearNoticeMsg clears the transient notice in the status bar.
type ClearNoticeMsg struct{}
