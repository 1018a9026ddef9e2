package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchfire-io/autodeploy/internal/watcher"
)

func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return frameTickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}

// watchSettingsCmd forwards watcher events to the program until ctx is done.
func watchSettingsCmd(ctx context.Context, events <-chan watcher.Event, program *programRef) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				program.Send(SettingsReloadedMsg{Settings: ev.Settings, Err: ev.Err})
			}
		}
	}
}
