// Package tui implements the interactive console for autodeploy.
package tui

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/autodeploy/internal/clock"
	"github.com/watchfire-io/autodeploy/internal/config"
	"github.com/watchfire-io/autodeploy/internal/models"
	"github.com/watchfire-io/autodeploy/internal/watcher"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the TUI. settingsPath is watched for live changes; pass ""
// to disable reloading.
func Run(settings *models.Settings, settingsPath string) error {
	closeLog, err := setupLogging(settings.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []Option{WithSystemDark(lipgloss.HasDarkBackground())}

	if settingsPath != "" {
		w, err := watcher.New(settingsPath, watcher.DefaultDebounce)
		if err != nil {
			log.Printf("[tui] live reload disabled: %v", err)
		} else {
			defer w.Stop()
			opts = append(opts, WithSettingsEvents(w.Events()))
		}
	}

	ref := &programRef{}
	model := NewModel(settings, clock.NewManual(time.Now()), ref, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Store program reference for goroutine sends
	ref.Set(p)

	_, err = p.Run()
	ref.Clear()
	return err
}

// setupLogging sends the standard logger to the debug file, or discards it.
// The terminal belongs to the TUI either way.
func setupLogging(debug bool) (func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := config.EnsureGlobalDir(); err != nil {
		return nil, err
	}
	path, err := config.DebugLogFile()
	if err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, "autodeploy")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	log.Printf("[tui] debug logging to %s", path)
	return func() { _ = f.Close() }, nil
}
