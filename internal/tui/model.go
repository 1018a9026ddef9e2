package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/autodeploy/internal/clock"
	"github.com/watchfire-io/autodeploy/internal/console"
	"github.com/watchfire-io/autodeploy/internal/models"
	"github.com/watchfire-io/autodeploy/internal/watcher"
)

const placeholder = "Type a command: deploy, analyze, status, clear, help"

// Model is the root Bubbletea model for the TUI.
type Model struct {
	session  *console.Session
	clock    *clock.Manual
	settings *models.Settings
	now      func() time.Time

	// Child components
	input    textinput.Model
	logView  *LogView
	spinner  spinner.Model
	progress progress.Model

	// UI state
	activeOverlay int
	confirmMode   int
	width         int
	height        int
	systemDark    bool

	// Status display
	err    error
	notice string

	// Program reference for goroutine Send()
	program     *programRef
	events      <-chan watcher.Event
	watchCtx    context.Context
	watchCancel context.CancelFunc

	frameRunning   bool
	spinnerRunning bool
}

// Option configures a Model.
type Option func(*Model)

// WithSettingsEvents makes the model apply settings reloaded by a watcher.
func WithSettingsEvents(events <-chan watcher.Event) Option {
	return func(m *Model) {
		m.events = events
	}
}

// WithSystemDark records the background the terminal reported at start-up.
func WithSystemDark(dark bool) Option {
	return func(m *Model) {
		m.systemDark = dark
	}
}

// NewModel creates the TUI model around a fresh session driven by clk.
func NewModel(settings *models.Settings, clk *clock.Manual, program *programRef, opts ...Option) Model {
	input := textinput.New()
	input.Prompt = settings.Console.Prompt
	input.Placeholder = placeholder
	input.CharLimit = 512
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorOrange)

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		session:     console.NewSession(clk, console.WithTimeUnit(settings.Pipeline.TimeUnit)),
		clock:       clk,
		settings:    settings,
		now:         time.Now,
		input:       input,
		logView:     NewLogView(),
		spinner:     sp,
		progress:    bar,
		program:     program,
		watchCtx:    ctx,
		watchCancel: cancel,
		systemDark:  true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.session.Subscribe(m.logView.Observe)
	applyTheme(settings.Appearance.Theme, m.systemDark)
	return m
}

// Session returns the console session the model drives.
func (m Model) Session() *console.Session {
	return m.session
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.events != nil && m.program != nil {
		cmds = append(cmds, watchSettingsCmd(m.watchCtx, m.events, m.program))
	}
	return tea.Batch(cmds...)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	// ── Key events ─────────────────────────────────────────────────
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	// ── Mouse events ───────────────────────────────────────────────
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.logView.ScrollUp(3)
			case tea.MouseButtonWheelDown:
				m.logView.ScrollDown(3)
			}
		}
		return m, nil

	// ── Clock ──────────────────────────────────────────────────────
	case frameTickMsg:
		m.advance()
		if m.clock.Pending() > 0 {
			return m, frameTick(m.settings.Console.FrameInterval)
		}
		m.frameRunning = false
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			m.spinnerRunning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// ── Settings ───────────────────────────────────────────────────
	case SettingsReloadedMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("settings not applied: %w", msg.Err)
			return m, clearErrorAfter(5 * time.Second)
		}
		m.applySettings(msg.Settings)
		m.notice = "Settings reloaded"
		return m, clearNoticeAfter(3 * time.Second)

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	// Anything else (cursor blink) belongs to the prompt.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Confirm mode captures everything
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	// Overlay captures everything except quit
	if m.activeOverlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, globalKeys.Quit), key.Matches(msg, globalKeys.Interrupt):
		return m.requestQuit()

	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil

	case key.Matches(msg, globalKeys.Deploy):
		m.advance()
		if !m.session.DeployNow() {
			return nil
		}
		return m.afterSubmit()

	case key.Matches(msg, globalKeys.Clear):
		return m.submit("clear")

	case key.Matches(msg, promptKeys.Submit):
		raw := m.input.Value()
		m.input.Reset()
		return m.submit(raw)

	case key.Matches(msg, logKeys.PageUp):
		m.logView.PageUp()
		return nil
	case key.Matches(msg, logKeys.PageDown):
		m.logView.PageDown()
		return nil
	case key.Matches(msg, logKeys.Top):
		m.logView.GotoTop()
		return nil
	case key.Matches(msg, logKeys.Bottom):
		m.logView.GotoBottom()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, confirmKeys.Yes), key.Matches(msg, globalKeys.Interrupt):
		m.confirmMode = confirmNone
		return m.doQuit()
	case key.Matches(msg, confirmKeys.No), key.Matches(msg, confirmKeys.Cancel):
		m.confirmMode = confirmNone
	}
	return nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, overlayKeys.Cancel), key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayNone
	case key.Matches(msg, globalKeys.Quit), key.Matches(msg, globalKeys.Interrupt):
		m.activeOverlay = overlayNone
		return m.requestQuit()
	}
	return nil
}

// submit brings the clock up to date, hands raw to the session and starts
// the frame and spinner ticks if a pipeline began.
func (m *Model) submit(raw string) tea.Cmd {
	m.advance()
	m.session.Submit(raw)
	return m.afterSubmit()
}

func (m *Model) afterSubmit() tea.Cmd {
	var cmds []tea.Cmd
	if m.clock.Pending() > 0 && !m.frameRunning {
		m.frameRunning = true
		cmds = append(cmds, frameTick(m.settings.Console.FrameInterval))
	}
	if m.session.Busy() && !m.spinnerRunning {
		m.spinnerRunning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// advance fires every pipeline step that is due by now.
func (m *Model) advance() {
	if fired := m.clock.AdvanceTo(m.now()); fired > 0 {
		log.Printf("[tui] clock fired %d step(s)", fired)
	}
}

func (m *Model) requestQuit() tea.Cmd {
	if m.session.Busy() {
		m.confirmMode = confirmQuit
		return nil
	}
	return m.doQuit()
}

// doQuit stops forwarding watcher events, clears the program ref and quits.
func (m *Model) doQuit() tea.Cmd {
	m.watchCancel()
	if m.program != nil {
		m.program.Clear()
	}
	return tea.Quit
}

func (m *Model) applySettings(s *models.Settings) {
	m.settings = s
	m.session.SetTimeUnit(s.Pipeline.TimeUnit)
	m.input.Prompt = s.Console.Prompt
	applyTheme(s.Appearance.Theme, m.systemDark)
	m.updateDimensions()
	log.Printf("[tui] settings applied: unit=%s theme=%s", s.Pipeline.TimeUnit, s.Appearance.Theme)
}

func (m *Model) updateDimensions() {
	l := computeLayout(m.width, m.height)
	m.logView.SetSize(l.logWidth, l.logHeight)
	m.input.Width = l.inputWidth - lipgloss.Width(m.input.Prompt) - 1
	if m.input.Width < 1 {
		m.input.Width = 1
	}
}

// ── View ─────────────────────────────────────────────────────────

// View renders the TUI.
func (m Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					fmt.Sprintf("Need %dx%d, have ", minWidth, minHeight)+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	l := computeLayout(m.width, m.height)

	header := renderHeader(m.session.Status(), m.spinner, m.progress, m.width)
	panel := renderLogPanel(m.logView.View(), l)
	prompt := truncateContent(m.input.View(), m.width, 1)
	statusBar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, panel, prompt, statusBar)

	if m.activeOverlay == overlayHelp {
		view = renderOverlay(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}
