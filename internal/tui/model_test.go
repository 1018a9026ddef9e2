package tui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/autodeploy/internal/clock"
	"github.com/watchfire-io/autodeploy/internal/console"
	"github.com/watchfire-io/autodeploy/internal/models"
)

var epoch = time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)

type harness struct {
	t   *testing.T
	m   Model
	now time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{t: t, now: epoch}
	h.m = NewModel(models.NewSettings(), clock.NewManual(epoch), &programRef{})
	h.m.now = func() time.Time { return h.now }
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) typeLine(s string) tea.Cmd {
	h.t.Helper()
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return h.send(tea.KeyMsg{Type: tea.KeyEnter})
}

// wait moves wall time forward and delivers one frame tick.
func (h *harness) wait(d time.Duration) tea.Cmd {
	h.t.Helper()
	h.now = h.now.Add(d)
	return h.send(frameTickMsg{})
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if isQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestViewTooSmall(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 50, Height: 10})

	view := h.m.View()
	assert.Contains(t, view, "Terminal too small")
	assert.Contains(t, view, "50x10")
}

func TestPromptSubmitsCommand(t *testing.T) {
	h := newHarness(t)
	h.typeLine("help")

	assert.Equal(t, 2, h.m.Session().LogLen())
	assert.Empty(t, h.m.input.Value(), "prompt is cleared after submit")
	assert.Equal(t, 2, h.m.logView.Len())

	view := h.m.View()
	assert.Contains(t, view, "[14:30:00]")
	assert.Contains(t, view, console.HelpMessage)
	assert.Contains(t, view, "Idle")
}

func TestBlankEnterIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.typeLine("   ")
	h.send(keyMsg(tea.KeyEnter))

	assert.Zero(t, h.m.Session().LogLen())
	assert.Contains(t, h.m.View(), "No output yet")
}

func TestDeployRunsOnFrameTicks(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(keyMsg(tea.KeyCtrlD))
	require.NotNil(t, cmd)
	assert.True(t, h.m.frameRunning)
	assert.True(t, h.m.spinnerRunning)
	assert.Equal(t, models.AgentStateAnalyzing, h.m.Session().Status().State)
	assert.Contains(t, h.m.View(), "Analyzing repository structure...")

	require.NotNil(t, h.wait(time.Second), "keeps ticking while steps are pending")
	assert.Equal(t, models.AgentStateAnalyzing, h.m.Session().Status().State)

	h.wait(2 * time.Second)
	assert.Equal(t, models.AgentStateBuilding, h.m.Session().Status().State)

	assert.Nil(t, h.wait(5*time.Second), "ticking stops once the pipeline settles")
	assert.False(t, h.m.frameRunning)

	status := h.m.Session().Status()
	assert.Equal(t, models.AgentStatus{
		State:       models.AgentStateIdle,
		CurrentTask: "Deployment Complete",
		Progress:    100,
	}, status)

	entries := h.m.Session().Entries()
	require.Len(t, entries, 8)
	assert.Equal(t, "14:30:05", entries[7].Timestamp, "steps are stamped with their due time")

	view := h.m.View()
	assert.Contains(t, view, "Deployment Complete")
	assert.Contains(t, view, "100%")
}

func TestDeployNowIsInertWhileBusy(t *testing.T) {
	h := newHarness(t)
	h.send(keyMsg(tea.KeyCtrlD))
	n := h.m.Session().LogLen()

	assert.Nil(t, h.send(keyMsg(tea.KeyCtrlD)))
	assert.Equal(t, n, h.m.Session().LogLen())
	assert.Equal(t, 1, h.m.Session().Runs())
}

func TestTypedCommandWhileBusyIsRejected(t *testing.T) {
	h := newHarness(t)
	h.typeLine("deploy")
	before := h.m.Session().Status()

	h.typeLine("status")

	entries := h.m.Session().Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, console.BusyMessage, last.Message)
	assert.Equal(t, models.LogLevelWarning, last.Level)
	assert.Equal(t, before, h.m.Session().Status())
}

func TestClearKey(t *testing.T) {
	h := newHarness(t)
	h.typeLine("help")
	h.typeLine("bogus")
	require.Equal(t, 4, h.m.logView.Len())

	h.send(keyMsg(tea.KeyCtrlL))

	assert.Zero(t, h.m.Session().LogLen())
	assert.Zero(t, h.m.logView.Len())
}

func TestQuit(t *testing.T) {
	t.Run("idle quits immediately", func(t *testing.T) {
		h := newHarness(t)
		assert.True(t, isQuit(h.send(keyMsg(tea.KeyCtrlQ))))
	})

	t.Run("busy asks first", func(t *testing.T) {
		h := newHarness(t)
		h.send(keyMsg(tea.KeyCtrlD))

		assert.Nil(t, h.send(keyMsg(tea.KeyCtrlQ)))
		assert.Equal(t, confirmQuit, h.m.confirmMode)
		assert.Contains(t, h.m.View(), "Quit anyway? (y/n)")

		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
		assert.Equal(t, confirmNone, h.m.confirmMode)
		assert.Empty(t, h.m.input.Value(), "confirm keys do not reach the prompt")

		h.send(keyMsg(tea.KeyCtrlC))
		require.Equal(t, confirmQuit, h.m.confirmMode)
		assert.True(t, isQuit(h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})))
	})

	t.Run("quits once the pipeline is done", func(t *testing.T) {
		h := newHarness(t)
		h.send(keyMsg(tea.KeyCtrlD))
		h.wait(time.Minute)
		assert.True(t, isQuit(h.send(keyMsg(tea.KeyCtrlC))))
	})
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t)

	h.send(keyMsg(tea.KeyCtrlH))
	assert.Equal(t, overlayHelp, h.m.activeOverlay)
	assert.Contains(t, h.m.View(), "Toggle help")

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Empty(t, h.m.input.Value(), "overlay swallows typing")

	h.send(keyMsg(tea.KeyEsc))
	assert.Equal(t, overlayNone, h.m.activeOverlay)
	assert.NotContains(t, h.m.View(), "Toggle help")
}

func TestSettingsReloaded(t *testing.T) {
	h := newHarness(t)

	s := models.NewSettings()
	s.Pipeline.TimeUnit = 10 * time.Millisecond
	s.Console.Prompt = "$ "
	require.NotNil(t, h.send(SettingsReloadedMsg{Settings: s}))

	assert.Equal(t, 10*time.Millisecond, h.m.Session().TimeUnit())
	assert.Equal(t, "$ ", h.m.input.Prompt)
	assert.Contains(t, h.m.View(), "Settings reloaded")

	h.send(ClearNoticeMsg{})
	assert.NotContains(t, h.m.View(), "Settings reloaded")

	h.send(SettingsReloadedMsg{Err: errors.New("invalid theme")})
	assert.Contains(t, h.m.View(), "settings not applied: invalid theme")
	assert.Equal(t, 10*time.Millisecond, h.m.Session().TimeUnit(), "bad files leave settings alone")

	h.send(ClearErrorMsg{})
	assert.Nil(t, h.m.err)
}

func TestLogViewFollowsNewest(t *testing.T) {
	l := NewLogView()
	l.SetSize(40, 3)
	for i := 0; i < 10; i++ {
		l.Observe(console.Event{
			Kind:  console.EventAppend,
			Entry: models.LogEntry{Timestamp: "14:30:00", Message: fmt.Sprintf("entry %d", i), Level: models.LogLevelInfo},
		})
	}
	assert.True(t, l.Following())
	assert.Contains(t, l.View(), "entry 9")

	l.PageUp()
	assert.False(t, l.Following())

	l.Observe(console.Event{
		Kind:  console.EventAppend,
		Entry: models.LogEntry{Timestamp: "14:30:01", Message: "entry 10", Level: models.LogLevelSuccess},
	})
	assert.NotContains(t, l.View(), "entry 10", "scrolled view stays put")

	l.GotoBottom()
	assert.True(t, l.Following())
	assert.Contains(t, l.View(), "entry 10")

	l.Observe(console.Event{Kind: console.EventClear})
	assert.Zero(t, l.Len())
	assert.Contains(t, l.View(), "No output yet")
}
