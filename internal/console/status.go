package console

import "github.com/watchfire-io/autodeploy/internal/models"

// StatusMachine holds the single AgentStatus of a session.
type StatusMachine struct {
	current models.AgentStatus
}

// NewStatusMachine starts idle with no progress.
func NewStatusMachine() *StatusMachine {
	return &StatusMachine{current: models.NewAgentStatus()}
}

// Status returns the current snapshot.
func (m *StatusMachine) Status() models.AgentStatus {
	return m.current
}

// Busy reports whether the agent is outside idle.
func (m *StatusMachine) Busy() bool {
	return m.current.State.Busy()
}

// Transition replaces state, task and progress together and returns the
// previous snapshot. Progress is clamped to 0-100.
func (m *StatusMachine) Transition(state models.AgentState, task string, progress int) models.AgentStatus {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	prev := m.current
	m.current = models.AgentStatus{
		State:       state,
		CurrentTask: task,
		Progress:    progress,
	}
	return prev
}
