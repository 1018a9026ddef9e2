package models

import "fmt"

// AgentState is the lifecycle state of the console agent.
type AgentState string

const (
	AgentStateIdle      AgentState = "idle"
	AgentStateAnalyzing AgentState = "analyzing"
	AgentStateBuilding  AgentState = "building"
	AgentStateDeploying AgentState = "deploying"
	// AgentStateError is reserved for failure reporting; no pipeline reaches it yet.
	AgentStateError AgentState = "error"
)

// Busy reports whether a pipeline may be executing in this state.
func (s AgentState) Busy() bool {
	return s != AgentStateIdle
}

// InitialTask is the task description of a fresh agent.
const InitialTask = "Waiting for commands..."

// AgentStatus is a snapshot of the agent. It is always replaced as a whole.
type AgentStatus struct {
	State       AgentState `yaml:"state"`
	CurrentTask string     `yaml:"current_task"`
	Progress    int        `yaml:"progress"` // 0-100
}

// NewAgentStatus returns the status of an agent that has not run anything yet.
func NewAgentStatus() AgentStatus {
	return AgentStatus{
		State:       AgentStateIdle,
		CurrentTask: InitialTask,
		Progress:    0,
	}
}

// String renders the status the way the status command reports it.
func (s AgentStatus) String() string {
	return fmt.Sprintf("%s | %s | %d%%", s.State, s.CurrentTask, s.Progress)
}
