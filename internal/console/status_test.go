package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watchfire-io/autodeploy/internal/models"
)

func TestStatusMachineStartsIdle(t *testing.T) {
	m := NewStatusMachine()
	assert.Equal(t, models.AgentStatus{
		State:       models.AgentStateIdle,
		CurrentTask: models.InitialTask,
		Progress:    0,
	}, m.Status())
	assert.False(t, m.Busy())
}

func TestStatusMachineTransition(t *testing.T) {
	m := NewStatusMachine()

	prev := m.Transition(models.AgentStateBuilding, "Running build scripts...", 40)
	assert.Equal(t, models.NewAgentStatus(), prev)
	assert.Equal(t, models.AgentStatus{
		State:       models.AgentStateBuilding,
		CurrentTask: "Running build scripts...",
		Progress:    40,
	}, m.Status())
	assert.True(t, m.Busy())

	m.Transition(models.AgentStateIdle, "Deployment Complete", 100)
	assert.False(t, m.Busy())
}

func TestStatusMachineClampsProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		want     int
	}{
		{"below range", -5, 0},
		{"in range", 75, 75},
		{"above range", 140, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStatusMachine()
			m.Transition(models.AgentStateDeploying, "x", tt.progress)
			assert.Equal(t, tt.want, m.Status().Progress)
		})
	}
}

func TestErrorStateCountsAsBusy(t *testing.T) {
	m := NewStatusMachine()
	m.Transition(models.AgentStateError, "Deployment failed", 75)
	assert.True(t, m.Busy())
}
