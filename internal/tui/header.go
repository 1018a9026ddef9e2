package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/autodeploy/internal/models"
)

const appName = "autodeploy"

// headerHeight is the title row plus the progress row.
const headerHeight = 2

func renderHeader(status models.AgentStatus, sp spinner.Model, bar progress.Model, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorOrange).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render(appName)

	badge := renderAgentBadge(status.State)
	if status.State.Busy() {
		badge = sp.View() + " " + badge
	}

	left := fmt.Sprintf(" %s %s  %s", dot, name, badge)
	right := fmt.Sprintf("%3d%% ", status.Progress)

	// The task gets whatever room is left between badge and percentage.
	room := width - lipgloss.Width(left) - lipgloss.Width(right) - 3
	task := ""
	if room > 0 {
		task = "  " + taskStyle.Render(ansi.Truncate(status.CurrentTask, room, "…"))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(task) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	title := headerStyle.Width(width).Render(left + task + strings.Repeat(" ", gap) + right)

	bar.Width = width - 2
	if bar.Width < 1 {
		bar.Width = 1
	}
	return title + "\n " + bar.ViewAs(float64(status.Progress)/100)
}

func renderAgentBadge(state models.AgentState) string {
	switch state {
	case models.AgentStateAnalyzing:
		return badgeAnalyzingStyle.Render("● Analyzing")
	case models.AgentStateBuilding:
		return badgeBuildingStyle.Render("● Building")
	case models.AgentStateDeploying:
		return badgeDeployingStyle.Render("● Deploying")
	case models.AgentStateError:
		return badgeErrorStyle.Render("✖ Error")
	default:
		return badgeIdleStyle.Render("● Idle")
	}
}
