package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/autodeploy/internal/models"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "236"})

	logPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)

	emptyLogStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Center)
)

// Log line styles.
var (
	timestampStyle = lipgloss.NewStyle().Foreground(colorDim)

	levelStyles = map[models.LogLevel]lipgloss.Style{
		models.LogLevelInfo:    lipgloss.NewStyle().Foreground(colorWhite),
		models.LogLevelSuccess: lipgloss.NewStyle().Foreground(colorGreen),
		models.LogLevelWarning: lipgloss.NewStyle().Foreground(colorYellow),
		models.LogLevelError:   lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	}

	echoStyle = lipgloss.NewStyle().Foreground(colorCyan)
)

// Agent badge styles.
var (
	badgeIdleStyle      = lipgloss.NewStyle().Foreground(colorDim)
	badgeAnalyzingStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	badgeBuildingStyle  = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	badgeDeployingStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	badgeErrorStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	taskStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func levelStyle(level models.LogLevel) lipgloss.Style {
	if s, ok := levelStyles[level]; ok {
		return s
	}
	return levelStyles[models.LogLevelInfo]
}

// applyTheme picks which side of every AdaptiveColor is used.
// "system" restores what the terminal reported at start-up.
func applyTheme(theme string, systemDark bool) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	default:
		lipgloss.SetHasDarkBackground(systemDark)
	}
}
