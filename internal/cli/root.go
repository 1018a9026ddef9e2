// Package cli implements the autodeploy CLI commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/autodeploy/internal/config"
	"github.com/watchfire-io/autodeploy/internal/models"
	"github.com/watchfire-io/autodeploy/internal/tui"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "autodeploy",
	Short: "Simulated deployment agent console",
	Long: `autodeploy is a command console for a simulated deployment agent.

Type commands such as "deploy", "analyze", "status", "clear" or "help".
Any command containing "deploy" runs the analyze, build and deploy pipeline.
Commands typed while a pipeline is running are rejected, never queued.

Without arguments, opens the interactive console.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (console: ~/.autodeploy/debug.log, run: stderr)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	settings, path, err := loadSettings()
	if err != nil {
		return err
	}
	if debugFlag {
		settings.Debug = true
	}
	return tui.Run(settings, path)
}

// loadSettings returns the global settings and the file they came from.
func loadSettings() (*models.Settings, string, error) {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return nil, "", err
	}
	settings, err := config.LoadSettingsFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, path, nil
}
