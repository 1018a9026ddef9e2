package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/autodeploy/internal/config"
	"github.com/watchfire-io/autodeploy/internal/models"
)

var settingsForce bool

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show global settings",
	Long: `Show the settings in ~/.autodeploy/settings.yaml.

Missing keys fall back to defaults. The interactive console reloads the
file when it changes.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with default values",
	Args:  cobra.NoArgs,
	RunE:  runSettingsInit,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save the file.

Keys:
  pipeline.time_unit       length of one pipeline delay unit (e.g. 1ms, 10ms)
  appearance.theme         system, light or dark
  console.prompt           prompt shown before the command line
  console.frame_interval   how often the console advances a running pipeline
  debug                    true or false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsInitCmd.Flags().BoolVarP(&settingsForce, "force", "f", false, "overwrite an existing file")

	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, path, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	source := path
	if !config.FileExists(path) {
		source += " (not created, showing defaults)"
	}
	fmt.Fprintln(out, styleLabel.Render("File: ")+source)
	fmt.Fprintln(out)
	return printSettings(cmd, settings)
}

func printSettings(cmd *cobra.Command, settings *models.Settings) error {
	out := cmd.OutOrStdout()
	for _, key := range config.SettingKeys {
		value, err := config.GetSetting(settings, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-24s", key)), styleValue.Render(value))
	}
	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}
	if config.FileExists(path) && !settingsForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveSettings(models.NewSettings()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("Wrote "+path))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]
	if err := config.SetSetting(settings, key, value); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	shown, _ := config.GetSetting(settings, key)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n",
		styleSuccess.Render("Updated"), styleCommand.Render(key), shown)
	return nil
}
