package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/watchfire-io/autodeploy/internal/models"
)

// LoadSettings loads the global settings from ~/.autodeploy/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFile(path)
}

// LoadSettingsFile loads settings from path, filling defaults for missing keys.
func LoadSettingsFile(path string) (*models.Settings, error) {
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings saves the global settings to ~/.autodeploy/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// SettingKeys lists the keys accepted by SetSetting, in display order.
var SettingKeys = []string{
	"pipeline.time_unit",
	"appearance.theme",
	"console.prompt",
	"console.frame_interval",
	"debug",
}

// GetSetting returns the value of key formatted for display.
func GetSetting(s *models.Settings, key string) (string, error) {
	switch key {
	case "pipeline.time_unit":
		return s.Pipeline.TimeUnit.String(), nil
	case "appearance.theme":
		return s.Appearance.Theme, nil
	case "console.prompt":
		return strconv.Quote(s.Console.Prompt), nil
	case "console.frame_interval":
		return s.Console.FrameInterval.String(), nil
	case "debug":
		return strconv.FormatBool(s.Debug), nil
	}
	return "", fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(SettingKeys, ", "))
}

// SetSetting parses value and assigns it to key.
func SetSetting(s *models.Settings, key, value string) error {
	switch key {
	case "pipeline.time_unit":
		d, err := parsePositiveDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		s.Pipeline.TimeUnit = d
	case "appearance.theme":
		s.Appearance.Theme = strings.ToLower(value)
	case "console.prompt":
		s.Console.Prompt = value
	case "console.frame_interval":
		d, err := parsePositiveDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		s.Console.FrameInterval = d
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		s.Debug = b
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(SettingKeys, ", "))
	}
	return s.Validate()
}

func parsePositiveDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", value)
	}
	return d, nil
}
