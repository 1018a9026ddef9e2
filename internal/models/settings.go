package models

import (
	"fmt"
	"time"
)

// PipelineConfig holds settings for the simulated pipeline.
type PipelineConfig struct {
	TimeUnit time.Duration `yaml:"time_unit"` // length of one delay unit
}

// AppearanceConfig holds appearance settings.
type AppearanceConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

// ConsoleConfig holds settings for the interactive console.
type ConsoleConfig struct {
	Prompt        string        `yaml:"prompt"`
	FrameInterval time.Duration `yaml:"frame_interval"` // how often the TUI advances the clock while busy
}

// Settings represents global application settings.
// This corresponds to ~/.autodeploy/settings.yaml.
type Settings struct {
	Version    int              `yaml:"version"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Appearance AppearanceConfig `yaml:"appearance"`
	Console    ConsoleConfig    `yaml:"console"`
	Debug      bool             `yaml:"debug"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Pipeline: PipelineConfig{
			TimeUnit: time.Millisecond,
		},
		Appearance: AppearanceConfig{
			Theme: "system",
		},
		Console: ConsoleConfig{
			Prompt:        "> ",
			FrameInterval: 100 * time.Millisecond,
		},
	}
}

// ApplyDefaults fills zero values left by a partial settings file.
func (s *Settings) ApplyDefaults() {
	d := NewSettings()
	if s.Version == 0 {
		s.Version = d.Version
	}
	if s.Pipeline.TimeUnit <= 0 {
		s.Pipeline.TimeUnit = d.Pipeline.TimeUnit
	}
	if s.Appearance.Theme == "" {
		s.Appearance.Theme = d.Appearance.Theme
	}
	if s.Console.Prompt == "" {
		s.Console.Prompt = d.Console.Prompt
	}
	if s.Console.FrameInterval <= 0 {
		s.Console.FrameInterval = d.Console.FrameInterval
	}
}

// Validate checks values that cannot be defaulted.
func (s *Settings) Validate() error {
	switch s.Appearance.Theme {
	case "system", "light", "dark":
	default:
		return fmt.Errorf("invalid theme %q (expected system, light or dark)", s.Appearance.Theme)
	}
	if s.Pipeline.TimeUnit < 0 {
		return fmt.Errorf("time_unit must not be negative")
	}
	if s.Console.FrameInterval < 0 {
		return fmt.Errorf("frame_interval must not be negative")
	}
	return nil
}
