// Package config handles configuration loading, saving, and path management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global autodeploy directory.
	GlobalDirName = ".autodeploy"

	// HomeEnv overrides the global directory when set.
	HomeEnv = "AUTODEPLOY_HOME"
)

// File names
const (
	SettingsFileName = "settings.yaml"
	DebugLogFileName = "debug.log"
)

// GlobalDir returns the path to the global directory (~/.autodeploy/),
// or $AUTODEPLOY_HOME when it is set.
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// DebugLogFile returns the path the TUI writes its debug log to.
func DebugLogFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DebugLogFileName), nil
}

// EnsureGlobalDir creates the global directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}
