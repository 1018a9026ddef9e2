package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/autodeploy/internal/models"
)

func TestGlobalDir(t *testing.T) {
	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv(HomeEnv, "")

		dir, err := GlobalDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, GlobalDirName), dir)

		path, err := GlobalSettingsFile()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, GlobalDirName, SettingsFileName), path)
	})

	t.Run("override", func(t *testing.T) {
		override := t.TempDir()
		t.Setenv(HomeEnv, override)

		dir, err := GlobalDir()
		require.NoError(t, err)
		assert.Equal(t, override, dir)

		path, err := DebugLogFile()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(override, DebugLogFileName), path)
	})
}

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), s)
}

func TestSaveAndLoadSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv(HomeEnv, dir)

	s := models.NewSettings()
	s.Pipeline.TimeUnit = 10 * time.Millisecond
	s.Appearance.Theme = "dark"
	s.Debug = true
	require.NoError(t, SaveSettings(s))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must be renamed away")
	assert.Equal(t, SettingsFileName, entries[0].Name())
}

func TestLoadSettingsFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, s *models.Settings)
		wantErr bool
	}{
		{
			name:    "partial file gets defaults",
			content: "pipeline:\n  time_unit: 2ms\n",
			check: func(t *testing.T, s *models.Settings) {
				assert.Equal(t, 2*time.Millisecond, s.Pipeline.TimeUnit)
				assert.Equal(t, "system", s.Appearance.Theme)
				assert.Equal(t, "> ", s.Console.Prompt)
				assert.Equal(t, 100*time.Millisecond, s.Console.FrameInterval)
				assert.Equal(t, 1, s.Version)
			},
		},
		{
			name:    "empty file",
			content: "",
			check: func(t *testing.T, s *models.Settings) {
				assert.Equal(t, models.NewSettings(), s)
			},
		},
		{
			name:    "bad theme",
			content: "appearance:\n  theme: neon\n",
			wantErr: true,
		},
		{
			name:    "bad yaml",
			content: "pipeline: [",
			wantErr: true,
		},
		{
			name:    "bad duration",
			content: "pipeline:\n  time_unit: soon\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), SettingsFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			s, err := LoadSettingsFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestSetSetting(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{key: "pipeline.time_unit", value: "5ms", want: "5ms"},
		{key: "pipeline.time_unit", value: "0s", wantErr: true},
		{key: "pipeline.time_unit", value: "-1ms", wantErr: true},
		{key: "appearance.theme", value: "Light", want: "light"},
		{key: "appearance.theme", value: "neon", wantErr: true},
		{key: "console.prompt", value: "$ ", want: `"$ "`},
		{key: "console.frame_interval", value: "50ms", want: "50ms"},
		{key: "debug", value: "true", want: "true"},
		{key: "debug", value: "maybe", wantErr: true},
		{key: "nope", value: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := models.NewSettings()
			err := SetSetting(s, tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			got, err := GetSetting(s, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetSettingCoversAllKeys(t *testing.T) {
	s := models.NewSettings()
	for _, key := range SettingKeys {
		_, err := GetSetting(s, key)
		assert.NoError(t, err, key)
	}
	_, err := GetSetting(s, "missing")
	assert.Error(t, err)
}
