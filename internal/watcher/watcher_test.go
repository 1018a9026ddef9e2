package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/autodeploy/internal/config"
	"github.com/watchfire-io/autodeploy/internal/models"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	return Event{}
}

func TestWatcherReloadsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", config.SettingsFileName)
	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	s := models.NewSettings()
	s.Pipeline.TimeUnit = 7 * time.Millisecond
	require.NoError(t, config.SaveYAML(path, s))

	ev := waitEvent(t, w)
	require.NoError(t, ev.Err)
	assert.Equal(t, path, ev.Path)
	assert.Equal(t, 7*time.Millisecond, ev.Settings.Pipeline.TimeUnit)
}

func TestWatcherReportsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(path, []byte("appearance:\n  theme: neon\n"), 0o644))

	ev := waitEvent(t, w)
	assert.Error(t, ev.Err)
	assert.Nil(t, ev.Settings)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, config.SettingsFileName), 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), config.SettingsFileName), 0)
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}
