//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDataDirHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	dataDir, err := NewService().GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, dataDir)
}

func TestGetDataDirFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)

	dataDir, err := NewService().GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share"), dataDir)
}

func TestAutostartDesktopEntry(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	require.NoError(t, service.EnableAutostart("Pomodoro", "/opt/pomo dir/pomodoro"))
	entryPath := filepath.Join(configDir, "autostart", "pomodoro.desktop")
	assert.FileExists(t, entryPath)

	raw, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `Exec="/opt/pomo dir/pomodoro" gui`))
	assert.True(t, strings.Contains(string(raw), "Name=Pomodoro\n"))

	require.NoError(t, service.DisableAutostart("Pomodoro"))
	assert.NoFileExists(t, entryPath)
	require.NoError(t, service.DisableAutostart("Pomodoro"))
}

func TestAutostartRejectsEmptyNames(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	service := NewService()

	assert.ErrorContains(t, service.EnableAutostart("", "/usr/bin/pomodoro"), "app name is empty")
	assert.ErrorContains(t, service.EnableAutostart("Pomodoro", ` "" `), "exec path is empty")
	assert.ErrorContains(t, service.DisableAutostart(" "), "app name is empty")
}
