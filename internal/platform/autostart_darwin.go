//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

var autostartTemplate = launchAgentTemplate

// autostartFile is the per-user launchd agent named after the entry label.
func (service *platformService) autostartFile(entry launchEntry) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", entry.Label+".plist"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func userDataDir() string {
	return ""
}

// Application data and configuration share Application Support on macOS.
func fallbackDataDir(homeDir string) string {
	return fallbackConfigDir(homeDir)
}
