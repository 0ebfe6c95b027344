//go:build linux

package platform

import (
	"os"
	"path/filepath"
)

var autostartTemplate = desktopEntryTemplate

// autostartFile is the XDG autostart entry under the config directory.
func (service *platformService) autostartFile(entry launchEntry) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", appSlug(entry.Name)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func userDataDir() string {
	return os.Getenv("XDG_DATA_HOME")
}

func fallbackDataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share")
}
