//go:build linux || darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

func (service *platformService) EnableAutostart(appName, execPath string) error {
	entry, err := newLaunchEntry(appName, execPath)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	path, err := service.autostartFile(entry)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	content, err := entry.render(autostartTemplate)
	if err != nil {
		return fmt.Errorf("enable autostart: render %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("enable autostart: write %s: %w", path, err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	entry, err := newLaunchEntry(appName, "unused")
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	path, err := service.autostartFile(entry)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove %s: %w", path, err)
	}
	return nil
}
