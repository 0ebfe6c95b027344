package platform

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	GetDataDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
	PlayAlert(ctx context.Context) error
}

type platformService struct {
	sound SoundPlayer
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{sound: NewSoundPlayer()}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// GetDataDir returns the OS-standard directory for per-user application data.
func (service *platformService) GetDataDir() (string, error) {
	if dataDir := userDataDir(); dataDir != "" {
		return dataDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get data dir: %w", err)
	}
	return fallbackDataDir(homeDir), nil
}

// PlayAlert plays the end-of-interval sound.
func (service *platformService) PlayAlert(ctx context.Context) error {
	return service.sound.Play(ctx)
}

// appSlug turns a display name into a lowercase file-name-safe identifier.
func appSlug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "pomodoro"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
