package storage

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"pomodoro/internal/ui/preferences"
)

// ErrInvalidSettings indicates a value that cannot be used.
var ErrInvalidSettings = errors.New("invalid settings")

const (
	settingsFileName = "settings.yaml"
	envPrefix        = "POMODORO_"
	maxSeconds       = math.MaxInt64 / int64(time.Second)
)

type yamlSettings struct {
	DurationWork        int64   `yaml:"duration-work"`
	DurationShortPause  int64   `yaml:"duration-short-pause"`
	DurationLongPause   int64   `yaml:"duration-long-pause"`
	LongPauseEveryRound *uint64 `yaml:"long-pause-every-round"`

	AutoAdvanceAfter int64 `yaml:"auto-advance-after,omitempty"`
	HoldWhenIdle     *bool `yaml:"hold-when-idle,omitempty"`

	Sound                *bool `yaml:"sound,omitempty"`
	DesktopNotifications *bool `yaml:"desktop-notifications,omitempty"`
	History              *bool `yaml:"history,omitempty"`

	LogLevel string `yaml:"log-level,omitempty"`
	LogFile  string `yaml:"log-file,omitempty"`

	TelegramToken  string `yaml:"telegram-token,omitempty"`
	TelegramChatID int64  `yaml:"telegram-chat-id,omitempty"`
}

// SettingsStore reads and writes settings.yaml in one directory.
type SettingsStore struct {
	fs        afero.Fs
	dir       string
	lookupEnv func(string) (string, bool)
}

// NewSettingsStore returns a store rooted at dir. Environment overrides are
// read through os.LookupEnv.
func NewSettingsStore(fs afero.Fs, dir string) *SettingsStore {
	return &SettingsStore{fs: fs, dir: dir, lookupEnv: os.LookupEnv}
}

// WithEnv replaces the environment lookup used for overrides.
func (store *SettingsStore) WithEnv(lookup func(string) (string, bool)) *SettingsStore {
	store.lookupEnv = lookup
	return store
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return filepath.Join(store.dir, settingsFileName)
}

// LoadSettings reads user preferences from YAML and applies POMODORO_*
// environment overrides. If the file does not exist, defaults are used.
func (store *SettingsStore) LoadSettings() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := afero.ReadFile(store.fs, store.Path())
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return settings, fmt.Errorf("read settings file: %w", err)
	default:
		var fileData yamlSettings
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return settings, fmt.Errorf("parse settings yaml: %w", err)
		}
		if err := applyYamlSettings(&settings, fileData); err != nil {
			return preferences.DefaultSettings(), err
		}
	}

	if err := store.applyEnv(&settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func (store *SettingsStore) SaveSettings(settings preferences.Settings) error {
	if err := store.fs.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	every := settings.LongPauseEvery
	fileData := yamlSettings{
		DurationWork:         int64(settings.Work / time.Second),
		DurationShortPause:   int64(settings.ShortPause / time.Second),
		DurationLongPause:    int64(settings.LongPause / time.Second),
		LongPauseEveryRound:  &every,
		AutoAdvanceAfter:     int64(settings.AutoAdvanceAfter / time.Second),
		HoldWhenIdle:         &settings.HoldWhenIdle,
		Sound:                &settings.Sound,
		DesktopNotifications: &settings.DesktopNotifications,
		History:              &settings.History,
		LogLevel:             settings.LogLevel,
		LogFile:              settings.LogFile,
		TelegramToken:        settings.TelegramToken,
		TelegramChatID:       settings.TelegramChatID,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := afero.WriteFile(store.fs, store.Path(), serialized, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) error {
	durations := []struct {
		key     string
		seconds int64
		target  *time.Duration
	}{
		{"duration-work", fileData.DurationWork, &settings.Work},
		{"duration-short-pause", fileData.DurationShortPause, &settings.ShortPause},
		{"duration-long-pause", fileData.DurationLongPause, &settings.LongPause},
		{"auto-advance-after", fileData.AutoAdvanceAfter, &settings.AutoAdvanceAfter},
	}
	for _, duration := range durations {
		if duration.seconds <= 0 {
			continue
		}
		value, err := secondsToDuration(duration.key, duration.seconds)
		if err != nil {
			return err
		}
		*duration.target = value
	}

	if fileData.LongPauseEveryRound != nil {
		settings.LongPauseEvery = *fileData.LongPauseEveryRound
	}

	for _, flag := range []struct {
		value  *bool
		target *bool
	}{
		{fileData.HoldWhenIdle, &settings.HoldWhenIdle},
		{fileData.Sound, &settings.Sound},
		{fileData.DesktopNotifications, &settings.DesktopNotifications},
		{fileData.History, &settings.History},
	} {
		if flag.value != nil {
			*flag.target = *flag.value
		}
	}

	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
	settings.LogFile = fileData.LogFile
	settings.TelegramToken = fileData.TelegramToken
	settings.TelegramChatID = fileData.TelegramChatID
	return nil
}

func (store *SettingsStore) applyEnv(settings *preferences.Settings) error {
	lookup := func(key string) (string, bool) {
		value, ok := store.lookupEnv(envPrefix + key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	for key, target := range map[string]*time.Duration{
		"DURATION_WORK":        &settings.Work,
		"DURATION_SHORT_PAUSE": &settings.ShortPause,
		"DURATION_LONG_PAUSE":  &settings.LongPause,
		"AUTO_ADVANCE_AFTER":   &settings.AutoAdvanceAfter,
	} {
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		seconds, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || seconds < 0 {
			return fmt.Errorf("%s%s=%q: %w", envPrefix, key, raw, ErrInvalidSettings)
		}
		if seconds == 0 && key != "AUTO_ADVANCE_AFTER" {
			continue
		}
		value, err := secondsToDuration(envPrefix+key, seconds)
		if err != nil {
			return err
		}
		*target = value
	}

	if raw, ok := lookup("LONG_PAUSE_EVERY_ROUND"); ok {
		every, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%sLONG_PAUSE_EVERY_ROUND=%q: %w", envPrefix, raw, ErrInvalidSettings)
		}
		settings.LongPauseEvery = every
	}
	if raw, ok := lookup("LOG_LEVEL"); ok {
		settings.LogLevel = raw
	}
	if raw, ok := lookup("TELEGRAM_TOKEN"); ok {
		settings.TelegramToken = raw
	}
	if raw, ok := lookup("TELEGRAM_CHAT_ID"); ok {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%sTELEGRAM_CHAT_ID=%q: %w", envPrefix, raw, ErrInvalidSettings)
		}
		settings.TelegramChatID = chatID
	}
	return nil
}

func secondsToDuration(key string, seconds int64) (time.Duration, error) {
	if seconds > maxSeconds {
		return 0, fmt.Errorf("%s=%d exceeds %d seconds: %w", key, seconds, maxSeconds, ErrInvalidSettings)
	}
	return time.Duration(seconds) * time.Second, nil
}
