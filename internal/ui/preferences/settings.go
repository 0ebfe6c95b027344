package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Work           time.Duration
	ShortPause     time.Duration
	LongPause      time.Duration
	LongPauseEvery uint64

	AutoAdvanceAfter time.Duration
	HoldWhenIdle     bool

	Sound                bool
	DesktopNotifications bool
	History              bool

	LogLevel string
	LogFile  string

	TelegramToken  string
	TelegramChatID int64
}

// DefaultSettings returns the classic 25/5/15 schedule with a long pause
// every fourth round.
func DefaultSettings() Settings {
	return Settings{
		Work:                 25 * time.Minute,
		ShortPause:           5 * time.Minute,
		LongPause:            15 * time.Minute,
		LongPauseEvery:       4,
		HoldWhenIdle:         true,
		Sound:                true,
		DesktopNotifications: true,
		History:              true,
		LogLevel:             "info",
	}
}

// Durations converts settings to the scheduler's interval lengths.
func (settings Settings) Durations() model.DurationsConfig {
	return model.DurationsConfig{
		Work:           settings.Work,
		ShortPause:     settings.ShortPause,
		LongPause:      settings.LongPause,
		LongPauseEvery: settings.LongPauseEvery,
	}
}

// TimeKeeperConfig converts settings to TimeKeeperConfig.
func (settings Settings) TimeKeeperConfig() model.TimeKeeperConfig {
	return model.TimeKeeperConfig{
		Durations:        settings.Durations(),
		AutoAdvanceAfter: settings.AutoAdvanceAfter,
	}
}

// TelegramEnabled reports whether alerts should also go to Telegram.
func (settings Settings) TelegramEnabled() bool {
	return settings.TelegramToken != "" && settings.TelegramChatID != 0
}
