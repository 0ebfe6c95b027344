package model

import "time"

// DurationsConfig defines the interval lengths used to schedule rounds.
type DurationsConfig struct {
	Work       time.Duration
	ShortPause time.Duration
	LongPause  time.Duration

	// LongPauseEvery is the round interval at which a pause becomes long.
	LongPauseEvery uint64
}

// TimeKeeperConfig contains runtime settings for the TimeKeeper controller.
type TimeKeeperConfig struct {
	Durations DurationsConfig

	// AutoAdvanceAfter advances an overrun interval automatically once the
	// overrun reaches it. Zero disables the policy.
	AutoAdvanceAfter time.Duration
}
