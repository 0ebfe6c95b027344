package timekeeper

import (
	"time"

	"pomodoro/internal/core/model"
)

// SelectDuration returns the length of the interval being entered.
// round is the round count after the transition, so a pause is long when it
// follows a work round that is a multiple of LongPauseEvery. A zero
// LongPauseEvery never yields a long pause.
func SelectDuration(phase Phase, round uint64, durations model.DurationsConfig) time.Duration {
	if phase == PhaseWorking {
		return durations.Work
	}
	if durations.LongPauseEvery > 0 && round%durations.LongPauseEvery == 0 {
		return durations.LongPause
	}
	return durations.ShortPause
}
