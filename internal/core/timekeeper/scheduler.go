package timekeeper

import (
	"errors"
	"fmt"
	"time"

	"pomodoro/internal/core/model"
)

// ErrDurationOverflow indicates the next deadline cannot be represented.
var ErrDurationOverflow = errors.New("deadline overflows representable time")

// Scheduler tracks the current interval against its deadline.
//
// It is not safe for concurrent use; TimeKeeper is its single owner.
type Scheduler struct {
	phase    Phase
	deadline time.Time
	notified bool
	round    uint64
}

// NewScheduler returns a scheduler in an already expired pause, so the first
// tick reports overrun without asking for a notification.
func NewScheduler(now time.Time) *Scheduler {
	return &Scheduler{
		phase:    PhasePause,
		deadline: now,
		notified: true,
	}
}

// Phase returns the current phase.
func (scheduler *Scheduler) Phase() Phase { return scheduler.phase }

// Round returns the number of work intervals started so far.
func (scheduler *Scheduler) Round() uint64 { return scheduler.round }

// Deadline returns the instant the current interval completes.
func (scheduler *Scheduler) Deadline() time.Time { return scheduler.deadline }

// Notified reports whether the current interval's expiry was already reported.
func (scheduler *Scheduler) Notified() bool { return scheduler.notified }

// Tick compares now with the deadline. Only the first call at or past the
// deadline returns TickJustExpired.
func (scheduler *Scheduler) Tick(now time.Time) TickResult {
	result := TickResult{
		Phase: scheduler.phase,
		Round: scheduler.round,
	}
	if now.Before(scheduler.deadline) {
		result.Kind = TickRemaining
		result.Remaining = scheduler.deadline.Sub(now)
		return result
	}

	result.Overrun = now.Sub(scheduler.deadline)
	if !scheduler.notified {
		scheduler.notified = true
		result.Kind = TickJustExpired
		return result
	}
	result.Kind = TickOverrun
	return result
}

// Advance ends the current interval and starts the next one at now.
// On error the scheduler is left untouched.
func (scheduler *Scheduler) Advance(now time.Time, durations model.DurationsConfig) (AdvanceResult, error) {
	next := PhaseWorking
	round := scheduler.round
	if scheduler.phase == PhaseWorking {
		next = PhasePause
	} else {
		round++
	}

	duration := SelectDuration(next, round, durations)
	deadline, err := addDeadline(now, duration)
	if err != nil {
		return AdvanceResult{}, err
	}

	scheduler.phase = next
	scheduler.round = round
	scheduler.deadline = deadline
	scheduler.notified = false

	return AdvanceResult{
		Phase:    next,
		Round:    round,
		Deadline: deadline,
		Duration: duration,
	}, nil
}

func addDeadline(now time.Time, duration time.Duration) (time.Time, error) {
	deadline := now.Add(duration)
	if (duration > 0 && !deadline.After(now)) || deadline.Sub(now) != duration {
		return time.Time{}, fmt.Errorf("advance by %s: %w", duration, ErrDurationOverflow)
	}
	return deadline, nil
}
