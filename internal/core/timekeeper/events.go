package timekeeper

import "time"

// Phase represents the kind of interval the scheduler is in.
type Phase string

const (
	PhaseWorking Phase = "working"
	PhasePause   Phase = "pause"
)

// Label returns the capitalized phase name shown to users.
func (phase Phase) Label() string {
	switch phase {
	case PhaseWorking:
		return "Work"
	case PhasePause:
		return "Pause"
	default:
		return string(phase)
	}
}

// TickKind classifies the outcome of a tick.
type TickKind string

const (
	TickRemaining   TickKind = "remaining"
	TickJustExpired TickKind = "just_expired"
	TickOverrun     TickKind = "overrun"
)

// TickResult is the scheduler's view of the current interval at a given instant.
type TickResult struct {
	Kind      TickKind
	Phase     Phase
	Round     uint64
	Remaining time.Duration
	Overrun   time.Duration
}

// Expired reports whether the deadline has been reached.
func (result TickResult) Expired() bool {
	return result.Kind == TickJustExpired || result.Kind == TickOverrun
}

// Seconds returns whole seconds left in the interval, negative once overrun.
func (result TickResult) Seconds() int64 {
	if result.Expired() {
		return -int64(result.Overrun / time.Second)
	}
	return int64(result.Remaining / time.Second)
}

// AdvanceResult describes the interval that an advance started.
type AdvanceResult struct {
	Phase    Phase
	Round    uint64
	Deadline time.Time
	Duration time.Duration
}

// Interval describes an interval that has been closed by an advance.
type Interval struct {
	Phase    Phase
	Round    uint64
	Started  time.Time
	Deadline time.Time
	Ended    time.Time
}

// Overrun returns how long the interval ran past its deadline.
func (interval Interval) Overrun() time.Duration {
	if interval.Ended.Before(interval.Deadline) {
		return 0
	}
	return interval.Ended.Sub(interval.Deadline)
}

// EventType defines the type of controller event.
type EventType string

const (
	EventTick     EventType = "tick"
	EventAdvanced EventType = "advanced"
	EventError    EventType = "error"
)

// Event represents a controller update for observers.
type Event struct {
	Type    EventType
	Tick    TickResult
	Advance AdvanceResult
	// Ended is set on EventAdvanced when a started interval was closed.
	Ended *Interval
	Err   error
	At    time.Time
}
