// Package notify delivers end-of-interval alerts off the timer's goroutine.
package notify

import (
	"fmt"
	"time"

	"pomodoro/internal/core/timekeeper"
)

const alertTitle = "Pomodoro"

// Alert announces that an interval ended.
type Alert struct {
	Phase timekeeper.Phase
	Round uint64
	At    time.Time
}

// Title returns the notification summary.
func (alert Alert) Title() string {
	return alertTitle
}

// Body returns text such as "Round 2: Work ended".
func (alert Alert) Body() string {
	return fmt.Sprintf("Round %d: %s ended", alert.Round, alert.Phase.Label())
}
