package preferences

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var errNotACount = errors.New("enter a whole number")

// Fields is the text form of the schedule settings, as typed into an editor.
type Fields struct {
	Work             string
	ShortPause       string
	LongPause        string
	LongPauseEvery   string
	AutoAdvanceAfter string
}

// FieldsFrom renders settings for editing: pauses and work in minutes,
// auto advance in seconds.
func FieldsFrom(settings Settings) Fields {
	return Fields{
		Work:             formatMinutes(settings.Work),
		ShortPause:       formatMinutes(settings.ShortPause),
		LongPause:        formatMinutes(settings.LongPause),
		LongPauseEvery:   strconv.FormatUint(settings.LongPauseEvery, 10),
		AutoAdvanceAfter: strconv.FormatInt(int64(settings.AutoAdvanceAfter/time.Second), 10),
	}
}

// Apply returns settings with every valid field applied. Invalid fields, and
// zero durations, keep the current value.
func (fields Fields) Apply(settings Settings) Settings {
	if minutes, ok := parseCount(fields.Work); ok && minutes > 0 {
		settings.Work = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parseCount(fields.ShortPause); ok && minutes > 0 {
		settings.ShortPause = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parseCount(fields.LongPause); ok && minutes > 0 {
		settings.LongPause = time.Duration(minutes) * time.Minute
	}
	if rounds, ok := parseCount(fields.LongPauseEvery); ok {
		settings.LongPauseEvery = rounds
	}
	if seconds, ok := parseCount(fields.AutoAdvanceAfter); ok {
		settings.AutoAdvanceAfter = time.Duration(seconds) * time.Second
	}
	return settings
}

// ValidateCount rejects anything but a non-negative whole number.
func ValidateCount(value string) error {
	if _, ok := parseCount(value); !ok {
		return errNotACount
	}
	return nil
}

// parseCount accepts a non-negative integer small enough to be used as
// minutes in a time.Duration.
func parseCount(value string) (uint64, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || parsed > uint64(time.Duration(1<<63-1)/time.Minute) {
		return 0, false
	}
	return parsed, true
}

func formatMinutes(duration time.Duration) string {
	return strconv.FormatInt(int64(duration/time.Minute), 10)
}
