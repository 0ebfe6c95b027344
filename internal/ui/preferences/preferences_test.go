package preferences

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsDurations(t *testing.T) {
	durations := DefaultSettings().Durations()

	assert.Equal(t, 25*time.Minute, durations.Work)
	assert.Equal(t, 5*time.Minute, durations.ShortPause)
	assert.Equal(t, 15*time.Minute, durations.LongPause)
	assert.Equal(t, uint64(4), durations.LongPauseEvery)
	assert.Zero(t, DefaultSettings().TimeKeeperConfig().AutoAdvanceAfter)
	assert.False(t, DefaultSettings().TelegramEnabled())
}

func TestWindowSave(t *testing.T) {
	app := test.NewTempApp(t)
	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) error {
		saved = append(saved, settings)
		return nil
	})

	assert.Equal(t, "25", prefs.work.Text)

	prefs.work.SetText("50")
	prefs.shortPause.SetText("not a number")
	prefs.longEvery.SetText("0")
	prefs.autoAdvance.SetText("30")
	prefs.sound.SetChecked(false)
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, 50*time.Minute, saved[0].Work)
	assert.Equal(t, 5*time.Minute, saved[0].ShortPause)
	assert.Equal(t, uint64(0), saved[0].LongPauseEvery)
	assert.Equal(t, 30*time.Second, saved[0].AutoAdvanceAfter)
	assert.False(t, saved[0].Sound)
	assert.Equal(t, saved[0], prefs.Settings())
}

func TestWindowSaveFailureKeepsSettings(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), func(Settings) error {
		return errors.New("read-only file system")
	})

	prefs.work.SetText("10")
	prefs.handleSave()

	assert.Equal(t, 25*time.Minute, prefs.Settings().Work)
	assert.Contains(t, prefs.status.Text, "read-only file system")
}

func TestParseCount(t *testing.T) {
	value, ok := parseCount(" 12 ")
	assert.True(t, ok)
	assert.Equal(t, uint64(12), value)

	_, ok = parseCount("-1")
	assert.False(t, ok)
	_, ok = parseCount("99999999999999999")
	assert.False(t, ok)
}

func TestFieldsRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.AutoAdvanceAfter = 90 * time.Second

	fields := FieldsFrom(settings)
	assert.Equal(t, Fields{Work: "25", ShortPause: "5", LongPause: "15", LongPauseEvery: "4", AutoAdvanceAfter: "90"}, fields)
	assert.Equal(t, settings, fields.Apply(DefaultSettings()))
}

func TestFieldsApplyKeepsInvalidValues(t *testing.T) {
	applied := Fields{
		Work:             "0",
		ShortPause:       "abc",
		LongPause:        "20",
		LongPauseEvery:   "0",
		AutoAdvanceAfter: "-5",
	}.Apply(DefaultSettings())

	assert.Equal(t, 25*time.Minute, applied.Work)
	assert.Equal(t, 5*time.Minute, applied.ShortPause)
	assert.Equal(t, 20*time.Minute, applied.LongPause)
	assert.Zero(t, applied.LongPauseEvery)
	assert.Zero(t, applied.AutoAdvanceAfter)
}

func TestValidateCount(t *testing.T) {
	require.NoError(t, ValidateCount("3"))
	assert.Error(t, ValidateCount("three"))
}
