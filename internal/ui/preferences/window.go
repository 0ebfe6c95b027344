package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const restartNotice = "Durations take effect the next time Pomodoro starts."

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings) error

	work        *widget.Entry
	shortPause  *widget.Entry
	longPause   *widget.Entry
	longEvery   *widget.Entry
	autoAdvance *widget.Entry
	holdIdle    *widget.Check
	sound       *widget.Check
	desktop     *widget.Check
	history     *widget.Check
	status      *widget.Label
}

// New creates a preferences window. onSave persists the edited settings.
func New(app fyne.App, settings Settings, onSave func(Settings) error) *Window {
	prefs := &Window{
		window:      app.NewWindow("Pomodoro Preferences"),
		onSave:      onSave,
		work:        widget.NewEntry(),
		shortPause:  widget.NewEntry(),
		longPause:   widget.NewEntry(),
		longEvery:   widget.NewEntry(),
		autoAdvance: widget.NewEntry(),
		holdIdle:    widget.NewCheck("Hold automatic advance while I'm away", nil),
		sound:       widget.NewCheck("Play a sound", nil),
		desktop:     widget.NewCheck("Desktop notifications", nil),
		history:     widget.NewCheck("Keep interval history", nil),
		status:      widget.NewLabel(restartNotice),
	}
	prefs.status.Wrapping = fyne.TextWrapWord

	form := widget.NewForm(
		widget.NewFormItem("Work (min)", prefs.work),
		widget.NewFormItem("Short pause (min)", prefs.shortPause),
		widget.NewFormItem("Long pause (min)", prefs.longPause),
		widget.NewFormItem("Long pause every", prefs.longEvery),
		widget.NewFormItem("Auto advance after (sec)", prefs.autoAdvance),
	)
	form.Items[3].HintText = "rounds, 0 for never"
	form.Items[4].HintText = "0 waits for Next"

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		prefs.window.Hide()
	})

	content := container.NewBorder(
		nil,
		container.NewVBox(prefs.status, container.NewHBox(layout.NewSpacer(), cancelButton, saveButton)),
		nil,
		nil,
		container.NewVBox(
			widget.NewLabelWithStyle("Schedule", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			form,
			widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			prefs.sound,
			prefs.desktop,
			prefs.holdIdle,
			prefs.history,
		),
	)
	prefs.window.SetContent(content)
	prefs.window.Resize(fyne.NewSize(420, 460))
	prefs.window.SetCloseIntercept(prefs.window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	fields := FieldsFrom(settings)
	prefs.work.SetText(fields.Work)
	prefs.shortPause.SetText(fields.ShortPause)
	prefs.longPause.SetText(fields.LongPause)
	prefs.longEvery.SetText(fields.LongPauseEvery)
	prefs.autoAdvance.SetText(fields.AutoAdvanceAfter)
	prefs.holdIdle.SetChecked(settings.HoldWhenIdle)
	prefs.sound.SetChecked(settings.Sound)
	prefs.desktop.SetChecked(settings.DesktopNotifications)
	prefs.history.SetChecked(settings.History)
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := Fields{
		Work:             prefs.work.Text,
		ShortPause:       prefs.shortPause.Text,
		LongPause:        prefs.longPause.Text,
		LongPauseEvery:   prefs.longEvery.Text,
		AutoAdvanceAfter: prefs.autoAdvance.Text,
	}.Apply(prefs.settings)
	settings.HoldWhenIdle = prefs.holdIdle.Checked
	settings.Sound = prefs.sound.Checked
	settings.DesktopNotifications = prefs.desktop.Checked
	settings.History = prefs.history.Checked

	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			prefs.status.SetText("Could not save: " + err.Error())
			return
		}
	}
	prefs.settings = settings
	prefs.status.SetText(restartNotice)
	prefs.window.Hide()
}
