// Package window is the view desktop window: the timer, the Next control and
// the to-do list.
package window

import (
	"context"
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/core/todo"
)

const advanceTimeout = 2 * time.Second

// Timer is the part of the timekeeper the window drives.
type Timer interface {
	Advance(ctx context.Context) (timekeeper.AdvanceResult, error)
}

// Window shows the timer and the task list.
type Window struct {
	window fyne.Window
	timer  Timer
	tasks  *todo.List
	log    zerolog.Logger

	clock   *canvas.Text
	caption *widget.Label
	next    *widget.Button
	status  *widget.Label
	entry   *widget.Entry
	list    *widget.List

	items []todo.Task
	last  timekeeper.TickResult
}

// New builds the view window. It must be called on the fyne view goroutine.
func New(app fyne.App, title string, timer Timer, tasks *todo.List, logger zerolog.Logger) *Window {
	view := &Window{
		window:  app.NewWindow(title),
		timer:   timer,
		tasks:   tasks,
		log:     logger.With().Str("component", "window").Logger(),
		clock:   canvas.NewText("0:00", theme.Color(theme.ColorNameForeground)),
		caption: widget.NewLabel(""),
		status:  widget.NewLabel(""),
		entry:   widget.NewEntry(),
		items:   tasks.Items(),
	}

	view.clock.TextSize = 56
	view.clock.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	view.clock.Alignment = fyne.TextAlignCenter
	view.caption.Alignment = fyne.TextAlignCenter
	view.status.Wrapping = fyne.TextWrapWord
	view.status.Importance = widget.DangerImportance
	view.status.Hide()

	view.next = widget.NewButtonWithIcon("Start work", theme.MediaPlayIcon(), view.Next)
	view.next.Importance = widget.HighImportance

	view.entry.SetPlaceHolder("Add a task")
	view.entry.OnSubmitted = func(string) { view.addTask() }
	addButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), view.addTask)

	view.list = widget.NewList(view.taskCount, view.newTaskRow, view.updateTaskRow)
	tasks.OnChange(func(items []todo.Task) {
		view.items = items
		view.list.Refresh()
	})

	header := container.NewVBox(
		view.clock,
		view.caption,
		container.NewCenter(view.next),
		view.status,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, addButton, view.entry),
	)
	view.window.SetContent(container.NewBorder(header, nil, nil, nil, view.list))
	view.window.Resize(fyne.NewSize(360, 520))
	view.window.SetCloseIntercept(view.window.Hide)
	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays and focuses the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// ApplyTick renders a tick result.
func (view *Window) ApplyTick(result timekeeper.TickResult) {
	view.last = result
	view.clock.Text = timekeeper.FormatTick(result)
	view.clock.Color = clockColor(result)
	view.clock.Refresh()
	view.caption.SetText(caption(result.Phase, result.Round, result.Expired()))
	view.next.SetText(NextLabel(result.Phase))
}

// ApplyAdvance renders the start of a new interval.
func (view *Window) ApplyAdvance(result timekeeper.AdvanceResult) {
	view.hideError()
	view.ApplyTick(timekeeper.TickResult{
		Kind:      timekeeper.TickRemaining,
		Phase:     result.Phase,
		Round:     result.Round,
		Remaining: result.Duration,
	})
}

// ShowError reports an advance failure under the Next button.
func (view *Window) ShowError(err error) {
	view.status.SetText("Could not start the next interval: " + err.Error())
	view.status.Show()
}

func (view *Window) hideError() {
	view.status.SetText("")
	view.status.Hide()
}

// Next advances the timer and renders the interval it started.
func (view *Window) Next() {
	ctx, cancel := context.WithTimeout(context.Background(), advanceTimeout)
	defer cancel()

	result, err := view.timer.Advance(ctx)
	if err != nil {
		view.log.Warn().Err(err).Msg("advance from window")
		view.ShowError(err)
		return
	}
	view.ApplyAdvance(result)
}

func (view *Window) addTask() {
	if view.tasks.Add(view.entry.Text) {
		view.entry.SetText("")
	}
}

func (view *Window) taskCount() int {
	return len(view.items)
}

func (view *Window) newTaskRow() fyne.CanvasObject {
	check := widget.NewCheck("", nil)
	editor := widget.NewEntry()
	editor.Hide()
	edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil)
	edit.Importance = widget.LowImportance
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
	remove.Importance = widget.LowImportance
	return container.NewBorder(nil, nil, nil,
		container.NewHBox(edit, remove),
		container.NewStack(check, editor),
	)
}

// taskRow holds the widgets of one list row.
type taskRow struct {
	check  *widget.Check
	editor *widget.Entry
	edit   *widget.Button
	remove *widget.Button
}

func rowParts(row fyne.CanvasObject) taskRow {
	border := row.(*fyne.Container)
	content := border.Objects[0].(*fyne.Container)
	buttons := border.Objects[1].(*fyne.Container)
	return taskRow{
		check:  content.Objects[0].(*widget.Check),
		editor: content.Objects[1].(*widget.Entry),
		edit:   buttons.Objects[0].(*widget.Button),
		remove: buttons.Objects[1].(*widget.Button),
	}
}

func (view *Window) updateTaskRow(id widget.ListItemID, row fyne.CanvasObject) {
	if id < 0 || id >= len(view.items) {
		return
	}
	task := view.items[id]
	parts := rowParts(row)

	parts.editor.Hide()
	parts.check.Show()
	parts.check.OnChanged = nil
	parts.check.SetText(task.Text)
	parts.check.SetChecked(task.Done)
	parts.check.OnChanged = func(done bool) {
		if err := view.tasks.SetDone(id, done); err != nil {
			view.log.Debug().Err(err).Int("task", id).Msg("toggle task")
		}
	}
	parts.edit.OnTapped = func() {
		parts.editor.SetText(task.Text)
		parts.check.Hide()
		parts.editor.Show()
		view.window.Canvas().Focus(parts.editor)
	}
	parts.editor.OnSubmitted = func(text string) {
		parts.editor.Hide()
		parts.check.Show()
		// Blank text removes the task.
		if err := view.tasks.SetText(id, text); err != nil {
			view.log.Debug().Err(err).Int("task", id).Msg("edit task")
		}
	}
	parts.remove.OnTapped = func() {
		if err := view.tasks.Remove(id); err != nil {
			view.log.Debug().Err(err).Int("task", id).Msg("remove task")
		}
	}
}

// NextLabel names what the Next control starts from phase.
func NextLabel(phase timekeeper.Phase) string {
	if phase == timekeeper.PhaseWorking {
		return "Take a pause"
	}
	return "Start work"
}

func caption(phase timekeeper.Phase, round uint64, expired bool) string {
	text := phase.Label()
	if round > 0 {
		text += " · round " + strconv.FormatUint(round, 10)
	}
	if expired {
		text += " · time is up"
	}
	return text
}

func clockColor(result timekeeper.TickResult) color.Color {
	if result.Expired() {
		return theme.Color(theme.ColorNameError)
	}
	return theme.Color(theme.ColorNameForeground)
}
