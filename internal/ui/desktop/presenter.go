package desktop

import (
	"fyne.io/fyne/v2"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/window"
	"pomodoro/resources"
)

// Presenter pushes timekeeper events into the window and tray. Apply must
// run on the fyne main goroutine.
type Presenter struct {
	window  *window.Window
	tray    *tray.Manager
	setIcon func(fyne.Resource)
	phase   timekeeper.Phase
}

// Apply renders one event.
func (presenter *Presenter) Apply(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventTick:
		presenter.window.ApplyTick(event.Tick)
		presenter.updateTray(event.Tick)
	case timekeeper.EventAdvanced:
		presenter.window.ApplyAdvance(event.Advance)
		presenter.updateTray(timekeeper.TickResult{
			Kind:      timekeeper.TickRemaining,
			Phase:     event.Advance.Phase,
			Round:     event.Advance.Round,
			Remaining: event.Advance.Duration,
		})
	case timekeeper.EventError:
		presenter.window.ShowError(event.Err)
	}
}

func (presenter *Presenter) updateTray(result timekeeper.TickResult) {
	if presenter.tray != nil {
		presenter.tray.SetStatus(timekeeper.FormatStatus(result))
		presenter.tray.SetNextLabel(window.NextLabel(result.Phase))
	}
	if presenter.setIcon != nil && result.Phase != presenter.phase {
		icon := resources.PauseIcon
		if result.Phase == timekeeper.PhaseWorking {
			icon = resources.WorkingIcon
		}
		presenter.setIcon(resources.MustIcon(icon))
	}
	presenter.phase = result.Phase
}
