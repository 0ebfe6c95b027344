package desktop

import (
	"context"
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/core/todo"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/window"
)

type idleTimer struct{}

func (idleTimer) Advance(context.Context) (timekeeper.AdvanceResult, error) {
	return timekeeper.AdvanceResult{}, errors.New("not used")
}

type emptyStore struct{}

func (emptyStore) Load() ([]string, error) { return nil, nil }
func (emptyStore) Save([]todo.Task) error  { return nil }

func TestPresenterUpdatesTrayAndIcon(t *testing.T) {
	app := test.NewTempApp(t)
	tasks := todo.Open(emptyStore{}, zerolog.Nop())
	view := window.New(app, "Pomodoro", idleTimer{}, tasks, zerolog.Nop())

	var icons []string
	presenter := &Presenter{
		window:  view,
		tray:    tray.New(nil, "Pomodoro", tray.Callbacks{}),
		setIcon: func(resource fyne.Resource) { icons = append(icons, resource.Name()) },
	}

	presenter.Apply(timekeeper.Event{Type: timekeeper.EventTick, Tick: timekeeper.TickResult{
		Kind: timekeeper.TickOverrun, Phase: timekeeper.PhasePause, Overrun: 3 * time.Second,
	}})
	assert.Equal(t, "Pause · round 0 · -0:03", presenter.tray.Status())

	presenter.Apply(timekeeper.Event{Type: timekeeper.EventAdvanced, Advance: timekeeper.AdvanceResult{
		Phase: timekeeper.PhaseWorking, Round: 1, Duration: 25 * time.Minute,
	}})
	assert.Equal(t, "Work · round 1 · 25:00", presenter.tray.Status())

	presenter.Apply(timekeeper.Event{Type: timekeeper.EventTick, Tick: timekeeper.TickResult{
		Kind: timekeeper.TickRemaining, Phase: timekeeper.PhaseWorking, Round: 1, Remaining: time.Minute,
	}})
	assert.Equal(t, []string{"pause.svg", "working.svg"}, icons)

	presenter.Apply(timekeeper.Event{Type: timekeeper.EventError, Err: timekeeper.ErrDurationOverflow})
	assert.Equal(t, "Work · round 1 · 1:00", presenter.tray.Status())
}
