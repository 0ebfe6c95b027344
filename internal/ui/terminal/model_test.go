package terminal

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/core/todo"
)

type memStore struct {
	texts []string
	saved []todo.Task
}

func (store *memStore) Load() ([]string, error) { return store.texts, nil }

func (store *memStore) Save(tasks []todo.Task) error {
	store.saved = tasks
	return nil
}

type fakeTimer struct {
	advances int
	result   timekeeper.AdvanceResult
	err      error
}

func (timer *fakeTimer) Advance(context.Context) (timekeeper.AdvanceResult, error) {
	timer.advances++
	return timer.result, timer.err
}

func (timer *fakeTimer) Snapshot(context.Context) (timekeeper.TickResult, error) {
	return timekeeper.TickResult{Kind: timekeeper.TickRemaining, Phase: timekeeper.PhaseWorking, Round: 1, Remaining: time.Minute}, nil
}

func newTestModel(t *testing.T, timer Timer, texts ...string) (Model, *todo.List) {
	t.Helper()
	tasks := todo.Open(&memStore{texts: texts}, zerolog.Nop())
	return New(timer, tasks, make(chan timekeeper.Event)), tasks
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModelShowsTickFromEvents(t *testing.T) {
	m, _ := newTestModel(t, &fakeTimer{})

	m, cmd := update(t, m, eventMsg(timekeeper.Event{
		Type: timekeeper.EventTick,
		Tick: timekeeper.TickResult{Kind: timekeeper.TickRemaining, Phase: timekeeper.PhaseWorking, Round: 2, Remaining: 754 * time.Second},
	}))

	assert.NotNil(t, cmd)
	view := m.View()
	assert.Contains(t, view, "12:34")
	assert.Contains(t, view, "Work · round 2")
}

func TestModelShowsOverrun(t *testing.T) {
	m, _ := newTestModel(t, &fakeTimer{})

	m, _ = update(t, m, eventMsg(timekeeper.Event{
		Type: timekeeper.EventTick,
		Tick: timekeeper.TickResult{Kind: timekeeper.TickOverrun, Phase: timekeeper.PhasePause, Round: 1, Overrun: 65 * time.Second},
	}))

	view := m.View()
	assert.Contains(t, view, "-1:05")
	assert.Contains(t, view, "time is up")
	assert.Equal(t, 1.0, m.progressPercent())
}

func TestModelNextAdvancesTimer(t *testing.T) {
	timer := &fakeTimer{result: timekeeper.AdvanceResult{
		Phase:    timekeeper.PhasePause,
		Round:    1,
		Duration: 5 * time.Minute,
	}}
	m, _ := newTestModel(t, timer)

	m, cmd := update(t, m, runes("n"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, 1, timer.advances)
	assert.Contains(t, m.View(), "5:00")
	assert.Contains(t, m.View(), "Pause · round 1")
	assert.Zero(t, m.progressPercent())
}

func TestModelShowsAdvanceError(t *testing.T) {
	timer := &fakeTimer{err: timekeeper.ErrDurationOverflow}
	m, _ := newTestModel(t, timer)

	m, cmd := update(t, m, runes("n"))
	m, _ = update(t, m, cmd())

	assert.True(t, errors.Is(m.err, timekeeper.ErrDurationOverflow))
	assert.Contains(t, m.View(), "Could not advance")
}

func TestModelAddsTask(t *testing.T) {
	m, tasks := newTestModel(t, &fakeTimer{})

	m, _ = update(t, m, runes("a"))
	require.True(t, m.adding)
	m, _ = update(t, m, runes("Write report"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.adding)
	require.Len(t, tasks.Items(), 1)
	assert.Equal(t, "Write report", tasks.Items()[0].Text)
	assert.Contains(t, m.View(), "Write report")
}

func TestModelEscCancelsAdd(t *testing.T) {
	m, tasks := newTestModel(t, &fakeTimer{})

	m, _ = update(t, m, runes("a"))
	m, _ = update(t, m, runes("draft"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.adding)
	assert.Empty(t, tasks.Items())
}

func TestModelTogglesAndRemovesTasks(t *testing.T) {
	m, tasks := newTestModel(t, &fakeTimer{}, "first", "second")

	m, _ = update(t, m, runes("j"))
	assert.Equal(t, 1, m.cursor)
	m, _ = update(t, m, runes("x"))
	assert.True(t, tasks.Items()[1].Done)

	m, _ = update(t, m, runes("d"))
	require.Len(t, tasks.Items(), 1)
	assert.Equal(t, "first", tasks.Items()[0].Text)
	assert.Equal(t, 0, m.cursor)
}

func TestModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan timekeeper.Event)
	close(events)
	tasks := todo.Open(&memStore{}, zerolog.Nop())
	m := New(&fakeTimer{}, tasks, events)

	msg := m.waitForEvent()()
	assert.Equal(t, eventsClosedMsg{}, msg)

	_, cmd := update(t, m, msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelQuitKey(t *testing.T) {
	m, _ := newTestModel(t, &fakeTimer{})

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelEditsTask(t *testing.T) {
	m, tasks := newTestModel(t, &fakeTimer{}, "first", "second")

	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, runes("e"))
	require.True(t, m.adding)
	assert.Equal(t, "second", m.input.Value())

	m, _ = update(t, m, runes(" draft"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.adding)
	assert.Equal(t, []todo.Task{{Text: "first"}, {Text: "second draft"}}, tasks.Items())
	assert.Contains(t, m.View(), "second draft")
}

func TestModelEditToBlankRemovesTask(t *testing.T) {
	m, tasks := newTestModel(t, &fakeTimer{}, "first")

	m, _ = update(t, m, runes("e"))
	m.input.SetValue("")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, tasks.Items())
	assert.Equal(t, 0, m.cursor)
}

func TestModelShowsTaskErrors(t *testing.T) {
	m, tasks := newTestModel(t, &fakeTimer{}, "first", "second")

	m, _ = update(t, m, runes("j"))
	require.NoError(t, tasks.Remove(1))
	m, _ = update(t, m, runes("x"))

	assert.ErrorIs(t, m.taskErr, todo.ErrNoSuchTask)
	assert.Contains(t, m.View(), "Task not changed")
	assert.Equal(t, 0, m.cursor)
}
