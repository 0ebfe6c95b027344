package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"pomodoro/internal/core/timekeeper"
)

type recordingSink struct {
	name string
	err  error

	mu     sync.Mutex
	alerts []Alert
	block  chan struct{}
}

func (sink *recordingSink) Name() string { return sink.name }

func (sink *recordingSink) Deliver(ctx context.Context, alert Alert) error {
	if sink.block != nil {
		select {
		case <-sink.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	sink.mu.Lock()
	sink.alerts = append(sink.alerts, alert)
	sink.mu.Unlock()
	return sink.err
}

func (sink *recordingSink) Alerts() []Alert {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return append([]Alert(nil), sink.alerts...)
}

func TestAlertText(t *testing.T) {
	work := Alert{Phase: timekeeper.PhaseWorking, Round: 3}
	pause := Alert{Phase: timekeeper.PhasePause, Round: 1}

	assert.Equal(t, "Pomodoro", work.Title())
	assert.Equal(t, "Round 3: Work ended", work.Body())
	assert.Equal(t, "Round 1: Pause ended", pause.Body())
}

func TestDispatcherDeliversToEverySink(t *testing.T) {
	failing := &recordingSink{name: "failing", err: errors.New("speaker unplugged")}
	healthy := &recordingSink{name: "healthy"}
	dispatcher := NewDispatcher(Config{RatePerSec: 100}, zerolog.Nop(), failing, healthy)
	dispatcher.Start(context.Background())

	dispatcher.Notify(timekeeper.PhaseWorking, 1)
	dispatcher.Notify(timekeeper.PhasePause, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, dispatcher.Stop(ctx))

	for _, sink := range []*recordingSink{failing, healthy} {
		alerts := sink.Alerts()
		require.Len(t, alerts, 2, sink.name)
		assert.Equal(t, timekeeper.PhaseWorking, alerts[0].Phase)
		assert.Equal(t, timekeeper.PhasePause, alerts[1].Phase)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	dispatcher := NewDispatcher(Config{QueueSize: 1}, zerolog.Nop(), &recordingSink{name: "idle"})

	require.NoError(t, dispatcher.Enqueue(Alert{Round: 1}))
	assert.ErrorIs(t, dispatcher.Enqueue(Alert{Round: 2}), ErrQueueFull)
	dispatcher.Notify(timekeeper.PhaseWorking, 3)
	assert.Equal(t, int64(2), dispatcher.Dropped())
}

func TestDispatcherRejectsAfterStop(t *testing.T) {
	dispatcher := NewDispatcher(Config{}, zerolog.Nop())
	dispatcher.Start(context.Background())
	require.NoError(t, dispatcher.Stop(context.Background()))
	require.NoError(t, dispatcher.Stop(context.Background()))

	assert.ErrorIs(t, dispatcher.Enqueue(Alert{Round: 1}), ErrStopped)
}

func TestDispatcherStopHonoursDeadline(t *testing.T) {
	stuck := &recordingSink{name: "stuck", block: make(chan struct{})}
	dispatcher := NewDispatcher(Config{}, zerolog.Nop(), stuck)
	dispatcher.Start(context.Background())
	dispatcher.Notify(timekeeper.PhaseWorking, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, dispatcher.Stop(ctx), context.DeadlineExceeded)
}

func TestNotifyDoesNotBlock(t *testing.T) {
	stuck := &recordingSink{name: "stuck", block: make(chan struct{})}
	defer close(stuck.block)
	dispatcher := NewDispatcher(Config{QueueSize: 2}, zerolog.Nop(), stuck)
	dispatcher.Start(context.Background())

	done := make(chan struct{})
	go func() {
		for round := uint64(1); round <= 10; round++ {
			dispatcher.Notify(timekeeper.PhaseWorking, round)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a stuck sink")
	}
	assert.Positive(t, dispatcher.Dropped())
}

type fakePlayer struct {
	err   error
	calls int
}

func (player *fakePlayer) PlayAlert(context.Context) error {
	player.calls++
	return player.err
}

func TestSoundSink(t *testing.T) {
	player := &fakePlayer{}
	sink := NewSoundSink(player)
	require.NoError(t, sink.Deliver(context.Background(), Alert{}))
	assert.Equal(t, 1, player.calls)

	player.err = errors.New("no device")
	assert.ErrorIs(t, sink.Deliver(context.Background(), Alert{}), player.err)
}

func TestDesktopSink(t *testing.T) {
	app := test.NewTempApp(t)
	sink := &DesktopSink{app: app, run: func(fn func()) { fn() }}

	alert := Alert{Phase: timekeeper.PhaseWorking, Round: 2}
	test.AssertNotificationSent(t, fyne.NewNotification("Pomodoro", "Round 2: Work ended"), func() {
		require.NoError(t, sink.Deliver(context.Background(), alert))
	})
}

type fakeSender struct {
	to   tele.Recipient
	text string
	err  error
}

func (sender *fakeSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	sender.to = to
	sender.text, _ = what.(string)
	return &tele.Message{}, sender.err
}

func TestTelegramSink(t *testing.T) {
	sender := &fakeSender{}
	sink := &TelegramSink{sender: sender, chat: tele.ChatID(-100123)}

	require.NoError(t, sink.Deliver(context.Background(), Alert{Phase: timekeeper.PhasePause, Round: 4}))
	assert.Equal(t, "-100123", sender.to.Recipient())
	assert.Equal(t, "Pomodoro: Round 4: Pause ended", sender.text)

	sender.err = errors.New("forbidden")
	assert.Error(t, sink.Deliver(context.Background(), Alert{}))
}
