package timekeeper

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomodoro/internal/core/model"
)

// ErrStopped indicates the controller is not running.
var ErrStopped = errors.New("timekeeper stopped")

// Notifier receives end-of-interval alerts. Implementations must not block.
type Notifier interface {
	Notify(phase Phase, round uint64)
}

// IdleSource reports how long the user has been away from the keyboard.
type IdleSource interface {
	IdleDuration() (time.Duration, error)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
	Notifier     Notifier
	// Idle holds automatic advances out of a pause while the user is away.
	Idle   IdleSource
	Logger zerolog.Logger
}

type requestKind int

const (
	requestTick requestKind = iota
	requestAdvance
)

type request struct {
	kind  requestKind
	reply chan reply
}

type reply struct {
	tick    TickResult
	advance AdvanceResult
	err     error
}

// TimeKeeper owns the Scheduler and serializes ticks and advances on a
// single run loop. Callers reach the scheduler only through requests.
type TimeKeeper struct {
	mu       sync.Mutex
	config   model.TimeKeeperConfig
	options  Config
	log      zerolog.Logger
	events   []chan Event
	requests chan request
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool

	// Owned by the run loop once started.
	scheduler   *Scheduler
	started     time.Time
	autoBlocked bool
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.TimeKeeperConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}

	return &TimeKeeper{
		config:    config,
		options:   options,
		log:       options.Logger.With().Str("component", "timekeeper").Logger(),
		requests:  make(chan request),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		scheduler: NewScheduler(options.Clock.Now()),
	}
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the ticking loop. It is a no-op once running or stopped.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.running || keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.mu.Unlock()

	keeper.log.Debug().
		Dur("work", keeper.config.Durations.Work).
		Dur("short_pause", keeper.config.Durations.ShortPause).
		Dur("long_pause", keeper.config.Durations.LongPause).
		Uint64("long_pause_every", keeper.config.Durations.LongPauseEvery).
		Msg("timekeeper started")

	go keeper.run()
}

// Stop terminates the ticking loop and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.stopped = true
	wasRunning := keeper.running
	keeper.running = false
	close(keeper.stopCh)
	keeper.mu.Unlock()

	if wasRunning {
		<-keeper.doneCh
	}

	keeper.mu.Lock()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Advance ends the current interval and starts the next one.
func (keeper *TimeKeeper) Advance(ctx context.Context) (AdvanceResult, error) {
	rep, err := keeper.send(ctx, requestAdvance)
	if err != nil {
		return AdvanceResult{}, err
	}
	return rep.advance, rep.err
}

// Snapshot performs an immediate tick and returns its result.
func (keeper *TimeKeeper) Snapshot(ctx context.Context) (TickResult, error) {
	rep, err := keeper.send(ctx, requestTick)
	if err != nil {
		return TickResult{}, err
	}
	return rep.tick, nil
}

func (keeper *TimeKeeper) send(ctx context.Context, kind requestKind) (reply, error) {
	keeper.mu.Lock()
	running := keeper.running
	keeper.mu.Unlock()
	if !running {
		return reply{}, ErrStopped
	}

	req := request{kind: kind, reply: make(chan reply, 1)}
	select {
	case keeper.requests <- req:
	case <-keeper.stopCh:
		return reply{}, ErrStopped
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}

	select {
	case rep := <-req.reply:
		return rep, nil
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}
}

func (keeper *TimeKeeper) run() {
	defer close(keeper.doneCh)

	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	keeper.tick(keeper.options.Clock.Now())
	for {
		select {
		case <-keeper.stopCh:
			return
		case <-ticker.C:
			keeper.tick(keeper.options.Clock.Now())
		case req := <-keeper.requests:
			now := keeper.options.Clock.Now()
			switch req.kind {
			case requestAdvance:
				result, err := keeper.advance(now)
				req.reply <- reply{advance: result, err: err}
			default:
				req.reply <- reply{tick: keeper.tick(now)}
			}
		}
	}
}

func (keeper *TimeKeeper) tick(now time.Time) TickResult {
	result := keeper.scheduler.Tick(now)
	if result.Kind == TickJustExpired {
		keeper.log.Info().
			Str("phase", string(result.Phase)).
			Uint64("round", result.Round).
			Dur("overrun", result.Overrun).
			Msg("interval ended")
		if keeper.options.Notifier != nil {
			keeper.options.Notifier.Notify(result.Phase, result.Round)
		}
	}
	keeper.emit(Event{
		Type: EventTick,
		Tick: result,
		At:   now,
	})

	grace := keeper.config.AutoAdvanceAfter
	if grace > 0 && !keeper.started.IsZero() && !keeper.autoBlocked && result.Expired() && result.Overrun >= grace {
		if result.Phase == PhasePause && keeper.userAway(grace) {
			return result
		}
		keeper.log.Debug().Dur("overrun", result.Overrun).Msg("auto advancing")
		if _, err := keeper.advance(now); err != nil {
			// Overflow is permanent for this interval; wait for a manual advance.
			keeper.autoBlocked = true
			return result
		}
		return keeper.scheduler.Tick(now)
	}
	return result
}

// userAway reports whether no input arrived within the last window. Idle
// detection failures count as present.
func (keeper *TimeKeeper) userAway(window time.Duration) bool {
	if keeper.options.Idle == nil {
		return false
	}
	idle, err := keeper.options.Idle.IdleDuration()
	if err != nil {
		return false
	}
	return idle >= window
}

func (keeper *TimeKeeper) advance(now time.Time) (AdvanceResult, error) {
	ended := Interval{
		Phase:    keeper.scheduler.Phase(),
		Round:    keeper.scheduler.Round(),
		Started:  keeper.started,
		Deadline: keeper.scheduler.Deadline(),
		Ended:    now,
	}

	result, err := keeper.scheduler.Advance(now, keeper.config.Durations)
	if err != nil {
		keeper.log.Warn().Err(err).Str("phase", string(ended.Phase)).Msg("advance rejected")
		keeper.emit(Event{
			Type: EventError,
			Err:  err,
			At:   now,
		})
		return AdvanceResult{}, err
	}

	event := Event{
		Type:    EventAdvanced,
		Advance: result,
		At:      now,
	}
	if !keeper.started.IsZero() {
		event.Ended = &ended
	}
	keeper.started = now
	keeper.autoBlocked = false

	keeper.log.Info().
		Str("phase", string(result.Phase)).
		Uint64("round", result.Round).
		Time("deadline", result.Deadline).
		Msg("interval started")
	keeper.emit(event)
	return result, nil
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.emitLocked(event)
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
