package notify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"pomodoro/internal/core/timekeeper"
)

var (
	// ErrQueueFull indicates an alert was dropped because delivery lags.
	ErrQueueFull = errors.New("notify queue full")
	// ErrStopped indicates the dispatcher no longer accepts alerts.
	ErrStopped = errors.New("notify dispatcher stopped")
)

// Sink delivers an alert to one destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, alert Alert) error
}

// Config controls queueing and pacing.
type Config struct {
	QueueSize       int
	RatePerSec      int
	DeliveryTimeout time.Duration
}

// Dispatcher queues alerts and delivers them to every sink on its own
// worker goroutine. Notify never blocks.
type Dispatcher struct {
	mu        sync.Mutex
	cfg       Config
	log       zerolog.Logger
	sinks     []Sink
	limiter   *rate.Limiter
	queue     chan Alert
	accepting bool
	started   bool
	cancel    context.CancelFunc
	done      chan struct{}
	dropped   atomic.Int64
	now       func() time.Time
}

var _ timekeeper.Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher for sinks. It accepts alerts right away;
// delivery begins with Start.
func NewDispatcher(cfg Config, logger zerolog.Logger, sinks ...Sink) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 2
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = 10 * time.Second
	}
	return &Dispatcher{
		cfg:       cfg,
		log:       logger.With().Str("component", "notify").Logger(),
		sinks:     sinks,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec),
		queue:     make(chan Alert, cfg.QueueSize),
		accepting: true,
		done:      make(chan struct{}),
		now:       time.Now,
	}
}

// Notify enqueues an alert for the interval that just ended.
func (dispatcher *Dispatcher) Notify(phase timekeeper.Phase, round uint64) {
	if err := dispatcher.Enqueue(Alert{Phase: phase, Round: round, At: dispatcher.now()}); err != nil {
		dispatcher.log.Warn().Err(err).Str("phase", string(phase)).Uint64("round", round).Msg("alert dropped")
	}
}

// Enqueue adds alert to the queue without blocking.
func (dispatcher *Dispatcher) Enqueue(alert Alert) error {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if !dispatcher.accepting {
		return ErrStopped
	}
	select {
	case dispatcher.queue <- alert:
		return nil
	default:
		dispatcher.dropped.Add(1)
		return ErrQueueFull
	}
}

// Dropped returns how many alerts were discarded because the queue was full.
func (dispatcher *Dispatcher) Dropped() int64 {
	return dispatcher.dropped.Load()
}

// Start launches the delivery worker. It is a no-op after the first call.
func (dispatcher *Dispatcher) Start(ctx context.Context) {
	dispatcher.mu.Lock()
	if dispatcher.started {
		dispatcher.mu.Unlock()
		return
	}
	dispatcher.started = true
	runCtx, cancel := context.WithCancel(ctx)
	dispatcher.cancel = cancel
	dispatcher.mu.Unlock()

	names := make([]string, 0, len(dispatcher.sinks))
	for _, sink := range dispatcher.sinks {
		names = append(names, sink.Name())
	}
	dispatcher.log.Debug().Strs("sinks", names).Msg("notify started")

	go dispatcher.run(runCtx)
}

// Stop refuses new alerts and waits for queued ones until ctx ends.
func (dispatcher *Dispatcher) Stop(ctx context.Context) error {
	dispatcher.mu.Lock()
	if !dispatcher.accepting {
		dispatcher.mu.Unlock()
		return nil
	}
	dispatcher.accepting = false
	close(dispatcher.queue)
	started := dispatcher.started
	cancel := dispatcher.cancel
	dispatcher.mu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-dispatcher.done:
		cancel()
		return nil
	case <-ctx.Done():
		// Abandon the rest of the queue; the worker exits once its sink returns.
		cancel()
		return ctx.Err()
	}
}

func (dispatcher *Dispatcher) run(ctx context.Context) {
	defer close(dispatcher.done)
	for alert := range dispatcher.queue {
		if err := dispatcher.limiter.Wait(ctx); err != nil {
			return
		}
		dispatcher.deliver(ctx, alert)
	}
}

func (dispatcher *Dispatcher) deliver(ctx context.Context, alert Alert) {
	for _, sink := range dispatcher.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, dispatcher.cfg.DeliveryTimeout)
		err := sink.Deliver(sinkCtx, alert)
		cancel()
		if err != nil {
			dispatcher.log.Warn().Err(err).Str("sink", sink.Name()).Msg("alert delivery failed")
			continue
		}
		dispatcher.log.Debug().Str("sink", sink.Name()).Str("body", alert.Body()).Msg("alert delivered")
	}
}
