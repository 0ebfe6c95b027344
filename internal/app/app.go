// Package app assembles the timer, its collaborators and their storage for
// every front end.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/core/todo"
	"pomodoro/internal/logging"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
)

// Name is the application name used for directories and the instance lock.
const Name = "Pomodoro"

// Options override the environment, mainly for tests.
type Options struct {
	FS        afero.Fs
	Platform  platform.Service
	LookupEnv func(string) (string, bool)
	Console   io.Writer
	ConfigDir string
	DataDir   string
	Clock     timekeeper.Clock
	Idle      timekeeper.IdleSource
	// TickInterval defaults to one second.
	TickInterval time.Duration
}

// Environment is the resolved configuration shared by all commands.
type Environment struct {
	FS        afero.Fs
	Platform  platform.Service
	ConfigDir string
	DataDir   string
	Store     *storage.SettingsStore
	Settings  preferences.Settings
	Logger    *logging.Logger

	options Options
}

// Load resolves directories, reads settings and builds the logger. A broken
// settings file is logged and replaced by defaults.
func Load(options Options) (*Environment, error) {
	if options.FS == nil {
		options.FS = afero.NewOsFs()
	}
	if options.Platform == nil {
		options.Platform = platform.NewService()
	}
	if options.LookupEnv == nil {
		options.LookupEnv = os.LookupEnv
	}

	env := &Environment{FS: options.FS, Platform: options.Platform, options: options}

	env.ConfigDir = options.ConfigDir
	if env.ConfigDir == "" {
		base, err := options.Platform.GetConfigDir()
		if err != nil {
			return nil, err
		}
		env.ConfigDir = filepath.Join(base, Name)
	}
	env.DataDir = options.DataDir
	if env.DataDir == "" {
		base, err := options.Platform.GetDataDir()
		if err != nil {
			return nil, err
		}
		env.DataDir = filepath.Join(base, Name)
	}

	env.Store = storage.NewSettingsStore(options.FS, env.ConfigDir).WithEnv(options.LookupEnv)
	settings, loadErr := env.Store.LoadSettings()
	env.Settings = settings
	env.Logger = logging.New(logging.Config{
		Level:   settings.LogLevel,
		File:    settings.LogFile,
		Console: options.Console,
	})
	if loadErr != nil {
		env.Logger.Warn().Err(loadErr).Str("path", env.Store.Path()).Msg("settings ignored")
	}
	return env, nil
}

// TaskFile returns the task store in the data directory.
func (env *Environment) TaskFile() *storage.TaskFile {
	return storage.NewTaskFile(env.FS, env.DataDir)
}

// OpenHistory opens the interval history database.
func (env *Environment) OpenHistory() (*storage.History, error) {
	return storage.OpenHistory(storage.HistoryPath(env.DataDir))
}

// Runtime is a running timer with its tasks, alerts and history.
type Runtime struct {
	Env        *Environment
	Keeper     *timekeeper.TimeKeeper
	Tasks      *todo.List
	Dispatcher *notify.Dispatcher
	History    *storage.History

	recorderDone chan struct{}
}

// NewRuntime wires the timer for env. extra sinks, such as the desktop
// notification sink, are added after the configured ones.
func (env *Environment) NewRuntime(extra ...notify.Sink) *Runtime {
	logger := env.Logger.Logger
	settings := env.Settings

	var sinks []notify.Sink
	if settings.Sound {
		sinks = append(sinks, notify.NewSoundSink(env.Platform))
	}
	if settings.TelegramEnabled() {
		telegram, err := notify.NewTelegramSink(settings.TelegramToken, settings.TelegramChatID)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram alerts disabled")
		} else {
			sinks = append(sinks, telegram)
		}
	}
	sinks = append(sinks, extra...)

	runtime := &Runtime{
		Env:        env,
		Tasks:      todo.Open(env.TaskFile(), logger),
		Dispatcher: notify.NewDispatcher(notify.Config{}, logger, sinks...),
	}

	if settings.History {
		history, err := env.OpenHistory()
		if err != nil {
			logger.Warn().Err(err).Msg("interval history disabled")
		} else {
			runtime.History = history
		}
	}

	idle := env.options.Idle
	if idle == nil && settings.HoldWhenIdle && settings.AutoAdvanceAfter > 0 {
		idle = platform.NewIdleProvider()
	}

	runtime.Keeper = timekeeper.New(settings.TimeKeeperConfig(), timekeeper.Config{
		TickInterval: env.options.TickInterval,
		Clock:        env.options.Clock,
		Notifier:     runtime.Dispatcher,
		Idle:         idle,
		Logger:       logger,
	})
	return runtime
}

// Start begins alert delivery, history recording and ticking.
func (runtime *Runtime) Start(ctx context.Context) {
	runtime.Dispatcher.Start(ctx)
	if runtime.History != nil {
		events := runtime.Keeper.Subscribe(64)
		runtime.recorderDone = make(chan struct{})
		go runtime.record(ctx, events)
	}
	runtime.Keeper.Start()
}

// Close stops the timer and flushes alerts, history and logs.
func (runtime *Runtime) Close(ctx context.Context) error {
	runtime.Keeper.Stop()
	if runtime.recorderDone != nil {
		<-runtime.recorderDone
	}

	var errs []error
	if err := runtime.Dispatcher.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop notify: %w", err))
	}
	if runtime.History != nil {
		if err := runtime.History.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close history: %w", err))
		}
	}
	if err := runtime.Env.Logger.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close log: %w", err))
	}
	return errors.Join(errs...)
}

func (runtime *Runtime) record(ctx context.Context, events <-chan timekeeper.Event) {
	defer close(runtime.recorderDone)
	logger := runtime.Env.Logger.With().Str("component", "history").Logger()
	for event := range events {
		if event.Type != timekeeper.EventAdvanced || event.Ended == nil {
			continue
		}
		if _, err := runtime.History.Record(context.WithoutCancel(ctx), *event.Ended); err != nil {
			logger.Warn().Err(err).Msg("record interval")
		}
	}
}
