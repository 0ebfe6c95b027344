// Package desktop runs the fyne front end: main window, tray and preferences.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/app"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/window"
	"pomodoro/resources"
)

const (
	appID           = "io.pomodoro.app"
	shutdownTimeout = 3 * time.Second
)

// Run shows the desktop app and blocks until it quits. A second launch
// brings the running instance forward instead.
func Run(env *app.Environment) error {
	logger := env.Logger.With().Str("component", "desktop").Logger()

	guard, err := platform.AcquireSingleInstance(app.Name)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if activateErr := platform.ActivateRunningInstance(app.Name); activateErr != nil {
				logger.Warn().Err(activateErr).Msg("activate running instance")
			}
			logger.Info().Msg("already running")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	var sinks []notify.Sink
	if env.Settings.DesktopNotifications {
		sinks = append(sinks, notify.NewDesktopSink(fyneApp))
	}
	runtime := env.NewRuntime(sinks...)

	mainWindow := window.New(fyneApp, app.Name, runtime.Keeper, runtime.Tasks, env.Logger.Logger)
	prefsWindow := preferences.New(fyneApp, env.Settings, env.Store.SaveSettings)
	guard.OnActivate(func() {
		fyne.Do(mainWindow.Show)
	})

	presenter := &Presenter{window: mainWindow}
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		presenter.tray = tray.New(desktopApp, app.Name, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnNext:        mainWindow.Next,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		presenter.setIcon = desktopApp.SetSystemTrayIcon
	} else {
		logger.Info().Msg("system tray unsupported; closing the window quits")
		mainWindow.Window().SetCloseIntercept(fyneApp.Quit)
	}

	events := runtime.Keeper.Subscribe(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runtime.Start(ctx)

	go func() {
		for event := range events {
			fyne.Do(func() {
				presenter.Apply(event)
			})
		}
	}()

	mainWindow.Show()
	fyneApp.Run()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return runtime.Close(shutdownCtx)
}
