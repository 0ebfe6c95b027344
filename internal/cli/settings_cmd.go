package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pomodoro/internal/app"
	"pomodoro/internal/ui/preferences"
)

func newSettingsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or edit settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(a),
		newSettingsPathCmd(a),
		newSettingsEditCmd(a),
	)

	return cmd
}

type settingsView struct {
	Work             string `yaml:"work"`
	ShortPause       string `yaml:"short-pause"`
	LongPause        string `yaml:"long-pause"`
	LongPauseEvery   uint64 `yaml:"long-pause-every-round"`
	AutoAdvanceAfter string `yaml:"auto-advance-after"`
	HoldWhenIdle     bool   `yaml:"hold-when-idle"`
	Sound            bool   `yaml:"sound"`
	Desktop          bool   `yaml:"desktop-notifications"`
	History          bool   `yaml:"history"`
	LogLevel         string `yaml:"log-level"`
	LogFile          string `yaml:"log-file,omitempty"`
	Telegram         bool   `yaml:"telegram"`
}

func newSettingsShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(env *app.Environment) error {
				settings := env.Settings
				view := settingsView{
					Work:             settings.Work.String(),
					ShortPause:       settings.ShortPause.String(),
					LongPause:        settings.LongPause.String(),
					LongPauseEvery:   settings.LongPauseEvery,
					AutoAdvanceAfter: settings.AutoAdvanceAfter.String(),
					HoldWhenIdle:     settings.HoldWhenIdle,
					Sound:            settings.Sound,
					Desktop:          settings.DesktopNotifications,
					History:          settings.History,
					LogLevel:         settings.LogLevel,
					LogFile:          settings.LogFile,
					Telegram:         settings.TelegramEnabled(),
				}
				serialized, err := yaml.Marshal(view)
				if err != nil {
					return fmt.Errorf("marshal settings: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(serialized)
				return err
			})
		},
	}
}

func newSettingsPathCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(env *app.Environment) error {
				fmt.Fprintln(cmd.OutOrStdout(), env.Store.Path())
				return nil
			})
		},
	}
}

func newSettingsEditCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit settings interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Interactive() {
				return errNotInteractive
			}
			return a.withEnv(cmd, func(env *app.Environment) error {
				settings := env.Settings
				fields := preferences.FieldsFrom(settings)
				if err := settingsForm(&fields, &settings).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return fmt.Errorf("settings form: %w", err)
				}

				if err := env.Store.SaveSettings(fields.Apply(settings)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", env.Store.Path())
				return nil
			})
		},
	}
}

func countInput(title, description string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(description).
		Value(value).
		Validate(preferences.ValidateCount)
}

// settingsForm edits the schedule as text fields and the switches in place.
func settingsForm(fields *preferences.Fields, settings *preferences.Settings) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			countInput("Work (min)", "", &fields.Work),
			countInput("Short pause (min)", "", &fields.ShortPause),
			countInput("Long pause (min)", "", &fields.LongPause),
			countInput("Long pause every", "rounds, 0 for never", &fields.LongPauseEvery),
			countInput("Auto advance after (sec)", "0 waits for Next", &fields.AutoAdvanceAfter),
		).Title("Schedule"),
		huh.NewGroup(
			huh.NewConfirm().Title("Play a sound").Value(&settings.Sound),
			huh.NewConfirm().Title("Desktop notifications").Value(&settings.DesktopNotifications),
			huh.NewConfirm().Title("Hold automatic advance while I'm away").Value(&settings.HoldWhenIdle),
			huh.NewConfirm().Title("Keep interval history").Value(&settings.History),
		).Title("Alerts"),
	).WithShowHelp(true)
}
