package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomodoro/internal/app"
)

func newAutostartCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Start the desktop app at login",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Register the desktop app to start at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				execPath, err := a.Executable()
				if err != nil {
					return fmt.Errorf("locate executable: %w", err)
				}
				return a.withEnv(cmd, func(env *app.Environment) error {
					if err := env.Platform.EnableAutostart(app.Name, execPath); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled.")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop starting at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withEnv(cmd, func(env *app.Environment) error {
					if err := env.Platform.DisableAutostart(app.Name); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled.")
					return nil
				})
			},
		},
	)

	return cmd
}
