package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("this command needs an interactive terminal")

func newGUICmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the desktop app with its tray icon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(cmd, a)
		},
	}
}

func newTUICmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Interactive() {
				return errNotInteractive
			}
			if a.Terminal == nil {
				return errors.New("terminal ui unavailable")
			}
			// Console logs would tear the alternate screen; the log file still applies.
			env, err := a.load(io.Discard)
			if err != nil {
				return err
			}
			return a.Terminal(cmd.Context(), env)
		},
	}
}

func runDesktop(cmd *cobra.Command, a *App) error {
	if a.Desktop == nil {
		return errors.New("desktop ui unavailable")
	}
	env, err := a.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return a.Desktop(env)
}
