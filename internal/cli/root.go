// Package cli defines the pomodoro command tree.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"pomodoro/internal/app"
)

// App holds what commands need besides the environment itself.
type App struct {
	Options  app.Options
	Desktop  func(env *app.Environment) error
	Terminal func(ctx context.Context, env *app.Environment) error
	// Executable locates the binary registered for autostart.
	Executable  func() (string, error)
	Interactive func() bool
	Now         func() time.Time
}

// NewRootCmd creates the top-level "pomodoro" command. Without a subcommand
// it starts the desktop app.
func NewRootCmd(a *App) *cobra.Command {
	if a.Executable == nil {
		a.Executable = os.Executable
	}
	if a.Interactive == nil {
		a.Interactive = stdinIsTerminal
	}
	if a.Now == nil {
		a.Now = time.Now
	}

	root := &cobra.Command{
		Use:           "pomodoro",
		Short:         "Pomodoro focus timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(cmd, a)
		},
	}

	root.AddCommand(
		newGUICmd(a),
		newTUICmd(a),
		newTasksCmd(a),
		newHistoryCmd(a),
		newSettingsCmd(a),
		newAutostartCmd(a),
	)

	return root
}

// load resolves the environment with logs going to console.
func (a *App) load(console io.Writer) (*app.Environment, error) {
	options := a.Options
	if options.Console == nil {
		options.Console = console
	}
	return app.Load(options)
}

// withEnv runs fn against a freshly loaded environment and closes its log.
func (a *App) withEnv(cmd *cobra.Command, fn func(env *app.Environment) error) error {
	env, err := a.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		_ = env.Logger.Close()
	}()
	return fn(env)
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
