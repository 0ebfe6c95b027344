package terminal

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/app"
)

// Run starts the timer and the terminal UI and blocks until the user quits.
func Run(ctx context.Context, env *app.Environment) error {
	runtime := env.NewRuntime()
	events := runtime.Keeper.Subscribe(16)
	runtime.Start(ctx)

	program := tea.NewProgram(New(runtime.Keeper, runtime.Tasks, events), tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := program.Run()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	closeErr := runtime.Close(shutdownCtx)

	if runErr != nil {
		return fmt.Errorf("run terminal ui: %w", runErr)
	}
	return closeErr
}
