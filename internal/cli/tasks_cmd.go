package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pomodoro/internal/app"
	"pomodoro/internal/core/todo"
)

func newTasksCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "todo"},
		Short:   "Manage the to-do list",
	}

	cmd.AddCommand(
		newTasksListCmd(a),
		newTasksAddCmd(a),
		newTasksDoneCmd(a),
	)

	return cmd
}

func openTasks(env *app.Environment) *todo.List {
	return todo.Open(env.TaskFile(), env.Logger.Logger)
}

func newTasksListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(env *app.Environment) error {
				out := cmd.OutOrStdout()
				items := openTasks(env).Pending()
				if len(items) == 0 {
					fmt.Fprintln(out, "No tasks.")
					return nil
				}
				for i, task := range items {
					fmt.Fprintf(out, "%d. %s\n", i+1, task.Text)
				}
				return nil
			})
		},
	}
}

func newTasksAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return a.withEnv(cmd, func(env *app.Environment) error {
				list := openTasks(env)
				if !list.Add(text) {
					return fmt.Errorf("task text is empty")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", len(list.Items()), strings.TrimSpace(text))
				return nil
			})
		},
	}
}

func newTasksDoneCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <number>",
		Short: "Mark a task done and drop it from the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil || number < 1 {
				return fmt.Errorf("invalid task number %q", args[0])
			}
			return a.withEnv(cmd, func(env *app.Environment) error {
				list := openTasks(env)
				items := list.Items()
				if err := list.SetDone(number-1, true); err != nil {
					return fmt.Errorf("task %d: %w", number, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", items[number-1].Text)
				return nil
			})
		},
	}
}
