package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pomodoro/internal/app"
	"pomodoro/internal/core/timekeeper"
)

func newHistoryCmd(a *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently finished intervals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			return a.withEnv(cmd, func(env *app.Environment) error {
				history, err := env.OpenHistory()
				if err != nil {
					return err
				}
				defer history.Close()

				ctx := cmd.Context()
				now := a.Now()
				entries, err := history.Recent(ctx, limit)
				if err != nil {
					return err
				}
				midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
				today, err := history.CompletedWork(ctx, midnight)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Work intervals finished today: %d\n", today)
				if len(entries) == 0 {
					fmt.Fprintln(out, "No intervals recorded yet.")
					return nil
				}

				rows := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("ENDED", "PHASE", "ROUND", "LENGTH", "OVERRUN")
				for _, entry := range entries {
					rows.Row(
						humanize.RelTime(entry.Ended, now, "ago", "from now"),
						entry.Phase.Label(),
						humanize.Ordinal(int(entry.Round)),
						entry.Ended.Sub(entry.Started).Round(time.Second).String(),
						timekeeper.FormatSeconds(int64(entry.Overrun/time.Second)),
					)
				}
				fmt.Fprintln(out, rows.String())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of intervals to show")
	return cmd
}
