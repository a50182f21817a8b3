package cli

import (
	"time"

	"taskdeck/internal/calendar"

	"github.com/spf13/cobra"
)

func newUpcomingCmd(app *App) *cobra.Command {
	var includeToday bool

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show the next few open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := newGateway(app).Tasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			now := time.Now()
			out := map[string]any{"data": calendar.Upcoming(tasks, now)}
			if includeToday {
				out["today"] = calendar.TasksToday(tasks, now)
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().BoolVar(&includeToday, "today", false, "Also include today's tasks")
	return cmd
}
