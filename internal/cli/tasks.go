package cli

import (
	"errors"
	"strconv"

	"taskdeck/internal/model"
	"taskdeck/internal/taskform"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksToggleCmd(app))
	return cmd
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New("task id must be a number")
	}
	return id, nil
}

func newTasksListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := newGateway(app).Tasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if date != "" {
				kept := tasks[:0]
				for _, t := range tasks {
					if t.Date == date {
						kept = append(kept, t)
					}
				}
				tasks = kept
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only tasks on this date (YYYY-MM-DD)")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := newGateway(app).Tasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, t := range tasks {
				if t.ID == id {
					return writeOut(cmd, app, map[string]any{"data": t})
				}
			}
			return writeErr(cmd, errNotFound("task", id))
		},
	}
	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var form model.TaskForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st := loadStore(app, false)
			st.FetchTaskTypes(ctx)

			if res := taskform.Validate(form, st.TaskTypes()); !res.OK() {
				return writeErr(cmd, errInvalidForm(res.Errors))
			}
			if err := st.CreateTask(ctx, form); err != nil {
				return writeErr(cmd, err)
			}
			tasks := st.Tasks()
			return writeOut(cmd, app, map[string]any{"data": tasks[len(tasks)-1]})
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&form.Description, "description", "", "Task description")
	cmd.Flags().StringVar(&form.Date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.Time, "time", "", "Time (HH:MM, 24h)")
	cmd.Flags().IntVar(&form.TypeID, "type", 1, "Task type id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		date        string
		timeOfDay   string
		typeID      int
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			st := loadStore(app, false)
			st.FetchTaskTypes(ctx)
			if err := st.FetchTasks(ctx); err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := st.FindTask(id); !ok {
				return writeErr(cmd, errNotFound("task", id))
			}

			// Only flags the caller set become part of the patch.
			var patch model.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("date") {
				patch.Date = &date
			}
			if flags.Changed("time") {
				patch.Time = &timeOfDay
			}
			if flags.Changed("type") {
				patch.TypeID = &typeID
			}

			if err := st.UpdateTask(ctx, id, patch); err != nil {
				return writeErr(cmd, err)
			}
			updated, _ := st.FindTask(id)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "New time (HH:MM)")
	cmd.Flags().IntVar(&typeID, "type", 0, "New task type id")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errors.New("refusing to delete without --yes"))
			}
			if err := newGateway(app).DeleteTask(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newTasksToggleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Toggle a task's completion state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			st := loadStore(app, false)
			st.FetchTaskTypes(ctx)
			if err := st.FetchTasks(ctx); err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := st.FindTask(id); !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			if err := st.ToggleTaskCompletion(ctx, id); err != nil {
				return writeErr(cmd, err)
			}
			updated, _ := st.FindTask(id)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	return cmd
}
