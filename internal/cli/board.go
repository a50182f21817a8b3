package cli

import (
	"errors"
	"strings"

	"taskdeck/internal/model"

	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board task commands",
	}
	cmd.AddCommand(newBoardCreateCmd(app))
	return cmd
}

func newBoardCreateCmd(app *App) *cobra.Command {
	var form model.BoardTaskForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board task with assignees, projects and attachments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(form.Title) == "" {
				return writeErr(cmd, errors.New("title must not be empty"))
			}
			if err := newGateway(app).CreateBoardTask(cmd.Context(), form); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"created": form.Title}})
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "Board task title")
	cmd.Flags().StringVar(&form.Description, "description", "", "Board task description")
	cmd.Flags().StringVar(&form.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&form.Assignees, "assignee", nil, "Assignee user id (repeatable)")
	cmd.Flags().StringSliceVar(&form.Supervisors, "supervisor", nil, "Supervisor user id (repeatable)")
	cmd.Flags().StringSliceVar(&form.Projects, "project", nil, "Project id (repeatable)")
	cmd.Flags().StringSliceVar(&form.Files, "file", nil, "Attachment file path (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
