package cli

import (
	"github.com/spf13/cobra"
)

func newTypesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Task type commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List task types",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The catalog degrades to the built-in defaults when the gateway
			// is unreachable, same as the dashboard.
			st := loadStore(app, false)
			st.FetchTaskTypes(cmd.Context())
			return writeOut(cmd, app, map[string]any{"data": st.TaskTypes()})
		},
	})
	return cmd
}

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List assignable users",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := loadStore(app, false)
			return writeOut(cmd, app, map[string]any{"data": st.Users(cmd.Context())})
		},
	})
	return cmd
}

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := loadStore(app, false)
			return writeOut(cmd, app, map[string]any{"data": st.Projects(cmd.Context())})
		},
	})
	return cmd
}
