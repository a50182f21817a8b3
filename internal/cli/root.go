package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"taskdeck/internal/format"
	"taskdeck/internal/gateway"
	"taskdeck/internal/store"
	"taskdeck/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	API        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Task calendar TUI + scriptable CLI over the task gateway",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  taskdeck

  # Scriptable commands
  taskdeck tasks list

  # What is coming up next
  taskdeck upcoming
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.API, "api", envOr("TASKDECK_API_URL", ""), "Gateway base URL (default: config file, then "+gateway.DefaultBaseURL+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKDECK_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newTypesCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newUpcomingCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st := loadStore(app, true)
	st.Init(context.Background())
	return tui.Run(st)
}

// loadStore wires the gateway client into a fresh store. The sqlite snapshot is
// attached for the TUI so a dead gateway still shows the last known tasks;
// scriptable commands skip it and talk straight to the gateway.
func loadStore(app *App, withSnapshot bool) *store.Store {
	st := store.New(gateway.New(resolveBaseURL(app)))
	if withSnapshot {
		if path, err := store.SnapshotPath(); err == nil {
			if snap, err := store.OpenSnapshot(path); err == nil {
				st.AttachSnapshot(snap)
			}
		}
	}
	return st
}

// resolveBaseURL picks the gateway URL: --api flag (or TASKDECK_API_URL),
// then ~/.taskdeck/config.json, then the built-in default.
func resolveBaseURL(app *App) string {
	if app.API != "" {
		return app.API
	}
	if cfg, err := store.LoadConfig(); err == nil && cfg.APIBaseURL != "" {
		return cfg.APIBaseURL
	}
	return gateway.DefaultBaseURL
}

func newGateway(app *App) *gateway.Client {
	return gateway.New(resolveBaseURL(app))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
