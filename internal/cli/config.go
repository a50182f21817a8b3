package cli

import (
	"fmt"
	"strings"

	"taskdeck/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit ~/.taskdeck/config.json",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetAPICmd(app))
	cmd.AddCommand(newConfigSetThemeCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
}

func newConfigSetAPICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-api <url>",
		Short: "Persist the gateway base URL (flag and env still win)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.APIBaseURL = strings.TrimSpace(args[0])
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"apiBaseUrl": cfg.APIBaseURL},
			})
		},
	}
}

func newConfigSetThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-theme <light|dark|auto>",
		Short: "Persist the dashboard theme preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := strings.ToLower(strings.TrimSpace(args[0]))
			switch theme {
			case "light", "dark":
			case "auto":
				theme = ""
			default:
				return writeErr(cmd, fmt.Errorf("unknown theme: %s (want light, dark or auto)", args[0]))
			}

			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cfg.TUI == nil {
				cfg.TUI = &store.TUIConfig{}
			}
			cfg.TUI.Theme = theme
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"theme": themeLabel(theme)},
			})
		},
	}
}

func themeLabel(theme string) string {
	if theme == "" {
		return "auto"
	}
	return theme
}
