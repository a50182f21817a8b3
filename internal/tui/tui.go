package tui

import (
	"taskdeck/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(st *store.Store) error {
	applyColorProfilePreference()
	cfg, _ := store.LoadConfig()
	applyThemePreference(cfg)
	applyGlyphPreference()

	m := newAppModel(st)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
