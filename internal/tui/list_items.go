package tui

import (
	"strings"

	"taskdeck/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

func newList(title, statusName string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own global footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName(statusName, statusName+"s")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}

// dayTaskItem is a row in the day view list.
type dayTaskItem struct {
	task model.Task
}

func (i dayTaskItem) FilterValue() string {
	return strings.TrimSpace(i.task.Title)
}

func (i dayTaskItem) Title() string {
	mark := "[ ]"
	if i.task.Completed {
		mark = "[x]"
	}
	badge := lipgloss.NewStyle().
		Foreground(typeColor(i.task.Color)).
		Render(glyphBullet())
	title := i.task.Title
	if i.task.Completed {
		title = styleMuted().Strikethrough(true).Render(title)
	}
	return mark + " " + badge + " " + title
}

func (i dayTaskItem) Description() string {
	parts := []string{i.task.Time}
	if i.task.TypeName != "" {
		parts = append(parts, i.task.TypeName)
	}
	return strings.Join(parts, "  ")
}

func dayItems(tasks []model.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = dayTaskItem{task: t}
	}
	return items
}
