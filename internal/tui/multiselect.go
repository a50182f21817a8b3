package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type selectOption struct {
	ID    string
	Label string
}

// multiSelect is a searchable checkbox picker used by the board composer for
// assignees, supervisors and projects. Typing filters the option list by
// case-insensitive substring; selections survive filtering, so narrowing the
// search never loses picks made earlier.
type multiSelect struct {
	title    string
	input    textinput.Model
	options  []selectOption
	selected map[string]bool
	cursor   int
	focused  bool
}

func newMultiSelect(title, placeholder string) multiSelect {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 80
	in.Width = 28
	return multiSelect{
		title:    title,
		input:    in,
		selected: map[string]bool{},
	}
}

func (ms *multiSelect) SetOptions(opts []selectOption) {
	ms.options = opts
	ms.clampCursor()
}

func (ms *multiSelect) Focus() {
	ms.focused = true
	ms.input.Focus()
}

func (ms *multiSelect) Blur() {
	ms.focused = false
	ms.input.Blur()
}

func (ms multiSelect) Focused() bool { return ms.focused }

// visible returns the options matching the current search text.
func (ms multiSelect) visible() []selectOption {
	q := strings.ToLower(strings.TrimSpace(ms.input.Value()))
	if q == "" {
		return ms.options
	}
	var out []selectOption
	for _, o := range ms.options {
		if strings.Contains(strings.ToLower(o.Label), q) {
			out = append(out, o)
		}
	}
	return out
}

func (ms *multiSelect) clampCursor() {
	n := len(ms.visible())
	if n == 0 {
		ms.cursor = 0
		return
	}
	if ms.cursor >= n {
		ms.cursor = n - 1
	}
	if ms.cursor < 0 {
		ms.cursor = 0
	}
}

// SelectedIDs returns picked ids in catalog order, not pick order.
func (ms multiSelect) SelectedIDs() []string {
	var out []string
	for _, o := range ms.options {
		if ms.selected[o.ID] {
			out = append(out, o.ID)
		}
	}
	return out
}

func (ms multiSelect) Update(msg tea.Msg) (multiSelect, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !ms.focused {
		return ms, nil
	}

	switch key.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		ms.cursor--
		ms.clampCursor()
		return ms, nil
	case tea.KeyDown, tea.KeyCtrlN:
		ms.cursor++
		ms.clampCursor()
		return ms, nil
	case tea.KeyEnter:
		vis := ms.visible()
		if ms.cursor < len(vis) {
			id := vis[ms.cursor].ID
			if ms.selected[id] {
				delete(ms.selected, id)
			} else {
				ms.selected[id] = true
			}
		}
		return ms, nil
	}

	var cmd tea.Cmd
	ms.input, cmd = ms.input.Update(msg)
	ms.clampCursor()
	return ms, cmd
}

const multiSelectMaxRows = 5

func (ms multiSelect) View(width int) string {
	var b strings.Builder

	label := ms.title
	if n := len(ms.SelectedIDs()); n > 0 {
		label += "  " + styleMuted().Render("("+strconv.Itoa(n)+" selected)")
	}
	b.WriteString(label + "\n")
	b.WriteString(renderInputLine(width, ms.input.View()) + "\n")

	vis := ms.visible()
	if len(vis) == 0 {
		b.WriteString(styleMuted().Render("  no matches"))
		return b.String()
	}

	rowStyle := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	curStyle := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)

	// Keep the cursor row on screen.
	start := 0
	if ms.cursor >= multiSelectMaxRows {
		start = ms.cursor - multiSelectMaxRows + 1
	}
	end := start + multiSelectMaxRows
	if end > len(vis) {
		end = len(vis)
	}
	shown := vis[start:end]

	for i, o := range shown {
		idx := start + i
		mark := "[ ]"
		if ms.selected[o.ID] {
			mark = "[x]"
		}
		row := " " + mark + " " + o.Label
		if ms.focused && idx == ms.cursor {
			b.WriteString(curStyle.Render(normalizePane(row, width, 1)))
		} else {
			b.WriteString(rowStyle.Render(normalizePane(row, width, 1)))
		}
		if i < len(shown)-1 {
			b.WriteString("\n")
		}
	}
	if len(vis) > len(shown) {
		b.WriteString("\n" + styleMuted().Render("  …"))
	}
	return b.String()
}
