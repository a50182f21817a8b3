package tui

import (
	"strings"

	"taskdeck/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// boardState holds the board composer modal: scalar fields plus the three
// searchable pickers. The user/project catalogs are loaded lazily when the
// modal first opens and fall back to the store's built-ins offline.
type boardState struct {
	title      textinput.Model
	desc       textarea.Model
	start      textinput.Model
	due        textinput.Model
	assignees  multiSelect
	supervisor multiSelect
	projects   multiSelect
	files      textinput.Model
	focus      boardFocus
	loaded     bool
}

func newBoardState() boardState {
	b := boardState{
		assignees:  newMultiSelect("Assignees", "Search users"),
		supervisor: newMultiSelect("Supervisors", "Search users"),
		projects:   newMultiSelect("Projects", "Search projects"),
	}

	b.title = textinput.New()
	b.title.Placeholder = "Title"
	b.title.CharLimit = 200
	b.title.Width = 40

	b.desc = textarea.New()
	b.desc.Placeholder = "Description"
	b.desc.CharLimit = 0
	b.desc.SetWidth(52)
	b.desc.SetHeight(3)
	b.desc.ShowLineNumbers = false

	b.start = textinput.New()
	b.start.Placeholder = "YYYY-MM-DD"
	b.start.CharLimit = 10
	b.start.Width = 12

	b.due = textinput.New()
	b.due.Placeholder = "YYYY-MM-DD"
	b.due.CharLimit = 10
	b.due.Width = 12

	b.files = textinput.New()
	b.files.Placeholder = "Attachment paths, comma separated"
	b.files.CharLimit = 500
	b.files.Width = 40

	return b
}

func (b *boardState) loadCatalogs(users []model.User, projects []model.Project) {
	userOpts := make([]selectOption, len(users))
	for i, u := range users {
		userOpts[i] = selectOption{ID: u.ID, Label: u.Name}
	}
	projOpts := make([]selectOption, len(projects))
	for i, p := range projects {
		projOpts[i] = selectOption{ID: p.ID, Label: p.Name}
	}
	b.assignees.SetOptions(userOpts)
	b.supervisor.SetOptions(userOpts)
	b.projects.SetOptions(projOpts)
	b.loaded = true
}

func (b *boardState) setFocus(f boardFocus) {
	b.focus = f
	b.title.Blur()
	b.desc.Blur()
	b.start.Blur()
	b.due.Blur()
	b.files.Blur()
	b.assignees.Blur()
	b.supervisor.Blur()
	b.projects.Blur()
	switch f {
	case boardFocusTitle:
		b.title.Focus()
	case boardFocusDescription:
		b.desc.Focus()
	case boardFocusStart:
		b.start.Focus()
	case boardFocusDue:
		b.due.Focus()
	case boardFocusAssignees:
		b.assignees.Focus()
	case boardFocusSupervisors:
		b.supervisor.Focus()
	case boardFocusProjects:
		b.projects.Focus()
	case boardFocusFiles:
		b.files.Focus()
	}
}

func (b *boardState) cycleFocus(back bool) {
	order := []boardFocus{
		boardFocusTitle, boardFocusDescription, boardFocusStart, boardFocusDue,
		boardFocusAssignees, boardFocusSupervisors, boardFocusProjects,
		boardFocusFiles,
	}
	cur := 0
	for i, f := range order {
		if f == b.focus {
			cur = i
			break
		}
	}
	if back {
		cur = (cur + len(order) - 1) % len(order)
	} else {
		cur = (cur + 1) % len(order)
	}
	b.setFocus(order[cur])
}

func (b *boardState) reset() {
	fresh := newBoardState()
	fresh.assignees.options = b.assignees.options
	fresh.supervisor.options = b.supervisor.options
	fresh.projects.options = b.projects.options
	fresh.loaded = b.loaded
	*b = fresh
}

func (b boardState) form() model.BoardTaskForm {
	var files []string
	for _, p := range strings.Split(b.files.Value(), ",") {
		if p = strings.TrimSpace(p); p != "" {
			files = append(files, p)
		}
	}
	return model.BoardTaskForm{
		Title:       strings.TrimSpace(b.title.Value()),
		Description: b.desc.Value(),
		StartDate:   strings.TrimSpace(b.start.Value()),
		DueDate:     strings.TrimSpace(b.due.Value()),
		Assignees:   b.assignees.SelectedIDs(),
		Supervisors: b.supervisor.SelectedIDs(),
		Projects:    b.projects.SelectedIDs(),
		Files:       files,
	}
}

func (b boardState) update(msg tea.Msg) (boardState, tea.Cmd) {
	var cmd tea.Cmd
	switch b.focus {
	case boardFocusTitle:
		b.title, cmd = b.title.Update(msg)
	case boardFocusDescription:
		b.desc, cmd = b.desc.Update(msg)
	case boardFocusStart:
		b.start, cmd = b.start.Update(msg)
	case boardFocusDue:
		b.due, cmd = b.due.Update(msg)
	case boardFocusAssignees:
		b.assignees, cmd = b.assignees.Update(msg)
	case boardFocusSupervisors:
		b.supervisor, cmd = b.supervisor.Update(msg)
	case boardFocusProjects:
		b.projects, cmd = b.projects.Update(msg)
	case boardFocusFiles:
		b.files, cmd = b.files.Update(msg)
	}
	return b, cmd
}

func (b boardState) view(screenW int) string {
	bodyW := modalBodyWidth(screenW)

	section := func(label string, inputView string) string {
		return label + "\n" + renderInputLine(bodyW, inputView)
	}

	var parts []string
	parts = append(parts, section("Title", b.title.View()))
	parts = append(parts, "Description\n"+b.desc.View())
	parts = append(parts, section("Start date", b.start.View())+"\n"+section("Due date", b.due.View()))
	parts = append(parts, b.assignees.View(bodyW))
	parts = append(parts, b.supervisor.View(bodyW))
	parts = append(parts, b.projects.View(bodyW))
	parts = append(parts, section("Attachments", b.files.View()))
	parts = append(parts, styleMuted().Render("tab: next field   enter: toggle pick   ctrl+s: submit   esc: cancel"))

	return strings.Join(parts, "\n\n")
}
