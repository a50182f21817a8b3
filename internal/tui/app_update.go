package tui

import (
	"context"
	"time"

	"taskdeck/internal/calendar"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func reloadTick() tea.Cmd {
	return tea.Tick(reloadPeriod, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Init() tea.Cmd {
	return reloadTick()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		listH := m.height - 10
		if listH < 3 {
			listH = 3
		}
		m.dayList.SetSize(m.width-4, listH)
		return m, nil

	case reloadTickMsg:
		// Background refresh. Mutations in flight are guarded by the store, so
		// refreshing underneath an open modal is safe.
		_ = m.store.FetchTasks(context.Background())
		m.refreshDayList()
		return m, reloadTick()

	case tea.KeyMsg:
		m.minibufferText = ""
		switch m.modal {
		case modalTaskForm:
			return m.updateTaskFormModal(msg)
		case modalConfirmDelete:
			return m.updateConfirmModal(msg)
		case modalBoard:
			return m.updateBoardModal(msg)
		}
		switch m.view {
		case viewDay:
			return m.updateDayView(msg)
		default:
			return m.updateCalendarView(msg)
		}
	}
	return m, nil
}

// pullStoreErr moves the store's error message into the banner, if any.
func (m *appModel) pullStoreErr() {
	if msg := m.store.Err(); msg != "" {
		m.banner = msg
		m.store.ClearErr()
	}
}

func (m appModel) updateCalendarView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		m.banner = ""
		return m, nil

	case "left", "h":
		if m.selDay > 1 {
			m.selDay--
		}
		return m, nil
	case "right", "l":
		m.selDay++
		m.clampSelDay()
		return m, nil
	case "up", "k":
		if m.selDay > 7 {
			m.selDay -= 7
		}
		return m, nil
	case "down", "j":
		m.selDay += 7
		m.clampSelDay()
		return m, nil

	case "[", "p", "pgup":
		m.cursor = m.cursor.Navigate(-1)
		m.clampSelDay()
		return m, nil
	case "]", "n", "pgdown":
		m.cursor = m.cursor.Navigate(1)
		m.clampSelDay()
		return m, nil

	case "t":
		now := m.now()
		m.cursor = calendar.CursorFor(now)
		m.selDay = now.Day()
		return m, nil

	case "r":
		m.store.FetchTaskTypes(context.Background())
		if err := m.store.FetchTasks(context.Background()); err == nil {
			m.minibufferText = "refreshed"
		}
		m.pullStoreErr()
		m.refreshDayList()
		return m, nil

	case "enter":
		m.refreshDayList()
		m.dayList.Select(0)
		m.view = viewDay
		return m, nil

	case "c":
		m.ctrl.OpenCreate(m.selDate())
		m.syncFormInputs()
		m.modal = modalTaskForm
		return m, nil

	case "b":
		if !m.board.loaded {
			ctx := context.Background()
			m.board.loadCatalogs(m.store.Users(ctx), m.store.Projects(ctx))
		}
		m.board.setFocus(boardFocusTitle)
		m.modal = modalBoard
		return m, nil
	}
	return m, nil
}

func (m appModel) updateDayView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is being typed, every key belongs to the list.
	if m.dayList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.dayList, cmd = m.dayList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "backspace", "q":
		m.view = viewCalendar
		return m, nil

	case "c":
		m.ctrl.OpenCreate(m.selDate())
		m.syncFormInputs()
		m.modal = modalTaskForm
		return m, nil

	case "enter", "e":
		if it, ok := m.selectedDayTask(); ok {
			m.ctrl.OpenEdit(it.task)
			m.syncFormInputs()
			m.modal = modalTaskForm
		}
		return m, nil

	case "d", "x":
		if it, ok := m.selectedDayTask(); ok {
			m.confirmTaskID = it.task.ID
			m.confirmFocus = confirmFocusCancel
			m.modal = modalConfirmDelete
		}
		return m, nil

	case " ":
		if it, ok := m.selectedDayTask(); ok {
			_ = m.store.ToggleTaskCompletion(context.Background(), it.task.ID)
			m.pullStoreErr()
			m.refreshDayList()
		}
		return m, nil

	case "y":
		if it, ok := m.selectedDayTask(); ok {
			if err := copyToClipboard(m.clipboardShowCmd(it.task.ID)); err == nil {
				m.minibufferText = "copied"
			} else {
				m.minibufferText = "copy failed: " + err.Error()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.dayList, cmd = m.dayList.Update(msg)
	return m, cmd
}

func (m appModel) updateTaskFormModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		m.modal = modalNone
		m.banner = ""
		return m, nil

	case "tab":
		m.setFormFocus((m.formFocus + 1) % 5)
		return m, nil
	case "shift+tab":
		m.setFormFocus((m.formFocus + 4) % 5)
		return m, nil

	case "ctrl+s":
		return m.submitTaskForm()

	case "enter":
		// Enter inside the description textarea inserts a newline.
		if m.formFocus != focusDescription {
			return m.submitTaskForm()
		}

	case "left":
		if m.formFocus == focusType {
			n := len(m.store.TaskTypes())
			if n > 0 {
				m.typeIdx = (m.typeIdx + n - 1) % n
			}
			return m, nil
		}
	case "right":
		if m.formFocus == focusType {
			if n := len(m.store.TaskTypes()); n > 0 {
				m.typeIdx = (m.typeIdx + 1) % n
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusDescription:
		m.descArea, cmd = m.descArea.Update(msg)
	case focusDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case focusTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) submitTaskForm() (tea.Model, tea.Cmd) {
	m.collectForm()
	res, err := m.ctrl.Submit(context.Background(), m.store.TaskTypes(), m.store)
	if !res.OK() {
		m.banner = res.Banner()
		return m, nil
	}
	if err != nil {
		m.pullStoreErr()
		if m.banner == "" {
			m.banner = err.Error()
		}
		return m, nil
	}
	m.modal = modalNone
	m.banner = ""
	m.minibufferText = "saved"
	m.refreshDayList()
	return m, nil
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.deleteConfirmed()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.deleteConfirmed()
		}
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) deleteConfirmed() (tea.Model, tea.Cmd) {
	_ = m.store.DeleteTask(context.Background(), m.confirmTaskID, nil)
	m.pullStoreErr()
	m.modal = modalNone
	m.refreshDayList()
	return m, nil
}

func (m appModel) updateBoardModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.board.reset()
		m.modal = modalNone
		m.banner = ""
		return m, nil

	case "tab":
		m.board.cycleFocus(false)
		return m, nil
	case "shift+tab":
		m.board.cycleFocus(true)
		return m, nil

	case "ctrl+s":
		form := m.board.form()
		if form.Title == "" {
			m.banner = "title must not be empty"
			return m, nil
		}
		if err := m.store.CreateBoardTask(context.Background(), form); err != nil {
			m.pullStoreErr()
			return m, nil
		}
		m.board.reset()
		m.modal = modalNone
		m.banner = ""
		m.minibufferText = "board task created"
		return m, nil
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.update(msg)
	return m, cmd
}
