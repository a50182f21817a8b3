package tui

import (
	"strconv"
	"time"

	"taskdeck/internal/calendar"
	"taskdeck/internal/store"
	"taskdeck/internal/taskform"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

type appModel struct {
	store *store.Store

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user-driven resize.
	seenWindowSize bool

	view  view
	modal modalKind

	cursor calendar.Cursor
	selDay int // 1-based day under the cursor in the grid

	dayList list.Model

	// Task form modal state. The controller owns the lifecycle and validation;
	// the inputs here are just its editing surface.
	ctrl       taskform.Controller
	titleInput textinput.Model
	descArea   textarea.Model
	dateInput  textinput.Model
	timeInput  textinput.Model
	typeIdx    int
	formFocus  formFocus

	confirmTaskID int
	confirmFocus  confirmModalFocus

	board boardState

	// banner shows validation feedback or the store's error message.
	banner string
	// minibuffer shows transient feedback (e.g. "copied"); cleared on next key.
	minibufferText string

	now func() time.Time
}

const (
	topPadLines  = 1
	maxContentW  = 110
	sidebarW     = 30
	sidebarGapW  = 2
	reloadPeriod = 30 * time.Second
)

func newAppModel(st *store.Store) appModel {
	m := appModel{
		store: st,
		view:  viewCalendar,
		now:   time.Now,
	}
	m.cursor = calendar.CursorFor(m.now())
	m.selDay = m.now().Day()

	m.dayList = newList("Day", "task", []list.Item{})

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 40

	m.descArea = textarea.New()
	m.descArea.Placeholder = "Description (markdown)"
	m.descArea.CharLimit = 0
	m.descArea.SetWidth(52)
	m.descArea.SetHeight(5)
	m.descArea.ShowLineNumbers = false

	m.dateInput = textinput.New()
	m.dateInput.Placeholder = "YYYY-MM-DD"
	m.dateInput.CharLimit = 10
	m.dateInput.Width = 12

	m.timeInput = textinput.New()
	m.timeInput.Placeholder = "HH:MM"
	m.timeInput.CharLimit = 5
	m.timeInput.Width = 7

	m.board = newBoardState()
	return m
}

// selDate is the date key for the selected grid day.
func (m appModel) selDate() string {
	return m.cursor.KeyFor(m.selDay)
}

// clampSelDay keeps the selection inside the cursor month after navigation.
func (m *appModel) clampSelDay() {
	grid := calendar.Grid(m.cursor)
	days := 0
	for _, d := range grid {
		if d > days {
			days = d
		}
	}
	if m.selDay > days {
		m.selDay = days
	}
	if m.selDay < 1 {
		m.selDay = 1
	}
}

// syncFormInputs loads the controller's form values into the input widgets.
// Called when the modal opens; afterwards the widgets are the source of truth
// until submit copies them back.
func (m *appModel) syncFormInputs() {
	f := m.ctrl.Form
	m.titleInput.SetValue(f.Title)
	m.descArea.SetValue(f.Description)
	m.dateInput.SetValue(f.Date)
	m.timeInput.SetValue(f.Time)

	m.typeIdx = 0
	for i, tt := range m.store.TaskTypes() {
		if tt.ID == f.TypeID {
			m.typeIdx = i
			break
		}
	}
	m.setFormFocus(focusTitle)
}

// collectForm copies the editing surface back into the controller's form.
func (m *appModel) collectForm() {
	m.ctrl.Form.Title = m.titleInput.Value()
	m.ctrl.Form.Description = m.descArea.Value()
	m.ctrl.Form.Date = m.dateInput.Value()
	m.ctrl.Form.Time = m.timeInput.Value()
	types := m.store.TaskTypes()
	if m.typeIdx >= 0 && m.typeIdx < len(types) {
		m.ctrl.Form.TypeID = types[m.typeIdx].ID
	}
}

func (m *appModel) setFormFocus(f formFocus) {
	m.formFocus = f
	m.titleInput.Blur()
	m.descArea.Blur()
	m.dateInput.Blur()
	m.timeInput.Blur()
	switch f {
	case focusTitle:
		m.titleInput.Focus()
	case focusDescription:
		m.descArea.Focus()
	case focusDate:
		m.dateInput.Focus()
	case focusTime:
		m.timeInput.Focus()
	}
}

// refreshDayList rebuilds the day view rows from the store.
func (m *appModel) refreshDayList() {
	tasks := calendar.TasksOn(m.store.Tasks(), m.cursor, m.selDay)
	m.dayList.SetItems(dayItems(tasks))
	if m.dayList.Index() >= len(tasks) && len(tasks) > 0 {
		m.dayList.Select(len(tasks) - 1)
	}
}

// selectedDayTask returns the task under the day list cursor.
func (m appModel) selectedDayTask() (dayTaskItem, bool) {
	it, ok := m.dayList.SelectedItem().(dayTaskItem)
	return it, ok
}

func (m appModel) clipboardShowCmd(taskID int) string {
	return "taskdeck tasks show " + strconv.Itoa(taskID)
}
