package tui

type view int

const (
	viewCalendar view = iota
	viewDay
)

type modalKind int

const (
	modalNone modalKind = iota
	modalTaskForm
	modalConfirmDelete
	modalBoard
)

// formFocus is the active field inside the task form modal.
type formFocus int

const (
	focusTitle formFocus = iota
	focusDescription
	focusDate
	focusTime
	focusType
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// boardFocus is the active section inside the board composer modal.
type boardFocus int

const (
	boardFocusTitle boardFocus = iota
	boardFocusDescription
	boardFocusStart
	boardFocusDue
	boardFocusAssignees
	boardFocusSupervisors
	boardFocusProjects
	boardFocusFiles
)

// reloadTickMsg drives the periodic background refresh of the task list.
type reloadTickMsg struct{}
