package tui

import (
	"strconv"
	"strings"

	"taskdeck/internal/calendar"
	"taskdeck/internal/model"
	"taskdeck/internal/taskform"

	"github.com/charmbracelet/lipgloss"
)

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (m appModel) View() string {
	if !m.seenWindowSize {
		return "Loading…"
	}

	switch m.modal {
	case modalTaskForm:
		return overlayCentered(m.width, m.height, m.taskFormView())
	case modalConfirmDelete:
		return overlayCentered(m.width, m.height, m.confirmView())
	case modalBoard:
		return overlayCentered(m.width, m.height, renderModalBox(m.width, "New board task", m.boardBodyView()))
	}

	var body string
	if m.view == viewDay {
		body = m.dayView()
	} else {
		body = m.calendarView()
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", topPadLines))
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m appModel) contentWidth() int {
	w := m.width - 2
	if w > maxContentW {
		w = maxContentW
	}
	if w < 40 {
		w = 40
	}
	return w
}

func (m appModel) calendarView() string {
	contentW := m.contentWidth()
	gridW := contentW - sidebarW - sidebarGapW
	if gridW < 28 {
		gridW = contentW // too narrow for a sidebar
	}

	header := lipgloss.NewStyle().Bold(true).Render(m.cursor.Title())
	if m.store.Loading() {
		header += "  " + styleMuted().Render("loading…")
	}

	grid := m.gridView(gridW)
	if gridW == contentW {
		return header + "\n\n" + grid
	}

	sidebar := m.sidebarView(sidebarW)
	gridH := lipgloss.Height(grid)
	joined := lipgloss.JoinHorizontal(
		lipgloss.Top,
		normalizePane(grid, gridW, gridH),
		strings.Repeat(" ", sidebarGapW),
		normalizePane(sidebar, sidebarW, gridH),
	)
	return header + "\n\n" + joined
}

const badgeRows = 3

func (m appModel) gridView(width int) string {
	cellW := width/7 - 2 // border takes 2 columns
	if cellW < 4 {
		cellW = 4
	}

	head := make([]string, 7)
	for i, d := range weekdayLabels {
		head[i] = lipgloss.NewStyle().
			Width(cellW + 2).
			Align(lipgloss.Center).
			Foreground(colorChromeMutedFg).
			Render(d)
	}
	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, head...))

	tasks := m.store.Tasks()

	slots := calendar.Grid(m.cursor)
	for len(slots)%7 != 0 {
		slots = append(slots, 0)
	}

	for week := 0; week < len(slots); week += 7 {
		cells := make([]string, 7)
		for i := 0; i < 7; i++ {
			cells[i] = m.cellView(slots[week+i], cellW, tasks)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m appModel) cellView(day, cellW int, tasks []model.Task) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCellBorder).
		Width(cellW)

	if day == 0 {
		return border.Render(strings.Repeat("\n", badgeRows+1))
	}

	if m.cursor.IsToday(day, m.now()) {
		border = border.BorderForeground(colorAccent)
	}
	if day == m.selDay {
		border = border.BorderForeground(colorSelectedBorder)
	}

	num := strconv.Itoa(day)
	numStyle := lipgloss.NewStyle().Bold(true)
	if day == m.selDay {
		numStyle = numStyle.Foreground(colorSelectedFg).Background(colorSelectedBg)
		num = " " + num + " "
	}

	lines := []string{numStyle.Render(num)}
	dayTasks := calendar.TasksOn(tasks, m.cursor, day)
	// First three badges always; overflow goes on its own row below them.
	shown := dayTasks
	if len(shown) > badgeRows {
		shown = shown[:badgeRows]
	}
	for _, t := range shown {
		badge := lipgloss.NewStyle().Foreground(typeColor(t.Color)).Render(glyphBullet())
		title := t.Title
		if t.Completed {
			title = styleMuted().Render(title)
		}
		lines = append(lines, normalizePane(badge+" "+title, cellW, 1))
	}
	if n := len(dayTasks) - len(shown); n > 0 {
		lines = append(lines, styleMuted().Render("+"+strconv.Itoa(n)+" more"))
	}
	for len(lines) < badgeRows+2 {
		lines = append(lines, "")
	}

	return border.Render(strings.Join(lines, "\n"))
}

func (m appModel) sidebarView(width int) string {
	now := m.now()
	tasks := m.store.Tasks()

	heading := func(s string) string {
		return lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg).Render(s)
	}
	var b strings.Builder

	b.WriteString(heading("Today") + "\n")
	today := calendar.TasksToday(tasks, now)
	if len(today) == 0 {
		b.WriteString(styleMuted().Render("nothing scheduled") + "\n")
	}
	for _, t := range today {
		badge := lipgloss.NewStyle().Foreground(typeColor(t.Color)).Render(glyphBullet())
		line := badge + " " + t.Time + " " + t.Title
		if t.Completed {
			line = badge + " " + styleMuted().Strikethrough(true).Render(t.Time+" "+t.Title)
		}
		b.WriteString(normalizePane(line, width, 1) + "\n")
	}

	b.WriteString("\n" + heading("Upcoming") + "\n")
	upcoming := calendar.Upcoming(tasks, now)
	if len(upcoming) == 0 {
		b.WriteString(styleMuted().Render("nothing upcoming") + "\n")
	}
	for _, t := range upcoming {
		badge := lipgloss.NewStyle().Foreground(typeColor(t.Color)).Render(glyphBullet())
		b.WriteString(normalizePane(badge+" "+t.Date+" "+glyphArrow()+" "+t.Title, width, 1) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) dayView() string {
	contentW := m.contentWidth()

	header := lipgloss.NewStyle().Bold(true).Render(m.selDate())
	count := len(m.dayList.Items())
	header += "  " + styleMuted().Render(strconv.Itoa(count)+" task(s)")

	listView := m.dayList.View()

	// Detail pane: markdown description of the selected task.
	detail := ""
	if it, ok := m.selectedDayTask(); ok && strings.TrimSpace(it.task.Description) != "" {
		detail = "\n" + glyphHRule() + "\n" + renderMarkdown(it.task.Description, contentW-2)
	}

	return header + "\n\n" + listView + detail
}

func (m appModel) statusLine() string {
	if m.banner != "" {
		return lipgloss.NewStyle().
			Foreground(colorErrorFg).
			Background(colorErrorBg).
			Padding(0, 1).
			Render(m.banner)
	}
	if m.minibufferText != "" {
		return styleMuted().Render(m.minibufferText)
	}

	var hints string
	if m.view == viewDay {
		hints = "enter/e: edit   space: done   d: delete   c: new   y: yank   esc: back"
	} else {
		hints = "arrows: move   [/]: month   t: today   enter: day   c: new   b: board   r: refresh   q: quit"
	}
	return styleMuted().Render(hints)
}

func (m appModel) taskFormView() string {
	bodyW := modalBodyWidth(m.width)

	label := func(s string, focused bool) string {
		st := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
		if focused {
			st = st.Bold(true).Foreground(colorSurfaceFg)
		}
		return st.Render(s)
	}

	types := m.store.TaskTypes()
	typeLine := ""
	if len(types) > 0 {
		idx := m.typeIdx
		if idx >= len(types) {
			idx = 0
		}
		tt := types[idx]
		badge := lipgloss.NewStyle().Foreground(typeColor(tt.Color)).Render(glyphBullet())
		typeLine = "◂ " + badge + " " + tt.Name + " ▸"
		if glyphs() == glyphSetASCII {
			typeLine = "< " + badge + " " + tt.Name + " >"
		}
	}

	parts := []string{
		label("Title", m.formFocus == focusTitle),
		renderInputLine(bodyW, m.titleInput.View()),
		"",
		label("Description", m.formFocus == focusDescription),
		m.descArea.View(),
		"",
		label("Date", m.formFocus == focusDate) + "      " + label("Time", m.formFocus == focusTime),
		renderInputLine(bodyW, m.dateInput.View()+"  "+m.timeInput.View()),
		"",
		label("Type", m.formFocus == focusType) + "  " + typeLine,
		"",
		styleMuted().Render("tab: next field   enter/ctrl+s: save   esc: cancel"),
	}
	if m.banner != "" {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(colorErrorFg).
			Background(colorErrorBg).
			Padding(0, 1).
			Render(m.banner))
	}

	title := "New task"
	if m.ctrl.Mode() == taskform.ModeEdit {
		title = "Edit task"
	}
	return renderModalBox(m.width, title, strings.Join(parts, "\n"))
}

func (m appModel) confirmView() string {
	title := "Delete task"
	body := "Delete this task? This cannot be undone."
	if t, ok := m.store.FindTask(m.confirmTaskID); ok {
		body = "Delete \"" + t.Title + "\"? This cannot be undone."
	}
	return renderConfirmModal(m.width, title, body, "Delete", "Cancel", m.confirmFocus)
}

func (m appModel) boardBodyView() string {
	body := m.board.view(m.width)
	if m.banner != "" {
		body += "\n\n" + lipgloss.NewStyle().
			Foreground(colorErrorFg).
			Background(colorErrorBg).
			Padding(0, 1).
			Render(m.banner)
	}
	return body
}
