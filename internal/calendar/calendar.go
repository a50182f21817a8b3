// Package calendar derives the dashboard's calendar views from a month cursor and
// a task list. Everything here is a pure function: no clock reads, no store access.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"taskdeck/internal/model"
)

// UpcomingLimit caps the "upcoming" sidebar list.
const UpcomingLimit = 5

// Cursor is the displayed month. It is independent of the real current date:
// "today" views always key off the clock the caller passes in, not the cursor.
type Cursor struct {
	Year  int
	Month time.Month
}

func CursorFor(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// Navigate shifts the cursor by delta whole months, rolling over year boundaries
// in either direction. time.Date normalizes out-of-range months for us.
func (c Cursor) Navigate(delta int) Cursor {
	t := time.Date(c.Year, c.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return Cursor{Year: t.Year(), Month: t.Month()}
}

func (c Cursor) Title() string {
	return fmt.Sprintf("%s %d", c.Month.String(), c.Year)
}

func daysIn(c Cursor) int {
	// Day 0 of next month is the last day of this month.
	return time.Date(c.Year, c.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Grid returns the month's day slots in a Monday-start week layout: zero entries
// pad the first week so day 1 lands on its weekday column, then 1..N follow.
// Monday start is a fixed design choice, not configurable.
func Grid(c Cursor) []int {
	first := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) + 6) % 7 // Weekday is Sunday-based

	n := daysIn(c)
	out := make([]int, 0, lead+n)
	for i := 0; i < lead; i++ {
		out = append(out, 0)
	}
	for d := 1; d <= n; d++ {
		out = append(out, d)
	}
	return out
}

// DateKey builds the zero-padded YYYY-MM-DD key used for all date comparisons.
// Task dates are compared as strings, so callers must format through here.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

func (c Cursor) KeyFor(day int) string {
	return DateKey(c.Year, c.Month, day)
}

func (c Cursor) IsToday(day int, now time.Time) bool {
	return c.Year == now.Year() && c.Month == now.Month() && day == now.Day()
}

// TasksOn filters tasks scheduled on the cursor's given day.
func TasksOn(tasks []model.Task, c Cursor, day int) []model.Task {
	return tasksMatching(tasks, c.KeyFor(day))
}

// TasksToday filters tasks scheduled on the real current date, regardless of
// which month the cursor displays.
func TasksToday(tasks []model.Task, now time.Time) []model.Task {
	return tasksMatching(tasks, DateKey(now.Year(), now.Month(), now.Day()))
}

func tasksMatching(tasks []model.Task, key string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Date == key {
			out = append(out, t)
		}
	}
	return out
}

// Upcoming returns open tasks strictly after today, soonest first, capped at
// UpcomingLimit. Tasks sharing a date keep their input order (stable sort); no
// further tie-break is defined.
func Upcoming(tasks []model.Task, now time.Time) []model.Task {
	today := DateKey(now.Year(), now.Month(), now.Day())

	var out []model.Task
	for _, t := range tasks {
		if t.Date > today && !t.Completed {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > UpcomingLimit {
		out = out[:UpcomingLimit]
	}
	return out
}
