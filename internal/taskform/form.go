// Package taskform holds the create/edit state machine behind the task modal and
// the validation rules gating submission. The TUI renders it; the store persists it.
package taskform

import (
	"context"
	"strings"
	"time"

	"taskdeck/internal/model"
)

type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

// TaskWriter is the slice of the task store the controller needs on submit.
type TaskWriter interface {
	CreateTask(ctx context.Context, form model.TaskForm) error
	UpdateTask(ctx context.Context, id int, patch model.TaskPatch) error
}

// Controller tracks the single task being composed or edited. While closed the
// form is always clear; cancel discards edits without touching the store.
type Controller struct {
	mode   Mode
	editID int
	Form   model.TaskForm
}

func (c *Controller) Mode() Mode { return c.mode }

// EditID is only meaningful in ModeEdit.
func (c *Controller) EditID() int { return c.editID }

// OpenCreate clears the form and enters create mode. A non-empty date pre-fills
// the date field (used when the modal is opened from a specific calendar cell).
func (c *Controller) OpenCreate(prefillDate string) {
	c.reset()
	c.mode = ModeCreate
	c.Form.Date = strings.TrimSpace(prefillDate)
	if c.Form.TypeID == 0 {
		c.Form.TypeID = 1
	}
}

// OpenEdit enters edit mode with the form populated from the task's fields.
func (c *Controller) OpenEdit(t model.Task) {
	c.reset()
	c.mode = ModeEdit
	c.editID = t.ID
	c.Form = model.TaskForm{
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date,
		Time:        t.Time,
		TypeID:      t.TypeID,
	}
}

// Cancel discards in-progress edits and closes without calling the store.
func (c *Controller) Cancel() { c.reset() }

func (c *Controller) reset() {
	c.mode = ModeClosed
	c.editID = 0
	c.Form = model.TaskForm{}
}

// Submit validates and, if the form passes, writes through w. Validation failure
// never reaches the network: the controller stays open and the result carries the
// field reasons. A store error also keeps the form open so the user can retry.
// Success closes and clears.
func (c *Controller) Submit(ctx context.Context, types []model.TaskType, w TaskWriter) (Result, error) {
	res := Validate(c.Form, types)
	if !res.OK() {
		return res, nil
	}

	var err error
	switch c.mode {
	case ModeCreate:
		err = w.CreateTask(ctx, c.Form)
	case ModeEdit:
		err = w.UpdateTask(ctx, c.editID, patchFromForm(c.Form))
	default:
		return res, nil
	}
	if err != nil {
		return res, err
	}
	c.reset()
	return res, nil
}

func patchFromForm(f model.TaskForm) model.TaskPatch {
	title := strings.TrimSpace(f.Title)
	desc := f.Description
	date := f.Date
	tm := f.Time
	typeID := f.TypeID
	return model.TaskPatch{
		Title:       &title,
		Description: &desc,
		Date:        &date,
		Time:        &tm,
		TypeID:      &typeID,
	}
}

// FieldError names the failing field and a human-readable reason.
type FieldError struct {
	Field  string
	Reason string
}

type Result struct {
	Errors []FieldError
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Banner collapses the field reasons into the single error line the task modal
// shows. Per-field display is the auth forms' style, not this one's.
func (r Result) Banner() string {
	if r.OK() {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Reason)
	}
	return strings.Join(parts, "; ")
}

// Validate applies the submission rules. It is total: every rule is checked and
// every failure is reported, no implicit truthiness.
func Validate(f model.TaskForm, types []model.TaskType) Result {
	var res Result

	if strings.TrimSpace(f.Title) == "" {
		res.Errors = append(res.Errors, FieldError{Field: "title", Reason: "title is required"})
	}
	if strings.TrimSpace(f.Date) == "" {
		res.Errors = append(res.Errors, FieldError{Field: "date", Reason: "date is required"})
	} else if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		res.Errors = append(res.Errors, FieldError{Field: "date", Reason: "date must be YYYY-MM-DD"})
	}
	if strings.TrimSpace(f.Time) == "" {
		res.Errors = append(res.Errors, FieldError{Field: "time", Reason: "time is required"})
	} else if _, err := time.Parse("15:04", f.Time); err != nil {
		res.Errors = append(res.Errors, FieldError{Field: "time", Reason: "time must be HH:MM"})
	}
	if !typeKnown(f.TypeID, types) {
		res.Errors = append(res.Errors, FieldError{Field: "typeId", Reason: "task type is not in the catalog"})
	}

	return res
}

func typeKnown(id int, types []model.TaskType) bool {
	for _, t := range types {
		if t.ID == id {
			return true
		}
	}
	return false
}
