package taskform

import (
	"context"
	"errors"
	"testing"

	"taskdeck/internal/model"
)

var testTypes = []model.TaskType{
	{ID: 1, Name: "Meeting", Color: "blue"},
	{ID: 2, Name: "Project", Color: "red"},
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name       string
		form       model.TaskForm
		wantFields []string
	}{
		{
			name: "valid form",
			form: model.TaskForm{Title: "Standup", Date: "2024-03-05", Time: "09:00", TypeID: 1},
		},
		{
			name:       "whitespace title",
			form:       model.TaskForm{Title: "   ", Date: "2024-03-05", Time: "09:00", TypeID: 1},
			wantFields: []string{"title"},
		},
		{
			name:       "missing date and time",
			form:       model.TaskForm{Title: "Standup", TypeID: 1},
			wantFields: []string{"date", "time"},
		},
		{
			name:       "malformed date",
			form:       model.TaskForm{Title: "Standup", Date: "05/03/2024", Time: "09:00", TypeID: 1},
			wantFields: []string{"date"},
		},
		{
			name:       "malformed time",
			form:       model.TaskForm{Title: "Standup", Date: "2024-03-05", Time: "9am", TypeID: 1},
			wantFields: []string{"time"},
		},
		{
			name:       "unknown type",
			form:       model.TaskForm{Title: "Standup", Date: "2024-03-05", Time: "09:00", TypeID: 99},
			wantFields: []string{"typeId"},
		},
		{
			name:       "everything wrong",
			form:       model.TaskForm{},
			wantFields: []string{"title", "date", "time", "typeId"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.form, testTypes)
			if len(res.Errors) != len(tc.wantFields) {
				t.Fatalf("expected %d errors, got %+v", len(tc.wantFields), res.Errors)
			}
			for i, f := range tc.wantFields {
				if res.Errors[i].Field != f {
					t.Fatalf("error %d: expected field %q, got %q", i, f, res.Errors[i].Field)
				}
			}
			if res.OK() != (len(tc.wantFields) == 0) {
				t.Fatalf("OK() mismatch: %v", res.OK())
			}
			if !res.OK() && res.Banner() == "" {
				t.Fatalf("expected non-empty banner for failing form")
			}
		})
	}
}

type fakeWriter struct {
	created []model.TaskForm
	updated map[int]model.TaskPatch
	err     error
}

func (w *fakeWriter) CreateTask(_ context.Context, form model.TaskForm) error {
	if w.err != nil {
		return w.err
	}
	w.created = append(w.created, form)
	return nil
}

func (w *fakeWriter) UpdateTask(_ context.Context, id int, patch model.TaskPatch) error {
	if w.err != nil {
		return w.err
	}
	if w.updated == nil {
		w.updated = map[int]model.TaskPatch{}
	}
	w.updated[id] = patch
	return nil
}

func TestController_OpenCreatePrefillsDate(t *testing.T) {
	var c Controller
	c.OpenCreate("2024-03-09")
	if c.Mode() != ModeCreate {
		t.Fatalf("expected ModeCreate, got %v", c.Mode())
	}
	if c.Form.Date != "2024-03-09" {
		t.Fatalf("expected prefilled date, got %q", c.Form.Date)
	}
	if c.Form.TypeID != 1 {
		t.Fatalf("expected default type 1, got %d", c.Form.TypeID)
	}
}

func TestController_OpenEditPopulatesForm(t *testing.T) {
	var c Controller
	c.OpenEdit(model.Task{ID: 7, Title: "Review", Description: "PR pass", Date: "2024-03-06", Time: "14:00", TypeID: 2})
	if c.Mode() != ModeEdit || c.EditID() != 7 {
		t.Fatalf("expected edit mode for id 7, got mode=%v id=%d", c.Mode(), c.EditID())
	}
	if c.Form.Title != "Review" || c.Form.TypeID != 2 {
		t.Fatalf("form not populated: %+v", c.Form)
	}
}

func TestController_CancelDiscardsWithoutStoreCall(t *testing.T) {
	w := &fakeWriter{}
	var c Controller
	c.OpenCreate("")
	c.Form.Title = "half-typed"
	c.Cancel()
	if c.Mode() != ModeClosed {
		t.Fatalf("expected closed after cancel, got %v", c.Mode())
	}
	if c.Form.Title != "" {
		t.Fatalf("expected cleared form, got %+v", c.Form)
	}
	if len(w.created) != 0 || len(w.updated) != 0 {
		t.Fatalf("cancel must not reach the store")
	}
}

func TestController_SubmitCreate(t *testing.T) {
	w := &fakeWriter{}
	var c Controller
	c.OpenCreate("")
	c.Form = model.TaskForm{Title: "Standup", Date: "2024-03-05", Time: "09:00", TypeID: 1}

	res, err := c.Submit(context.Background(), testTypes, w)
	if err != nil || !res.OK() {
		t.Fatalf("submit failed: res=%+v err=%v", res, err)
	}
	if len(w.created) != 1 || w.created[0].Title != "Standup" {
		t.Fatalf("expected one create, got %+v", w.created)
	}
	if c.Mode() != ModeClosed {
		t.Fatalf("expected closed after success, got %v", c.Mode())
	}
}

func TestController_SubmitEditBuildsFullPatch(t *testing.T) {
	w := &fakeWriter{}
	var c Controller
	c.OpenEdit(model.Task{ID: 3, Title: "Old", Date: "2024-03-05", Time: "09:00", TypeID: 1})
	c.Form.Title = "  New title  "
	c.Form.TypeID = 2

	res, err := c.Submit(context.Background(), testTypes, w)
	if err != nil || !res.OK() {
		t.Fatalf("submit failed: res=%+v err=%v", res, err)
	}
	p, ok := w.updated[3]
	if !ok {
		t.Fatalf("expected update for id 3, got %+v", w.updated)
	}
	if p.Title == nil || *p.Title != "New title" {
		t.Fatalf("expected trimmed title pointer, got %+v", p.Title)
	}
	if p.TypeID == nil || *p.TypeID != 2 {
		t.Fatalf("expected typeId in patch, got %+v", p.TypeID)
	}
}

func TestController_SubmitValidationFailureStaysOpen(t *testing.T) {
	w := &fakeWriter{}
	var c Controller
	c.OpenCreate("")
	c.Form = model.TaskForm{Title: "", Date: "2024-03-05", Time: "09:00", TypeID: 1}

	res, err := c.Submit(context.Background(), testTypes, w)
	if err != nil {
		t.Fatalf("validation failure must not be an error: %v", err)
	}
	if res.OK() {
		t.Fatalf("expected validation errors")
	}
	if len(w.created) != 0 {
		t.Fatalf("invalid form must not reach the store")
	}
	if c.Mode() != ModeCreate {
		t.Fatalf("expected form to stay open, got %v", c.Mode())
	}
}

func TestController_SubmitStoreErrorStaysOpen(t *testing.T) {
	w := &fakeWriter{err: errors.New("gateway down")}
	var c Controller
	c.OpenCreate("")
	c.Form = model.TaskForm{Title: "Standup", Date: "2024-03-05", Time: "09:00", TypeID: 1}

	_, err := c.Submit(context.Background(), testTypes, w)
	if err == nil {
		t.Fatalf("expected store error to propagate")
	}
	if c.Mode() != ModeCreate {
		t.Fatalf("expected form to stay open after store failure, got %v", c.Mode())
	}
}
