package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck/internal/model"
)

func TestTasks_DecodesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tasks" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]model.Task{
			{ID: 1, Title: "Standup", Date: "2024-03-05", Time: "09:00"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	got, err := c.Tasks(context.Background())
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Standup" {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}

func TestCreateTask_SendsJSONAndReturnsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
		var in model.NewTask
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if in.Color != "blue" || in.TypeName != "Meeting" {
			t.Fatalf("denormalized fields missing: %+v", in)
		}
		out := model.Task{ID: 42, Title: in.Title, Color: in.Color, TypeName: in.TypeName}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.CreateTask(context.Background(), model.NewTask{
		Title: "Standup", Color: "blue", TypeID: 1, TypeName: "Meeting",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("expected gateway id, got %+v", got)
	}
}

func TestUpdateTask_OmitsNilPatchFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tasks/7" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := raw["title"]; ok {
			t.Fatalf("nil title must be omitted, body=%v", raw)
		}
		if _, ok := raw["color"]; ok {
			t.Fatalf("color must be omitted without a type change, body=%v", raw)
		}
		if raw["completed"] != true {
			t.Fatalf("expected completed=true, body=%v", raw)
		}
		_ = json.NewEncoder(w).Encode(model.Task{ID: 7, Completed: true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	done := true
	got, err := c.UpdateTask(context.Background(), 7, model.TaskPatch{Completed: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ID != 7 || !got.Completed {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestDeleteTask_EmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/tasks/3" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := New(srv.URL).DeleteTask(context.Background(), 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestNonSuccessStatus_ReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).TaskTypes(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError || se.Path != "/task-types" {
		t.Fatalf("unexpected status error: %+v", se)
	}
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	if got := New("  http://example.test/api/  ").BaseURL(); got != "http://example.test/api" {
		t.Fatalf("got %q", got)
	}
	if got := New("").BaseURL(); got != DefaultBaseURL {
		t.Fatalf("got %q", got)
	}
}

func TestContextCancellation_AbortsRequest(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(srv.URL).Tasks(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}
