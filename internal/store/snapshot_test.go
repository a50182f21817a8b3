package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"taskdeck/internal/model"
)

func openTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	sn, err := OpenSnapshot(filepath.Join(t.TempDir(), "snapshot.sqlite"))
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	t.Cleanup(func() { sn.Close() })
	return sn
}

func TestSnapshot_RoundTrip(t *testing.T) {
	sn := openTestSnapshot(t)

	created := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: 2, Title: "b", Date: "2024-03-06", Time: "10:00", TypeID: 1, Color: "blue", TypeName: "Meeting", CreatedAt: created, UpdatedAt: created},
		{ID: 1, Title: "a", Date: "2024-03-05", Time: "09:00", TypeID: 2, Color: "red", TypeName: "Project", Completed: true, CreatedAt: created, UpdatedAt: created},
	}
	if err := sn.SaveTasks(tasks); err != nil {
		t.Fatalf("save tasks: %v", err)
	}
	if err := sn.SaveTaskTypes(DefaultTaskTypes); err != nil {
		t.Fatalf("save types: %v", err)
	}

	gotTasks, err := sn.LoadTasks()
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(gotTasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(gotTasks))
	}
	// Rows come back ordered by id.
	if gotTasks[0].ID != 1 || gotTasks[0].Title != "a" || !gotTasks[0].Completed {
		t.Fatalf("unexpected first task: %+v", gotTasks[0])
	}
	if !gotTasks[0].CreatedAt.Equal(created) {
		t.Fatalf("timestamp lost: %+v", gotTasks[0].CreatedAt)
	}

	gotTypes, err := sn.LoadTaskTypes()
	if err != nil {
		t.Fatalf("load types: %v", err)
	}
	if len(gotTypes) != len(DefaultTaskTypes) || gotTypes[0].Name != "Meeting" {
		t.Fatalf("unexpected types: %+v", gotTypes)
	}
}

func TestSnapshot_SaveReplacesPreviousContents(t *testing.T) {
	sn := openTestSnapshot(t)

	if err := sn.SaveTasks([]model.Task{{ID: 1}, {ID: 2}, {ID: 3}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := sn.SaveTasks([]model.Task{{ID: 7}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := sn.LoadTasks()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("expected replacement semantics, got %+v", got)
	}
}

func TestStoreInit_RestoresSnapshotWhenGatewayDown(t *testing.T) {
	sn := openTestSnapshot(t)
	if err := sn.SaveTasks([]model.Task{{ID: 5, Title: "cached"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := sn.SaveTaskTypes([]model.TaskType{{ID: 8, Name: "Cached", Color: "teal"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := New(&fakeGateway{}) // all calls fail
	s.AttachSnapshot(sn)
	s.Init(context.Background())

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "cached" {
		t.Fatalf("expected snapshot tasks on dead gateway, got %+v", tasks)
	}
	// The failed catalog fetch still degrades to the built-in defaults rather
	// than the cached catalog: defaults are the documented fallback.
	if types := s.TaskTypes(); len(types) != 5 {
		t.Fatalf("expected default catalog, got %+v", types)
	}
}

func TestStoreFetch_WritesThroughToSnapshot(t *testing.T) {
	sn := openTestSnapshot(t)
	gw := &fakeGateway{
		tasks: func(context.Context) ([]model.Task, error) {
			return []model.Task{{ID: 9, Title: "fresh"}}, nil
		},
	}
	s := New(gw)
	s.AttachSnapshot(sn)
	if err := s.FetchTasks(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	got, err := sn.LoadTasks()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Title != "fresh" {
		t.Fatalf("expected write-through, got %+v", got)
	}
}
