package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"taskdeck/internal/model"
)

// fakeGatewayServer is a minimal in-memory stand-in for the remote task
// gateway, just enough surface for the commands under test.
type fakeGatewayServer struct {
	mu     sync.Mutex
	nextID int
	tasks  []model.Task
	types  []model.TaskType
}

func newFakeGatewayServer() *fakeGatewayServer {
	return &fakeGatewayServer{
		nextID: 1,
		types: []model.TaskType{
			{ID: 1, Name: "Meeting", Color: "blue"},
			{ID: 2, Name: "Project", Color: "red"},
		},
	}
}

func (g *fakeGatewayServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /task-types", func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		_ = json.NewEncoder(w).Encode(g.types)
	})
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		tasks := g.tasks
		if tasks == nil {
			tasks = []model.Task{}
		}
		_ = json.NewEncoder(w).Encode(tasks)
	})
	mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		var in model.NewTask
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		t := model.Task{
			ID: g.nextID, Title: in.Title, Description: in.Description,
			Date: in.Date, Time: in.Time,
			Color: in.Color, TypeID: in.TypeID, TypeName: in.TypeName,
			CreatedAt: in.CreatedAt, UpdatedAt: in.UpdatedAt,
		}
		g.nextID++
		g.tasks = append(g.tasks, t)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(t)
	})
	mux.HandleFunc("PUT /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		for i, t := range g.tasks {
			if r.PathValue("id") != intToString(t.ID) {
				continue
			}
			var patch model.TaskPatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.Completed != nil {
				t.Completed = *patch.Completed
			}
			g.tasks[i] = t
			_ = json.NewEncoder(w).Encode(t)
			return
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("DELETE /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		defer g.mu.Unlock()
		for i, t := range g.tasks {
			if r.PathValue("id") == intToString(t.ID) {
				g.tasks = append(g.tasks[:i], g.tasks[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.NotFound(w, r)
	})
	return mux
}

func intToString(id int) string { return strconv.Itoa(id) }

func runCmd(t *testing.T, api string, args ...string) (map[string]any, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--api", api}, args...))
	err := cmd.Execute()

	var env map[string]any
	if out.Len() > 0 {
		if jerr := json.Unmarshal(out.Bytes(), &env); jerr != nil {
			t.Fatalf("stdout is not a json envelope: %v\nstdout:\n%s", jerr, out.String())
		}
	}
	return env, errOut.String(), err
}

func TestCLI_TaskLifecycle(t *testing.T) {
	gw := newFakeGatewayServer()
	srv := httptest.NewServer(gw.handler())
	defer srv.Close()

	created, _, err := runCmd(t, srv.URL, "tasks", "create",
		"--title", "Sprint review", "--date", "2024-03-05", "--time", "14:00", "--type", "2")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	data := created["data"].(map[string]any)
	if data["title"] != "Sprint review" || data["color"] != "red" || data["typeName"] != "Project" {
		t.Fatalf("unexpected create output: %#v", data)
	}
	id := intToString(int(data["id"].(float64)))

	list, _, err := runCmd(t, srv.URL, "tasks", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if xs := list["data"].([]any); len(xs) != 1 {
		t.Fatalf("expected one task, got %#v", list["data"])
	}

	toggled, _, err := runCmd(t, srv.URL, "tasks", "toggle", id)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled["data"].(map[string]any)["completed"] != true {
		t.Fatalf("expected completed=true, got %#v", toggled["data"])
	}

	deleted, _, err := runCmd(t, srv.URL, "tasks", "delete", id, "--yes")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted["data"].(map[string]any)["deleted"] == nil {
		t.Fatalf("unexpected delete output: %#v", deleted["data"])
	}

	list, _, err = runCmd(t, srv.URL, "tasks", "list")
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if xs := list["data"].([]any); len(xs) != 0 {
		t.Fatalf("expected empty list, got %#v", list["data"])
	}
}

func TestCLI_DeleteRequiresYes(t *testing.T) {
	gw := newFakeGatewayServer()
	gw.tasks = []model.Task{{ID: 9, Title: "Keep me"}}
	srv := httptest.NewServer(gw.handler())
	defer srv.Close()

	_, stderr, err := runCmd(t, srv.URL, "tasks", "delete", "9")
	if err == nil {
		t.Fatal("expected an error without --yes")
	}
	if !strings.Contains(stderr, "--yes") {
		t.Fatalf("stderr should mention --yes, got %q", stderr)
	}
	if len(gw.tasks) != 1 {
		t.Fatal("task must survive a refused delete")
	}
}

func TestCLI_CreateRejectsInvalidForm(t *testing.T) {
	gw := newFakeGatewayServer()
	srv := httptest.NewServer(gw.handler())
	defer srv.Close()

	_, stderr, err := runCmd(t, srv.URL, "tasks", "create",
		"--title", "   ", "--date", "not-a-date", "--time", "14:00")
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(stderr, "invalid task") {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
	if len(gw.tasks) != 0 {
		t.Fatal("invalid form must not reach the gateway")
	}
}

func TestCLI_UpdateUnknownTaskFails(t *testing.T) {
	gw := newFakeGatewayServer()
	srv := httptest.NewServer(gw.handler())
	defer srv.Close()

	_, stderr, err := runCmd(t, srv.URL, "tasks", "update", "123", "--title", "nope")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if !strings.Contains(stderr, "task not found: 123") {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestCLI_TypesListDegradesToDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	env, _, err := runCmd(t, srv.URL, "types", "list")
	if err != nil {
		t.Fatalf("types list: %v", err)
	}
	xs := env["data"].([]any)
	if len(xs) != 5 {
		t.Fatalf("expected the 5 built-in types, got %d", len(xs))
	}
	if xs[0].(map[string]any)["name"] != "Meeting" {
		t.Fatalf("unexpected first type: %#v", xs[0])
	}
}

func TestCLI_UpcomingFiltersAndSorts(t *testing.T) {
	gw := newFakeGatewayServer()
	gw.tasks = []model.Task{
		{ID: 1, Title: "done", Date: "2999-01-05", Completed: true},
		{ID: 2, Title: "later", Date: "2999-01-09"},
		{ID: 3, Title: "sooner", Date: "2999-01-02"},
		{ID: 4, Title: "past", Date: "2000-01-01"},
	}
	srv := httptest.NewServer(gw.handler())
	defer srv.Close()

	env, _, err := runCmd(t, srv.URL, "upcoming")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	xs := env["data"].([]any)
	if len(xs) != 2 {
		t.Fatalf("expected 2 upcoming tasks, got %#v", xs)
	}
	if xs[0].(map[string]any)["title"] != "sooner" || xs[1].(map[string]any)["title"] != "later" {
		t.Fatalf("wrong order: %#v", xs)
	}
}

func TestCLI_ConfigSetPersistsAndShows(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	if _, _, err := runCmd(t, "http://unused.test", "config", "set-api", "http://gw.test/api"); err != nil {
		t.Fatalf("set-api: %v", err)
	}
	if _, _, err := runCmd(t, "http://unused.test", "config", "set-theme", "dark"); err != nil {
		t.Fatalf("set-theme: %v", err)
	}
	if _, _, err := runCmd(t, "http://unused.test", "config", "set-theme", "sepia"); err == nil {
		t.Fatalf("expected unknown theme to be rejected")
	}

	env, _, err := runCmd(t, "http://unused.test", "config", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	data := env["data"].(map[string]any)
	if data["apiBaseUrl"] != "http://gw.test/api" {
		t.Fatalf("api url not persisted: %#v", data)
	}
	if data["tui"].(map[string]any)["theme"] != "dark" {
		t.Fatalf("theme not persisted: %#v", data)
	}
}
