// Package store owns the client-side task state: the cached task list, the type
// catalog, and every mutation against the remote gateway. Views read from here and
// never talk to the gateway directly.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskdeck/internal/model"
)

// ErrMutationInFlight is returned when a second mutation targets a task that
// already has a pending gateway request. Fetches are never guarded.
var ErrMutationInFlight = errors.New("a change for this task is still in flight")

// Sentinel values used when a task references a type missing from the catalog.
// A dangling reference degrades to these rather than failing.
const (
	UnknownTypeName  = "unknown"
	UnknownTypeColor = "gray"
)

// DefaultTaskTypes is the built-in catalog installed when the gateway's
// /task-types endpoint is unavailable.
var DefaultTaskTypes = []model.TaskType{
	{ID: 1, Name: "Meeting", Color: "blue"},
	{ID: 2, Name: "Project", Color: "red"},
	{ID: 3, Name: "Chore", Color: "purple"},
	{ID: 4, Name: "Event", Color: "green"},
	{ID: 5, Name: "Personal", Color: "yellow"},
}

// Gateway is the wire surface the store depends on (implemented by
// gateway.Client; faked in tests).
type Gateway interface {
	TaskTypes(ctx context.Context) ([]model.TaskType, error)
	Tasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, t model.NewTask) (model.Task, error)
	UpdateTask(ctx context.Context, id int, patch model.TaskPatch) (model.Task, error)
	DeleteTask(ctx context.Context, id int) error
	CreateBoardTask(ctx context.Context, form model.BoardTaskForm) error
	Users(ctx context.Context) ([]model.User, error)
	Projects(ctx context.Context) ([]model.Project, error)
}

type Store struct {
	gw   Gateway
	snap *Snapshot // optional; nil disables offline caching

	mu       sync.Mutex
	tasks    []model.Task
	types    []model.TaskType
	errMsg   string
	loading  int
	inflight map[int]bool
	subs     []func()

	now func() time.Time
}

func New(gw Gateway) *Store {
	return &Store{
		gw:       gw,
		types:    append([]model.TaskType(nil), DefaultTaskTypes...),
		inflight: map[int]bool{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AttachSnapshot enables the local sqlite cache. Successful fetches are written
// through; Init reads it back so a dead gateway still shows the last-known data.
func (s *Store) AttachSnapshot(sn *Snapshot) { s.snap = sn }

// Subscribe registers fn to run after every state change. Callbacks run outside
// the store lock, on the goroutine that made the change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := append([]func(){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Tasks returns a copy of the cached list.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

// TaskTypes returns a copy of the active catalog.
func (s *Store) TaskTypes() []model.TaskType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TaskType(nil), s.types...)
}

// Err returns the current operation-failed message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Store) ClearErr() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

// Loading reports whether any fetch or mutation is pending.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

func (s *Store) beginOp() {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
	s.notify()
}

func (s *Store) endOp() {
	s.mu.Lock()
	s.loading--
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

// Init primes the store: restore the snapshot if one is attached, then fetch the
// catalog and the task list. Fetch failures follow the usual degradation rules,
// so a dead gateway leaves the snapshot data (or defaults) on screen.
func (s *Store) Init(ctx context.Context) {
	if s.snap != nil {
		if types, err := s.snap.LoadTaskTypes(); err == nil && len(types) > 0 {
			s.mu.Lock()
			s.types = types
			s.mu.Unlock()
		}
		if tasks, err := s.snap.LoadTasks(); err == nil && len(tasks) > 0 {
			s.mu.Lock()
			s.tasks = tasks
			s.mu.Unlock()
		}
	}
	s.FetchTaskTypes(ctx)
	_ = s.FetchTasks(ctx)
}

// FetchTaskTypes loads the type catalog. Any failure silently installs the
// built-in defaults; this path never surfaces an error to the caller, by
// contrast with FetchTasks.
func (s *Store) FetchTaskTypes(ctx context.Context) {
	s.beginOp()
	defer s.endOp()

	types, err := s.gw.TaskTypes(ctx)
	if err != nil {
		types = append([]model.TaskType(nil), DefaultTaskTypes...)
	} else if s.snap != nil {
		_ = s.snap.SaveTaskTypes(types)
	}
	s.mu.Lock()
	s.types = types
	s.mu.Unlock()
}

// FetchTasks replaces the cached list with the gateway's. On failure the
// existing list is left untouched and the error message is set.
func (s *Store) FetchTasks(ctx context.Context) error {
	s.beginOp()
	defer s.endOp()
	s.setErr("")

	tasks, err := s.gw.Tasks(ctx)
	if err != nil {
		s.setErr("could not load tasks")
		return err
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	if s.snap != nil {
		_ = s.snap.SaveTasks(tasks)
	}
	return nil
}

// resolveType is the single derivation point for the denormalized color/name
// pair. Every write path goes through here; nothing else copies catalog fields.
func (s *Store) resolveType(typeID int) (color, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.types {
		if t.ID == typeID {
			return t.Color, t.Name
		}
	}
	return UnknownTypeColor, UnknownTypeName
}

// CreateTask composes the full record from a validated form and appends the
// gateway's response on success. The local payload is never trusted over the
// response: the gateway assigns the id and may normalize fields.
func (s *Store) CreateTask(ctx context.Context, form model.TaskForm) error {
	s.beginOp()
	defer s.endOp()

	color, typeName := s.resolveType(form.TypeID)
	now := s.now()
	created, err := s.gw.CreateTask(ctx, model.NewTask{
		Title:       form.Title,
		Description: form.Description,
		Date:        form.Date,
		Time:        form.Time,
		Color:       color,
		TypeID:      form.TypeID,
		TypeName:    typeName,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.setErr("could not create task")
		return err
	}

	s.mu.Lock()
	s.tasks = append(append([]model.Task(nil), s.tasks...), created)
	s.mu.Unlock()
	s.persistTasks()
	return nil
}

// CreateBoardTask submits a board task. Board tasks live outside the calendar
// list, so nothing local changes on success.
func (s *Store) CreateBoardTask(ctx context.Context, form model.BoardTaskForm) error {
	s.beginOp()
	defer s.endOp()

	if err := s.gw.CreateBoardTask(ctx, form); err != nil {
		s.setErr("could not create board task")
		return err
	}
	return nil
}

// UpdateTask sends a partial update and replaces the matching record with the
// gateway's response. No optimistic update is applied, so failure needs no
// rollback. A pending mutation for the same id rejects with ErrMutationInFlight.
func (s *Store) UpdateTask(ctx context.Context, id int, patch model.TaskPatch) error {
	if err := s.acquire(id); err != nil {
		return err
	}
	defer s.release(id)

	s.beginOp()
	defer s.endOp()

	if patch.TypeID != nil {
		patch.Color, patch.TypeName = s.resolveType(*patch.TypeID)
	}
	patch.UpdatedAt = s.now()

	updated, err := s.gw.UpdateTask(ctx, id, patch)
	if err != nil {
		s.setErr("could not update task")
		return err
	}

	s.mu.Lock()
	next := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		if t.ID == id {
			next[i] = updated
		} else {
			next[i] = t
		}
	}
	s.tasks = next
	s.mu.Unlock()
	s.persistTasks()
	return nil
}

// DeleteTask removes a task after an explicit confirmation. A nil confirm means
// the caller already confirmed (e.g. CLI --yes); a declining confirm aborts
// silently with no gateway call.
func (s *Store) DeleteTask(ctx context.Context, id int, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}
	if err := s.acquire(id); err != nil {
		return err
	}
	defer s.release(id)

	s.beginOp()
	defer s.endOp()

	if err := s.gw.DeleteTask(ctx, id); err != nil {
		s.setErr("could not delete task")
		return err
	}

	s.mu.Lock()
	next := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.tasks = next
	s.mu.Unlock()
	s.persistTasks()
	return nil
}

// ToggleTaskCompletion flips the completed flag through UpdateTask. An unknown
// id is a no-op. This is a composition, not a separate code path.
func (s *Store) ToggleTaskCompletion(ctx context.Context, id int) error {
	s.mu.Lock()
	var found *model.Task
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			found = &s.tasks[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return nil
	}
	completed := !found.Completed
	s.mu.Unlock()

	return s.UpdateTask(ctx, id, model.TaskPatch{Completed: &completed})
}

// FindTask looks up a cached task by id.
func (s *Store) FindTask(id int) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Users fetches the assignable-user catalog, degrading to a small built-in list
// when the gateway cannot serve it (same policy as the type catalog).
func (s *Store) Users(ctx context.Context) []model.User {
	users, err := s.gw.Users(ctx)
	if err != nil || len(users) == 0 {
		return []model.User{
			{ID: "1", Name: "Avery Hill"},
			{ID: "2", Name: "Jordan Lake"},
			{ID: "3", Name: "Sam Carter"},
			{ID: "4", Name: "Robin Vega"},
		}
	}
	return users
}

// Projects fetches the project catalog with the same fallback policy as Users.
func (s *Store) Projects(ctx context.Context) []model.Project {
	projects, err := s.gw.Projects(ctx)
	if err != nil || len(projects) == 0 {
		return []model.Project{
			{ID: "1", Name: "Web Platform"},
			{ID: "2", Name: "Mobile App"},
			{ID: "3", Name: "API Integration"},
		}
	}
	return projects
}

func (s *Store) acquire(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return fmt.Errorf("task %d: %w", id, ErrMutationInFlight)
	}
	s.inflight[id] = true
	return nil
}

func (s *Store) release(id int) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}

func (s *Store) persistTasks() {
	if s.snap == nil {
		return
	}
	s.mu.Lock()
	tasks := append([]model.Task(nil), s.tasks...)
	s.mu.Unlock()
	_ = s.snap.SaveTasks(tasks)
}
