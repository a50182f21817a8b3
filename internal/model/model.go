package model

import "time"

// TaskType is an entry in the gateway's type catalog. The catalog is fetched once at
// startup and is immutable for the rest of the session.
type TaskType struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Task mirrors the gateway's task record. Color and TypeName are denormalized copies
// of the referenced TaskType, captured at write time; every write path must derive
// them from TypeID through the same resolver so the pair never goes stale.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM
	Color       string    `json:"color"`
	TypeID      int       `json:"typeId"`
	TypeName    string    `json:"typeName"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskForm is the editable subset of a task, as entered in the create/edit form.
type TaskForm struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	TypeID      int
}

// NewTask is the POST /tasks payload: a full task minus the gateway-assigned id.
type NewTask struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Color       string    `json:"color"`
	TypeID      int       `json:"typeId"`
	TypeName    string    `json:"typeName"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPatch is the PUT /tasks/{id} payload. Nil fields are omitted from the wire.
// Color and TypeName ride along only when TypeID is set, so a patch without a type
// change can never desync the denormalized pair.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Time        *string   `json:"time,omitempty"`
	TypeID      *int      `json:"typeId,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Color       string    `json:"color,omitempty"`
	TypeName    string    `json:"typeName,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoardTaskForm is the multi-assignee task composer used on the board view. It is
// submitted as multipart form data (see gateway.CreateBoardTask), not JSON.
type BoardTaskForm struct {
	Title       string
	Description string
	StartDate   string // YYYY-MM-DD
	DueDate     string // YYYY-MM-DD
	Assignees   []string // user ids
	Supervisors []string // user ids
	Projects    []string // project ids
	Files       []string // local paths attached at submit time
}
