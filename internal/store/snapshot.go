package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	"taskdeck/internal/model"

	_ "modernc.org/sqlite"
)

// Snapshot is the local sqlite cache of the last successfully fetched
// collections. It only ever holds gateway-confirmed data, so restoring it can
// show stale but never invented records.
type Snapshot struct {
	db *sql.DB
}

// OpenSnapshot opens (creating if needed) the cache at path.
func OpenSnapshot(path string) (*Snapshot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS tasks (id INTEGER PRIMARY KEY, payload TEXT NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS task_types (id INTEGER PRIMARY KEY, payload TEXT NOT NULL)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}
	return &Snapshot{db: db}, nil
}

func (sn *Snapshot) Close() error { return sn.db.Close() }

func (sn *Snapshot) SaveTasks(tasks []model.Task) error {
	return sn.replace("tasks", len(tasks), func(i int) (int, any) {
		return tasks[i].ID, tasks[i]
	})
}

func (sn *Snapshot) SaveTaskTypes(types []model.TaskType) error {
	return sn.replace("task_types", len(types), func(i int) (int, any) {
		return types[i].ID, types[i]
	})
}

// replace swaps the table's full contents in one transaction so a crash can
// never leave a half-written snapshot.
func (sn *Snapshot) replace(table string, n int, row func(i int) (int, any)) error {
	tx, err := sn.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO ` + table + ` (id, payload) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		id, v := row(i)
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(id, string(b)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (sn *Snapshot) LoadTasks() ([]model.Task, error) {
	rows, err := sn.db.Query(`SELECT payload FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var t model.Task
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (sn *Snapshot) LoadTaskTypes() ([]model.TaskType, error) {
	rows, err := sn.db.Query(`SELECT payload FROM task_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TaskType
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var t model.TaskType
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
