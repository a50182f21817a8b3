package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"taskdeck/internal/model"
)

// CreateBoardTask submits the board composer form. Unlike the calendar task
// endpoints this one is multipart: scalar fields as plain parts, the id lists as
// JSON-encoded array strings, and each attachment as an indexed files[i] part.
// That encoding is the gateway's contract, not ours to normalize.
func (c *Client) CreateBoardTask(ctx context.Context, form model.BoardTaskForm) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"startDate":   form.StartDate,
		"dueDate":     form.DueDate,
	}
	for name, v := range fields {
		if err := w.WriteField(name, v); err != nil {
			return err
		}
	}
	for name, ids := range map[string][]string{
		"assignees":   form.Assignees,
		"supervisors": form.Supervisors,
		"projects":    form.Projects,
	} {
		if ids == nil {
			ids = []string{}
		}
		b, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		if err := w.WriteField(name, string(b)); err != nil {
			return err
		}
	}

	for i, path := range form.Files {
		if err := appendFilePart(w, i, path); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/tasks", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: "POST", Path: "/tasks", Code: resp.StatusCode}
	}
	return nil
}

func appendFilePart(w *multipart.Writer, idx int, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	part, err := w.CreateFormFile(fmt.Sprintf("files[%d]", idx), filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
