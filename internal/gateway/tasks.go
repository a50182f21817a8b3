package gateway

import (
	"context"
	"fmt"

	"taskdeck/internal/model"
)

func (c *Client) TaskTypes(ctx context.Context) ([]model.TaskType, error) {
	var out []model.TaskType
	if err := c.doJSON(ctx, "GET", "/task-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.doJSON(ctx, "GET", "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask sends the composed record and returns the gateway's version of it.
// The response may differ from the payload (at minimum the assigned id), so callers
// must store the returned task, not the one they sent.
func (c *Client) CreateTask(ctx context.Context, t model.NewTask) (model.Task, error) {
	var out model.Task
	if err := c.doJSON(ctx, "POST", "/tasks", t, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int, patch model.TaskPatch) (model.Task, error) {
	var out model.Task
	if err := c.doJSON(ctx, "PUT", fmt.Sprintf("/tasks/%d", id), patch, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.doJSON(ctx, "DELETE", fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.doJSON(ctx, "GET", "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.doJSON(ctx, "GET", "/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
