package tasks

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

type Client struct {
	svc *tasks.Service
}

func New(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// NewWithOptions builds a client from raw options, e.g. a custom endpoint.
func NewWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

func (c *Client) CreateTask(ctx context.Context, listID string, task *tasks.Task) (*tasks.Task, error) {
	if listID == "" {
		return nil, fmt.Errorf("listID is required")
	}
	return c.svc.Tasks.Insert(listID, task).Context(ctx).Do()
}

// PatchTask only sends the fields set on task; ForceSendFields lets callers clear values.
func (c *Client) PatchTask(ctx context.Context, listID string, task *tasks.Task) (*tasks.Task, error) {
	if listID == "" || task == nil {
		return nil, fmt.Errorf("listID and task are required")
	}
	return c.svc.Tasks.Patch(listID, task.Id, task).Context(ctx).Do()
}

func (c *Client) GetTask(ctx context.Context, listID, taskID string) (*tasks.Task, error) {
	return c.svc.Tasks.Get(listID, taskID).Context(ctx).Do()
}

func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	return c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do()
}

// ListTasks pages through every open task in the list.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]*tasks.Task, error) {
	var out []*tasks.Task
	call := c.svc.Tasks.List(listID).ShowCompleted(false).MaxResults(100)
	err := call.Pages(ctx, func(resp *tasks.Tasks) error {
		out = append(out, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTaskLists(ctx context.Context) ([]*tasks.TaskList, error) {
	resp, err := c.svc.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) CreateTaskList(ctx context.Context, title string) (*tasks.TaskList, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	list := &tasks.TaskList{Title: title}
	return c.svc.Tasklists.Insert(list).Context(ctx).Do()
}
