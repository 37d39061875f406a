// Package gtasks stores tasks in a Google Tasks list. The description lives in
// the task notes; the priority is kept as a metadata line inside the notes.
package gtasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/tasks/v1"

	"todocard/internal/metadata"
	"todocard/internal/store"
	"todocard/internal/task"
)

// API is the subset of the Google Tasks client the store needs.
type API interface {
	CreateTask(ctx context.Context, listID string, t *tasks.Task) (*tasks.Task, error)
	PatchTask(ctx context.Context, listID string, t *tasks.Task) (*tasks.Task, error)
	GetTask(ctx context.Context, listID, taskID string) (*tasks.Task, error)
	DeleteTask(ctx context.Context, listID, taskID string) error
	ListTasks(ctx context.Context, listID string) ([]*tasks.Task, error)
}

type Store struct {
	api    API
	listID string
	logger *slog.Logger
}

func New(api API, listID string, logger *slog.Logger) (*Store, error) {
	if listID == "" {
		return nil, fmt.Errorf("google list is not configured (run `todocard setup`)")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{api: api, listID: listID, logger: logger}, nil
}

func (s *Store) List(ctx context.Context) ([]task.Task, error) {
	items, err := s.api.ListTasks(ctx, s.listID)
	if err != nil {
		return nil, fmt.Errorf("list google tasks: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	out := make([]task.Task, 0, len(items))
	for _, item := range items {
		if item.Deleted || item.Status == "completed" {
			continue
		}
		out = append(out, fromRemote(item))
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (task.Task, error) {
	item, err := s.api.GetTask(ctx, s.listID, id)
	if err != nil {
		return task.Task{}, mapError(err, id)
	}
	if item.Deleted {
		return task.Task{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return fromRemote(item), nil
}

func (s *Store) Add(ctx context.Context, title, description string, priority task.Priority) (task.Task, error) {
	created, err := s.api.CreateTask(ctx, s.listID, &tasks.Task{
		Title: title,
		Notes: toNotes(description, priority),
	})
	if err != nil {
		return task.Task{}, fmt.Errorf("create google task: %w", err)
	}
	s.logger.Debug("task added", "id", created.Id, "backend", store.BackendGoogle)
	return fromRemote(created), nil
}

func (s *Store) Update(ctx context.Context, id, title, description string, priority task.Priority) error {
	patch := &tasks.Task{
		Id:              id,
		Title:           title,
		Notes:           toNotes(description, priority),
		ForceSendFields: []string{"Title", "Notes"},
	}
	if _, err := s.api.PatchTask(ctx, s.listID, patch); err != nil {
		return mapError(err, id)
	}
	s.logger.Debug("task updated", "id", id, "backend", store.BackendGoogle)
	return nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.api.DeleteTask(ctx, s.listID, id); err != nil {
		return mapError(err, id)
	}
	s.logger.Debug("task removed", "id", id, "backend", store.BackendGoogle)
	return nil
}

func (s *Store) Close() error {
	return nil
}

func fromRemote(item *tasks.Task) task.Task {
	priority, _ := metadata.Extract(item.Notes, metadata.PriorityKey)
	return task.Task{
		ID:          item.Id,
		Title:       item.Title,
		Description: metadata.Strip(item.Notes, metadata.PriorityKey),
		Priority:    task.Priority(priority),
	}
}

func toNotes(description string, priority task.Priority) string {
	return metadata.Set(description, metadata.PriorityKey, string(priority))
}

func mapError(err error, id string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return fmt.Errorf("google tasks: %w", err)
}
