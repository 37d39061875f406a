// Package filestore keeps tasks in a single JSON document.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"todocard/internal/store"
	"todocard/internal/task"
)

const currentVersion = 1

type document struct {
	Version int         `json:"version"`
	Tasks   []task.Task `json:"tasks"`
}

type Store struct {
	path   string
	logger *slog.Logger

	mu  sync.Mutex
	doc *document
}

// Open loads path, starting empty when the file does not exist yet.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	doc, err := load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, logger: logger, doc: doc}, nil
}

func load(path string) (*document, error) {
	// #nosec G304 -- path is controlled by the app data location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{Version: currentVersion}, nil
		}
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks %s: %w", path, err)
	}
	if doc.Version == 0 {
		doc.Version = currentVersion
	}
	return &doc, nil
}

func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(s.path, data, 0o600)
}

func (s *Store) List(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, len(s.doc.Tasks))
	copy(out, s.doc.Tasks)
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return task.Task{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return s.doc.Tasks[i], nil
}

func (s *Store) Add(ctx context.Context, title, description string, priority task.Priority) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := task.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Priority:    priority,
	}
	s.doc.Tasks = append(s.doc.Tasks, t)
	if err := s.save(); err != nil {
		s.doc.Tasks = s.doc.Tasks[:len(s.doc.Tasks)-1]
		return task.Task{}, fmt.Errorf("save tasks: %w", err)
	}
	s.logger.Debug("task added", "id", t.ID, "backend", store.BackendFile)
	return t, nil
}

func (s *Store) Update(ctx context.Context, id, title, description string, priority task.Priority) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	prev := s.doc.Tasks[i]
	s.doc.Tasks[i] = task.Task{ID: id, Title: title, Description: description, Priority: priority}
	if err := s.save(); err != nil {
		s.doc.Tasks[i] = prev
		return fmt.Errorf("save tasks: %w", err)
	}
	s.logger.Debug("task updated", "id", id, "backend", store.BackendFile)
	return nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	prev := s.doc.Tasks
	next := make([]task.Task, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	s.doc.Tasks = next
	if err := s.save(); err != nil {
		s.doc.Tasks = prev
		return fmt.Errorf("save tasks: %w", err)
	}
	s.logger.Debug("task removed", "id", id, "backend", store.BackendFile)
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) index(id string) int {
	for i, t := range s.doc.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
