// Package store defines the task repository used by the board and the cards.
// Backends live in subpackages: filestore, sqlite and gtasks.
package store

import (
	"context"
	"errors"

	"todocard/internal/task"
)

var ErrNotFound = errors.New("task not found")

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendGoogle = "google"
)

// Repository owns task identity and persistence.
type Repository interface {
	List(ctx context.Context) ([]task.Task, error)
	Get(ctx context.Context, id string) (task.Task, error)
	Add(ctx context.Context, title, description string, priority task.Priority) (task.Task, error)
	Update(ctx context.Context, id, title, description string, priority task.Priority) error
	Remove(ctx context.Context, id string) error
	Close() error
}

func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendGoogle}
}

func ValidBackend(name string) bool {
	for _, b := range Backends() {
		if b == name {
			return true
		}
	}
	return false
}
