package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todocard/internal/store"
	"todocard/internal/task"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.db")
	s, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestAddListKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		created, err := s.Add(ctx, title, "", task.Normal)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, ids[i], item.ID)
	}
}

func TestUpdateAcceptsEmptyFields(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	created, err := s.Add(ctx, "Groceries", "Milk", task.High)
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, created.ID, "", "", ""))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Task{ID: created.ID}, got)
}

func TestRemoveAndMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	created, err := s.Add(ctx, "x", "", "")
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, created.ID))

	assert.ErrorIs(t, s.Remove(ctx, created.ID), store.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, created.ID, "a", "b", task.Low), store.ErrNotFound)
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReopenSkipsAppliedMigrations(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)
	created, err := s.Add(ctx, "persisted", "", task.Low)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path, nil)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Title)
	assert.Equal(t, task.Low, got.Priority)
}
