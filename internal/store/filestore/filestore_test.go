package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todocard/internal/store"
	"todocard/internal/task"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "tasks.json")

	s, err := Open(path, nil)
	require.NoError(t, err)

	first, err := s.Add(ctx, "Groceries", "Milk", task.High)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	second, err := s.Add(ctx, "", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	require.NoError(t, s.Update(ctx, second.ID, "", "", task.Low))

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	items, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0])
	assert.Equal(t, task.Task{ID: second.ID, Priority: task.Low}, items[1])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreRemove(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "tasks.json"), nil)
	require.NoError(t, err)

	a, err := s.Add(ctx, "a", "", "")
	require.NoError(t, err)
	b, err := s.Add(ctx, "b", "", "")
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, a.ID))
	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)

	_, err = s.Get(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreMissingTask(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "tasks.json"), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Update(ctx, "nope", "x", "y", task.Normal), store.ErrNotFound)
	assert.ErrorIs(t, s.Remove(ctx, "nope"), store.ErrNotFound)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := Open(path, nil)
	assert.Error(t, err)
}
