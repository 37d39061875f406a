package gtasks

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/tasks/v1"

	"todocard/internal/store"
	"todocard/internal/task"
)

type fakeAPI struct {
	items   map[string]*tasks.Task
	order   []string
	seq     int
	patches []*tasks.Task
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: map[string]*tasks.Task{}}
}

func (f *fakeAPI) CreateTask(_ context.Context, _ string, t *tasks.Task) (*tasks.Task, error) {
	f.seq++
	created := *t
	created.Id = fmt.Sprintf("g-%d", f.seq)
	created.Position = fmt.Sprintf("%020d", f.seq)
	f.items[created.Id] = &created
	f.order = append(f.order, created.Id)
	return &created, nil
}

func (f *fakeAPI) PatchTask(_ context.Context, _ string, t *tasks.Task) (*tasks.Task, error) {
	f.patches = append(f.patches, t)
	existing, ok := f.items[t.Id]
	if !ok {
		return nil, &googleapi.Error{Code: http.StatusNotFound}
	}
	existing.Title = t.Title
	existing.Notes = t.Notes
	return existing, nil
}

func (f *fakeAPI) GetTask(_ context.Context, _ string, id string) (*tasks.Task, error) {
	existing, ok := f.items[id]
	if !ok {
		return nil, &googleapi.Error{Code: http.StatusNotFound}
	}
	return existing, nil
}

func (f *fakeAPI) DeleteTask(_ context.Context, _ string, id string) error {
	if _, ok := f.items[id]; !ok {
		return &googleapi.Error{Code: http.StatusNotFound}
	}
	delete(f.items, id)
	return nil
}

func (f *fakeAPI) ListTasks(_ context.Context, _ string) ([]*tasks.Task, error) {
	out := []*tasks.Task{}
	for i := len(f.order) - 1; i >= 0; i-- {
		if item, ok := f.items[f.order[i]]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func TestNewRequiresList(t *testing.T) {
	_, err := New(newFakeAPI(), "", nil)
	assert.Error(t, err)
}

func TestPriorityTravelsInNotes(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s, err := New(api, "list-1", nil)
	require.NoError(t, err)

	created, err := s.Add(ctx, "Groceries", "Milk\nEggs", task.High)
	require.NoError(t, err)
	assert.Equal(t, "Milk\nEggs\ntodocard_priority=high", api.items[created.ID].Notes)
	assert.Equal(t, task.Task{ID: created.ID, Title: "Groceries", Description: "Milk\nEggs", Priority: task.High}, created)

	require.NoError(t, s.Update(ctx, created.ID, "", "", ""))
	require.Len(t, api.patches, 1)
	assert.ElementsMatch(t, []string{"Title", "Notes"}, api.patches[0].ForceSendFields)
	assert.Equal(t, "", api.items[created.ID].Notes)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Task{ID: created.ID}, got)
}

func TestListSkipsCompletedAndSortsByPosition(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s, err := New(api, "list-1", nil)
	require.NoError(t, err)

	a, err := s.Add(ctx, "a", "", "")
	require.NoError(t, err)
	b, err := s.Add(ctx, "b", "", task.Low)
	require.NoError(t, err)
	c, err := s.Add(ctx, "c", "", "")
	require.NoError(t, err)
	api.items[c.ID].Status = "completed"

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, b.ID, items[1].ID)
	assert.Equal(t, task.Low, items[1].Priority)
}

func TestNotFoundIsMapped(t *testing.T) {
	ctx := context.Background()
	s, err := New(newFakeAPI(), "list-1", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Remove(ctx, "missing"), store.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, "missing", "", "", ""), store.ErrNotFound)
	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
