package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewWithOptions(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewWithOptions error: %v", err)
	}
	return client
}

func TestListTasksFollowsPages(t *testing.T) {
	var calls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/tasks/v1/lists/L1/tasks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("showCompleted") != "false" {
			t.Errorf("expected showCompleted=false, got %q", r.URL.RawQuery)
		}
		resp := tasks.Tasks{Items: []*tasks.Task{{Id: "t2", Title: "second"}}}
		if r.URL.Query().Get("pageToken") == "" {
			resp = tasks.Tasks{Items: []*tasks.Task{{Id: "t1", Title: "first"}}, NextPageToken: "p2"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))

	items, err := client.ListTasks(context.Background(), "L1")
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 page requests, got %d", calls)
	}
	if len(items) != 2 || items[0].Id != "t1" || items[1].Id != "t2" {
		t.Fatalf("unexpected items %#v", items)
	}
}

func TestCreateTaskRequiresList(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler())
	if _, err := client.CreateTask(context.Background(), "", &tasks.Task{Title: "x"}); err == nil {
		t.Fatalf("expected error for empty list id")
	}
}

func TestCreateTaskListPostsTitle(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks/v1/users/@me/lists" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body tasks.TaskList
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		body.Id = "L9"
		_ = json.NewEncoder(w).Encode(body)
	}))

	list, err := client.CreateTaskList(context.Background(), "Cards")
	if err != nil {
		t.Fatalf("CreateTaskList error: %v", err)
	}
	if list.Id != "L9" || list.Title != "Cards" {
		t.Fatalf("unexpected list %#v", list)
	}
}
