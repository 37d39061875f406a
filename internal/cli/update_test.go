package cli

import (
	"testing"

	"todocard/internal/task"
)

func TestApplyUpdateKeepsUnsetFields(t *testing.T) {
	current := task.Task{ID: "a1", Title: "Pay rent", Description: "before Friday", Priority: task.High}
	got, err := applyUpdate(current, updateParams{Description: "", HasDescription: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Pay rent" || got.Priority != task.High {
		t.Fatalf("expected title and priority kept, got %#v", got)
	}
	if got.Description != "" {
		t.Fatalf("expected description cleared, got %q", got.Description)
	}
}

func TestApplyUpdateParsesPriority(t *testing.T) {
	current := task.Task{ID: "a1", Priority: task.High}
	got, err := applyUpdate(current, updateParams{Priority: " Low ", HasPriority: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Priority != task.Low {
		t.Fatalf("expected low, got %q", got.Priority)
	}
	if _, err := applyUpdate(current, updateParams{Priority: "urgent", HasPriority: true}); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}
