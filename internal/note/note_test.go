package note

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilenameFallsBackToNote(t *testing.T) {
	if got := Filename(""); got != "note.txt" {
		t.Fatalf("expected note.txt, got %q", got)
	}
	if got := Filename("Groceries"); got != "Groceries.txt" {
		t.Fatalf("expected Groceries.txt, got %q", got)
	}
}

func TestFilenameKeepsNoteInsideDir(t *testing.T) {
	if got := Filename("../a/b"); got != ".._a_b.txt" {
		t.Fatalf("expected separators replaced, got %q", got)
	}
}

func TestContentIsTwoLines(t *testing.T) {
	got := string(Content("", "hello"))
	if got != "Title: \nDescription: hello" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestFileExporterWritesNote(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := FileExporter{Dir: dir}.Export("Groceries", "Milk")
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if path != filepath.Join(dir, "Groceries.txt") {
		t.Fatalf("expected Groceries.txt in %s, got %s", dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if string(data) != "Title: Groceries\nDescription: Milk" {
		t.Fatalf("unexpected note content %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the note in %s, got %d entries", dir, len(entries))
	}
}

func TestFileExporterOverwrites(t *testing.T) {
	dir := t.TempDir()
	exporter := FileExporter{Dir: dir}
	if _, err := exporter.Export("", "first"); err != nil {
		t.Fatalf("Export error: %v", err)
	}
	path, err := exporter.Export("", "second")
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "Title: \nDescription: second" {
		t.Fatalf("expected overwritten note, got %q", data)
	}
}
