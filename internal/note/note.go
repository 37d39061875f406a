// Package note renders a task draft as a plain-text note and writes it to disk.
package note

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fallbackName = "note"

// Content is the exact export format: two lines, no trailing newline.
func Content(title, description string) []byte {
	return []byte("Title: " + title + "\nDescription: " + description)
}

// Filename returns "<title>.txt", or "note.txt" for an empty title.
func Filename(title string) string {
	name := title
	if name == "" {
		name = fallbackName
	}
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	return name + ".txt"
}

// FileExporter writes notes into Dir.
type FileExporter struct {
	Dir string
}

func (e FileExporter) Export(title, description string) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".note-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(Content(title, description)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write note: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close note: %w", err)
	}
	// #nosec G302 -- notes are user documents
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	path := filepath.Join(dir, Filename(title))
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("save note: %w", err)
	}
	return path, nil
}
