package metadata

import (
	"fmt"
	"strings"
)

// PriorityKey marks the priority line inside remote task notes.
const PriorityKey = "todocard_priority"

func Append(text, key, value string) string {
	marker := fmt.Sprintf("%s=%s", key, value)
	if hasLine(text, marker) {
		return text
	}
	if text == "" {
		return marker
	}
	return strings.TrimRight(text, "\n") + "\n" + marker
}

// hasLine matches whole lines only, so inline mentions of a marker do not count.
func hasLine(text, line string) bool {
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == line {
			return true
		}
	}
	return false
}

func Extract(text, key string) (string, bool) {
	prefix := key + "="
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix), true
		}
	}
	return "", false
}

// Set replaces every line for key with a single key=value line.
// An empty value removes the key.
func Set(text, key, value string) string {
	text = Strip(text, key)
	if value == "" {
		return text
	}
	return Append(text, key, value)
}

// Strip drops the metadata lines for the given keys and leaves the rest intact.
func Strip(text string, keys ...string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isKeyLine(line, keys) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}

func isKeyLine(line string, keys []string) bool {
	line = strings.TrimSpace(line)
	for _, key := range keys {
		if strings.HasPrefix(line, key+"=") {
			return true
		}
	}
	return false
}
