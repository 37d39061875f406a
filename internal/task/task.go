package task

import (
	"fmt"
	"strings"
)

type Priority string

const (
	Low    Priority = "low"
	Normal Priority = "normal"
	High   Priority = "high"
)

// Tone is the visual classification derived from a priority.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneAlert
	ToneSuccess
)

type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
}

func Priorities() []Priority {
	return []Priority{Low, Normal, High}
}

// ParsePriority accepts the empty string as "no priority".
func ParsePriority(raw string) (Priority, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", nil
	}
	for _, p := range Priorities() {
		if string(p) == value {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority: %s (use low, normal or high)", raw)
}

func ToneFor(p Priority) Tone {
	switch p {
	case High:
		return ToneAlert
	case Low:
		return ToneSuccess
	default:
		return ToneNeutral
	}
}

func (t Tone) String() string {
	switch t {
	case ToneAlert:
		return "alert"
	case ToneSuccess:
		return "success"
	default:
		return "neutral"
	}
}
