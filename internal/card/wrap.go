package card

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps each line of text to width, keeping explicit line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, wrapLine(p, width))
	}
	return strings.Join(out, "\n")
}

func wrapLine(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	lines := []string{}
	line := ""
	lineWidth := 0
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if wordWidth > width {
			if line != "" {
				lines = append(lines, line)
			}
			word = runewidth.Truncate(word, width, "…")
			lines = append(lines, word)
			line = ""
			lineWidth = 0
			continue
		}
		if line == "" {
			line = word
			lineWidth = wordWidth
			continue
		}
		if lineWidth+1+wordWidth > width {
			lines = append(lines, line)
			line = word
			lineWidth = wordWidth
			continue
		}
		line += " " + word
		lineWidth += 1 + wordWidth
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncate(text string, width int) string {
	if width <= 0 {
		return text
	}
	return runewidth.Truncate(strings.ReplaceAll(text, "\n", " "), width, "…")
}
