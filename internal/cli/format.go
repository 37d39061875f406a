package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset = "\033[0m"
	colorGray  = "\033[90m"
	styleBold  = "\033[1m"
)

func gray(text string) string {
	return paint(colorGray, text)
}

func bold(text string) string {
	return paint(styleBold, text)
}

func paint(code, text string) string {
	if text == "" || !useColor() {
		return text
	}
	return code + text + colorReset
}

// useColor honors NO_COLOR and dumb terminals, and only colors a real TTY.
func useColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
