package display

import (
	"os"

	"golang.org/x/term"
)

// Terminal color codes
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

var colorEnabled = true

// DetectColor turns colors off when f is not a terminal or NO_COLOR is set
func DetectColor(f *os.File) {
	_, noColor := os.LookupEnv("NO_COLOR")
	colorEnabled = !noColor && term.IsTerminal(int(f.Fd()))
}

// SetColor forces colors on or off
func SetColor(on bool) { colorEnabled = on }

// Paint wraps text in a color code when colors are enabled
func Paint(color, text string) string {
	if !colorEnabled {
		return text
	}
	return color + text + Reset
}

// Prompt returns a colored prompt string
func Prompt(text string) string {
	if !colorEnabled {
		return text + " > "
	}
	return Yellow + text + Yellow + " > " + Reset
}
