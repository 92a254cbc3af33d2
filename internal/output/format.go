// Package output provides terminal output formatting utilities for the relnote CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal width cannot be detected.
const DefaultWidth = 80

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// PrintSuccess prints a green checkmark followed by a labeled message,
// e.g. "✓ Config: created .relnote/config.yml".
func PrintSuccess(out io.Writer, label, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	if label == "" {
		fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
		return
	}
	fmt.Fprintf(out, "%s %s %s\n", green("✓"), label+":", cyan(message))
}

// PrintHint prints a dim follow-up suggestion after a blank line.
func PrintHint(out io.Writer, hint string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", dim(hint))
}
