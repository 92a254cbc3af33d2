package changelog

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// PreviewOptions controls how a section preview is written.
type PreviewOptions struct {
	Plain    bool // Write raw Markdown instead of terminal rendering
	MaxWidth int  // Word wrap width for terminal rendering (0 = auto-detect)
}

// WritePreview writes the section text to w. Unless Plain is set, the
// Markdown is rendered for the terminal with glamour.
func WritePreview(s Section, w io.Writer, opts PreviewOptions) error {
	if opts.Plain {
		_, err := io.WriteString(w, s.Text)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(resolveWidth(opts.MaxWidth)),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}

	out, err := r.Render(s.Text)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
