package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/relnote/internal/fragment"
	"github.com/ariel-frischer/relnote/internal/output"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// CategoryStyle defines the color and icon for a fragment category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps built-in category keys to their terminal styling.
// Categories without an entry use defaultStyle.
var categoryStyles = map[string]CategoryStyle{
	"feature":  {Color: color.New(color.FgGreen), Icon: "✓"},
	"bugfix":   {Color: color.New(color.FgYellow), Icon: "⚡"},
	"breaking": {Color: color.New(color.FgRed), Icon: "⚠"},
	"docs":     {Color: color.New(color.FgBlue), Icon: "≡"},
	"chore":    {Color: color.New(color.FgMagenta), Icon: "~"},
}

var (
	defaultStyle = CategoryStyle{Color: color.New(color.FgCyan), Icon: "•"}
	problemStyle = CategoryStyle{Color: color.New(color.FgRed), Icon: "✗"}
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatPending writes the pending fragments grouped by category in table
// order, followed by fragments with unknown categories and malformed files.
func FormatPending(coll *fragment.Collection, cats Categories, w io.Writer, opts FormatOptions) error {
	if coll == nil {
		coll = fragment.NewCollection()
	}
	if coll.IsEmpty() && len(coll.Skipped) == 0 {
		_, err := fmt.Fprintln(w, "No pending fragments.")
		return err
	}

	width := resolveWidth(opts.MaxWidth)

	for _, cat := range cats {
		frags, ok := coll.ByCategory[cat.Key]
		if !ok {
			continue
		}
		title := strings.TrimSpace(strings.TrimLeft(cat.Header, "#"))
		if err := writeCategorySection(cat.Key, title, frags, styleFor(cat.Key), w, opts, width); err != nil {
			return err
		}
	}

	for _, key := range coll.Keys() {
		if cats.Has(key) {
			continue
		}
		title := fmt.Sprintf("Unknown category %q (not rendered)", key)
		if err := writeCategorySection(key, title, coll.ByCategory[key], problemStyle, w, opts, width); err != nil {
			return err
		}
	}

	if len(coll.Skipped) > 0 {
		if err := writeCategoryHeader("Malformed filenames (skipped)", problemStyle, w, opts); err != nil {
			return err
		}
		for _, s := range coll.Skipped {
			if err := writeEntry(fmt.Sprintf("%s: %s", s.Name, s.Reason), problemStyle, w, opts, width); err != nil {
				return err
			}
		}
	}

	return nil
}

func styleFor(key string) CategoryStyle {
	if style, ok := categoryStyles[key]; ok {
		return style
	}
	return defaultStyle
}

// writeCategorySection writes a single category with its fragments.
func writeCategorySection(key, title string, frags []fragment.Fragment, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	if err := writeCategoryHeader(fmt.Sprintf("%s (%d)", title, len(frags)), style, w, opts); err != nil {
		return err
	}

	for _, f := range frags {
		if err := writeEntry(fmt.Sprintf("%s  [%s]", firstLine(f.Text), f.Name), style, w, opts, width); err != nil {
			return fmt.Errorf("writing %s fragment %s: %w", key, f.Name, err)
		}
	}

	return nil
}

// writeCategoryHeader writes the category header line.
func writeCategoryHeader(title string, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", title)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(title))
	return err
}

// writeEntry writes a single line with optional wrapping.
func writeEntry(text string, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return output.GetTerminalWidth()
}

// wrapText wraps text to fit within maxWidth display columns, using indent for
// continuation lines. Breaks fall on rune boundaries.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := []rune(text)

	for runewidth.StringWidth(string(remaining)) > maxWidth {
		breakPoint := fittingRunes(remaining, maxWidth)
		for i := min(breakPoint, len(remaining)-1); i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = []rune(strings.TrimLeft(string(remaining[breakPoint:]), " "))
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}

// fittingRunes returns how many leading runes of r fit in width columns.
// At least one rune is returned so wrapping always makes progress.
func fittingRunes(r []rune, width int) int {
	used := 0
	for i, c := range r {
		used += runewidth.RuneWidth(c)
		if used > width {
			return max(i, 1)
		}
	}
	return len(r)
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
