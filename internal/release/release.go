// Package release runs a complete release: collect fragments, render the
// section, prepend it to the changelog, remove consumed fragments and write
// the release body artifact.
package release

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ariel-frischer/relnote/internal/changelog"
	"github.com/ariel-frischer/relnote/internal/fragment"
	"github.com/ariel-frischer/relnote/internal/logging"
)

// Options configures a release run.
type Options struct {
	// Version is the opaque release label used in the section heading.
	Version string

	FragmentDir   string
	ChangelogFile string
	OutputFile    string
	Categories    changelog.Categories
	Cleanup       fragment.CleanupMode

	// DryRun renders the section without touching the filesystem.
	DryRun bool

	// Now returns the current time; the section date is its local calendar date.
	Now func() time.Time

	// Out receives user-facing progress lines.
	Out io.Writer

	Logger *slog.Logger
}

// Result describes a completed run.
type Result struct {
	// Skipped is true when there was nothing to release.
	Skipped bool

	Section   changelog.Section
	Malformed []fragment.Skipped

	// Removed lists the fragment files deleted by cleanup.
	Removed []string
}

func (o *Options) setDefaults() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	if o.Cleanup == "" {
		o.Cleanup = fragment.CleanupConsumed
	}
	if len(o.Categories) == 0 {
		o.Categories = changelog.DefaultCategories()
	}
}

// Run executes one release. No step is retried; the first error aborts the
// run. Fragments are removed only after the changelog has been replaced, and
// the artifact is written last.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.setDefaults()
	log := opts.Logger.With("version", opts.Version)

	coll, err := fragment.Collect(opts.FragmentDir)
	if err != nil {
		return nil, err
	}
	log.Debug("collected fragments", "dir", opts.FragmentDir, "count", coll.Count(), "categories", coll.Keys())

	result := &Result{Malformed: coll.Skipped}
	for _, s := range coll.Skipped {
		fmt.Fprintf(opts.Out, "Skipping malformed file: %s\n", s.Name)
		log.Warn("skipping malformed fragment", "file", s.Name, "reason", s.Reason)
	}

	if coll.IsEmpty() {
		fmt.Fprintln(opts.Out, "No fragments found. Skipping release generation.")
		result.Skipped = true
		return result, nil
	}

	section := changelog.RenderSection(opts.Version, opts.Now(), coll, opts.Categories)
	result.Section = section

	for _, d := range section.Dropped {
		fmt.Fprintf(opts.Out, "Dropping %d fragment(s) with unknown category %q\n", d.Count, d.Category)
		log.Warn("dropping fragments with unknown category", "category", d.Category, "count", d.Count, "known", opts.Categories.Keys())
	}

	if section.IsEmpty() {
		log.Warn("no fragment has a configured category, section has a heading only")
	}

	fmt.Fprintf(opts.Out, "Generating release notes for %s...\n", opts.Version)

	if opts.DryRun {
		log.Debug("dry run, skipping writes", "fragments", len(section.Included))
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("release cancelled before writing: %w", err)
	}

	if err := changelog.Prepend(opts.ChangelogFile, section.Text); err != nil {
		return nil, err
	}
	log.Debug("changelog updated", "file", opts.ChangelogFile)

	removed, err := fragment.Cleanup(opts.FragmentDir, opts.Cleanup, section.Included)
	result.Removed = removed
	if err != nil {
		return result, err
	}
	log.Debug("fragments removed", "mode", string(opts.Cleanup), "count", len(removed))

	if err := changelog.WriteFileAtomic(opts.OutputFile, []byte(section.Text), changelog.DefaultFileMode); err != nil {
		return result, fmt.Errorf("writing release body %s: %w", opts.OutputFile, err)
	}

	log.Info("release generated",
		"changelog", opts.ChangelogFile,
		"output", opts.OutputFile,
		"fragments", len(section.Included))

	return result, nil
}
