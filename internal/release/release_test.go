package release

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/relnote/internal/changelog"
	"github.com/ariel-frischer/relnote/internal/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workspace is a temp project layout for a release run.
type workspace struct {
	root        string
	fragmentDir string
	changelog   string
	output      string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	root := t.TempDir()
	return &workspace{
		root:        root,
		fragmentDir: filepath.Join(root, ".changelog", "unreleased"),
		changelog:   filepath.Join(root, "CHANGELOG.md"),
		output:      filepath.Join(root, "release_body.txt"),
	}
}

func (w *workspace) addFragments(t *testing.T, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(w.fragmentDir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(w.fragmentDir, name), []byte(content), 0o644))
	}
}

func (w *workspace) remaining(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(w.fragmentDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (w *workspace) options(version string, day int) Options {
	return Options{
		Version:       version,
		FragmentDir:   w.fragmentDir,
		ChangelogFile: w.changelog,
		OutputFile:    w.output,
		Now: func() time.Time {
			return time.Date(2024, time.January, day, 12, 0, 0, 0, time.Local)
		},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const endToEndSection = "## v2.0.0 (2024-01-15)\n" +
	"\n" +
	"### Features\n" +
	"- Add X\n" +
	"\n" +
	"### Bug Fixes\n" +
	"- Fix Y\n"

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cleanup   fragment.CleanupMode
		remaining []string
	}{
		"consumed cleanup keeps unknown category": {
			cleanup:   fragment.CleanupConsumed,
			remaining: []string{"c.unknown.md"},
		},
		"all cleanup removes every fragment": {
			cleanup:   fragment.CleanupAll,
			remaining: nil,
		},
	}

	for name, tt := range tests {
		name, tt := name, tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ws := newWorkspace(t)
			ws.addFragments(t, map[string]string{
				"a.feature.md": "Add X",
				"b.bugfix.md":  "Fix Y",
				"c.unknown.md": "Z",
			})

			var out bytes.Buffer
			opts := ws.options("v2.0.0", 15)
			opts.Cleanup = tt.cleanup
			opts.Out = &out

			result, err := Run(context.Background(), opts)
			require.NoError(t, err)
			assert.False(t, result.Skipped)

			assert.Equal(t, endToEndSection, result.Section.Text)
			assert.Equal(t, endToEndSection+"\n", readFile(t, ws.changelog))
			assert.Equal(t, endToEndSection, readFile(t, ws.output))
			assert.Equal(t, tt.remaining, ws.remaining(t))

			assert.Contains(t, out.String(), "Generating release notes for v2.0.0...")
			assert.Contains(t, out.String(), `Dropping 1 fragment(s) with unknown category "unknown"`)
		})
	}
}

func TestRun_SecondReleaseAboveFirst(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ws.addFragments(t, map[string]string{"a.feature.md": "First feature"})
	first, err := Run(context.Background(), ws.options("v1.0.0", 10))
	require.NoError(t, err)

	ws.addFragments(t, map[string]string{"b.bugfix.md": "Second fix"})
	second, err := Run(context.Background(), ws.options("v1.1.0", 20))
	require.NoError(t, err)

	content := readFile(t, ws.changelog)
	assert.Equal(t, second.Section.Text+"\n"+first.Section.Text+"\n", content)
	assert.Less(t, strings.Index(content, "## v1.1.0 (2024-01-20)"), strings.Index(content, "## v1.0.0 (2024-01-10)"))
	assert.Equal(t, 1, strings.Count(content, "First feature"))
	assert.Equal(t, 1, strings.Count(content, "Second fix"))

	assert.Equal(t, second.Section.Text, readFile(t, ws.output))
}

func TestRun_NothingToRelease(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		files      map[string]string
		makeDir    bool
		wantOutput string
	}{
		"missing directory": {
			wantOutput: "No fragments found. Skipping release generation.\n",
		},
		"empty directory": {
			makeDir:    true,
			wantOutput: "No fragments found. Skipping release generation.\n",
		},
		"only hidden and non-markdown files": {
			files:      map[string]string{".gitkeep": "", "notes.txt": "x"},
			wantOutput: "No fragments found. Skipping release generation.\n",
		},
	}

	for name, tt := range tests {
		name, tt := name, tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ws := newWorkspace(t)
			if tt.makeDir {
				require.NoError(t, os.MkdirAll(ws.fragmentDir, 0o755))
			}
			if tt.files != nil {
				ws.addFragments(t, tt.files)
			}

			require.NoError(t, os.WriteFile(ws.changelog, []byte("# Existing\n"), 0o644))
			require.NoError(t, os.WriteFile(ws.output, []byte("previous body"), 0o644))
			past := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
			require.NoError(t, os.Chtimes(ws.changelog, past, past))
			require.NoError(t, os.Chtimes(ws.output, past, past))

			var out bytes.Buffer
			opts := ws.options("v9.9.9", 15)
			opts.Out = &out

			result, err := Run(context.Background(), opts)
			require.NoError(t, err)
			assert.True(t, result.Skipped)
			assert.Contains(t, out.String(), tt.wantOutput)
			assert.NotContains(t, out.String(), "Generating release notes")

			assert.Equal(t, "# Existing\n", readFile(t, ws.changelog))
			assert.Equal(t, "previous body", readFile(t, ws.output))
			for _, path := range []string{ws.changelog, ws.output} {
				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.True(t, info.ModTime().Equal(past), "%s was modified", path)
			}
		})
	}
}

func TestRun_OnlyUnknownCategories(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cleanup   fragment.CleanupMode
		remaining []string
	}{
		"consumed keeps the unknown fragment": {
			cleanup:   fragment.CleanupConsumed,
			remaining: []string{"c.unknown.md"},
		},
		"all removes the unknown fragment": {
			cleanup:   fragment.CleanupAll,
			remaining: nil,
		},
	}

	for name, tt := range tests {
		name, tt := name, tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ws := newWorkspace(t)
			ws.addFragments(t, map[string]string{"c.unknown.md": "Z"})
			require.NoError(t, os.WriteFile(ws.changelog, []byte("# Existing\n"), 0o644))

			var out bytes.Buffer
			opts := ws.options("v3.0.0", 15)
			opts.Cleanup = tt.cleanup
			opts.Out = &out

			result, err := Run(context.Background(), opts)
			require.NoError(t, err)
			assert.False(t, result.Skipped)

			const headingOnly = "## v3.0.0 (2024-01-15)\n"
			assert.Equal(t, headingOnly, result.Section.Text)
			assert.Equal(t, headingOnly+"\n# Existing\n", readFile(t, ws.changelog))
			assert.Equal(t, headingOnly, readFile(t, ws.output))
			assert.Equal(t, tt.remaining, ws.remaining(t))

			assert.Contains(t, out.String(), `Dropping 1 fragment(s) with unknown category "unknown"`)
			assert.Contains(t, out.String(), "Generating release notes for v3.0.0...")
		})
	}
}

func TestRun_MalformedFiles(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cleanup   fragment.CleanupMode
		remaining []string
	}{
		"consumed keeps malformed files": {
			cleanup:   fragment.CleanupConsumed,
			remaining: []string{"foo.feature.txt", "foo.md"},
		},
		"all deletes malformed markdown but not other extensions": {
			cleanup:   fragment.CleanupAll,
			remaining: []string{"foo.feature.txt"},
		},
	}

	for name, tt := range tests {
		name, tt := name, tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ws := newWorkspace(t)
			ws.addFragments(t, map[string]string{
				"a.feature.md":    "Add X",
				"foo.md":          "two parts",
				"foo.feature.txt": "wrong extension",
			})

			var out bytes.Buffer
			opts := ws.options("v1.0.0", 15)
			opts.Cleanup = tt.cleanup
			opts.Out = &out

			result, err := Run(context.Background(), opts)
			require.NoError(t, err)

			assert.Contains(t, out.String(), "Skipping malformed file: foo.md\n")
			assert.Contains(t, out.String(), "Skipping malformed file: foo.feature.txt\n")
			assert.Len(t, result.Malformed, 2)
			assert.NotContains(t, result.Section.Text, "two parts")
			assert.NotContains(t, result.Section.Text, "wrong extension")
			assert.Equal(t, tt.remaining, ws.remaining(t))
		})
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ws.addFragments(t, map[string]string{"a.feature.md": "Add X"})

	opts := ws.options("v1.0.0", 15)
	opts.DryRun = true

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Contains(t, result.Section.Text, "- Add X")

	assert.NoFileExists(t, ws.changelog)
	assert.NoFileExists(t, ws.output)
	assert.Equal(t, []string{"a.feature.md"}, ws.remaining(t))
}

func TestRun_CancelledBeforeWrite(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ws.addFragments(t, map[string]string{"a.feature.md": "Add X"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, ws.options("v1.0.0", 15))
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, ws.changelog)
	assert.Equal(t, []string{"a.feature.md"}, ws.remaining(t))
}

func TestRun_ChangelogWriteFailureKeepsFragments(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ws.addFragments(t, map[string]string{"a.feature.md": "Add X"})
	// A directory where the changelog should be makes the update fail.
	require.NoError(t, os.MkdirAll(ws.changelog, 0o755))

	_, err := Run(context.Background(), ws.options("v1.0.0", 15))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changelog")

	assert.Equal(t, []string{"a.feature.md"}, ws.remaining(t))
	assert.NoFileExists(t, ws.output)
}

func TestRun_CustomCategories(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ws.addFragments(t, map[string]string{
		"a.added.md": "New command",
		"b.fixed.md": "Crash on start",
	})

	opts := ws.options("1.0.0", 15)
	opts.Categories = changelog.Categories{
		{Key: "fixed", Header: "### Fixed"},
		{Key: "added", Header: "### Added"},
	}

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "## 1.0.0 (2024-01-15)\n\n### Fixed\n- Crash on start\n\n### Added\n- New command\n", result.Section.Text)
	assert.Empty(t, ws.remaining(t))
}
