package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// runCLI executes the root command in-process with args and returns the
// captured output and exit code.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	resetFlags(t)
	if args == nil {
		// cobra falls back to os.Args when args is nil
		args = []string{}
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	code = Execute()
	return out.String(), errOut.String(), code
}

// resetFlags restores flag variables that persist between in-process runs.
func resetFlags(t *testing.T) {
	t.Helper()
	configFlag = ""
	debugFlag = false
	previewPlainFlag = false
	checkPlainFlag = false
	versionPlain = false
	require.NoError(t, initCmd.Flags().Set("force", "false"))
}

// setupProject creates an empty project directory, makes it the working
// directory and pins the release clock to 2024-01-15.
func setupProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	original := now
	now = func() time.Time {
		return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.Local)
	}
	t.Cleanup(func() { now = original })

	return dir
}

// writeFragments writes files into the default fragment directory.
func writeFragments(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	fragDir := filepath.Join(dir, ".changelog", "unreleased")
	require.NoError(t, os.MkdirAll(fragDir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(fragDir, name), []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func listFragments(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(dir, ".changelog", "unreleased"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
