package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CleanupMode selects which files Cleanup removes.
type CleanupMode string

const (
	// CleanupConsumed removes only the fragments that were rendered into the
	// release section. Malformed and unknown-category files stay on disk.
	CleanupConsumed CleanupMode = "consumed"

	// CleanupAll removes every non-hidden *.md file in the fragment
	// directory, whether or not it was aggregated.
	CleanupAll CleanupMode = "all"
)

// ValidCleanupModes returns the accepted cleanup modes.
func ValidCleanupModes() []string {
	return []string{string(CleanupConsumed), string(CleanupAll)}
}

// Cleanup deletes fragment files after a successful release and returns the
// removed paths. Files that are already gone are not an error.
func Cleanup(dir string, mode CleanupMode, consumed []Fragment) ([]string, error) {
	switch mode {
	case CleanupConsumed:
		return removeConsumed(consumed)
	case CleanupAll:
		return removeAllMarkdown(dir)
	default:
		return nil, fmt.Errorf("unknown cleanup mode %q (valid: %s)", mode, strings.Join(ValidCleanupModes(), ", "))
	}
}

func removeConsumed(consumed []Fragment) ([]string, error) {
	removed := make([]string, 0, len(consumed))
	for _, f := range consumed {
		if err := removeFile(f.Path); err != nil {
			return removed, err
		}
		removed = append(removed, f.Path)
	}
	return removed, nil
}

func removeAllMarkdown(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading fragment directory %s: %w", dir, err)
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if IsHidden(name) || entry.IsDir() || !strings.HasSuffix(name, "."+Extension) {
			continue
		}
		path := filepath.Join(dir, name)
		if err := removeFile(path); err != nil {
			return removed, err
		}
		removed = append(removed, path)
	}
	return removed, nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing fragment %s: %w", path, err)
	}
	return nil
}
