package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is used for files that do not exist yet.
const DefaultFileMode fs.FileMode = 0o644

// Prepend inserts section at the top of the changelog at path.
//
// The new content is section, a newline, then the previous content. A missing
// changelog is treated as empty. The file is replaced atomically, so an
// interrupted write leaves the previous changelog intact.
func Prepend(path, section string) error {
	mode := DefaultFileMode

	previous, err := os.ReadFile(path)
	switch {
	case err == nil:
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
	case errors.Is(err, fs.ErrNotExist):
		previous = nil
	default:
		return fmt.Errorf("reading changelog %s: %w", path, err)
	}

	data := make([]byte, 0, len(section)+1+len(previous))
	data = append(data, section...)
	data = append(data, '\n')
	data = append(data, previous...)

	if err := WriteFileAtomic(path, data, mode); err != nil {
		return fmt.Errorf("updating changelog %s: %w", path, err)
	}
	return nil
}

// WriteFileAtomic writes data to path using temp file + rename.
// The temp file lives in the target directory so the rename never crosses
// filesystems, and it is synced before the rename.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp file: %w", err)
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry for a completed rename. Some platforms
// do not support syncing directories, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
