package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Collect reads every fragment in dir and groups it by category.
//
// A missing directory yields an empty collection. Hidden files and
// subdirectories are ignored. Files whose name does not match
// <name>.<category>.md are recorded in Collection.Skipped and otherwise left
// alone. Entries are visited in lexical filename order so the order of
// fragments within a category is stable across platforms.
func Collect(dir string) (*Collection, error) {
	coll := NewCollection()

	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return coll, nil
		}
		return nil, fmt.Errorf("reading fragment directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if IsHidden(name) || entry.IsDir() {
			continue
		}

		category, err := ParseName(name)
		if err != nil {
			var nameErr *NameError
			if errors.As(err, &nameErr) {
				coll.Skipped = append(coll.Skipped, Skipped{Name: name, Reason: nameErr.Reason})
				continue
			}
			return nil, err
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading fragment %s: %w", path, err)
		}

		coll.Add(Fragment{
			Name:     name,
			Path:     path,
			Category: category,
			Text:     strings.TrimSpace(string(data)),
		})
	}

	return coll, nil
}
