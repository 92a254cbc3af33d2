package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Create writes a new fragment <dir>/<name>.<category>.md containing text.
// The directory is created if needed. An existing fragment is never
// overwritten.
func Create(dir, name, category, text string) (string, error) {
	if err := validatePart("name", name); err != nil {
		return "", err
	}
	if err := validatePart("category", category); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating fragment directory: %w", err)
	}

	path := filepath.Join(dir, name+"."+category+"."+Extension)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("fragment %s already exists", path)
		}
		return "", fmt.Errorf("creating fragment: %w", err)
	}

	_, writeErr := f.WriteString(strings.TrimSpace(text) + "\n")
	closeErr := f.Close()
	if writeErr != nil {
		return "", fmt.Errorf("writing fragment: %w", writeErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("closing fragment: %w", closeErr)
	}

	return path, nil
}

// validatePart rejects filename parts that would change how the name splits.
func validatePart(field, value string) error {
	switch {
	case value == "":
		return fmt.Errorf("fragment %s cannot be empty", field)
	case strings.Contains(value, "."):
		return fmt.Errorf("fragment %s %q cannot contain '.'", field, value)
	case strings.ContainsAny(value, `/\`):
		return fmt.Errorf("fragment %s %q cannot contain path separators", field, value)
	}
	return nil
}
