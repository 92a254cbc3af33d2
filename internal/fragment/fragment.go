package fragment

import (
	"fmt"
	"sort"
	"strings"
)

// Extension is the required final filename part of a fragment.
const Extension = "md"

// Fragment is a single pending change description read from disk.
type Fragment struct {
	Name     string // Filename, e.g. "login.feature.md"
	Path     string // Full path to the file
	Category string // Second-to-last filename part
	Text     string // Trimmed file contents
}

// Skipped records a file that was not aggregated because its name is malformed.
type Skipped struct {
	Name   string
	Reason string
}

// Collection groups fragments by category key.
// Within each category, fragments keep the order they were collected in.
type Collection struct {
	ByCategory map[string][]Fragment
	Skipped    []Skipped
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{ByCategory: make(map[string][]Fragment)}
}

// Add appends f to its category list.
func (c *Collection) Add(f Fragment) {
	c.ByCategory[f.Category] = append(c.ByCategory[f.Category], f)
}

// IsEmpty returns true if no fragment was collected.
// Skipped files do not count.
func (c *Collection) IsEmpty() bool {
	return c == nil || len(c.ByCategory) == 0
}

// Count returns the total number of collected fragments.
func (c *Collection) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, frags := range c.ByCategory {
		n += len(frags)
	}
	return n
}

// Keys returns the collected category keys sorted lexically.
func (c *Collection) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.ByCategory))
	for k := range c.ByCategory {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NameError describes why a filename is not a valid fragment name.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("malformed fragment name %q: %s", e.Name, e.Reason)
}

// ParseName extracts the category from a fragment filename.
// Valid names follow the pattern <name>.<category>.md.
func ParseName(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return "", &NameError{Name: name, Reason: "expected <name>.<category>.md"}
	}
	if parts[len(parts)-1] != Extension {
		return "", &NameError{Name: name, Reason: "extension is not ." + Extension}
	}
	return parts[len(parts)-2], nil
}

// IsHidden reports whether name starts with the hidden-file marker.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
