package changelog

import "fmt"

// Category maps a fragment category key to the Markdown header it is
// rendered under.
type Category struct {
	Key    string `koanf:"key" yaml:"key" validate:"required"`
	Header string `koanf:"header" yaml:"header" validate:"required"`
}

// Categories is an ordered category table. Order determines the order of
// category blocks in a rendered section.
type Categories []Category

// DefaultCategories returns the built-in category table.
func DefaultCategories() Categories {
	return Categories{
		{Key: "feature", Header: "### Features"},
		{Key: "bugfix", Header: "### Bug Fixes"},
		{Key: "breaking", Header: "### Breaking Changes"},
		{Key: "docs", Header: "### Documentation"},
		{Key: "chore", Header: "### Chores"},
	}
}

// Lookup returns the category for key.
func (c Categories) Lookup(key string) (Category, bool) {
	for _, cat := range c {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}

// Has reports whether key is in the table.
func (c Categories) Has(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Keys returns the category keys in table order.
func (c Categories) Keys() []string {
	keys := make([]string, len(c))
	for i, cat := range c {
		keys[i] = cat.Key
	}
	return keys
}

// Validate rejects empty tables and duplicate keys.
func (c Categories) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("category table is empty")
	}
	seen := make(map[string]bool, len(c))
	for i, cat := range c {
		if cat.Key == "" {
			return fmt.Errorf("categories[%d].key: required field is empty", i)
		}
		if cat.Header == "" {
			return fmt.Errorf("categories[%d].header: required field is empty", i)
		}
		if seen[cat.Key] {
			return fmt.Errorf("categories[%d].key: duplicate category %q", i, cat.Key)
		}
		seen[cat.Key] = true
	}
	return nil
}
