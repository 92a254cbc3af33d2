package config

import (
	"github.com/ariel-frischer/relnote/internal/changelog"
	"github.com/ariel-frischer/relnote/internal/fragment"
)

const (
	DefaultFragmentDir   = ".changelog/unreleased"
	DefaultChangelogFile = "CHANGELOG.md"
	DefaultOutputFile    = "release_body.txt"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# relnote configuration
# Environment variables override this file, e.g. RELNOTE_FRAGMENT_DIR.

fragment_dir: .changelog/unreleased   # Directory holding <name>.<category>.md fragments
changelog_file: CHANGELOG.md          # Changelog that new sections are prepended to
output_file: release_body.txt         # Side-channel file holding only the new section
cleanup: consumed                     # consumed | all (all also removes malformed *.md files)

# Category table. Order controls the order of sections in the changelog.
categories:
  - key: feature
    header: "### Features"
  - key: bugfix
    header: "### Bug Fixes"
  - key: breaking
    header: "### Breaking Changes"
  - key: docs
    header: "### Documentation"
  - key: chore
    header: "### Chores"
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	cats := changelog.DefaultCategories()
	categories := make([]interface{}, 0, len(cats))
	for _, cat := range cats {
		categories = append(categories, map[string]interface{}{
			"key":    cat.Key,
			"header": cat.Header,
		})
	}

	return map[string]interface{}{
		"fragment_dir":   DefaultFragmentDir,
		"changelog_file": DefaultChangelogFile,
		"output_file":    DefaultOutputFile,
		// cleanup: "consumed" keeps malformed and unknown-category fragments
		// on disk so they are not lost; "all" removes every visible *.md file.
		"cleanup":    string(fragment.CleanupConsumed),
		"categories": categories,
	}
}
