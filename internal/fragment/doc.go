// Package fragment reads, creates and removes changelog fragment files.
//
// A fragment is a small Markdown file named <name>.<category>.md that lives
// in the unreleased fragment directory (.changelog/unreleased by default).
// Each fragment describes one change and is consumed by a release run.
package fragment
