// Package changelog renders release sections from changelog fragments and
// maintains the persistent CHANGELOG.md file.
//
// This package implements:
//   - The ordered category table that maps fragment categories to headers
//   - Release section rendering ("## <version> (<date>)" plus category blocks)
//   - Durable prepending of a section to CHANGELOG.md via temp file + rename
//   - Terminal formatting of pending fragments and Markdown preview
//
// New sections are always inserted above all existing content; previously
// recorded releases are never rewritten or reordered.
package changelog
