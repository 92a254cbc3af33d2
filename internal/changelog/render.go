package changelog

import (
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/relnote/internal/fragment"
)

// DateLayout is the layout of the date in a section heading.
const DateLayout = "2006-01-02"

// Section is a rendered release section.
type Section struct {
	Version string
	Date    string
	Text    string

	// Included lists the fragments rendered into Text, in output order.
	Included []fragment.Fragment

	// Dropped lists categories that had fragments but no entry in the
	// category table, with the number of fragments in each.
	Dropped []DroppedCategory
}

// DroppedCategory is a fragment category left out of a rendered section.
type DroppedCategory struct {
	Category string
	Count    int
}

// IsEmpty returns true if no fragment was rendered.
func (s Section) IsEmpty() bool {
	return len(s.Included) == 0
}

// RenderSection builds the release section for version.
//
// Category blocks follow the order of cats, not the order fragments were
// collected in. Within a block, bullets keep collection order. Categories
// absent from cats are not rendered and are reported in Section.Dropped.
func RenderSection(version string, date time.Time, coll *fragment.Collection, cats Categories) Section {
	section := Section{
		Version: version,
		Date:    date.Format(DateLayout),
	}

	lines := []string{formatHeading(version, section.Date), ""}

	if coll != nil {
		for _, cat := range cats {
			frags, ok := coll.ByCategory[cat.Key]
			if !ok {
				continue
			}
			lines = append(lines, cat.Header)
			for _, f := range frags {
				lines = append(lines, formatBullet(f.Text))
				section.Included = append(section.Included, f)
			}
			lines = append(lines, "")
		}

		for _, key := range coll.Keys() {
			if !cats.Has(key) {
				section.Dropped = append(section.Dropped, DroppedCategory{
					Category: key,
					Count:    len(coll.ByCategory[key]),
				})
			}
		}
	}

	section.Text = strings.Join(lines, "\n")
	return section
}

func formatHeading(version, date string) string {
	return fmt.Sprintf("## %s (%s)", version, date)
}

func formatBullet(text string) string {
	return "- " + text
}
