// Package dates parses the constrained ISO-8601 timestamps used by page
// descriptors and renders the publish/revision block shown under a page
// title. Display locale and timezone are fixed site-wide.
package dates

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// monthYear is the single display convention for dates on the site.
const monthYear = "January 2006"

// layouts accepted for descriptor dates: a calendar date optionally followed
// by a time of day and an optional zone designator.
var layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05.000000Z07:00",
}

// Parse reads a descriptor timestamp. Dates without a zone designator are
// taken as UTC, the site's display timezone.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// FormatMonthYear renders a date as "Month YYYY".
func FormatMonthYear(t time.Time) string {
	return t.Format(monthYear)
}

// SameMonthYear reports whether two dates render to the same "Month YYYY"
// string. Deliberately a rendering comparison, not calendar arithmetic:
// 2020-01-31 and 2020-01-01 are "close" despite being 30 days apart.
func SameMonthYear(a, b time.Time) bool {
	return FormatMonthYear(a) == FormatMonthYear(b)
}

// RenderBlock produces the HTML date fragment for a page. No published date
// means no fragment. An updated date in a different month or year is shown
// as a revision; a same-month revision is folded into the published display
// while the tooltip still carries both raw dates. That fold is a deliberate
// presentation choice: a same-month revision is not worth flagging.
func RenderBlock(published, updated string) (string, error) {
	if published == "" {
		return "", nil
	}
	pub, err := Parse(published)
	if err != nil {
		return "", fmt.Errorf("published: %w", err)
	}

	display := FormatMonthYear(pub)
	tooltip := published
	if updated != "" && updated != published {
		upd, err := Parse(updated)
		if err != nil {
			return "", fmt.Errorf("updated: %w", err)
		}
		tooltip = fmt.Sprintf("%s (rev. %s)", published, updated)
		if !SameMonthYear(pub, upd) {
			display = fmt.Sprintf("%s (rev. %s)", FormatMonthYear(pub), FormatMonthYear(upd))
		}
	}

	return fmt.Sprintf(`<time datetime="%s" title="%s">%s</time>`,
		html.EscapeString(published), html.EscapeString(tooltip), display), nil
}
