// Package breadcrumbs renders the navigation trail shown on every page that
// sits below the site root.
package breadcrumbs

import (
	"fmt"
	"html"
	"strings"
)

// separator joins adjacent breadcrumb parts.
const separator = " &raquo; "

// Build renders a breadcrumb trail from a page's segment list. Links are
// relative so the site can be served from any path prefix: a segment at
// distance d from the final segment links d levels up. The final segment is
// the current page and is rendered as plain text. When misc is set a literal
// "misc" crumb is inserted between the home link and the derived segments.
//
// The caller is responsible for the no-path sentinel; Build assumes at least
// one segment.
func Build(segments []string, misc bool) string {
	up := strings.Repeat("../", len(segments)-1)
	home := up
	if home == "" {
		home = "./"
	}

	parts := []string{anchor(home, "home")}
	if misc {
		parts = append(parts, anchor(up+"misc/", "misc"))
	}
	for i, seg := range segments {
		if i == len(segments)-1 {
			parts = append(parts, html.EscapeString(seg))
			continue
		}
		depth := strings.Repeat("../", len(segments)-1-i)
		parts = append(parts, anchor(depth+seg+"/", seg))
	}

	return fmt.Sprintf(`<nav class="breadcrumbs">%s</nav>`, strings.Join(parts, separator))
}

func anchor(href, text string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, html.EscapeString(text))
}
