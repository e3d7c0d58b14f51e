// Package page implements the transformation pipeline that turns a raw page
// descriptor into a fully rendered output string.
package page

import (
	"fmt"

	"github.com/axvr/axvr.uk/internal/descriptor"
)

// Record is the working value for one page. It is created at pipeline start
// from the descriptor and the site configuration, threaded through the
// stages (each stage returns a new record), and consumed exactly once by
// emission. A field is read by a stage only if a strictly earlier stage (or
// the original descriptor) produced it.
type Record struct {
	Desc *descriptor.Descriptor

	// Site is the read-only key/value configuration merged into the
	// placeholder lookup of every page.
	Site     map[string]any
	SiteName string

	// InputPath locates the descriptor on disk; RelPath is its position
	// relative to the source root and names the page in logs and errors.
	// OutputPath is derived once and never recomputed.
	InputPath  string
	RelPath    string
	SourceRoot string
	OutputPath string

	// Derived fields, in order of production.
	Redirect    string // refresh-meta fragment, or empty
	Head        string // normalised extra head tags, or empty
	Keywords    string // comma-joined keyword list
	Content     string // resolved HTML body
	Breadcrumbs string // navigation fragment, or empty for the root page
	Intro       string // title/subtitle/date block, or empty without a title
	PageTitle   string // composed <title> value
	FinalPage   string // the rendered output string
}

// Lookup builds the placeholder table for injection. Every recognised and
// derived field is always present (possibly empty), so a missing-placeholder
// error can only name an identifier outside the page model. Descriptor
// fields shadow site configuration keys of the same name.
func (r Record) Lookup() map[string]string {
	m := make(map[string]string, len(r.Site)+len(r.Desc.Extra)+16)
	for k, v := range r.Site {
		m[k] = fmt.Sprintf("%v", v)
	}
	for k, v := range r.Desc.Extra {
		m[k] = fmt.Sprintf("%v", v)
	}

	m["title"] = r.Desc.Title
	m["subtitle"] = r.Desc.Subtitle
	// A page-level author overrides the site author; an absent one must not
	// blank it out.
	if _, ok := m["author"]; !ok || r.Desc.Author != "" {
		m["author"] = r.Desc.Author
	}
	m["published"] = r.Desc.Published
	m["updated"] = r.Desc.Updated
	m["page-title"] = r.PageTitle
	m["keywords"] = r.Keywords
	m["redirect"] = r.Redirect
	m["head"] = r.Head
	m["content"] = r.Content
	m["breadcrumbs"] = r.Breadcrumbs
	m["intro"] = r.Intro

	return m
}
