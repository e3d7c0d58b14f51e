// Package descriptor loads the EDN page descriptor documents that declare
// each page's content and metadata.
package descriptor

import (
	"os"

	"olympos.io/encoding/edn"

	siteerrors "github.com/axvr/axvr.uk/internal/errors"
)

// Descriptor is one page as authored. Every field is optional; unrecognised
// keys are preserved in Extra so descriptors stay forward-compatible.
type Descriptor struct {
	Title     string   `edn:"title"`
	Subtitle  string   `edn:"subtitle"`
	Author    string   `edn:"author"`
	PageTitle string   `edn:"page-title"`
	Published string   `edn:"published"`
	Updated   string   `edn:"updated"`
	Keywords  []string `edn:"keywords"`
	Redirect  string   `edn:"redirect"`
	Requires  []string `edn:"requires"`
	Misc      bool     `edn:"misc?"`

	// Content is either a string (a path relative to the descriptor's own
	// directory) or an inline markup tree. Exactly one source is honoured.
	Content any `edn:"content"`
	// Head is a single extra head tag or a sequence of them.
	Head any `edn:"head"`

	// Extra carries unrecognised keys through to the placeholder lookup.
	Extra map[string]any `edn:"-"`
}

// recognised is the documented optional-field set; anything else lands in Extra.
var recognised = map[edn.Keyword]bool{
	"title": true, "subtitle": true, "author": true, "page-title": true,
	"content": true, "published": true, "updated": true, "keywords": true,
	"redirect": true, "head": true, "requires": true, "misc?": true,
}

// Load parses the descriptor document at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, siteerrors.MalformedDescriptor(path, err)
	}
	return Parse(path, data)
}

// Parse decodes a descriptor document. path is used for error reporting only.
func Parse(path string, data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := edn.Unmarshal(data, &d); err != nil {
		return nil, siteerrors.MalformedDescriptor(path, err)
	}

	// Second decode into a raw map to recover pass-through keys.
	var raw map[edn.Keyword]any
	if err := edn.Unmarshal(data, &raw); err != nil {
		return nil, siteerrors.MalformedDescriptor(path, err)
	}
	for k, v := range raw {
		if !recognised[k] {
			if d.Extra == nil {
				d.Extra = make(map[string]any)
			}
			d.Extra[string(k)] = v
		}
	}

	return &d, nil
}

// HasInlineContent reports whether content is an inline markup tree rather
// than a file reference.
func (d *Descriptor) HasInlineContent() bool {
	if d.Content == nil {
		return false
	}
	_, isPath := d.Content.(string)
	return !isPath
}
