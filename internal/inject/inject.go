// Package inject implements the {{ name }} placeholder substitution used for
// both page content and master template assembly.
package inject

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholder matches `{{ identifier }}`; identifier = [\w-]+ with arbitrary
// whitespace tolerated inside the delimiters.
var placeholder = regexp.MustCompile(`\{\{\s*([\w-]+)\s*\}\}`)

// MissingPlaceholderError reports a placeholder whose identifier has no entry
// in the lookup table. Substituting silently would emit broken pages, so this
// is always surfaced as a build-time error.
type MissingPlaceholderError struct {
	Name string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("missing placeholder %q", e.Name)
}

// Inject replaces every placeholder in text with its value from lookup.
// Replacement is a single deterministic left-to-right scan; substituted
// values are never re-scanned, so injection cannot recurse. The first
// unresolvable identifier aborts with a MissingPlaceholderError.
func Inject(text string, lookup map[string]string) (string, error) {
	var missing *MissingPlaceholderError
	out := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		if missing != nil {
			return m
		}
		name := strings.TrimSpace(m[2 : len(m)-2])
		val, ok := lookup[name]
		if !ok {
			missing = &MissingPlaceholderError{Name: name}
			return m
		}
		return val
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}
