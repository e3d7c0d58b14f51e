// Package markup renders the inline content trees found in page descriptors
// into HTML. A tree is the parsed EDN form `[:tag attrs? child ...]`: the tag
// is a keyword, an optional map supplies attributes, and children are
// strings, nested trees, or sequences of either.
package markup

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"olympos.io/encoding/edn"
)

// voidElements never take a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Render converts a markup tree to an HTML string.
func Render(tree any) (string, error) {
	var b strings.Builder
	if err := renderNode(&b, tree); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderNode(b *strings.Builder, node any) error {
	switch n := node.(type) {
	case nil:
		return nil
	case string:
		b.WriteString(html.EscapeString(n))
		return nil
	case edn.Keyword:
		return fmt.Errorf("bare keyword %v outside element position", n)
	case []any:
		if len(n) > 0 {
			if tag, ok := n[0].(edn.Keyword); ok {
				return renderElement(b, string(tag), n[1:])
			}
		}
		// A plain sequence splices its members in place.
		for _, child := range n {
			if err := renderNode(b, child); err != nil {
				return err
			}
		}
		return nil
	case int, int64, float64:
		fmt.Fprintf(b, "%v", n)
		return nil
	default:
		return fmt.Errorf("unsupported markup node %T", node)
	}
}

func renderElement(b *strings.Builder, tag string, rest []any) error {
	attrs := ""
	if len(rest) > 0 {
		if m, ok := attrMap(rest[0]); ok {
			attrs = renderAttrs(m)
			rest = rest[1:]
		}
	}

	b.WriteString("<" + tag + attrs)
	if voidElements[tag] {
		b.WriteString(" />")
		return nil
	}
	b.WriteString(">")
	for _, child := range rest {
		if err := renderNode(b, child); err != nil {
			return err
		}
	}
	b.WriteString("</" + tag + ">")
	return nil
}

// attrMap normalises the two map shapes the EDN decoder can hand back.
func attrMap(v any) (map[any]any, bool) {
	switch m := v.(type) {
	case map[any]any:
		return m, true
	case map[edn.Keyword]any:
		out := make(map[any]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// renderAttrs serialises an attribute map in sorted key order so output is
// deterministic across builds.
func renderAttrs(m map[any]any) string {
	type attr struct{ k, v string }
	attrs := make([]attr, 0, len(m))
	for k, v := range m {
		key := fmt.Sprintf("%v", k)
		if kw, ok := k.(edn.Keyword); ok {
			key = string(kw)
		}
		switch val := v.(type) {
		case bool:
			if val {
				attrs = append(attrs, attr{k: key, v: key})
			}
		case edn.Keyword:
			attrs = append(attrs, attr{k: key, v: string(val)})
		default:
			attrs = append(attrs, attr{k: key, v: fmt.Sprintf("%v", val)})
		}
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].k < attrs[j].k })

	var b strings.Builder
	for _, a := range attrs {
		fmt.Fprintf(&b, ` %s="%s"`, a.k, html.EscapeString(a.v))
	}
	return b.String()
}
