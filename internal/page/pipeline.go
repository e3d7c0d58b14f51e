package page

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/axvr/axvr.uk/internal/breadcrumbs"
	"github.com/axvr/axvr.uk/internal/dates"
	siteerrors "github.com/axvr/axvr.uk/internal/errors"
	"github.com/axvr/axvr.uk/internal/inject"
	"github.com/axvr/axvr.uk/internal/markdown"
	"github.com/axvr/axvr.uk/internal/markup"
	"github.com/axvr/axvr.uk/internal/paths"
)

// Stage is one enrichment step. Each stage returns a new record; the input
// record is never mutated.
type Stage struct {
	Name string
	Fn   func(Record) (Record, error)
}

// StageError wraps a stage failure with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Pipeline is the fixed, ordered sequence of transform stages. The order is
// a hard contract: redirect, head, and keywords are order-independent among
// themselves but must precede the injection stages; content resolution must
// precede self-injection; breadcrumbs, intro, and page title must precede
// template injection.
type Pipeline struct {
	template string
	stages   []Stage
}

// New builds a pipeline rendering into the given master template.
func New(template string) *Pipeline {
	p := &Pipeline{template: template}
	p.stages = []Stage{
		{"redirect", stageRedirect},
		{"head", stageHead},
		{"keywords", stageKeywords},
		{"content", stageContent},
		{"breadcrumbs", stageBreadcrumbs},
		{"intro", stageIntro},
		{"page_title", stagePageTitle},
		{"self_inject", stageSelfInject},
		{"template_inject", p.stageTemplateInject},
	}
	return p
}

// Stages exposes the ordered stage names; the composition contract is unit
// tested against it.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run threads a record through every stage in order, stopping at the first
// failure.
func (p *Pipeline) Run(rec Record) (Record, error) {
	for _, st := range p.stages {
		next, err := st.Fn(rec)
		if err != nil {
			return rec, &StageError{Stage: st.Name, Err: err}
		}
		rec = next
	}
	return rec, nil
}

// stageRedirect turns a redirect target into a refresh-meta fragment.
func stageRedirect(r Record) (Record, error) {
	if r.Desc.Redirect != "" {
		r.Redirect = fmt.Sprintf(`<meta http-equiv="refresh" content="0; url=%s" />`,
			html.EscapeString(r.Desc.Redirect))
	}
	return r, nil
}

// stageHead normalises the extra head tags (one tag or a sequence) into a
// single HTML string.
func stageHead(r Record) (Record, error) {
	if r.Desc.Head == nil {
		return r, nil
	}
	out, err := markup.Render(r.Desc.Head)
	if err != nil {
		return r, fmt.Errorf("head markup: %w", err)
	}
	r.Head = out
	return r, nil
}

// stageKeywords joins the keyword sequence into one comma-separated string.
func stageKeywords(r Record) (Record, error) {
	r.Keywords = strings.Join(r.Desc.Keywords, ", ")
	return r, nil
}

// stageContent resolves the page body. A string is a path relative to the
// descriptor's own directory: Markdown renders through the Markdown
// renderer, anything else is read verbatim as already-HTML. A non-string is
// an inline markup tree. Exactly one source is honoured; no content at all
// is legal and yields an empty body.
func stageContent(r Record) (Record, error) {
	switch c := r.Desc.Content.(type) {
	case nil:
		return r, nil
	case string:
		src := filepath.Join(filepath.Dir(r.InputPath), c)
		data, err := os.ReadFile(src)
		if err != nil {
			return r, siteerrors.MissingContentSource(r.RelPath, c, err)
		}
		switch strings.ToLower(filepath.Ext(c)) {
		case ".md", ".markdown":
			out, err := markdown.Render(data)
			if err != nil {
				return r, err
			}
			r.Content = out
		default:
			r.Content = string(data)
		}
		return r, nil
	default:
		out, err := markup.Render(c)
		if err != nil {
			return r, fmt.Errorf("content markup: %w", err)
		}
		r.Content = out
		return r, nil
	}
}

// stageBreadcrumbs derives the navigation trail from the page's position in
// the source tree. The root page has no trail at all.
func stageBreadcrumbs(r Record) (Record, error) {
	segs, ok := paths.Segments(r.InputPath, r.SourceRoot)
	if !ok {
		return r, nil
	}
	r.Breadcrumbs = breadcrumbs.Build(segs, r.Desc.Misc)
	return r, nil
}

// stageIntro builds the title block. A page without a title has no intro.
func stageIntro(r Record) (Record, error) {
	if r.Desc.Title == "" {
		return r, nil
	}
	var b strings.Builder
	b.WriteString(`<header class="intro">`)
	b.WriteString("<h1>" + html.EscapeString(r.Desc.Title) + "</h1>")
	if r.Desc.Subtitle != "" {
		b.WriteString(`<p class="subtitle">` + html.EscapeString(r.Desc.Subtitle) + "</p>")
	}
	block, err := dates.RenderBlock(r.Desc.Published, r.Desc.Updated)
	if err != nil {
		return r, err
	}
	if block != "" {
		b.WriteString(block)
	}
	b.WriteString("</header>")
	r.Intro = b.String()
	return r, nil
}

// stagePageTitle composes the <title> value: an explicit page-title wins,
// then "title[: subtitle] | site name", then the bare site name.
func stagePageTitle(r Record) (Record, error) {
	switch {
	case r.Desc.PageTitle != "":
		r.PageTitle = r.Desc.PageTitle
	case r.Desc.Title != "":
		t := r.Desc.Title
		if r.Desc.Subtitle != "" {
			t += ": " + r.Desc.Subtitle
		}
		if r.SiteName != "" {
			t += " | " + r.SiteName
		}
		r.PageTitle = t
	default:
		r.PageTitle = r.SiteName
	}
	return r, nil
}

// stageSelfInject runs the injection engine over the resolved content with
// the page record itself as the lookup, so a body can reference its own
// metadata.
func stageSelfInject(r Record) (Record, error) {
	out, err := inject.Inject(r.Content, r.Lookup())
	if err != nil {
		return r, err
	}
	r.Content = out
	return r, nil
}

// stageTemplateInject substitutes the fully enriched record into the master
// template, producing the final page.
func (p *Pipeline) stageTemplateInject(r Record) (Record, error) {
	out, err := inject.Inject(p.template, r.Lookup())
	if err != nil {
		return r, err
	}
	r.FinalPage = out
	return r, nil
}
