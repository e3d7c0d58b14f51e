package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axvr/axvr.uk/internal/config"
	siteerrors "github.com/axvr/axvr.uk/internal/errors"
)

// fixture lays out a site project in a temp dir and returns its config.
type fixture struct {
	t    *testing.T
	root string
	cfg  *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		t:    t,
		root: root,
		cfg: &config.Config{
			Site:     map[string]any{"name": "Example Site"},
			Source:   filepath.Join(root, "pages"),
			Output:   filepath.Join(root, "dist"),
			Template: filepath.Join(root, "template.html"),
			Workers:  2,
		},
	}
	require.NoError(t, os.MkdirAll(f.cfg.Source, 0o755))
	f.write("template.html", "<html><head><title>{{page-title}}</title></head><body>{{breadcrumbs}}{{content}}</body></html>")
	return f
}

func (f *fixture) write(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
}

func (f *fixture) read(rel string) string {
	f.t.Helper()
	data, err := os.ReadFile(filepath.Join(f.root, rel))
	require.NoError(f.t, err)
	return string(data)
}

func TestBuild_TwoPageSite(t *testing.T) {
	f := newFixture(t)
	f.write("pages/index.edn", `{:title "Home" :content [:p "welcome"]}`)
	f.write("pages/blog/post.edn", `{:title "Post" :content "post.md"}`)
	f.write("pages/blog/post.md", "# Post\n\nbody text")

	report, err := NewBuilder(f.cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pages)
	assert.Zero(t, report.Failed)
	assert.NotEmpty(t, report.BuildID)

	index := f.read("dist/index.html")
	assert.Contains(t, index, "<p>welcome</p>")
	assert.Contains(t, index, "<title>Home | Example Site</title>")
	assert.NotContains(t, index, "breadcrumbs\"", "root page has no breadcrumb trail")
	assert.Contains(t, index, "<body><p>welcome</p></body>", "empty breadcrumbs substitute as empty string")

	post := f.read("dist/blog/post.html")
	assert.Contains(t, post, `<a href="../">home</a>`)
	assert.Contains(t, post, "post</nav>")
	assert.Contains(t, post, "body text")
	assert.Contains(t, post, "<title>Post | Example Site</title>")
}

func TestBuild_WipesStaleOutput(t *testing.T) {
	f := newFixture(t)
	f.write("pages/index.edn", `{:content [:p "x"]}`)
	f.write("dist/stale.html", "old")

	_, err := NewBuilder(f.cfg).Build(context.Background())
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(f.root, "dist/stale.html"))
	assert.True(t, os.IsNotExist(statErr), "output contents are wiped before every build")
}

func TestBuild_MalformedDescriptorAbortsBeforeOutput(t *testing.T) {
	f := newFixture(t)
	f.write("pages/bad.edn", `{:title`)
	f.write("dist/previous.html", "previous build")

	_, err := NewBuilder(f.cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, siteerrors.IsCategory(err, siteerrors.CategoryDescriptor))

	// Nothing was wiped or written.
	assert.Equal(t, "previous build", f.read("dist/previous.html"))
}

func TestBuild_MissingTemplateAborts(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.cfg.Template))
	f.write("pages/index.edn", `{}`)

	_, err := NewBuilder(f.cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, siteerrors.IsCategory(err, siteerrors.CategoryTemplate))
}

func TestBuild_CollectsAllPageFailures(t *testing.T) {
	f := newFixture(t)
	f.write("pages/ok.edn", `{:content [:p "fine"]}`)
	f.write("pages/missing1.edn", `{:content "gone.md"}`)
	f.write("pages/missing2.edn", `{:content "also-gone.md"}`)

	report, err := NewBuilder(f.cfg).Build(context.Background())
	require.Error(t, err, "build exits non-zero when any page fails")
	assert.Equal(t, 2, report.Failed, "all failing pages are reported, not just the first")
	assert.Len(t, report.Failures, 2)

	// The healthy page was still built.
	assert.Contains(t, f.read("dist/ok.html"), "<p>fine</p>")
}

func TestBuild_MissingPlaceholderFailsOnlyThatPage(t *testing.T) {
	f := newFixture(t)
	f.write("pages/good.edn", `{:content [:p "ok"]}`)
	f.write("pages/typo.edn", `{:content [:p "{{no-such-key}}"]}`)

	report, err := NewBuilder(f.cfg).Build(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, report.Failed)

	_, statErr := os.Stat(filepath.Join(f.root, "dist/typo.html"))
	assert.True(t, os.IsNotExist(statErr), "no partial output for a failed page")
	assert.Contains(t, f.read("dist/good.html"), "<p>ok</p>")
}

func TestBuild_RequiresCopiedAlongside(t *testing.T) {
	f := newFixture(t)
	f.write("pages/blog/post.edn", `{:content [:p "x"] :requires ["pic.png"]}`)
	f.write("pages/blog/pic.png", "png-bytes")

	report, err := NewBuilder(f.cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, "png-bytes", f.read("dist/blog/pic.png"))
}

func TestBuild_MissingRequireDoesNotFailBuild(t *testing.T) {
	f := newFixture(t)
	f.write("pages/p.edn", `{:content [:p "x"] :requires ["nope.png"]}`)

	report, err := NewBuilder(f.cfg).Build(context.Background())
	require.NoError(t, err, "side-file copy failures are reported, not fatal")
	assert.Len(t, report.Warnings, 1)
	assert.Contains(t, f.read("dist/p.html"), "<p>x</p>")
}

func TestBuild_PassThroughKeyUsableInTemplate(t *testing.T) {
	f := newFixture(t)
	f.write("template.html", "<html>{{content}}<footer>{{motto}}</footer></html>")
	f.write("pages/index.edn", `{:content [:p "x"] :motto "carpe diem"}`)

	_, err := NewBuilder(f.cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Contains(t, f.read("dist/index.html"), "<footer>carpe diem</footer>")
}
