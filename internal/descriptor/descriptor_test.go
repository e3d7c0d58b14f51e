package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "github.com/axvr/axvr.uk/internal/errors"
)

func TestParse_FullDescriptor(t *testing.T) {
	doc := `{:title     "My Post"
 :subtitle  "A subtitle"
 :author    "Alex"
 :content   "post.md"
 :published "2021-03-01"
 :updated   "2021-06-15"
 :keywords  ["go" "web"]
 :requires  ["images/diagram.png"]
 :misc?     true}`

	d, err := Parse("post.edn", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "My Post", d.Title)
	assert.Equal(t, "A subtitle", d.Subtitle)
	assert.Equal(t, "Alex", d.Author)
	assert.Equal(t, "post.md", d.Content)
	assert.Equal(t, "2021-03-01", d.Published)
	assert.Equal(t, "2021-06-15", d.Updated)
	assert.Equal(t, []string{"go", "web"}, d.Keywords)
	assert.Equal(t, []string{"images/diagram.png"}, d.Requires)
	assert.True(t, d.Misc)
	assert.False(t, d.HasInlineContent())
}

func TestParse_InlineContentTree(t *testing.T) {
	d, err := Parse("page.edn", []byte(`{:title "Inline" :content [:p "hello"]}`))
	require.NoError(t, err)
	assert.True(t, d.HasInlineContent())
}

func TestParse_UnrecognisedKeysPassThrough(t *testing.T) {
	d, err := Parse("page.edn", []byte(`{:title "T" :banner "hello.png"}`))
	require.NoError(t, err)
	require.NotNil(t, d.Extra)
	assert.Equal(t, "hello.png", d.Extra["banner"])
	assert.NotContains(t, d.Extra, "title")
}

func TestParse_EmptyDescriptor(t *testing.T) {
	d, err := Parse("page.edn", []byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, d.Title)
	assert.Nil(t, d.Content)
	assert.False(t, d.HasInlineContent())
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("bad.edn", []byte(`{:title`))
	require.Error(t, err)
	assert.True(t, siteerrors.IsCategory(err, siteerrors.CategoryDescriptor))
	assert.True(t, siteerrors.IsFatal(err))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir() + "/absent.edn")
	require.Error(t, err)
	assert.True(t, siteerrors.IsCategory(err, siteerrors.CategoryDescriptor))
}
