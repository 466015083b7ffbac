package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/docpipe/core"
)

const fragment = `<style>.lst-a-0>li:before{content:"\0025cf  "}</style>
<h1 id="h.one">Overview</h1>
<p>See <a href="/guides/two">the guide</a> and run <tt>make</tt>.</p>
<ul class="lst-a-0 level-0">
  <li>first
    <ul class="lst-a-1 level-1">
      <li>nested</li>
    </ul>
  </li>
  <li>second</li>
</ul>
<h2>Install</h2>
<pre type="sh">echo "hi"
exit 0</pre>
<ol class="lst-b-0 level-0">
  <li>one</li>
</ol>
`

var meta = core.DocMeta{ID: "doc123", Path: "/guides/overview", Title: "Overview"}

func TestHTMLRenderer_Passthrough(t *testing.T) {
	r := NewHTMLRenderer()

	out, err := r.Render(fragment, meta)
	require.NoError(t, err)
	assert.Equal(t, fragment, string(out))
	assert.Equal(t, ".html", r.Extension())
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer()

	out, err := r.Render(fragment, meta)
	require.NoError(t, err)
	md := string(out)

	assert.Contains(t, md, "---\ntitle: Overview\npath: /guides/overview\ndoc_id: doc123\n---\n")
	assert.Contains(t, md, "# Overview")
	assert.Contains(t, md, "## Install")
	assert.Contains(t, md, "[the guide](/guides/two)")
	assert.Contains(t, md, "`make`")
	assert.Contains(t, md, "```sh\necho \"hi\"\nexit 0\n```")
	assert.NotContains(t, md, "content:")
	assert.NotContains(t, md, "<pre")
	assert.Equal(t, ".md", r.Extension())
}

func TestMarkdownRenderer_NoFrontMatterWithoutMeta(t *testing.T) {
	out, err := NewMarkdownRenderer().Render("<p>hello</p>", core.DocMeta{})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestMarkdownRenderer_CodeBlockWithoutType(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(`<pre type="">plain</pre>`, core.DocMeta{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "```\nplain\n```")
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer()

	out, err := r.Render(fragment, meta)
	require.NoError(t, err)

	var doc core.DocJSON
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, meta, doc.Metadata)
	assert.Equal(t, fragment, doc.HTML)
	assert.Equal(t, []core.Heading{{Level: 1, Text: "Overview"}, {Level: 2, Text: "Install"}}, doc.Structure.Headings)
	assert.Equal(t, []core.Link{{Text: "the guide", Href: "/guides/two"}}, doc.Structure.Links)
	assert.Equal(t, []core.CodeBlock{{Type: "sh", Text: "echo \"hi\"\nexit 0"}}, doc.Structure.CodeBlocks)
	assert.Equal(t, []string{"make"}, doc.Structure.InlineCode)
	assert.Equal(t, 2, doc.Structure.Lists)
	assert.Equal(t, ".json", r.Extension())
}

func TestStructure_EmptyFragmentHasEmptySlices(t *testing.T) {
	s, err := Structure("")
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"headings":[],"links":[],"code_blocks":[],"inline_code":[],"lists":0}`, string(data))
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()

	out, err := r.Render(fragment+`<table><tr><td>a</td><td>b</td></tr></table><p>“smart” café</p>`, meta)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, ".pdf", r.Extension())
}

func TestRenderersSatisfyInterface(t *testing.T) {
	for _, r := range []core.Renderer{
		NewHTMLRenderer(),
		NewMarkdownRenderer(),
		NewJSONRenderer(),
		NewPDFRenderer(),
	} {
		assert.NotEmpty(t, r.Extension())
	}
}
