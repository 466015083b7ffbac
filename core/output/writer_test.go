package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/docpipe/core"
)

func TestName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1AbCdEfGhIjKlMnOpQrStUvWxYz", "1AbCdEfGhIjKlMnOpQrStUvWxYz"},
		{"https://docs.google.com/document/d/1AbCdEfGhIjKlMnOpQrStUvWxYz/edit", "1AbCdEfGhIjKlMnOpQrStUvWxYz"},
		{"https://example.com/docs/intro", "example_com_docs_intro"},
		{"https://example.com/", "example_com"},
		{"exports/My Doc.html", "My_Doc"},
		{"notes.htm", "notes"},
		{"-", "document"},
		{"", "document"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.source), "source %q", tt.source)
	}
}

func TestWriter_FlatName(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("exports/guide.html", core.DocMeta{}, []byte("# hi"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "guide.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(data))
}

func TestWriter_SitePath(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("ignored.html", core.DocMeta{Path: "/guides/intro/"}, []byte("x"), ".html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "guides", "intro.html"), path)
	assert.FileExists(t, path)
}

func TestWriter_SitePathStaysInsideOutputDir(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("x", core.DocMeta{Path: "/../../etc/passwd"}, []byte("x"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "etc", "passwd.md"), path)

	path, err = w.Write("x", core.DocMeta{Path: "/"}, []byte("x"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "index.md"), path)
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := New(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
