package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/docpipe/core"
	"github.com/gaurav-prasanna/docpipe/core/meta"
	"github.com/gaurav-prasanna/docpipe/core/render"
	"github.com/gaurav-prasanna/docpipe/crawl"
)

const testDocID = "1AbCdEfGhIjKlMnOpQrStUvWxYz"

const exportHTML = `<html><head><title>Setup Guide</title></head><body>` +
	`<p class="c2"><a href="#h.a">Install</a><a href="#h.a">1</a></p>` +
	`<h1 id="h.a" class="c4">Install</h1>` +
	`<p><span>Run ` + "`make`" + `</span></p>` +
	`</body></html>`

// resetFlags restores flag variables between in-process command runs.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagHTML, flagMarkdown, flagJSON, flagPDF = false, false, false, false
		flagStdout, flagOutputDir, flagMeta = false, "", ""
		flagAllowInlineCode, flagVerbose = false, false
		flagAll, flagMaxDocs = false, crawl.DefaultMaxDocs
		for _, name := range []string{"html", "markdown", "json", "pdf", "stdout", "output_dir", "meta", "allow-inline-code", "all", "max_docs"} {
			if f := processCmd.Flags().Lookup(name); f != nil {
				f.Changed = false
			}
		}
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setup.html")
	require.NoError(t, os.WriteFile(path, []byte(exportHTML), 0644))
	return path
}

func TestProcess_Stdout(t *testing.T) {
	out, err := execute(t, "process", writeExport(t), "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "<h1 id=\"h.a\">Install</h1>\n<p>Run <tt>make</tt></p>\n", out)
}

func TestProcess_WritesFile(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "process", writeExport(t), "--markdown", "--output_dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "setup.md")
	assert.Equal(t, "✓ Written: "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\ntitle: Setup Guide\n---\n"))
	assert.Contains(t, string(data), "# Install")
}

func TestProcess_RejectsTwoFormats(t *testing.T) {
	_, err := execute(t, "process", writeExport(t), "--json", "--pdf")
	assert.ErrorContains(t, err, "only one output format allowed per run (got 2)")
}

func TestProcess_MissingFile(t *testing.T) {
	_, err := execute(t, "process", filepath.Join(t.TempDir(), "nope.html"), "--stdout")
	assert.ErrorContains(t, err, "reading")
}

func TestReadSource_Stdin(t *testing.T) {
	got, err := readSource(context.Background(), "-", strings.NewReader("<p>x</p>"))
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", got)
}

func TestSelectRenderer(t *testing.T) {
	resetFlags(t)

	assert.IsType(t, &render.HTMLRenderer{}, selectRenderer())
	flagJSON = true
	assert.IsType(t, &render.JSONRenderer{}, selectRenderer())
	flagJSON, flagPDF = false, true
	assert.IsType(t, &render.PDFRenderer{}, selectRenderer())
	flagPDF, flagMarkdown = false, true
	assert.IsType(t, &render.MarkdownRenderer{}, selectRenderer())
}

func TestBuildMetadata(t *testing.T) {
	idx := meta.NewIndex(map[string]core.DocMeta{
		testDocID: {Path: "/guides/setup", Title: "Setup"},
	})

	tests := []struct {
		name   string
		source string
		want   core.DocMeta
	}{
		{"indexed doc id", testDocID, core.DocMeta{ID: testDocID, Path: "/guides/setup", Title: "Setup"}},
		{"indexed doc url", "https://docs.google.com/document/d/" + testDocID + "/edit", core.DocMeta{ID: testDocID, Path: "/guides/setup", Title: "Setup"}},
		{"unknown doc id", "ZZZZZZZZZZZZZZZZZZZZZZZZZ", core.DocMeta{ID: "ZZZZZZZZZZZZZZZZZZZZZZZZZ", Title: "Setup Guide"}},
		{"file", "setup.html", core.DocMeta{Title: "Setup Guide"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildMetadata(tt.source, exportHTML, idx))
		})
	}
}

func TestLoadResolver(t *testing.T) {
	r, err := loadResolver("", newLogger())
	require.NoError(t, err)
	assert.IsType(t, meta.Nop{}, r)

	_, err = loadResolver(filepath.Join(t.TempDir(), "missing.yaml"), newLogger())
	assert.Error(t, err)
}

func TestValidateFlags_All(t *testing.T) {
	resetFlags(t)
	flagAll = true

	assert.NoError(t, validateFlags(testDocID))
	assert.NoError(t, validateFlags("https://docs.google.com/document/d/"+testDocID+"/edit"))
	assert.NoError(t, validateFlags("https://docs.google.com/document/u/0/d/"+testDocID+"/edit"))
	assert.ErrorContains(t, validateFlags("export.html"), "--all needs a document id")

	flagStdout = true
	assert.ErrorContains(t, validateFlags(testDocID), "mutually exclusive")
}
