// Package render — Markdown renderer.
// Converts the processed fragment to Markdown with html-to-markdown, after
// mapping the site dialect (<pre type>, <tt>) onto the elements the
// converter understands (<pre><code class="language-…">, <code>).
package render

import (
	"bytes"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/docpipe/core"
)

// MarkdownRenderer converts the fragment to Markdown with YAML front matter.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// frontMatter is written ahead of the Markdown body when meta has content.
type frontMatter struct {
	Title string `yaml:"title,omitempty"`
	Path  string `yaml:"path,omitempty"`
	ID    string `yaml:"doc_id,omitempty"`
}

// Render converts the fragment into Markdown bytes.
func (r *MarkdownRenderer) Render(fragment string, meta core.DocMeta) ([]byte, error) {
	prepared, err := toConverterHTML(fragment)
	if err != nil {
		return nil, err
	}

	markdown, err := htmltomarkdown.ConvertString(prepared)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}

	var buf bytes.Buffer
	fm := frontMatter{Title: meta.Title, Path: meta.Path, ID: meta.ID}
	if fm != (frontMatter{}) {
		data, err := yaml.Marshal(fm)
		if err != nil {
			return nil, fmt.Errorf("marshaling front matter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(data)
		buf.WriteString("---\n\n")
	}
	buf.WriteString(strings.TrimSpace(markdown))
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// toConverterHTML rewrites site-dialect code markup into standard elements.
func toConverterHTML(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parsing fragment: %w", err)
	}

	// The hoisted list CSS has no Markdown equivalent.
	doc.Find("style").Remove()

	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		code := &html.Node{Type: html.ElementNode, Data: "code", DataAtom: atom.Code}
		if lang := strings.TrimSpace(pre.AttrOr("type", "")); lang != "" {
			code.Attr = []html.Attribute{{Key: "class", Val: "language-" + lang}}
		}
		code.AppendChild(&html.Node{Type: html.TextNode, Data: pre.Text()})
		pre.Empty()
		pre.RemoveAttr("type")
		pre.AppendNodes(code)
	})

	doc.Find("tt").Each(func(_ int, tt *goquery.Selection) {
		n := tt.Get(0)
		n.Data, n.DataAtom = "code", atom.Code
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing fragment: %w", err)
	}
	return out, nil
}
