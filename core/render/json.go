// Package render — JSON renderer.
// Builds a structured JSON view of the processed fragment: headings, links,
// code blocks, inline code and list count, plus the fragment itself.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/docpipe/core"
)

// JSONRenderer produces structured JSON output from a fragment.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the fragment and metadata into the DocJSON structure.
func (r *JSONRenderer) Render(fragment string, meta core.DocMeta) ([]byte, error) {
	structure, err := Structure(fragment)
	if err != nil {
		return nil, err
	}

	doc := core.DocJSON{
		Metadata:  meta,
		Structure: structure,
		HTML:      fragment,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Structure extracts the structural summary of a processed fragment.
func Structure(fragment string) (core.DocStructure, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return core.DocStructure{}, fmt.Errorf("parsing fragment: %w", err)
	}

	s := core.DocStructure{
		Headings:   []core.Heading{},
		Links:      []core.Link{},
		CodeBlocks: []core.CodeBlock{},
		InlineCode: []string{},
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		s.Headings = append(s.Headings, core.Heading{
			Level: int(goquery.NodeName(h)[1] - '0'),
			Text:  collapseSpace(h.Text()),
		})
	})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		s.Links = append(s.Links, core.Link{
			Text: collapseSpace(a.Text()),
			Href: a.AttrOr("href", ""),
		})
	})

	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		s.CodeBlocks = append(s.CodeBlocks, core.CodeBlock{
			Type: pre.AttrOr("type", ""),
			Text: pre.Text(),
		})
	})

	doc.Find("tt").Each(func(_ int, tt *goquery.Selection) {
		s.InlineCode = append(s.InlineCode, tt.Text())
	})

	// Nested lists belong to their outer list.
	s.Lists = doc.Find("ul, ol").Not("li ul, li ol").Length()

	return s, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
