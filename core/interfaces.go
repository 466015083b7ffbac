// Package core defines the pipeline interfaces for docpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"errors"
)

// ErrEmptySource is returned when a caller hands the pipeline an empty document.
var ErrEmptySource = errors.New("empty source document")

// FetchResult holds the raw export HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// DocMeta is what the metadata resolver knows about a document in the corpus.
type DocMeta struct {
	ID    string `json:"id" yaml:"id"`
	Path  string `json:"path" yaml:"path"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Heading represents a single heading found in the processed fragment.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the processed fragment.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// CodeBlock is a <pre> block produced by the code formatter.
type CodeBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// DocStructure holds structural information parsed from a processed fragment.
type DocStructure struct {
	Headings   []Heading   `json:"headings"`
	Links      []Link      `json:"links"`
	CodeBlocks []CodeBlock `json:"code_blocks"`
	InlineCode []string    `json:"inline_code"`
	Lists      int         `json:"lists"`
}

// DocJSON is the complete JSON output for a single document.
type DocJSON struct {
	Metadata  DocMeta      `json:"metadata"`
	Structure DocStructure `json:"structure"`
	HTML      string       `json:"html"`
}

// Fetcher retrieves raw export HTML for a URL or document id.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// MetaResolver maps a document id to its canonical site metadata.
// A false second return is a valid "no rewrite" answer, not an error.
type MetaResolver interface {
	ResolveMeta(docID string) (DocMeta, bool)
}

// Normalizer rewrites exported HTML into the constrained body fragment.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// CodeFormatter expands code markup in a normalized fragment.
type CodeFormatter interface {
	Format(html string) string
}

// Renderer converts a processed fragment (and metadata) into a final output format.
type Renderer interface {
	Render(fragment string, meta DocMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
