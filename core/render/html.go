// Package render provides output renderers for the docpipe pipeline.
// This file implements the HTML renderer, which is a simple passthrough:
// the processed fragment is already what the documentation site serves.
package render

import (
	"github.com/gaurav-prasanna/docpipe/core"
)

// HTMLRenderer writes the processed fragment as-is.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns the fragment as bytes (passthrough).
func (r *HTMLRenderer) Render(fragment string, meta core.DocMeta) ([]byte, error) {
	return []byte(fragment), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
