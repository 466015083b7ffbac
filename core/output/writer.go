// Package output handles file naming and writing for docpipe outputs.
// Documents known to the metadata index mirror their site path
// (e.g. /guides/intro → ./guides/intro.md); everything else gets a flat
// name derived from the doc id, URL or input file.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/docpipe/core"
	"github.com/gaurav-prasanna/docpipe/core/fetch"
)

var unsafeChar = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Writer writes rendered output below a root directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer rooted at outputDir (the working directory when
// empty), creating the directory if needed.
func New(outputDir string) (*Writer, error) {
	dir := outputDir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("resolving output directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: dir}, nil
}

// Write stores data for source and returns the file path. A resolved
// meta.Path takes precedence over the source-derived name.
func (w *Writer) Write(source string, meta core.DocMeta, data []byte, ext string) (string, error) {
	rel := Name(source)
	if meta.Path != "" {
		rel = sitePath(meta.Path)
	}

	target := filepath.Join(w.OutputDir, filepath.FromSlash(rel)+ext)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", target, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	return target, nil
}

// sitePath cleans a site path into a relative slash path that cannot
// climb out of the output directory.
func sitePath(p string) string {
	rel := strings.TrimPrefix(path.Clean("/"+p), "/")
	if rel == "" {
		return "index"
	}
	return rel
}

// Name derives a flat output name from a source argument.
//
//	1AbC...xyz                                → 1AbC...xyz
//	https://docs.google.com/document/d/ID/edit → ID
//	https://example.com/docs/intro            → example_com_docs_intro
//	exports/My Doc.html                        → My_Doc
func Name(source string) string {
	switch {
	case source == "" || source == "-":
		return "document"
	case fetch.IsDocID(source):
		return source
	case fetch.IsURL(source):
		if id, ok := fetch.DocIDFromURL(source); ok {
			return id
		}
		u, err := url.Parse(source)
		if err != nil {
			return sanitize(source)
		}
		segments := append([]string{u.Host}, strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })...)
		return sanitize(strings.Join(segments, "_"))
	default:
		base := filepath.Base(source)
		return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
	}
}

func sanitize(s string) string {
	return unsafeChar.ReplaceAllString(s, "_")
}
