// Package meta provides core.MetaResolver implementations.
// The pipeline only needs "document id → canonical site path"; where that
// mapping comes from (a YAML index, a drive listing, a test fixture) is
// up to the caller.
package meta

import (
	"fmt"
	"os"
	"sync"

	"github.com/gaurav-prasanna/docpipe/core"
	"gopkg.in/yaml.v3"
)

var (
	_ core.MetaResolver = (*Index)(nil)
	_ core.MetaResolver = Nop{}
)

// Index is an in-memory document id lookup. Safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	docs map[string]core.DocMeta
}

// indexFile is the on-disk YAML layout.
type indexFile struct {
	Documents []core.DocMeta `yaml:"documents"`
}

// NewIndex creates an Index from a map keyed by document id.
func NewIndex(docs map[string]core.DocMeta) *Index {
	idx := &Index{docs: make(map[string]core.DocMeta, len(docs))}
	for id, m := range docs {
		idx.Add(id, m)
	}
	return idx
}

// LoadIndex reads a YAML index file of the form:
//
//	documents:
//	  - id: 1AbC...
//	    path: /guides/getting-started
//	    title: Getting started
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading meta index: %w", err)
	}

	var f indexFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing meta index %s: %w", path, err)
	}

	idx := NewIndex(nil)
	for i, d := range f.Documents {
		if d.ID == "" {
			return nil, fmt.Errorf("meta index %s: document %d has no id", path, i)
		}
		idx.Add(d.ID, d)
	}
	return idx, nil
}

// Add registers (or replaces) the metadata for a document id.
func (idx *Index) Add(id string, m core.DocMeta) {
	if m.ID == "" {
		m.ID = id
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.docs[id] = m
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// ResolveMeta implements core.MetaResolver.
func (idx *Index) ResolveMeta(docID string) (core.DocMeta, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	m, ok := idx.docs[docID]
	return m, ok
}

// Nop never resolves anything.
type Nop struct{}

// ResolveMeta implements core.MetaResolver.
func (Nop) ResolveMeta(string) (core.DocMeta, bool) {
	return core.DocMeta{}, false
}
