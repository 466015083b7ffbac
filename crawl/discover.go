// Package crawl discovers the documents reachable from a starting document
// by following links between exports. It backs the process command's
// --all mode and stays separate from the transformation pipeline.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/docpipe/core"
)

// DefaultMaxDocs bounds a crawl when the caller passes no limit.
const DefaultMaxDocs = 100

// Document is one export fetched during discovery.
type Document struct {
	ID   string
	HTML string
}

// Discover fetches startID and every document linked from it, breadth
// first, up to maxDocs documents. Documents that fail to fetch are logged
// and skipped; only a failure on the start document is an error.
func Discover(ctx context.Context, startID string, fetcher core.Fetcher, maxDocs int, log *slog.Logger) ([]Document, error) {
	if maxDocs <= 0 {
		maxDocs = DefaultMaxDocs
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	queue := NewQueue()
	queue.Push(startID)

	var docs []Document
	for queue.Popped() < maxDocs {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		id, ok := queue.Pop()
		if !ok {
			break
		}

		result, err := fetcher.Fetch(ctx, id)
		if err != nil {
			if id == startID {
				return nil, fmt.Errorf("fetching %s: %w", id, err)
			}
			log.Warn("skipping linked document", "id", id, "error", err)
			continue
		}
		docs = append(docs, Document{ID: id, HTML: result.HTML})

		links, err := linkedDocIDs(result.HTML)
		if err != nil {
			log.Warn("skipping links", "id", id, "error", err)
			continue
		}
		added := 0
		for _, linked := range links {
			if queue.Push(linked) {
				added++
			}
		}
		log.Debug("crawled document", "id", id, "links", len(links), "new", added)
	}

	log.Debug("discovery finished",
		"fetched", len(docs),
		"seen", queue.Seen(),
		"left_unvisited", queue.Pending(),
	)
	return docs, nil
}

// linkedDocIDs extracts the ids of all documents linked from an export.
func linkedDocIDs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var ids []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if id, ok := LinkedDocID(s.AttrOr("href", "")); ok {
			ids = append(ids, id)
		}
	})
	return ids, nil
}
