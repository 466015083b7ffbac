// Package normalize implements the Normalizer interface.
// It rewrites a Google Docs HTML export into the constrained dialect the
// documentation site renders:
//  1. Removes the generated table of contents
//  2. Removes comment threads and inline comment markers
//  3. Allow-lists styles and classes, collapsing unstyled <span> wrappers
//  4. Unwraps google.com redirector links, resolving intra-corpus docs
//  5. Hoists the <head> <style> block into the body
package normalize

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/docpipe/core"
	"github.com/gaurav-prasanna/docpipe/core/meta"
)

var _ core.Normalizer = (*Normalizer)(nil)

var (
	// Present on exports that were already cleaned by the library.
	cleanMarker = cascadia.MustCompile(`meta[name="library-html-doc"]`)

	// Footer comment threads and the inline markers that point at them.
	commentThread = cascadia.MustCompile(`a[href^="#cmnt_ref"][id^="cmnt"]`)
	commentMarker = cascadia.MustCompile(`a[id^="cmnt"]`)

	// The lst- rules behind the level-N list classes live here.
	headStyle = cascadia.MustCompile("head style")
)

// Normalizer rewrites exported HTML. It holds no per-document state and is
// safe for concurrent use if its resolver is.
type Normalizer struct {
	resolver core.MetaResolver
	log      *slog.Logger
}

// New creates a Normalizer. A nil resolver never rewrites to a site path,
// and a nil logger discards.
func New(resolver core.MetaResolver, log *slog.Logger) *Normalizer {
	if resolver == nil {
		resolver = meta.Nop{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Normalizer{resolver: resolver, log: log}
}

// stats counts what a single Normalize call changed, for debug logging.
type stats struct {
	tocRemoved     int
	spansCollapsed int
	linksRewritten int
	linksResolved  int
}

// Normalize returns the processed <body> contents, prefixed by any <style>
// found in <head>.
func (n *Normalizer) Normalize(src string) (string, error) {
	// An &nbsp; inside a code block would otherwise survive as escaped markup.
	src = strings.ReplaceAll(src, "&nbsp;", " ")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	isClean := doc.FindMatcher(cleanMarker).AttrOr("content", "") == "1"

	var st stats
	st.tocRemoved = removeTOC(doc.Find("p"))

	doc.Find("div").HasMatcher(commentThread).Remove()
	doc.Find("sup").HasMatcher(commentMarker).Remove()

	body := doc.Find("body")
	body.Find("*").Each(func(_ int, el *goquery.Selection) {
		n.cleanElement(el, isClean, &st)
	})

	body.PrependSelection(doc.FindMatcher(headStyle).Clone())

	out, err := body.Html()
	if err != nil {
		return "", fmt.Errorf("serializing body: %w", err)
	}

	n.log.Debug("normalized document",
		"clean", isClean,
		"toc_removed", st.tocRemoved,
		"spans_collapsed", st.spansCollapsed,
		"links_rewritten", st.linksRewritten,
		"links_resolved", st.linksResolved,
	)
	return out, nil
}

// cleanElement applies the per-element rules to one descendant of <body>.
func (n *Normalizer) cleanElement(el *goquery.Selection, isClean bool, st *stats) {
	tag := goquery.NodeName(el)

	if style := el.AttrOr("style", ""); style != "" {
		if kept := FilterStyle(tag, style); kept != "" {
			el.SetAttr("style", kept)
		} else if !isClean {
			el.RemoveAttr("style")
		}
	}

	if tag == "span" && el.AttrOr("style", "") == "" {
		unwrap(el.Get(0))
		st.spansCollapsed++
		return
	}

	if class := el.AttrOr("class", ""); (tag == "ol" || tag == "ul") && class != "" {
		el.SetAttr("class", withListLevel(class))
	} else if !isClean {
		el.RemoveAttr("class")
	}

	if tag == "a" {
		if href := el.AttrOr("href", ""); href != "" {
			if target, resolved, ok := n.rewriteLink(href); ok {
				el.SetAttr("href", target)
				st.linksRewritten++
				if resolved {
					st.linksResolved++
				}
			}
		}
	}
}
