package normalize

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// tocLookahead is the last paragraph index at which a TOC may still start.
const tocLookahead = 7

var (
	// Same-document heading links look like #h.abc123.
	headingHref = regexp.MustCompile(`#h.`)
	pageNumber  = regexp.MustCompile(`(?m)\d+$`)
)

// IsTOCCandidate reports whether p is a generated table of contents line:
// exactly two links to the same heading, the second being a page number.
func IsTOCCandidate(p *goquery.Selection) bool {
	links := p.Find("a")
	if links.Length() != 2 {
		return false
	}

	first, ok := links.Eq(0).Attr("href")
	if !ok || !headingHref.MatchString(first) {
		return false
	}
	if second, _ := links.Eq(1).Attr("href"); second != first {
		return false
	}
	return pageNumber.MatchString(links.Eq(1).Text())
}

// removeTOC scans paragraphs in document order and removes TOC lines.
// The scan stops at the first non-TOC paragraph after a TOC line, or past
// the lookahead when no TOC line has been seen. paragraphs is a snapshot
// taken before any removal. It returns the number of paragraphs removed.
func removeTOC(paragraphs *goquery.Selection) int {
	removed := 0
	for i, node := range paragraphs.Nodes {
		if node.FirstChild == nil {
			continue
		}

		p := paragraphs.Eq(i)
		inTOC := IsTOCCandidate(p)

		if !inTOC && i > 0 && IsTOCCandidate(paragraphs.Eq(i-1)) {
			break
		}
		if !inTOC && i > tocLookahead {
			break
		}
		if inTOC {
			p.Remove()
			removed++
		}
	}
	return removed
}
