// Package crawl — link rules.
// Decides which hrefs in an export point at another document of the corpus.
package crawl

import (
	"regexp"

	"github.com/gaurav-prasanna/docpipe/core/normalize"
)

// Only word-processor documents are followed; sheets, slides and drive
// files share the /d/<id> shape but have no HTML export.
var documentURL = regexp.MustCompile(`(?i)docs\.google\.com/document/(?:u/\d+/)?d/([A-Za-z0-9_-]+)`)

// LinkedDocID returns the id of the document an export href points to.
// Redirector-wrapped links are unwrapped first.
func LinkedDocID(href string) (string, bool) {
	target := href
	if unwrapped, ok := normalize.UnwrapRedirect(href); ok {
		target = unwrapped
	}
	m := documentURL.FindStringSubmatch(target)
	if m == nil {
		return "", false
	}
	return m[1], true
}
