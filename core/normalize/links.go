package normalize

import (
	"net/url"
	"regexp"
	"strconv"
)

var (
	// Google wraps every external link in its redirector.
	redirector = regexp.MustCompile(`https://www.google.com/url\?q=(.+)&sa=`)

	// Links to other docs in the corpus: docs.google.com/document/d/<id>/edit.
	docReference = regexp.MustCompile(`(?i)docs\.google\.com.+/d/([^/]+)`)

	percentEscape = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
)

// UnwrapRedirect returns the decoded target of a redirector link.
func UnwrapRedirect(href string) (string, bool) {
	m := redirector.FindStringSubmatch(href)
	if m == nil {
		return "", false
	}
	target, err := url.PathUnescape(m[1])
	if err != nil {
		return lenientUnescape(m[1]), true
	}
	return target, true
}

// lenientUnescape decodes every well-formed %XX and leaves malformed
// escapes as written. '+' is not a space here.
func lenientUnescape(s string) string {
	return percentEscape.ReplaceAllStringFunc(s, func(esc string) string {
		b, _ := strconv.ParseUint(esc[1:], 16, 8)
		return string([]byte{byte(b)})
	})
}

// DocID extracts the document id from a Google Docs URL.
func DocID(target string) (string, bool) {
	m := docReference.FindStringSubmatch(target)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// rewriteLink computes the new href for a redirector link. resolved is true
// when the target was mapped to a site path; ok is false for any other href.
func (n *Normalizer) rewriteLink(href string) (target string, resolved, ok bool) {
	target, ok = UnwrapRedirect(href)
	if !ok {
		return "", false, false
	}
	if id, isDoc := DocID(target); isDoc {
		if m, found := n.resolver.ResolveMeta(id); found && m.Path != "" {
			return m.Path, true, true
		}
	}
	return target, false, true
}
