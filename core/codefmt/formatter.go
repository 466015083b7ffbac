// Package codefmt expands markdown-like code markup in a normalized fragment.
// It works on the serialized HTML string, not on a tree:
//  1. Paragraphs fenced by ``` become <pre type="lang"> blocks
//  2. `single backtick` spans become <tt> spans
//  3. Escaped <%- ... %> directives are rendered or dropped
package codefmt

import (
	"fmt"
	"html"
	"regexp"

	"github.com/gaurav-prasanna/docpipe/core"
)

var _ core.CodeFormatter = (*Formatter)(nil)

var (
	// Each line of a code block arrives in its own <p>.
	fencedBlock    = regexp.MustCompile("(?i)<p>```(.*?)</p>(.+?)<p>```</p>")
	paragraphBreak = regexp.MustCompile(`</p><p>`)
	paragraphTag   = regexp.MustCompile(`</?p>`)
	inlineCode     = regexp.MustCompile("`(.+?)`")
	directive      = regexp.MustCompile(`&lt;%-(.+)%&gt;`)
)

// Options controls formatter behavior. It is fixed for the life of a Formatter.
type Options struct {
	// AllowInlineCode renders <%- %> directives instead of stripping them.
	AllowInlineCode bool
}

// Formatter implements core.CodeFormatter.
type Formatter struct {
	opts Options
}

// New creates a Formatter with the given options.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// Format expands fenced blocks, then inline spans, then directives.
// Fences must go first so their backticks are gone before inline matching.
func (f *Formatter) Format(s string) string {
	s = fencedBlock.ReplaceAllStringFunc(s, func(match string) string {
		m := fencedBlock.FindStringSubmatch(match)
		return fmt.Sprintf(`<pre type="%s">%s</pre>`, m[1], NormalizeQuotes(unwrapParagraphs(m[2])))
	})

	s = inlineCode.ReplaceAllStringFunc(s, func(match string) string {
		m := inlineCode.FindStringSubmatch(match)
		return "<tt>" + NormalizeQuotes(m[1]) + "</tt>"
	})

	return directive.ReplaceAllStringFunc(s, func(match string) string {
		if !f.opts.AllowInlineCode {
			return ""
		}
		m := directive.FindStringSubmatch(match)
		return NormalizeQuotes(html.UnescapeString(m[1]))
	})
}

// unwrapParagraphs turns per-line paragraphs back into newline separated text.
func unwrapParagraphs(content string) string {
	content = paragraphBreak.ReplaceAllString(content, "\n")
	return paragraphTag.ReplaceAllString(content, "")
}

