// Package pretty re-indents an HTML fragment for the documentation site.
// Block elements get their own line; runs of text and inline elements stay
// on one line; <pre>, <script>, <style> and <textarea> are emitted verbatim.
package pretty

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const indent = "  "

var inlineElements = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Br: true, atom.Cite: true,
	atom.Code: true, atom.Del: true, atom.Em: true, atom.Font: true, atom.I: true,
	atom.Img: true, atom.Ins: true, atom.Kbd: true, atom.Label: true, atom.Mark: true,
	atom.Q: true, atom.S: true, atom.Small: true, atom.Span: true, atom.Strong: true,
	atom.Sub: true, atom.Sup: true, atom.Tt: true, atom.U: true,
}

var verbatimElements = map[atom.Atom]bool{
	atom.Pre: true, atom.Script: true, atom.Style: true, atom.Textarea: true,
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true, atom.Embed: true,
	atom.Hr: true, atom.Img: true, atom.Input: true, atom.Link: true, atom.Meta: true,
	atom.Param: true, atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// Quotes stay literal so normalized code reads as typed.
var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// String returns the indented form of fragment.
func String(fragment string) (string, error) {
	var buf bytes.Buffer
	if err := Print(&buf, fragment); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Print writes the indented form of fragment to w. The fragment is parsed
// in a <body> context, so <head>-only content is kept where it appears.
func Print(w io.Writer, fragment string) error {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return fmt.Errorf("parsing fragment: %w", err)
	}

	p := &printer{}
	p.block(nodes, 0)
	_, err = w.Write(p.buf.Bytes())
	return err
}

type printer struct {
	buf bytes.Buffer
}

func (p *printer) line(depth int, s string) {
	p.buf.WriteString(strings.Repeat(indent, depth))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// block prints sibling nodes, grouping consecutive inline nodes on one line.
func (p *printer) block(nodes []*html.Node, depth int) {
	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if s := strings.TrimSpace(render(run...)); s != "" {
			p.line(depth, s)
		}
		run = run[:0]
	}

	for _, n := range nodes {
		if isInline(n) {
			run = append(run, n)
			continue
		}
		flush()
		p.element(n, depth)
	}
	flush()
}

func (p *printer) element(n *html.Node, depth int) {
	if n.Type != html.ElementNode || verbatimElements[n.DataAtom] || inlineOnly(n) {
		p.line(depth, render(n))
		return
	}
	p.line(depth, startTag(n))
	p.block(children(n), depth+1)
	p.line(depth, "</"+n.Data+">")
}

func render(nodes ...*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if n.Parent != nil && (n.Parent.DataAtom == atom.Script || n.Parent.DataAtom == atom.Style) {
			b.WriteString(n.Data)
		} else {
			b.WriteString(textEscaper.Replace(n.Data))
		}
	case html.CommentNode:
		b.WriteString("<!--" + n.Data + "-->")
	case html.ElementNode:
		b.WriteString(startTag(n))
		if voidElements[n.DataAtom] {
			return
		}
		// The parser drops one leading newline inside <pre> and <textarea>.
		if c := n.FirstChild; c != nil && c.Type == html.TextNode && strings.HasPrefix(c.Data, "\n") &&
			(n.DataAtom == atom.Pre || n.DataAtom == atom.Textarea) {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(b, c)
		}
		b.WriteString("</" + n.Data + ">")
	}
}

func isInline(n *html.Node) bool {
	return n.Type == html.TextNode || (n.Type == html.ElementNode && inlineElements[n.DataAtom])
}

// inlineOnly reports whether every child of n is inline.
func inlineOnly(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isInline(c) {
			return false
		}
	}
	return true
}

func children(n *html.Node) []*html.Node {
	var ns []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ns = append(ns, c)
	}
	return ns
}

func startTag(n *html.Node) string {
	var b strings.Builder
	b.WriteString("<" + n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace + ":")
		}
		b.WriteString(a.Key + `="` + attrEscaper.Replace(a.Val) + `"`)
	}
	b.WriteByte('>')
	return b.String()
}
