package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	// Matched textually against each rule, not parsed as CSS.
	preservedStyle = regexp.MustCompile(`font-style:italic|font-weight:700|text-decoration:underline`)

	// Google list classes end in the nesting level: lst-kix_abc123-2.
	listClass = regexp.MustCompile(`lst-[^ ]+-(\d+)`)
)

// FilterStyle keeps the allow-listed rules of a style attribute on tag.
// Images also keep their width.
func FilterStyle(tag, style string) string {
	var kept []string
	for _, rule := range strings.Split(style, ";") {
		if tag == "img" && strings.Contains(rule, "width") {
			kept = append(kept, rule)
			continue
		}
		if preservedStyle.MatchString(rule) {
			kept = append(kept, rule)
		}
	}
	return strings.Join(kept, ";")
}

// ListLevel extracts the nesting level from a Google list class attribute.
func ListLevel(class string) (string, bool) {
	m := listClass.FindStringSubmatch(class)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// withListLevel appends a level-N token for the list's nesting level.
// A class that already carries the token is returned unchanged.
func withListLevel(class string) string {
	level, ok := ListLevel(class)
	if !ok {
		return class
	}
	token := "level-" + level
	for _, c := range strings.Fields(class) {
		if c == token {
			return class
		}
	}
	return class + " " + token
}

// unwrap replaces n with its children.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}
