package codefmt

import "regexp"

var (
	smartSingle = regexp.MustCompile(`[‘’]|&#[xX]201[89];|&#821[67];`)
	smartDouble = regexp.MustCompile(`[“”]|&#[xX]201[cdCD];|&#822[01];`)
)

// NormalizeQuotes replaces typographic quotes, literal or entity-encoded,
// with their ASCII equivalents.
func NormalizeQuotes(s string) string {
	s = smartSingle.ReplaceAllString(s, "'")
	return smartDouble.ReplaceAllString(s, `"`)
}
