package utils

import "strings"

// Snippet truncates s to at most max runes, collapsing the cut with an
// ellipsis. Used for the last-message preview stored in the search index.
func Snippet(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
