package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeBody strips all HTML from user-submitted content before it
// reaches the ledger. Bodies are plain text.
func SanitizeBody(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// Snippet truncates s to at most n runes and appends an ellipsis. Used to
// build notification bodies at emission time, so they never need to be
// reconstructed from the wisper later.
func Snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return s + "..."
}
