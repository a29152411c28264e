package compose

import (
	"regexp"
	"strings"
)

// The denylist is deliberately small and fixed: this is output hygiene for
// an SMS surface, not moderation. Escalation-relevant slurs live in the tone
// package and must never be merged into this list.
var profanityPattern = regexp.MustCompile(`(?i)\b(fuck\w*|shit\w*|bitch\w*|asshole\w*|goddamn\w*)\b`)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Sanitize replaces denylisted tokens with an em-dash and collapses runs of
// three or more newlines to exactly two. Idempotent by construction.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = profanityPattern.ReplaceAllString(s, "—")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimRight(s, "\n")
}
