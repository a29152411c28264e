package sms

import "strings"

// DefaultMaxLength is the carrier-safe segment ceiling (concatenated SMS).
const DefaultMaxLength = 1600

// minBoundaryRatio rejects boundaries that would produce a segment shorter
// than half the window; tiny fragments read badly and waste segments.
const minBoundaryRatio = 0.5

// Split breaks a message into carrier-safe segments, preferring sentence
// boundaries, then newlines, then word boundaries, and hard-splitting only
// as a last resort. Trimmed concatenation of the segments preserves the
// original content.
func Split(message string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	runes := []rune(message)
	if len(runes) <= maxLength {
		return []string{message}
	}

	minBoundary := int(float64(maxLength) * minBoundaryRatio)
	var segments []string

	for len(runes) > maxLength {
		window := runes[:maxLength]
		cut := findBoundary(window, minBoundary)

		segment := strings.TrimSpace(string(runes[:cut]))
		if segment != "" {
			segments = append(segments, segment)
		}
		runes = trimLeadingSpace(runes[cut:])
	}

	if rest := strings.TrimSpace(string(runes)); rest != "" {
		segments = append(segments, rest)
	}

	return segments
}

// findBoundary picks the split point within the window: the last
// sentence-ending punctuation followed by a space (or window end), the last
// newline, then the last word boundary, each subject to the minimum; a full
// window split is the final fallback.
func findBoundary(window []rune, minBoundary int) int {
	sentence := -1
	newline := -1
	word := -1

	for i := len(window) - 1; i > 0; i-- {
		r := window[i]
		if newline < 0 && r == '\n' {
			newline = i
		}
		if word < 0 && (r == ' ' || r == '\n') {
			word = i
		}
		if sentence < 0 && isSentenceEnd(window, i) {
			sentence = i + 1
		}
		if sentence >= 0 && newline >= 0 {
			break
		}
	}

	if sentence >= minBoundary {
		return sentence
	}
	if newline >= minBoundary {
		return newline
	}
	if word >= minBoundary {
		return word
	}
	return len(window)
}

func isSentenceEnd(window []rune, i int) bool {
	r := window[i]
	if r != '.' && r != '?' && r != '!' {
		return false
	}
	// terminal punctuation counts at end-of-window too
	return i == len(window)-1 || window[i+1] == ' ' || window[i+1] == '\n'
}

func trimLeadingSpace(runes []rune) []rune {
	start := 0
	for start < len(runes) && (runes[start] == ' ' || runes[start] == '\n') {
		start++
	}
	return runes[start:]
}

// DefaultTightenMax bounds single-line renderings such as log previews and
// list entries.
const DefaultTightenMax = 300

// Tighten collapses internal whitespace to single spaces and
// ellipsis-truncates past max. Used for single-line contexts, not for
// multi-segment splitting.
func Tighten(s string, max int) string {
	if max <= 0 {
		max = DefaultTightenMax
	}

	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	// the ellipsis counts against max
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
