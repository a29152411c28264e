package compose

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"sms-assistant-be/pkg/store"
)

// SourceMarker prefixes a tag that makes a source an authoritative citation.
// Only such sources earn a "Source:" line in the rendered answer.
const SourceMarker = "!"

// Source is one citation attached to an answer.
type Source struct {
	Title string `json:"title"`
	Tag   string `json:"tag"`
}

// Answer is the fixed answer shape every composer path produces. Headline is
// always non-empty; Details is present only when there is something to say.
type Answer struct {
	Headline string   `json:"headline"`
	Details  string   `json:"details,omitempty"`
	Sources  []Source `json:"sources,omitempty"`
}

// Event is the expanded calendar record the composer consumes.
type Event struct {
	Name     string
	StartAt  *time.Time
	Location string
	Required bool
}

// DigestCap bounds a digest to five bullets for SMS brevity; extra events
// are dropped silently.
const DigestCap = 5

// ComposeEvent produces a deterministic one-event answer:
// "{name}: {Wed 8:00 PM}{ @ location}".
func ComposeEvent(event Event) Answer {
	headline := fmt.Sprintf("%s: %s", event.Name, formatStart(event.StartAt))
	if event.Location != "" {
		headline += " @ " + event.Location
	}

	answer := Answer{Headline: headline}
	if event.Required {
		answer.Details = "Attendance required."
	}
	return sanitizeAnswer(answer)
}

// ComposeDigest produces one bulleted line per upcoming event, capped at
// DigestCap.
func ComposeDigest(events []Event) Answer {
	if len(events) == 0 {
		return Answer{Headline: "No upcoming events on the calendar."}
	}

	if len(events) > DigestCap {
		events = events[:DigestCap]
	}

	var lines []string
	lines = append(lines, "Upcoming:")
	for _, e := range events {
		line := fmt.Sprintf("• %s — %s", e.Name, formatStart(e.StartAt))
		if e.Location != "" {
			line += " @ " + e.Location
		}
		lines = append(lines, line)
	}

	return sanitizeAnswer(Answer{Headline: strings.Join(lines, "\n")})
}

// ComposeDocument extracts a headline from a retrieved document using intent
// heuristics keyed on the query wording. This is keyword-trigger extraction,
// not semantic understanding; the trigger substrings are pinned by tests.
func ComposeDocument(result store.Record, query string) Answer {
	body := result.Body
	lowerQuery := strings.ToLower(query)

	var headline string
	switch {
	case strings.Contains(lowerQuery, "when"):
		headline = firstLineMatching(body, timeLinePattern)
	case strings.Contains(lowerQuery, "where"):
		headline = firstLineMatching(body, placeLinePattern)
	}
	if headline == "" {
		headline = firstSentence(body)
	}

	answer := Answer{Headline: headline}

	if details := extractDetails(body); details != "" {
		answer.Details = details
	}
	if result.Title != "" {
		answer.Sources = []Source{{Title: result.Title, Tag: result.Tag}}
	}

	return sanitizeAnswer(answer)
}

var (
	// day-of-week or clock time
	timeLinePattern = regexp.MustCompile(`(?i)\b(mon|tue|wed|thu|fri|sat|sun)[a-z]*\b|\b\d{1,2}(:\d{2})?\s*(am|pm)\b`)
	// "at <Capitalized place>" or "@ <place>"; the place noun stays
	// case-sensitive so "at the" does not read as a location
	placeLinePattern = regexp.MustCompile(`(?:(?i:\bat\s+)[A-Z0-9]\w*|@\s*\S+)`)
)

func firstLineMatching(body string, pattern *regexp.Regexp) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if pattern.MatchString(line) {
			return line
		}
	}
	return ""
}

// firstSentence falls back to the first ~150 characters when no sentence
// boundary shows up early enough.
func firstSentence(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "No details found."
	}

	for i, r := range trimmed {
		if r == '.' || r == '?' || r == '!' {
			if i+1 <= 160 {
				return strings.TrimSpace(trimmed[:i+1])
			}
			break
		}
	}

	runes := []rune(trimmed)
	if len(runes) > 150 {
		return string(runes[:150]) + "…"
	}
	return trimmed
}

// extractDetails appends detail text only for present trigger substrings;
// absence of signal means absence of details, never a placeholder.
func extractDetails(body string) string {
	lower := strings.ToLower(body)

	var details []string
	if strings.Contains(lower, "attendance") || strings.Contains(lower, "required") {
		details = append(details, "Attendance required.")
	}
	if strings.Contains(lower, "usually") || strings.Contains(lower, "alternates") {
		details = append(details, "Schedule may vary week to week.")
	}
	return strings.Join(details, " ")
}

func formatStart(t *time.Time) string {
	if t == nil {
		return "TBD"
	}
	return t.Format("Mon 3:04 PM")
}

// Render concatenates headline, details, and at most one source line. The
// source line appears only when the first source's tag begins with
// SourceMarker, which distinguishes an authoritative citation from ordinary
// metadata tags.
func Render(a Answer) string {
	var b strings.Builder
	b.WriteString(a.Headline)

	if a.Details != "" {
		b.WriteString("\n")
		b.WriteString(a.Details)
	}

	if len(a.Sources) > 0 && strings.HasPrefix(a.Sources[0].Tag, SourceMarker) {
		b.WriteString("\nSource: ")
		b.WriteString(a.Sources[0].Title)
	}

	return b.String()
}

func sanitizeAnswer(a Answer) Answer {
	a.Headline = Sanitize(a.Headline)
	a.Details = Sanitize(a.Details)
	return a
}
