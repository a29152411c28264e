package retrieval

import (
	"context"
	"strings"

	"sms-assistant-be/pkg/store"
)

// CorpusSection is one titled block of the static reference corpus.
type CorpusSection struct {
	ID    string
	Title string
	Body  string
}

// EnclaveLayer scores static reference sections by keyword overlap with the
// query. Zero overlap contributes nothing rather than noise. The corpus is
// an injected read-only value loaded once at startup; the layer never does
// file I/O of its own.
type EnclaveLayer struct {
	sections []CorpusSection
}

func NewEnclaveLayer(sections []CorpusSection) *EnclaveLayer {
	return &EnclaveLayer{sections: sections}
}

func (l *EnclaveLayer) Name() string { return store.LayerEnclave }

func (l *EnclaveLayer) Retrieve(ctx context.Context, q Query) ([]store.LayerItem, error) {
	terms := significantTerms(q.Text)
	if len(terms) == 0 {
		return nil, nil
	}

	var items []store.LayerItem
	for _, section := range l.sections {
		score := overlapRatio(terms, section.Title+" "+section.Body)
		if score == 0 {
			continue
		}
		items = append(items, store.LayerItem{
			Layer:   store.LayerEnclave,
			ID:      section.ID,
			Title:   section.Title,
			Snippet: section.Body,
			Score:   score,
			Features: map[string]float64{
				"term_count": float64(len(terms)),
			},
		})
	}
	return items, nil
}

// overlapRatio is hits/max(3, terms) capped at 1. The floor of 3 keeps
// single-term queries from scoring a full 1.0 on one lucky word.
func overlapRatio(terms []string, text string) float64 {
	lower := strings.ToLower(text)
	hits := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	if hits == 0 {
		return 0
	}

	denom := len(terms)
	if denom < 3 {
		denom = 3
	}
	ratio := float64(hits) / float64(denom)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// ParseCorpus splits a raw corpus document into sections on "## " headings,
// in the shape NewEnclaveLayer expects. Content before the first heading is
// ignored.
func ParseCorpus(raw string) []CorpusSection {
	var sections []CorpusSection
	var current *CorpusSection

	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "## ") {
			if current != nil {
				current.Body = strings.TrimSpace(current.Body)
				sections = append(sections, *current)
			}
			title := strings.TrimSpace(strings.TrimPrefix(line, "## "))
			current = &CorpusSection{
				ID:    "enclave:" + slugify(title),
				Title: title,
			}
			continue
		}
		if current != nil {
			current.Body += line + "\n"
		}
	}
	if current != nil {
		current.Body = strings.TrimSpace(current.Body)
		sections = append(sections, *current)
	}
	return sections
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return b.String()
}
