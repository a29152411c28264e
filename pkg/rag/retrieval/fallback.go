package retrieval

import (
	"context"
	"strings"

	"sms-assistant-be/pkg/store"
)

// Strategy is one lexical fallback tried when fusion produces nothing.
// Strategies run in registration order; the first non-empty result wins.
type Strategy interface {
	Name() string
	Run(ctx context.Context, q Query) ([]store.Record, error)
}

// Scanner is the storage call behind the lexical fallbacks: a plain substring
// match with no ranking beyond storage order.
type Scanner interface {
	ScanSubstring(ctx context.Context, term, scope string, limit int) ([]store.Record, error)
}

// TitleScan matches the whole query against resource titles.
type TitleScan struct {
	scanner Scanner
	limit   int
}

func NewTitleScan(scanner Scanner, limit int) *TitleScan {
	return &TitleScan{scanner: scanner, limit: limit}
}

func (s *TitleScan) Name() string { return "title_scan" }

func (s *TitleScan) Run(ctx context.Context, q Query) ([]store.Record, error) {
	term := strings.TrimSpace(q.Text)
	if term == "" {
		return nil, nil
	}
	records, err := s.scanner.ScanSubstring(ctx, term, q.Scope, s.limit)
	if err != nil {
		return nil, err
	}

	var matched []store.Record
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Title), strings.ToLower(term)) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// KeywordScan matches individual query terms against resource bodies,
// keeping records that contain at least one term longer than three runes.
type KeywordScan struct {
	scanner Scanner
	limit   int
}

func NewKeywordScan(scanner Scanner, limit int) *KeywordScan {
	return &KeywordScan{scanner: scanner, limit: limit}
}

func (s *KeywordScan) Name() string { return "keyword_scan" }

func (s *KeywordScan) Run(ctx context.Context, q Query) ([]store.Record, error) {
	terms := significantTerms(q.Text)
	if len(terms) == 0 {
		return nil, nil
	}

	var matched []store.Record
	seen := make(map[string]bool)
	for _, term := range terms {
		records, err := s.scanner.ScanSubstring(ctx, term, q.Scope, s.limit)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			matched = append(matched, rec)
			if len(matched) >= s.limit {
				return matched, nil
			}
		}
	}
	return matched, nil
}

func significantTerms(text string) []string {
	var terms []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, ".,!?\"'")
		if len([]rune(f)) > 3 {
			terms = append(terms, f)
		}
	}
	return terms
}
