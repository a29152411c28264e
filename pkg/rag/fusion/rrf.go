package fusion

import "sort"

// DefaultK dampens the influence of tail rank positions. Callers fusing
// unusually long or short lists should pass their own k.
const DefaultK = 60

// Fused is one ID with its accumulated reciprocal-rank score.
type Fused struct {
	ID    string
	Score float64
}

// Fuse merges N ranked ID lists into one ordered list using Reciprocal Rank
// Fusion: each occurrence of an ID at 0-based position idx contributes
// 1/(k+idx+1) to its total. IDs absent from a list contribute nothing from
// it, so a signal that returned no results simply drops out.
//
// Ties are broken by the best (lowest) rank the ID achieved in any input
// list, then by ID string, so output order is total and deterministic.
func Fuse(lists [][]string, k int) []Fused {
	if k <= 0 {
		k = DefaultK
	}

	scores := make(map[string]float64)
	bestRank := make(map[string]int)

	for _, list := range lists {
		for idx, id := range list {
			scores[id] += 1.0 / float64(k+idx+1)
			if prev, ok := bestRank[id]; !ok || idx < prev {
				bestRank[id] = idx
			}
		}
	}

	if len(scores) == 0 {
		return nil
	}

	fused := make([]Fused, 0, len(scores))
	for id, score := range scores {
		fused = append(fused, Fused{ID: id, Score: score})
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		ri, rj := bestRank[fused[i].ID], bestRank[fused[j].ID]
		if ri != rj {
			return ri < rj
		}
		return fused[i].ID < fused[j].ID
	})

	return fused
}

// IDs flattens a fused result into the ordered ID list most callers need.
func IDs(fused []Fused) []string {
	ids := make([]string, len(fused))
	for i, f := range fused {
		ids[i] = f.ID
	}
	return ids
}
