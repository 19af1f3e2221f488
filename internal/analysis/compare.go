package analysis

import (
	"cmp"
	"slices"
)

// WordKind selects nouns, adjectives or verbs.
type WordKind string

const (
	KindNoun      WordKind = "nouns"
	KindAdjective WordKind = "adjectives"
	KindVerb      WordKind = "verbs"
)

// Comparison is one word's frequency across parties.
type Comparison struct {
	Word    string             `json:"word"`
	Per1000 map[string]float64 `json:"per_1000"`
	Spread  float64            `json:"spread"`
}

// CompareParties takes the union of every party's top n words of a kind
// and orders them by the spread between the highest and lowest per-1000
// frequency.
func CompareParties(results []*AnalysisResult, topN int, kind WordKind) []Comparison {
	words := map[string]struct{}{}
	for _, r := range results {
		for _, e := range r.Counts(kind).MostCommon(topN) {
			words[e.Key] = struct{}{}
		}
	}

	out := make([]Comparison, 0, len(words))
	for w := range words {
		c := Comparison{Word: w, Per1000: make(map[string]float64, len(results))}
		lo, hi := 0.0, 0.0
		for i, r := range results {
			f := r.Per1000(r.Counts(kind)[w])
			c.Per1000[r.Party] = f
			if i == 0 || f < lo {
				lo = f
			}
			if i == 0 || f > hi {
				hi = f
			}
		}
		c.Spread = hi - lo
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Comparison) int {
		if d := cmp.Compare(b.Spread, a.Spread); d != 0 {
			return d
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return out
}
