package protocol

import (
	"cmp"
	"slices"
)

// GroupByParty buckets speeches by party, keeping order within each party.
func GroupByParty(speeches []Speech) map[string][]Speech {
	out := make(map[string][]Speech)
	for _, s := range speeches {
		out[s.Party] = append(out[s.Party], s)
	}
	return out
}

// Counter counts occurrences per key.
type Counter map[string]int

// Entry is a key with its count.
type Entry struct {
	Key   string
	Count int
}

// MostCommon returns the n largest entries, ties broken by key. n <= 0 returns all.
func (c Counter) MostCommon(n int) []Entry {
	out := make([]Entry, 0, len(c))
	for k, v := range c {
		out = append(out, Entry{k, v})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if d := cmp.Compare(b.Count, a.Count); d != 0 {
			return d
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Total sums all counts.
func (c Counter) Total() int {
	t := 0
	for _, v := range c {
		t += v
	}
	return t
}

// TypeStats aggregates speeches per party and speaker by type.
type TypeStats struct {
	Formal      map[string]Counter // rede, per party and speaker
	Befragung   map[string]Counter // befragung and fragestunde_antwort
	Questions   map[string]Counter // fragestunde
	Wortbeitrag map[string]Counter // everything that is not rede
	RedeCount   map[string]int
	WortCount   map[string]int
}

// AggregateByType counts formal speeches, government answers, questions and
// other contributions per party and speaker.
func AggregateByType(speeches []Speech) TypeStats {
	st := TypeStats{
		Formal:      map[string]Counter{},
		Befragung:   map[string]Counter{},
		Questions:   map[string]Counter{},
		Wortbeitrag: map[string]Counter{},
		RedeCount:   map[string]int{},
		WortCount:   map[string]int{},
	}
	for _, s := range speeches {
		p := s.Party
		if _, ok := st.Formal[p]; !ok {
			st.Formal[p] = Counter{}
			st.Befragung[p] = Counter{}
			st.Questions[p] = Counter{}
			st.Wortbeitrag[p] = Counter{}
			st.RedeCount[p] = 0
			st.WortCount[p] = 0
		}
		cat := s.Category
		if cat == "" {
			cat = CategoryFor(s.Type)
		}
		if cat == CategoryRede {
			st.RedeCount[p]++
		} else {
			st.WortCount[p]++
			st.Wortbeitrag[p][s.Speaker]++
		}
		switch s.Type {
		case TypeRede:
			st.Formal[p][s.Speaker]++
		case TypeBefragung, TypeFragestundeAntwort:
			st.Befragung[p][s.Speaker]++
		case TypeFragestunde:
			st.Questions[p][s.Speaker]++
		}
	}
	return st
}
