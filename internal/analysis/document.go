package analysis

import (
	"cmp"
	"slices"
	"time"
)

// Metadata describes one analysis run in full_data.json and summary.json.
type Metadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	Wahlperiode   int       `json:"wahlperiode"`
	Parties       []string  `json:"parties"`
	TotalSpeeches int       `json:"total_speeches"`
	TotalWords    int       `json:"total_words"`
}

// FullData is the content of full_data.json.
type FullData struct {
	Metadata Metadata    `json:"metadata"`
	Results  []ResultDoc `json:"results"`
}

// NewFullData renders results for full_data.json.
func NewFullData(results []*AnalysisResult, wahlperiode int, now time.Time) FullData {
	fd := FullData{Metadata: Metadata{GeneratedAt: now.UTC(), Wahlperiode: wahlperiode}}
	for _, r := range results {
		fd.Metadata.Parties = append(fd.Metadata.Parties, r.Party)
		fd.Metadata.TotalSpeeches += r.SpeechCount
		fd.Metadata.TotalWords += r.TotalWords
		fd.Results = append(fd.Results, r.Document())
	}
	return fd
}

// Result returns the document of party.
func (fd *FullData) Result(party string) (ResultDoc, bool) {
	for _, r := range fd.Results {
		if r.Party == party {
			return r, true
		}
	}
	return ResultDoc{}, false
}

// PartyStat is one row of summary.json.
type PartyStat struct {
	Party           string `json:"party"`
	Speeches        int    `json:"speeches"`
	TotalWords      int    `json:"total_words"`
	UniqueNouns     int    `json:"unique_nouns"`
	UniqueAdjective int    `json:"unique_adjectives"`
	UniqueVerbs     int    `json:"unique_verbs"`
	TotalNouns      int    `json:"total_nouns"`
	TotalAdjectives int    `json:"total_adjectives"`
	TotalVerbs      int    `json:"total_verbs"`
}

// Summary is the content of summary.json.
type Summary struct {
	Metadata   Metadata    `json:"metadata"`
	PartyStats []PartyStat `json:"party_stats"`
}

// NewSummary condenses results into per-party totals, largest party first.
func NewSummary(results []*AnalysisResult, meta Metadata) Summary {
	s := Summary{Metadata: meta}
	for _, r := range results {
		s.PartyStats = append(s.PartyStats, PartyStat{
			Party:           r.Party,
			Speeches:        r.SpeechCount,
			TotalWords:      r.TotalWords,
			UniqueNouns:     len(r.NounCounts),
			UniqueAdjective: len(r.AdjectiveCounts),
			UniqueVerbs:     len(r.VerbCounts),
			TotalNouns:      r.TotalNouns,
			TotalAdjectives: r.TotalAdjectives,
			TotalVerbs:      r.TotalVerbs,
		})
	}
	slices.SortStableFunc(s.PartyStats, func(a, b PartyStat) int { return cmp.Compare(b.TotalWords, a.TotalWords) })
	return s
}

// CategoryWords returns the top words of one category from a serialised
// categories map, most frequent first. section is a key of ToMap such as
// "adjectives" or "discriminatory".
func CategoryWords(categories map[string]any, section, category string) []WordCount {
	sec, _ := categories[section].(map[string]any)
	var words map[string]int
	switch m := sec[category].(type) {
	case map[string]int:
		words = m
	case map[string]any:
		words = make(map[string]int, len(m))
		for w, v := range m {
			if f, ok := v.(float64); ok {
				words[w] = int(f)
			}
		}
	}
	c := Counter(words)
	return pairs(c.MostCommon(0))
}

// CategoryTotals returns the "totals" map of a serialised categories section.
func CategoryTotals(categories map[string]any, section string) map[string]int {
	sec, _ := categories[section].(map[string]any)
	out := map[string]int{}
	switch m := sec["totals"].(type) {
	case map[string]int:
		for k, v := range m {
			out[k] = v
		}
	case map[string]any:
		for k, v := range m {
			if f, ok := v.(float64); ok {
				out[k] = int(f)
			}
		}
	}
	return out
}
