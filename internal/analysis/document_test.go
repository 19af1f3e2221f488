package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/lexicon"
)

func TestFullData_RoundTripCategories(t *testing.T) {
	r := &AnalysisResult{
		Party:           "SPD",
		SpeechCount:     2,
		TotalWords:      100,
		AdjectiveCounts: Counter{"gut": 4, "schlecht": 1},
		VerbCounts:      Counter{},
		NounCounts:      Counter{"rente": 2},
	}
	r.Categories = NewCategorizer(lexicon.Default()).Categorize(r.AdjectiveCounts, r.VerbCounts, Counter{"gut": 4, "rente": 2}, r.NounCounts)

	fd := NewFullData([]*AnalysisResult{r}, 21, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, []string{"SPD"}, fd.Metadata.Parties)
	require.Equal(t, 100, fd.Metadata.TotalWords)

	data, err := json.Marshal(fd)
	require.NoError(t, err)
	var back FullData
	require.NoError(t, json.Unmarshal(data, &back))

	doc, ok := back.Result("SPD")
	require.True(t, ok)
	require.Equal(t, []WordCount{{Word: "rente", Count: 2}}, doc.TopNouns)

	totals := CategoryTotals(doc.Categories, "adjectives")
	require.Contains(t, totals, "affirmative")
	if totals["affirmative"] > 0 {
		words := CategoryWords(doc.Categories, "adjectives", "affirmative")
		require.Equal(t, "gut", words[0].Word)
	}

	_, ok = back.Result("AfD")
	require.False(t, ok)
}

func TestNewSummary_OrdersByWords(t *testing.T) {
	results := []*AnalysisResult{
		{Party: "FDP", TotalWords: 10, NounCounts: Counter{"a": 1}},
		{Party: "SPD", TotalWords: 50, NounCounts: Counter{"a": 1, "b": 2}},
	}
	s := NewSummary(results, Metadata{Wahlperiode: 21})
	require.Equal(t, "SPD", s.PartyStats[0].Party)
	require.Equal(t, 2, s.PartyStats[0].UniqueNouns)
}
