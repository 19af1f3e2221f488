package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/lexicon"
)

func TestToneScores_Defaults(t *testing.T) {
	counts := NewCategorizer(nil).Categorize(Counter{}, Counter{}, Counter{}, Counter{})
	require.Equal(t, DefaultToneScores(), counts.ToneScores())
}

func TestToneScores_Formulas(t *testing.T) {
	counts := newCategoryCounts()
	counts.counts[lexicon.GroupAdjectives][lexicon.Affirmative]["gut"] = 3
	counts.counts[lexicon.GroupAdjectives][lexicon.Critical]["schlecht"] = 1
	counts.counts[lexicon.GroupAdjectives][lexicon.Aggressive]["hetzerisch"] = 1
	counts.counts[lexicon.GroupVerbs][lexicon.Solution]["lösen"] = 1
	counts.counts[lexicon.GroupVerbs][lexicon.Problem]["scheitern"] = 3
	counts.counts[lexicon.GroupVerbs][lexicon.Demanding]["fordern"] = 4
	counts.counts[lexicon.GroupModal][lexicon.Obligation]["müssen"] = 1
	counts.counts[lexicon.GroupTemporal][lexicon.Prospective]["künftig"] = 2
	counts.counts[lexicon.GroupTemporal][lexicon.Retrospective]["damals"] = 2
	counts.counts[lexicon.GroupPronoun][lexicon.Exclusive]["sie"] = 5
	counts.counts[lexicon.GroupDiscriminatory][lexicon.Xenophobic]["asylflut"] = 1
	counts.TotalWords = 400

	s := counts.ToneScores()
	require.InDelta(t, 75.0, s.Affirmative, 1e-9)
	require.InDelta(t, 20.0, s.Aggression, 1e-9)
	require.InDelta(t, 0.0, s.Labeling, 1e-9)
	require.InDelta(t, 25.0, s.SolutionFocus, 1e-9)
	require.InDelta(t, 50.0, s.Collaboration, 1e-9)
	require.InDelta(t, 50.0, s.DemandIntensity, 1e-9)
	require.InDelta(t, 100.0, s.Authority, 1e-9)
	require.InDelta(t, 50.0, s.FutureOrientation, 1e-9)
	require.InDelta(t, 50.0, s.EmotionalIntensity, 1e-9)
	require.InDelta(t, 0.0, s.Inclusivity, 1e-9)
	require.InDelta(t, 2.5, s.Discriminatory, 1e-9)
}

func TestToneScores_JSONRounding(t *testing.T) {
	s := DefaultToneScores()
	s.Affirmative = 66.666
	s.Discriminatory = 1.23456
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.Contains(t, string(data), `"affirmative":66.7`)
	require.Contains(t, string(data), `"discriminatory":1.23`)

	v, ok := s.Metric("affirmative")
	require.True(t, ok)
	require.InDelta(t, 66.666, v, 1e-9)
	_, ok = s.Metric("unknown")
	require.False(t, ok)
}

func TestCategorize_MultiLabelWeights(t *testing.T) {
	// pflege: gesundheit 1.0, soziales 0.7
	counts := NewCategorizer(nil).Categorize(Counter{}, Counter{}, Counter{"pflege": 1}, Counter{"pflege": 1})
	require.Equal(t, 1, counts.Counter(lexicon.GroupTopics, lexicon.Gesundheit)["pflege"])
	// int(1*0.7) == 0 is not added.
	require.NotContains(t, counts.Counter(lexicon.GroupTopics, lexicon.Soziales), "pflege")

	counts = NewCategorizer(nil).Categorize(Counter{}, Counter{}, Counter{"pflege": 10}, Counter{"pflege": 10})
	require.Equal(t, 7, counts.Counter(lexicon.GroupTopics, lexicon.Soziales)["pflege"])
}

func TestTopicScores(t *testing.T) {
	counts := NewCategorizer(nil).Categorize(Counter{}, Counter{}, Counter{"x": 1000}, Counter{"flüchtling": 4, "klimaschutz": 1})
	scores := counts.TopicScores()
	require.InDelta(t, 4.0, scores[lexicon.Migration], 1e-9)
	require.Len(t, scores, 13)

	top := scores.Top(2)
	require.Equal(t, lexicon.Migration, top[0].Topic)
	require.Len(t, top, 2)
}

func TestCategoryCounts_ToMap(t *testing.T) {
	counts := NewCategorizer(nil).Categorize(Counter{"gefährlich": 2}, Counter{}, Counter{"wir": 3}, Counter{})
	m := counts.ToMap()
	for _, key := range []string{"adjectives", "verbs", "modal", "temporal", "intensity", "pronouns", "discriminatory", "topics", "total_words"} {
		require.Contains(t, m, key)
	}
	adj := m["adjectives"].(map[string]any)
	require.Equal(t, map[string]int{"gefährlich": 2}, adj["critical"])
	require.Equal(t, 2, adj["total_analyzed"])
	require.Equal(t, 2, adj["totals"].(map[string]int)["critical"])
	pron := m["pronouns"].(map[string]any)
	require.Equal(t, map[string]int{"wir": 3}, pron["inclusive"])
	require.Contains(t, m["topics"].(map[string]any), "total_nouns_analyzed")
}

func TestTopicScores_TopRounds(t *testing.T) {
	scores := TopicScores{lexicon.Migration: 1.23456, lexicon.Klima: 0.005}
	top := scores.Top(2)
	require.Equal(t, TopicScore{Topic: lexicon.Migration, Score: 1.23}, top[0])
	require.Equal(t, TopicScore{Topic: lexicon.Klima, Score: 0.01}, top[1])
}
