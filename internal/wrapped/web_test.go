package wrapped

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/lexicon"
)

func TestData_BuildWrapped(t *testing.T) {
	d := fixtureData(t)
	w := d.BuildWrapped()

	require.Equal(t, WebMetadata{
		TotalSpeeches:      7,
		RedenCount:         6,
		WortbeitraegeCount: 2,
		TotalWords:         6010,
		PartyCount:         3,
		SpeakerCount:       5,
		Wahlperiode:        21,
		Sitzungen:          2,
	}, w.Metadata)

	require.Len(t, w.Parties, 3)
	spd := w.Parties[0]
	require.Equal(t, "SPD", spd.Party)
	require.Equal(t, "🌹", spd.Emoji)
	require.Equal(t, 2, spd.UniqueSpeakers)
	require.Equal(t, "Anna Schmidt", spd.TopSpeaker.Name)
	require.Equal(t, SignatureWord{Word: "bildung", Ratio: 10000}, spd.SignatureWords[0])

	require.Equal(t, 3, w.Drama.ZwischenrufStats.Total)
	require.Equal(t, "Hans Müller", w.Drama.TopZwischenrufer[0].Name)
	require.Len(t, w.HotTopics, 3)
	require.Empty(t, w.TopSpeakersByAvgWords, "nobody has five formal speeches")

	require.Equal(t, "3.005", w.FunFacts[0].Value)
	require.Equal(t, "general", w.FunFacts[0].Category)
}

func TestWrapped_JSONShape(t *testing.T) {
	raw, err := json.Marshal(fixtureData(t).BuildWrapped())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{
		"metadata", "parties", "drama", "topSpeakers", "hotTopics",
		"toneAnalysis", "topicAnalysis", "funFacts", "genderAnalysis",
	} {
		require.Contains(t, doc, key)
	}
	drama := doc["drama"].(map[string]any)
	stats := drama["zwischenrufStats"].(map[string]any)
	require.Contains(t, stats, "positivePercent")
	require.Contains(t, stats, "classification")
}

func TestData_StyleWordsAndTopicInfo(t *testing.T) {
	d := fixtureData(t)
	afd := d.Results["AfD"]
	afd.TopAdjectives = []analysis.WordCount{{Word: "schnell", Count: 9}, {Word: "radikal", Count: 3}}
	afd.TopVerbs = []analysis.WordCount{{Word: "zerstören", Count: 4}, {Word: "gehen", Count: 12}}
	d.Results["AfD"] = afd

	words := d.StyleWords("AfD", 0)
	require.Len(t, words, 2)
	require.Equal(t, "zerstören", words[0].Word)
	require.Equal(t, 4, words[0].Count)
	require.Equal(t, []lexicon.Weighted{
		{Category: lexicon.Problem, Weight: 1.0},
		{Category: lexicon.Aggressive, Weight: 0.7},
	}, words[0].Tags)
	require.Equal(t, "radikal", words[1].Word)
	require.Len(t, d.StyleWords("AfD", 1), 1)
	require.Nil(t, d.StyleWords("Piraten", 5))

	w := d.BuildWrapped()
	require.Equal(t, words, w.ToneAnalysis.StyleWords["AfD"])
	require.NotContains(t, w.ToneAnalysis.StyleWords, "SPD")
	require.Len(t, w.TopicAnalysis.Topics, 13)
	klima := w.TopicAnalysis.Topics[lexicon.Klima]
	require.Equal(t, "Klima & Umwelt", klima.NameDE)
	require.Equal(t, "🌱", klima.Emoji)
}
