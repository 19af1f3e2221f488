package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/export"
	"git.home.luguber.info/inful/plenar/internal/manifest"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

func writeJSONFile(t *testing.T, dir, rel string, v any) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func fixtureIndex() wrapped.SpeakerIndex {
	rows := []wrapped.SpeakerIndexEntry{
		{Name: "Anna Schmidt", Slug: "anna-schmidt", Party: "SPD", Speeches: 4, TotalWords: 2000, AvgWords: 500, Gender: wrapped.GenderFemale},
		{Name: "Hans Müller", Slug: "hans-mueller", Party: "CDU/CSU", Speeches: 7, TotalWords: 2100, AvgWords: 300, Gender: wrapped.GenderMale},
		{Name: "Lea Grün", Slug: "lea-gruen", Party: "GRÜNE", Speeches: 1, TotalWords: 900, AvgWords: 900, Gender: wrapped.GenderFemale},
		{Name: "Ömer Öztürk", Slug: "oemer-oeztuerk", Party: "SPD", Speeches: 2, TotalWords: 400, AvgWords: 200, Gender: wrapped.GenderMale},
	}
	return wrapped.SpeakerIndex{Speakers: rows, TotalSpeakers: len(rows), Parties: []string{"CDU/CSU", "GRÜNE", "SPD"}}
}

// writeExport writes a small web export with a manifest and returns its
// run id.
func writeExport(t *testing.T, dir string) string {
	t.Helper()
	writeJSONFile(t, dir, export.WrappedFile, map[string]any{
		"metadata": wrapped.WebMetadata{TotalSpeeches: 14, Wahlperiode: 21},
		"parties": []wrapped.WebParty{
			{Party: "SPD", Speeches: 6, TopWords: []analysis.WordCount{{Word: "Rente", Count: 12}, {Word: "Arbeit", Count: 9}},
				SignatureWords: []wrapped.SignatureWord{{Word: "Respekt", Ratio: 3.1}}},
			{Party: "CDU/CSU", Speeches: 7, TopWords: []analysis.WordCount{{Word: "Wirtschaft", Count: 15}, {Word: "Rentenpaket", Count: 4}}},
			{Party: "GRÜNE", Speeches: 1, TopWords: []analysis.WordCount{{Word: "Klima", Count: 8}}},
		},
		"hotTopics": []wrapped.HotTopic{{Word: "Rente", Parties: []string{"SPD", "CDU/CSU", "GRÜNE"}, PartyCount: 3, Total: 30}},
	})
	writeJSONFile(t, dir, export.SpeakersDir+"/"+export.IndexFile, fixtureIndex())
	for _, e := range fixtureIndex().Speakers {
		writeJSONFile(t, dir, export.SpeakersDir+"/"+e.Slug+".json", map[string]any{"name": e.Name, "slug": e.Slug})
	}
	writeJSONFile(t, dir, export.InterruptersFile, export.Interrupters{Count: 3, Data: []export.InterrupterRow{
		{Rank: 1, Name: "Hans Müller", Party: "CDU/CSU", Count: 5},
		{Rank: 2, Name: "Lea Grün", Party: "GRÜNE", Count: 2},
		{Rank: 3, Name: "Max Meier", Party: "CDU/CSU", Count: 1},
	}})
	writeJSONFile(t, dir, export.InterruptedFile, export.Interrupted{Count: 1, Data: []export.InterruptedRow{
		{Rank: 1, Name: "Anna Schmidt", Party: "SPD", Count: 7},
	}})
	writeJSONFile(t, dir, export.NeutralTextsFile, export.NeutralTexts{TotalCount: 3, UniqueCount: 2, Data: []export.NeutralText{
		{Text: "Was soll das denn heißen?", Count: 2, Parties: map[string]int{"GRÜNE": 2}},
		{Text: "Zur Sache!", Count: 1, Parties: map[string]int{"CDU/CSU": 1}},
	}})

	m := manifest.New("test", time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC))
	rels := []string{export.WrappedFile, export.InterruptersFile, export.InterruptedFile, export.NeutralTextsFile}
	for _, rel := range rels {
		require.NoError(t, m.Add(dir, rel, manifest.VariantAggregate))
	}
	require.NoError(t, m.Add(dir, export.SpeakersDir+"/"+export.IndexFile, manifest.VariantSpeakers))
	require.NoError(t, m.Write(dir))
	return m.RunID
}
