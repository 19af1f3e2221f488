package wrapped

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/datastore"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

func writeInputs(t *testing.T) (dataDir, resultsDir string) {
	t.Helper()
	dataDir, resultsDir = t.TempDir(), t.TempDir()

	store, err := datastore.Open(dataDir)
	require.NoError(t, err)
	byParty := map[string][]datastore.SpeechRecord{}
	for _, r := range records(
		speech("Anna Schmidt", "SPD", protocol.TypeRede, repeat("rente", 10)),
		speech("Kim Berger", "AfD", protocol.TypeRede, repeat("grenze", 10)),
		speech("Sevim Dağdelen", "BSW", protocol.TypeRede, repeat("frieden", 10)),
	) {
		byParty[r.Party] = append(byParty[r.Party], r)
	}
	require.NoError(t, store.SaveSpeeches(byParty))

	results := []*analysis.AnalysisResult{
		{Party: "SPD", SpeechCount: 1, TotalWords: 10, NounCounts: analysis.Counter{"rente": 10}},
		{Party: "AfD", SpeechCount: 1, TotalWords: 10, NounCounts: analysis.Counter{"grenze": 10}},
		{Party: "BSW", SpeechCount: 1, TotalWords: 10, NounCounts: analysis.Counter{"frieden": 10}},
	}
	raw, err := json.Marshal(analysis.NewFullData(results, 21, time.Now()))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(resultsDir, FullDataFile), raw, 0o644))

	f, err := os.Create(filepath.Join(resultsDir, "nouns.csv"))
	require.NoError(t, err)
	require.NoError(t, analysis.BuildFrequencyTable(results, analysis.KindNoun).WriteCSV(f))
	require.NoError(t, f.Close())
	return dataDir, resultsDir
}

func TestLoad(t *testing.T) {
	dataDir, resultsDir := writeInputs(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, GenderOverrideFile), []byte(`{"Kim": "female"}`), 0o644))

	d, err := Load(LoadOptions{DataDir: dataDir, ResultsDir: resultsDir})
	require.NoError(t, err)

	require.Equal(t, []string{"SPD", "AfD", "BSW"}, d.Parties)
	require.Len(t, d.Speeches, 3)
	require.Equal(t, 2, d.Sessions, "distinct protocol ids of the speeches")
	require.NotNil(t, d.Tables[analysis.KindNoun])
	require.Nil(t, d.Tables[analysis.KindVerb])

	kim := findProfile(d.Profiles, "Kim Berger", "AfD")
	require.Equal(t, GenderResult{Gender: GenderFemale, Confidence: 1, Source: SourceManual}, kim.Gender)
	sevim := findProfile(d.Profiles, "Sevim Dağdelen", "BSW")
	require.Equal(t, SourceOverride, sevim.Gender.Source)
}

func TestLoad_MissingResults(t *testing.T) {
	_, err := Load(LoadOptions{DataDir: t.TempDir(), ResultsDir: t.TempDir()})
	require.ErrorContains(t, err, "read analysis results")
}

func TestLoad_InvalidOverrides(t *testing.T) {
	dataDir, resultsDir := writeInputs(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, GenderOverrideFile), []byte(`{"Kim": "x"}`), 0o644))
	_, err := Load(LoadOptions{DataDir: dataDir, ResultsDir: resultsDir})
	require.Error(t, err)
}
