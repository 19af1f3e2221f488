package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInterrupters(t *testing.T) {
	doc := BuildInterrupters(fixtureData(t))
	require.Equal(t, 2, doc.Count)
	require.Equal(t, 2, doc.Stats.Total)
	for i, row := range doc.Data {
		require.Equal(t, i+1, row.Rank)
		require.Equal(t, 1, row.Count)
		require.Equal(t, row.Count, row.Positive+row.Negative+row.Neutral)
	}
}

func TestBuildInterrupted(t *testing.T) {
	doc := BuildInterrupted(fixtureData(t))
	require.Equal(t, 1, doc.Count)
	require.Equal(t, InterruptedRow{Rank: 1, Name: "Anna Schmidt", Party: "SPD", Count: 2}, doc.Data[0])
}

func TestBuildNeutralTexts(t *testing.T) {
	doc := BuildNeutralTexts(fixtureData(t))
	require.Equal(t, 1, doc.TotalCount)
	require.Equal(t, 1, doc.UniqueCount)
	require.Equal(t, NeutralText{
		Text:    "Was soll das denn heißen?",
		Count:   1,
		Parties: map[string]int{"GRÜNE": 1},
	}, doc.Data[0])
}

func TestExporter_InterruptionsWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	e, _ := newExporter(t, dir)
	require.NoError(t, e.Interruptions(fixtureData(t)))

	raw, err := os.ReadFile(filepath.Join(dir, InterruptedFile))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.ElementsMatch(t, []string{"title", "description", "count", "data"}, keys(doc))
	require.FileExists(t, filepath.Join(dir, InterruptersFile))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
