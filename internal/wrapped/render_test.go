package wrapped

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_All(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, fixtureData(t).BuildWrapped(), RenderOptions{}))
	out := buf.String()

	require.Contains(t, out, "BUNDESTAG WRAPPED")
	require.Contains(t, out, "Wahlperiode 21, 2 Sitzungen")
	require.Contains(t, out, "7 Reden | 6.010 Wörter | 3 Fraktionen | 5 Redner:innen")
	require.Contains(t, out, "🌹 SPD\n")
	require.Contains(t, out, "bildung")
	require.Contains(t, out, "Hans Müller")
	require.Contains(t, out, "Zustimmung")
	require.Contains(t, out, "Tonalität")
}

func TestRender_FiltersPartiesAndSections(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, fixtureData(t).BuildWrapped(), RenderOptions{
		Parties: []string{"SPD"},
		Section: SectionParty,
		NoEmoji: true,
	})
	require.NoError(t, err)
	out := buf.String()

	require.Contains(t, out, "\nSPD\n===\n")
	require.NotContains(t, out, "CDU/CSU\n")
	require.NotContains(t, out, "🌹")
	require.NotContains(t, out, "Zwischenrufer:innen")
	require.NotContains(t, out, "Tonalität")
}

func TestReadWrapped(t *testing.T) {
	w := fixtureData(t).BuildWrapped()
	raw, err := json.Marshal(w)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "wrapped.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	got, err := ReadWrapped(path)
	require.NoError(t, err)
	require.Equal(t, w.Metadata, got.Metadata)
	require.Len(t, got.Parties, len(w.Parties))

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = ReadWrapped(path)
	require.ErrorContains(t, err, "decode")
}
