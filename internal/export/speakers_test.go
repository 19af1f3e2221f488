package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExporter_Speakers(t *testing.T) {
	dir := t.TempDir()
	e, _ := newExporter(t, dir)
	res, err := e.Speakers(context.Background(), fixtureData(t))
	require.NoError(t, err)
	require.Equal(t, SpeakerResult{Exported: 2}, res)

	raw, err := os.ReadFile(filepath.Join(dir, SpeakersDir, IndexFile))
	require.NoError(t, err)
	var index struct {
		Speakers []struct {
			Slug string `json:"slug"`
		} `json:"speakers"`
	}
	require.NoError(t, json.Unmarshal(raw, &index))
	require.Len(t, index.Speakers, 2)

	for _, slug := range []string{"anna-schmidt", "hans-mueller"} {
		require.FileExists(t, filepath.Join(dir, SpeakersDir, slug+".json"))
	}
}

func TestExporter_SpeakersRemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	speakers := filepath.Join(dir, SpeakersDir)
	require.NoError(t, os.MkdirAll(speakers, 0o755))
	for _, name := range []string{"old-member.json", "anna-schmidt.json.tmp", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(speakers, name), []byte("{}"), 0o644))
	}

	e, _ := newExporter(t, dir)
	res, err := e.Speakers(context.Background(), fixtureData(t))
	require.NoError(t, err)
	require.Equal(t, 2, res.StaleRemoved)

	require.NoFileExists(t, filepath.Join(speakers, "old-member.json"))
	require.NoFileExists(t, filepath.Join(speakers, "anna-schmidt.json.tmp"))
	require.FileExists(t, filepath.Join(speakers, "notes.txt"))
	require.FileExists(t, filepath.Join(speakers, "anna-schmidt.json"))
}

func TestExporter_SpeakersCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, _ := newExporter(t, t.TempDir())
	_, err := e.Speakers(ctx, fixtureData(t))
	require.ErrorIs(t, err, context.Canceled)
}
