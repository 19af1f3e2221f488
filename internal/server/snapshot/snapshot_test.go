package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"git.home.luguber.info/inful/plenar/internal/export"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/manifest"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	runID := writeExport(t, dir)

	s, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, runID, s.RunID())
	require.NotEmpty(t, s.ContentHash())
	require.Equal(t, 21, s.Overview.Metadata.Wahlperiode)
	require.Len(t, s.Index.Speakers, 4)
	require.Equal(t, 4, s.PageCount())
	require.Contains(t, s.Files(), manifest.FileName)
	require.Contains(t, s.Files(), "speakers/anna-schmidt.json")

	page, ok := s.Page("hans-mueller")
	require.True(t, ok)
	require.JSONEq(t, `{"name":"Hans Müller","slug":"hans-mueller"}`, string(page))
	_, ok = s.Page("index")
	require.False(t, ok)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, s.Manifest)
	require.Nil(t, s.Overview)
	require.Empty(t, s.RunID())
	total, rows := s.Speakers(SpeakerFilter{})
	require.Zero(t, total)
	require.Empty(t, rows)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, export.InterruptersFile), []byte("{"), 0o644))
	_, err = Load(dir)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	dir = t.TempDir()
	writeJSONFile(t, dir, manifest.FileName, map[string]any{"schema_version": "9.0"})
	_, err = Load(dir)
	require.ErrorIs(t, err, manifest.ErrIncompatible)
}

func TestStore_ReloadKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	runID := writeExport(t, dir)
	store, err := NewStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, export.WrappedFile), []byte("not json"), 0o644))
	require.Error(t, store.Reload())
	require.Equal(t, runID, store.Snapshot().RunID())

	newID := writeExport(t, dir)
	require.NoError(t, store.Reload())
	require.Equal(t, newID, store.Snapshot().RunID())
}

func TestStore_ReloadRejectsChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	runID := writeExport(t, dir)
	store, err := NewStore(dir, nil)
	require.NoError(t, err)

	// Valid JSON that differs from what the manifest recorded.
	writeJSONFile(t, dir, export.InterruptersFile, export.Interrupters{Count: 0})
	err = store.Reload()
	require.ErrorIs(t, err, ErrManifestMismatch)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	require.Equal(t, runID, store.Snapshot().RunID())
	require.Equal(t, 3, store.Snapshot().Interrupters.Count)

	require.NoError(t, os.Remove(filepath.Join(dir, export.InterruptedFile)))
	_, err = Load(dir)
	require.ErrorIs(t, err, ErrManifestMismatch)

	newID := writeExport(t, dir)
	require.NoError(t, store.Reload())
	require.Equal(t, newID, store.Snapshot().RunID())
}

func TestWatcher_ReloadsAfterChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeExport(t, dir)
	store, err := NewStore(dir, nil)
	require.NoError(t, err)

	w, err := NewWatcher(store, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer func() { require.NoError(t, w.Stop()) }()

	newID := writeExport(t, dir)
	require.Eventually(t, func() bool {
		return store.Snapshot().RunID() == newID
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	w, err := NewWatcher(store, 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
