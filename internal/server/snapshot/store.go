package snapshot

import (
	"log/slog"
	"sync/atomic"

	"git.home.luguber.info/inful/plenar/internal/logfields"
)

// Store serves the current snapshot of an export directory. Readers never
// see a half-loaded export: a reload builds a new Snapshot and swaps it in.
type Store struct {
	dir    string
	logger *slog.Logger
	cur    atomic.Pointer[Snapshot]
}

// NewStore loads dir once. The initial load must succeed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{dir: dir, logger: logger}
	snap, err := Load(dir)
	if err != nil {
		return nil, err
	}
	s.cur.Store(snap)
	logger.Info("Export loaded",
		logfields.File(dir),
		logfields.RunID(snap.RunID()),
		logfields.Count(len(snap.files)))
	return s, nil
}

// Dir returns the export directory.
func (s *Store) Dir() string { return s.dir }

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot { return s.cur.Load() }

// Reload reads the directory again. On failure the previous snapshot stays
// in place.
func (s *Store) Reload() error {
	snap, err := Load(s.dir)
	if err != nil {
		s.logger.Warn("Export reload failed, keeping previous data", logfields.Error(err))
		return err
	}
	prev := s.cur.Swap(snap)
	if prev == nil || prev.RunID() != snap.RunID() {
		s.logger.Info("Export reloaded",
			logfields.RunID(snap.RunID()),
			logfields.Count(len(snap.files)))
	}
	return nil
}
