// Package export writes the pipeline's public JSON and CSV files: the raw
// analysis results, one profile per speaker, the aggregate wrapped views,
// and a manifest listing every file with its checksum.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/manifest"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/version"
)

// DefaultWorkers bounds concurrent speaker file writes.
const DefaultWorkers = 8

// Options configure an Exporter. Zero values select defaults.
type Options struct {
	Logger      *slog.Logger
	Recorder    metrics.Recorder
	Workers     int
	ToolVersion string
	Now         func() time.Time
}

// Exporter writes files into one output directory and records them in that
// directory's manifest. Call Finish once all variants are written.
type Exporter struct {
	dir      string
	logger   *slog.Logger
	recorder metrics.Recorder
	workers  int
	now      func() time.Time

	mu  sync.Mutex
	man *manifest.Manifest
}

// New prepares dir for an export run.
func New(dir string, opts Options) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "create export directory").
			WithContext("dir", dir).Build()
	}
	e := &Exporter{
		dir:      dir,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		workers:  opts.Workers,
		now:      opts.Now,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.recorder == nil {
		e.recorder = metrics.NoopRecorder{}
	}
	if e.workers <= 0 {
		e.workers = DefaultWorkers
	}
	if e.now == nil {
		e.now = time.Now
	}
	tool := opts.ToolVersion
	if tool == "" {
		tool = version.Version
	}
	e.man = manifest.New(tool, e.now())
	return e, nil
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// RunID returns the id recorded in the manifest of this run.
func (e *Exporter) RunID() string { return e.man.RunID }

func (e *Exporter) writeJSON(rel string, v any, variant manifest.Variant) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", rel, err)
	}
	return e.writeFile(rel, data, variant)
}

// writeFile replaces dir/rel through a temporary file and records it.
func (e *Exporter) writeFile(rel string, data []byte, variant manifest.Variant) error {
	path := filepath.Join(e.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", rel, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", rel, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.man.Add(e.dir, rel, variant)
}

// stage runs fn as a timed, logged export stage. Failures are classified as
// export errors.
func (e *Exporter) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	e.recorder.ObserveStageDuration(name, d)
	if err != nil {
		e.recorder.IncStageResult(name, metrics.ResultFatal)
		e.logger.Error("Export stage failed", logfields.Stage(name), logfields.Error(err))
		if _, ok := ferrors.AsClassified(err); ok {
			return err
		}
		return ferrors.WrapError(err, ferrors.CategoryExport, "export "+name).
			WithContext("dir", e.dir).Build()
	}
	e.recorder.IncStageResult(name, metrics.ResultSuccess)
	e.logger.Debug("Export stage finished", logfields.Stage(name), logfields.DurationMS(float64(d.Milliseconds())))
	return nil
}

// Finish writes manifest.json. Entries of earlier runs are kept for
// variants this run did not write; an incompatible earlier manifest is
// replaced.
func (e *Exporter) Finish() (*manifest.Manifest, error) {
	prev, err := manifest.Read(e.dir)
	switch {
	case err == nil:
		e.man.Merge(prev)
	case errors.Is(err, os.ErrNotExist):
	case errors.Is(err, manifest.ErrIncompatible):
		e.logger.Warn("Replacing manifest of an incompatible schema", logfields.Error(err))
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryExport, "read previous manifest").Build()
	}
	if err := e.man.Write(e.dir); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write manifest").
			WithContext("dir", e.dir).Build()
	}
	e.logger.Info("Export finished",
		logfields.RunID(e.man.RunID),
		logfields.Count(len(e.man.Files)),
		logfields.File(filepath.Join(e.dir, manifest.FileName)))
	return e.man, nil
}
