package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/plenar/internal/export"
	"git.home.luguber.info/inful/plenar/internal/logfields"
)

// DefaultDebounce collapses the burst of writes of one export run into a
// single reload.
const DefaultDebounce = 2 * time.Second

// Watcher reloads a Store when JSON files in its directory change.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger

	started  bool
	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

// NewWatcher creates a watcher for store. debounce <= 0 selects
// DefaultDebounce.
func NewWatcher(store *Store, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		store:    store,
		watcher:  fw,
		debounce: debounce,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start watches the export directory and its speakers subdirectory.
func (w *Watcher) Start(ctx context.Context) error {
	dir := w.store.Dir()
	if err := w.watcher.Add(dir); err != nil {
		_ = w.watcher.Close()
		return fmt.Errorf("failed to watch export directory %s: %w", dir, err)
	}
	w.addSpeakersDir()
	w.logger.Info("Watching export directory", logfields.File(dir), slog.Duration("debounce", w.debounce))
	w.started = true
	go w.loop(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit. It is safe to call
// more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
		if w.started {
			<-w.done
		}
	})
	return err
}

func (w *Watcher) addSpeakersDir() {
	sub := filepath.Join(w.store.Dir(), export.SpeakersDir)
	if info, err := os.Stat(sub); err == nil && info.IsDir() {
		if err := w.watcher.Add(sub); err != nil {
			w.logger.Warn("Cannot watch speakers directory", logfields.File(sub), logfields.Error(err))
		}
	}
}

// loop collects events and reloads once no event arrived for the debounce
// interval.
func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && filepath.Base(event.Name) == export.SpeakersDir {
				w.addSpeakersDir()
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("Export file changed", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			_ = w.store.Reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Export watcher error", logfields.Error(err))
		}
	}
}

// relevant ignores temporary files of atomic writes and anything not JSON.
func relevant(e fsnotify.Event) bool {
	if !strings.HasSuffix(e.Name, ".json") {
		return false
	}
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) || e.Has(fsnotify.Rename) || e.Has(fsnotify.Remove)
}
