package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/manifest"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// Locations of the speaker-profile variant.
const (
	SpeakersDir = "speakers"
	IndexFile   = "index.json"
)

// SpeakerResult reports a speaker export.
type SpeakerResult struct {
	Exported     int
	StaleRemoved int
}

// Speakers writes speakers/index.json and one speakers/<slug>.json per
// speaker, concurrently. Profiles of speakers no longer present are removed.
func (e *Exporter) Speakers(ctx context.Context, d *wrapped.Data) (SpeakerResult, error) {
	var res SpeakerResult
	err := e.stage("export_speakers", func() error {
		set := d.BuildSpeakerSet()
		if err := e.writeJSON(SpeakersDir+"/"+IndexFile, set.Index(), manifest.VariantSpeakers); err != nil {
			return err
		}

		slugs := set.Slugs()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)
		for _, slug := range slugs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				page, ok := set.Page(slug)
				if !ok {
					return nil
				}
				return e.writeJSON(SpeakersDir+"/"+slug+".json", page, manifest.VariantSpeakers)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		res.Exported = len(slugs)

		removed, err := e.removeStaleSpeakers(slugs)
		if err != nil {
			return err
		}
		res.StaleRemoved = removed
		e.logger.Info("Exported speaker profiles",
			logfields.Count(res.Exported),
			logfields.File(filepath.Join(e.dir, SpeakersDir)))
		return nil
	})
	return res, err
}

// removeStaleSpeakers deletes profile files and leftover temporary files
// that do not belong to a current speaker.
func (e *Exporter) removeStaleSpeakers(slugs []string) (int, error) {
	keep := make(map[string]struct{}, len(slugs)+1)
	keep[IndexFile] = struct{}{}
	for _, s := range slugs {
		keep[s+".json"] = struct{}{}
	}
	dir := filepath.Join(e.dir, SpeakersDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, en := range entries {
		name := en.Name()
		if en.IsDir() || !(strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".tmp")) {
			continue
		}
		if _, ok := keep[name]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, err
		}
		removed++
		e.logger.Debug("Removed stale speaker file", logfields.File(name))
	}
	return removed, nil
}
