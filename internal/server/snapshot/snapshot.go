// Package snapshot holds a web export directory in memory for the Wrapped
// API and reloads it when the exporter rewrites the files.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/plenar/internal/export"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/manifest"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// Overview is the part of wrapped.json the API filters on.
type Overview struct {
	Metadata  wrapped.WebMetadata     `json:"metadata"`
	Parties   []wrapped.WebParty      `json:"parties"`
	HotTopics []wrapped.HotTopic      `json:"hotTopics"`
	Drama     wrapped.WebDrama        `json:"drama"`
	Speakers  []wrapped.RankedSpeaker `json:"topSpeakers"`
}

// Snapshot is one consistent load of an export directory. Every file is
// optional; a missing file leaves its field nil.
type Snapshot struct {
	Dir          string
	LoadedAt     time.Time
	Manifest     *manifest.Manifest
	Wrapped      json.RawMessage
	Overview     *Overview
	Index        *wrapped.SpeakerIndex
	Interrupters *export.Interrupters
	Interrupted  *export.Interrupted
	Neutral      *export.NeutralTexts

	pages map[string]json.RawMessage
	files []string
}

// ErrManifestMismatch is returned when exported files do not match the
// checksums recorded in manifest.json, e.g. while an export is being
// rewritten.
var ErrManifestMismatch = errors.New("export does not match its manifest")

// Load reads dir. Malformed files, manifests of another schema major
// version and files whose checksums differ from the manifest fail the load.
func Load(dir string) (*Snapshot, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNotFound, "export directory not found").
			WithContext("dir", dir).UserAction().Build()
	}
	if !info.IsDir() {
		return nil, ferrors.ValidationError("export path is not a directory").
			WithContext("dir", dir).UserAction().Build()
	}

	s := &Snapshot{Dir: dir, LoadedAt: time.Now().UTC(), pages: map[string]json.RawMessage{}}

	m, err := manifest.Read(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "unusable manifest").
			WithContext("dir", dir).Build()
	default:
		s.Manifest = m
		s.files = append(s.files, manifest.FileName)
	}

	raw, err := s.read(export.WrappedFile)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		var ov Overview
		if err := json.Unmarshal(raw, &ov); err != nil {
			return nil, decodeError(export.WrappedFile, err)
		}
		s.Wrapped = raw
		s.Overview = &ov
	}

	if s.Index, err = readJSON[wrapped.SpeakerIndex](s, export.SpeakersDir+"/"+export.IndexFile); err != nil {
		return nil, err
	}
	if s.Interrupters, err = readJSON[export.Interrupters](s, export.InterruptersFile); err != nil {
		return nil, err
	}
	if s.Interrupted, err = readJSON[export.Interrupted](s, export.InterruptedFile); err != nil {
		return nil, err
	}
	if s.Neutral, err = readJSON[export.NeutralTexts](s, export.NeutralTextsFile); err != nil {
		return nil, err
	}
	if err := s.loadPages(); err != nil {
		return nil, err
	}
	if err := s.verify(); err != nil {
		return nil, err
	}
	slices.Sort(s.files)
	return s, nil
}

// verify checks the files listed in the manifest against their checksums.
func (s *Snapshot) verify() error {
	if s.Manifest == nil {
		return nil
	}
	problems := s.Manifest.Verify(s.Dir)
	if len(problems) == 0 {
		return nil
	}
	return ferrors.WrapError(ErrManifestMismatch, ferrors.CategoryValidation, "verify export").
		WithContext("dir", s.Dir).
		WithContext("file", problems[0].Path).
		WithContext("reason", problems[0].Reason).
		WithContext("problems", len(problems)).Build()
}

// read returns the content of rel, or nil when it does not exist.
func (s *Snapshot) read(rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read export file").
			WithContext("file", rel).Build()
	}
	s.files = append(s.files, rel)
	return data, nil
}

func readJSON[T any](s *Snapshot, rel string) (*T, error) {
	data, err := s.read(rel)
	if err != nil || data == nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, decodeError(rel, err)
	}
	return &v, nil
}

// loadPages keeps the speaker files verbatim; they are served as they are.
func (s *Snapshot) loadPages() error {
	dir := filepath.Join(s.Dir, export.SpeakersDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "list speaker files").
			WithContext("dir", dir).Build()
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == export.IndexFile || !strings.HasSuffix(name, ".json") {
			continue
		}
		rel := export.SpeakersDir + "/" + name
		data, err := s.read(rel)
		if err != nil {
			return err
		}
		if data == nil {
			continue
		}
		if !json.Valid(data) {
			return decodeError(rel, errors.New("invalid JSON"))
		}
		s.pages[strings.TrimSuffix(name, ".json")] = data
	}
	return nil
}

func decodeError(file string, err error) error {
	return ferrors.WrapError(err, ferrors.CategoryValidation, fmt.Sprintf("decode %s", file)).
		WithContext("file", file).Build()
}

// Files lists the loaded files relative to the export directory.
func (s *Snapshot) Files() []string { return slices.Clone(s.files) }

// RunID returns the manifest's run id, if any.
func (s *Snapshot) RunID() string {
	if s.Manifest == nil {
		return ""
	}
	return s.Manifest.RunID
}

// ContentHash returns the manifest's content hash, if any.
func (s *Snapshot) ContentHash() string {
	if s.Manifest == nil {
		return ""
	}
	return s.Manifest.ContentHash()
}

// Page returns the speaker file for slug.
func (s *Snapshot) Page(slug string) (json.RawMessage, bool) {
	p, ok := s.pages[slug]
	return p, ok
}

// PageCount returns the number of speaker files.
func (s *Snapshot) PageCount() int { return len(s.pages) }
