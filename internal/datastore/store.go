// Package datastore keeps the batch pipeline's working data as flat JSON
// files: download progress in state.json, one file per protocol and the
// parsed speeches grouped by party.
package datastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/plenar/internal/protocol"
	"git.home.luguber.info/inful/plenar/internal/source"
)

const (
	StateFile    = "state.json"
	SpeechesFile = "speeches.json"
	ProtocolsDir = "protocols"
)

// ErrNoState is returned when the directory has no state.json yet.
var ErrNoState = errors.New("no download state")

// State tracks download and parse progress of a data directory.
type State struct {
	Wahlperiode int       `json:"wahlperiode"`
	Server      string    `json:"server"`
	ProtocolIDs []int     `json:"protocol_ids"`
	Downloaded  []int     `json:"downloaded"`
	Failed      []int     `json:"failed"`
	Parsed      bool      `json:"parsed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Pending returns the protocol ids not downloaded yet, failed ones included.
func (s *State) Pending() []int {
	var out []int
	for _, id := range s.ProtocolIDs {
		if !slices.Contains(s.Downloaded, id) {
			out = append(out, id)
		}
	}
	return out
}

// SpeechRecord is a parsed speech together with the protocol it came from.
type SpeechRecord struct {
	protocol.Speech
	ProtocolID     int    `json:"protocol_id,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	Date           string `json:"date,omitempty"`
}

type protocolFile struct {
	Data     source.ProtocolRef `json:"data"`
	FullText string             `json:"fullText"`
}

// Store is a data directory. Methods are safe for concurrent use.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open creates the directory layout when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, ProtocolsDir), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// SpeechesPath returns the path of speeches.json.
func (s *Store) SpeechesPath() string { return filepath.Join(s.dir, SpeechesFile) }

// HasState reports whether state.json exists.
func (s *Store) HasState() bool {
	_, err := os.Stat(filepath.Join(s.dir, StateFile))
	return err == nil
}

// LoadState reads state.json. It returns ErrNoState when none exists.
func (s *Store) LoadState() (*State, error) {
	var st State
	if err := readJSON(filepath.Join(s.dir, StateFile), &st); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoState
		}
		return nil, err
	}
	return &st, nil
}

// InitState writes a fresh state for the given protocol ids.
func (s *Store) InitState(wahlperiode int, server string, ids []int) (*State, error) {
	now := time.Now().UTC()
	st := &State{
		Wahlperiode: wahlperiode,
		Server:      server,
		ProtocolIDs: ids,
		Downloaded:  []int{},
		Failed:      []int{},
		CreatedAt:   now,
	}
	if err := s.SaveState(st); err != nil {
		return nil, err
	}
	return st, nil
}

// SaveState writes state.json atomically.
func (s *Store) SaveState(st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.UpdatedAt = time.Now().UTC()
	return writeJSON(filepath.Join(s.dir, StateFile), st)
}

// MarkDownloaded records a successful download and persists the state.
// speeches.json is stale afterwards, so parsed is cleared.
func (s *Store) MarkDownloaded(st *State, id int) error {
	s.mu.Lock()
	if !slices.Contains(st.Downloaded, id) {
		st.Downloaded = append(st.Downloaded, id)
	}
	st.Failed = slices.DeleteFunc(st.Failed, func(v int) bool { return v == id })
	st.Parsed = false
	s.mu.Unlock()
	return s.SaveState(st)
}

// MarkFailed records a failed download and persists the state. Failed
// protocols stay pending and are retried by the next download.
func (s *Store) MarkFailed(st *State, id int) error {
	s.mu.Lock()
	if !slices.Contains(st.Failed, id) {
		st.Failed = append(st.Failed, id)
	}
	s.mu.Unlock()
	return s.SaveState(st)
}

// AddProtocolIDs appends ids not yet tracked, e.g. for imported files.
func (s *Store) AddProtocolIDs(st *State, ids ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if !slices.Contains(st.ProtocolIDs, id) {
			st.ProtocolIDs = append(st.ProtocolIDs, id)
		}
	}
}

func (s *Store) protocolPath(id int) string {
	return filepath.Join(s.dir, ProtocolsDir, strconv.Itoa(id)+".json")
}

// SaveProtocol writes protocols/<id>.json.
func (s *Store) SaveProtocol(p *source.Protocol) error {
	return writeJSON(s.protocolPath(int(p.ID)), protocolFile{Data: p.ProtocolRef, FullText: p.FullText})
}

// LoadProtocol reads protocols/<id>.json.
func (s *Store) LoadProtocol(id int) (*source.Protocol, error) {
	var f protocolFile
	if err := readJSON(s.protocolPath(id), &f); err != nil {
		return nil, err
	}
	if f.Data.ID == 0 {
		f.Data.ID = source.ID(id)
	}
	return &source.Protocol{ProtocolRef: f.Data, FullText: f.FullText}, nil
}

// Protocols returns the ids of all stored protocols in ascending order.
func (s *Store) Protocols() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, ProtocolsDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var ids []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// SaveSpeeches writes speeches.json.
func (s *Store) SaveSpeeches(byParty map[string][]SpeechRecord) error {
	return writeJSON(s.SpeechesPath(), byParty)
}

// LoadSpeeches reads speeches.json. A missing file returns os.ErrNotExist.
func (s *Store) LoadSpeeches() (map[string][]SpeechRecord, error) {
	var out map[string][]SpeechRecord
	if err := readJSON(s.SpeechesPath(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Status summarises a data directory.
type Status struct {
	Started         bool
	Wahlperiode     int
	Server          string
	TotalProtocols  int
	Downloaded      int
	Pending         int
	Failed          int
	Parsed          bool
	UpdatedAt       time.Time
	SpeechesByParty map[string]int
}

// Status reads the state and, when present, speech counts per party.
func (s *Store) Status() (Status, error) {
	st, err := s.LoadState()
	if errors.Is(err, ErrNoState) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}
	out := Status{
		Started:        true,
		Wahlperiode:    st.Wahlperiode,
		Server:         st.Server,
		TotalProtocols: len(st.ProtocolIDs),
		Downloaded:     len(st.Downloaded),
		Pending:        len(st.Pending()),
		Failed:         len(st.Failed),
		Parsed:         st.Parsed,
		UpdatedAt:      st.UpdatedAt,
	}
	speeches, err := s.LoadSpeeches()
	switch {
	case err == nil:
		out.SpeechesByParty = make(map[string]int, len(speeches))
		for p, list := range speeches {
			out.SpeechesByParty[p] = len(list)
		}
	case !errors.Is(err, os.ErrNotExist):
		return out, err
	}
	return out, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON writes through a temporary file and renames it into place.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
