package wrapped

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/datastore"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

const (
	FullDataFile       = "full_data.json"
	GenderOverrideFile = "gender_overrides.json"
	UnknownNamesFile   = "unknown_names.txt"

	// Fraktionslos members appear in speaker lists but not in party stats.
	Fraktionslos = "fraktionslos"
)

// LoadOptions locate the inputs of a wrapped computation.
type LoadOptions struct {
	DataDir    string // download/parse directory with speeches.json
	ResultsDir string // analyze output with full_data.json and CSV tables
	Logger     *slog.Logger

	// GenderMapping and UnknownNames default to gender_overrides.json and
	// unknown_names.txt in DataDir.
	GenderMapping string
	UnknownNames  string
}

// Data is everything the wrapped views are computed from.
type Data struct {
	Meta     analysis.Metadata
	Parties  []string
	Results  map[string]analysis.ResultDoc
	Tables   map[analysis.WordKind]*analysis.FrequencyTable
	Speeches []datastore.SpeechRecord
	Sessions int

	Stats    protocol.TypeStats
	Drama    *Drama
	Profiles []*SpeakerProfile
	Gender   *GenderStats
	Detector *GenderDetector
}

// Load reads the analysis results and parsed speeches and derives drama,
// speaker profiles and gender statistics.
func Load(opts LoadOptions) (*Data, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var fd analysis.FullData
	path := filepath.Join(opts.ResultsDir, FullDataFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis results: %w", err)
	}
	if err := json.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FullDataFile, err)
	}

	store, err := datastore.Open(opts.DataDir)
	if err != nil {
		return nil, err
	}
	byParty, err := store.LoadSpeeches()
	if err != nil {
		return nil, fmt.Errorf("load speeches: %w", err)
	}
	ids, err := store.Protocols()
	if err != nil {
		return nil, fmt.Errorf("list protocols: %w", err)
	}

	mapping := cmp.Or(opts.GenderMapping, filepath.Join(opts.DataDir, GenderOverrideFile))
	custom, err := LoadCustomMappings(mapping)
	if err != nil {
		return nil, err
	}
	detector, err := NewGenderDetector(
		WithCustomMappings(custom),
		WithUnknownLog(cmp.Or(opts.UnknownNames, filepath.Join(opts.DataDir, UnknownNamesFile))),
		WithDetectorLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	tables := map[analysis.WordKind]*analysis.FrequencyTable{}
	for _, kind := range []analysis.WordKind{analysis.KindNoun, analysis.KindAdjective, analysis.KindVerb} {
		t, err := readTable(filepath.Join(opts.ResultsDir, string(kind)+".csv"))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("Frequency table missing", logfields.File(string(kind)+".csv"))
		case err != nil:
			return nil, err
		default:
			tables[kind] = t
		}
	}

	parties := make([]string, 0, len(byParty))
	for p := range byParty {
		parties = append(parties, p)
	}
	slices.Sort(parties)
	var records []datastore.SpeechRecord
	protocolsSeen := map[int]struct{}{}
	for _, p := range parties {
		for _, r := range byParty[p] {
			records = append(records, r)
			if r.ProtocolID != 0 {
				protocolsSeen[r.ProtocolID] = struct{}{}
			}
		}
	}
	d := NewData(fd, records, max(len(ids), len(protocolsSeen)), detector)
	d.Tables = tables
	logger.Info("Loaded wrapped data",
		logfields.Count(len(d.Speeches)),
		slog.Int("parties", len(d.Parties)),
		slog.Int("speakers", len(d.Profiles)))
	return d, nil
}

func readTable(path string) (*analysis.FrequencyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := analysis.ReadFrequencyCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// compute derives type statistics, drama, profiles and gender stats.
func (d *Data) compute() {
	speeches := d.plainSpeeches()
	d.Stats = protocol.AggregateByType(speeches)
	d.Drama = BuildDrama(speeches)
	d.Profiles = MergePartialProfiles(BuildProfiles(speeches, d.Drama, d.Detector))
	d.Gender = BuildGenderStats(d.Profiles)
}

func (d *Data) plainSpeeches() []protocol.Speech {
	out := make([]protocol.Speech, len(d.Speeches))
	for i, r := range d.Speeches {
		out[i] = r.Speech
	}
	return out
}

// NewData builds Data from in-memory inputs. It is used by the pipeline,
// which already holds results and speeches, and by tests.
func NewData(fd analysis.FullData, records []datastore.SpeechRecord, sessions int, detector *GenderDetector) *Data {
	d := &Data{
		Meta:     fd.Metadata,
		Results:  map[string]analysis.ResultDoc{},
		Tables:   map[analysis.WordKind]*analysis.FrequencyTable{},
		Speeches: records,
		Sessions: sessions,
		Detector: detector,
	}
	for _, p := range fd.Metadata.Parties {
		if p != Fraktionslos {
			d.Parties = append(d.Parties, p)
		}
	}
	for _, r := range fd.Results {
		if r.Party != Fraktionslos {
			d.Results[r.Party] = r
		}
	}
	d.compute()
	return d
}
