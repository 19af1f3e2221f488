package wrapped

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/plenar/internal/logfields"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Gender is the attributed gender of a speaker.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Detection sources, from most to least authoritative.
const (
	SourceManual     = "manual"
	SourceOverride   = "bundestag_override"
	SourceDictionary = "dictionary"
	SourceHeuristic  = "heuristic"
	SourceUnknown    = "unknown"
	SourceEmpty      = "empty"
)

// GenderResult is the outcome of a first-name lookup.
type GenderResult struct {
	Gender     Gender  `json:"gender"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

type nameList struct {
	Male      []string          `yaml:"male"`
	Female    []string          `yaml:"female"`
	Ambiguous []string          `yaml:"ambiguous"`
	Overrides map[string]Gender `yaml:"overrides"`
}

var (
	namesOnce sync.Once
	names     nameList
	namesErr  error
)

func loadNames() (nameList, error) {
	namesOnce.Do(func() {
		data, err := fs.ReadFile(dataFS, "data/names.yaml")
		if err != nil {
			namesErr = err
			return
		}
		namesErr = yaml.Unmarshal(data, &names)
	})
	return names, namesErr
}

// GenderDetector attributes gender from German first names. Lookup order is
// custom mappings, built-in overrides for Bundestag members, the name
// dictionary (ambiguous names get lower confidence), name-ending heuristics
// and finally unknown. Unknown names are collected and optionally appended
// to a review file. Safe for concurrent use.
type GenderDetector struct {
	custom     map[string]Gender
	unknownLog string
	logger     *slog.Logger

	male, female, ambiguous map[string]struct{}
	overrides               map[string]Gender

	mu      sync.Mutex
	cache   map[string]GenderResult
	unknown map[string]struct{}
}

// DetectorOption configures a GenderDetector.
type DetectorOption func(*GenderDetector)

// WithCustomMappings adds manual name -> gender mappings that win over
// every other source.
func WithCustomMappings(m map[string]Gender) DetectorOption {
	return func(d *GenderDetector) {
		for k, v := range m {
			d.custom[strings.ToLower(k)] = v
		}
	}
}

// WithUnknownLog appends every newly seen unknown name to path.
func WithUnknownLog(path string) DetectorOption {
	return func(d *GenderDetector) { d.unknownLog = path }
}

// WithDetectorLogger sets the logger for unknown-name diagnostics.
func WithDetectorLogger(l *slog.Logger) DetectorOption {
	return func(d *GenderDetector) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewGenderDetector builds a detector over the embedded name lists.
func NewGenderDetector(opts ...DetectorOption) (*GenderDetector, error) {
	nl, err := loadNames()
	if err != nil {
		return nil, fmt.Errorf("load name lists: %w", err)
	}
	d := &GenderDetector{
		custom:    map[string]Gender{},
		logger:    slog.Default(),
		male:      toSet(nl.Male),
		female:    toSet(nl.Female),
		ambiguous: toSet(nl.Ambiguous),
		overrides: nl.Overrides,
		cache:     map[string]GenderResult{},
		unknown:   map[string]struct{}{},
	}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

func toSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[strings.ToLower(w)] = struct{}{}
	}
	return out
}

// Detect classifies the first token of a first name.
func (d *GenderDetector) Detect(firstName string) GenderResult {
	fields := strings.Fields(firstName)
	if len(fields) == 0 {
		return GenderResult{Gender: GenderUnknown, Source: SourceEmpty}
	}
	name := strings.ToLower(fields[0])

	d.mu.Lock()
	defer d.mu.Unlock()
	if r, ok := d.cache[name]; ok {
		return r
	}
	r := d.detect(name)
	d.cache[name] = r
	return r
}

func (d *GenderDetector) detect(name string) GenderResult {
	if g, ok := d.custom[name]; ok {
		return GenderResult{Gender: g, Confidence: 1.0, Source: SourceManual}
	}
	if g, ok := d.overrides[name]; ok {
		return GenderResult{Gender: g, Confidence: 0.9, Source: SourceOverride}
	}
	conf := 0.95
	if _, ok := d.ambiguous[name]; ok {
		conf = 0.7
	}
	if _, ok := d.female[name]; ok {
		return GenderResult{Gender: GenderFemale, Confidence: conf, Source: SourceDictionary}
	}
	if _, ok := d.male[name]; ok {
		return GenderResult{Gender: GenderMale, Confidence: conf, Source: SourceDictionary}
	}
	if r := heuristicGender(name); r.Confidence >= 0.6 {
		return r
	}
	d.logUnknown(name)
	return GenderResult{Gender: GenderUnknown, Source: SourceUnknown}
}

var (
	femaleEndings = []string{"ine", "ina", "ella", "ette", "ika", "heid", "gard", "traud", "trud", "linde", "hilde"}
	maleEndings   = []string{
		"bert", "brecht", "fried", "hard", "hart", "helm", "hold",
		"mar", "mut", "olf", "wald", "ward", "win", "rich",
		"ian", "ius", "us",
	}
)

func hasAnySuffix(s string, suffixes []string) bool {
	return slices.ContainsFunc(suffixes, func(suf string) bool { return strings.HasSuffix(s, suf) })
}

// heuristicGender guesses from common German name endings.
func heuristicGender(name string) GenderResult {
	switch {
	case hasAnySuffix(name, femaleEndings):
		return GenderResult{Gender: GenderFemale, Confidence: 0.8, Source: SourceHeuristic}
	case hasAnySuffix(name, maleEndings):
		return GenderResult{Gender: GenderMale, Confidence: 0.8, Source: SourceHeuristic}
	case strings.HasSuffix(name, "a") && !strings.HasSuffix(name, "ka"):
		return GenderResult{Gender: GenderFemale, Confidence: 0.65, Source: SourceHeuristic}
	case strings.HasSuffix(name, "o"):
		return GenderResult{Gender: GenderMale, Confidence: 0.65, Source: SourceHeuristic}
	}
	return GenderResult{Gender: GenderUnknown, Source: SourceHeuristic}
}

// logUnknown must be called with d.mu held.
func (d *GenderDetector) logUnknown(name string) {
	if _, seen := d.unknown[name]; seen {
		return
	}
	d.unknown[name] = struct{}{}
	d.logger.Debug("Unknown gender for first name", slog.String("name", name))
	if d.unknownLog == "" {
		return
	}
	f, err := os.OpenFile(d.unknownLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		d.logger.Warn("Failed to record unknown name", logfields.File(d.unknownLog), logfields.Error(err))
		return
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, name); err != nil {
		d.logger.Warn("Failed to record unknown name", logfields.File(d.unknownLog), logfields.Error(err))
	}
}

// AddMapping sets a manual mapping at runtime and drops cached results.
func (d *GenderDetector) AddMapping(name string, g Gender) {
	key := strings.ToLower(name)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.custom[key] = g
	delete(d.cache, key)
	delete(d.unknown, key)
}

// UnknownNames returns the sorted names that could not be classified.
func (d *GenderDetector) UnknownNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.unknown))
	for n := range d.unknown {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// LoadCustomMappings reads a firstname -> male|female mapping written as YAML
// or JSON. A missing file yields no mappings.
func LoadCustomMappings(path string) (map[string]Gender, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Gender{}, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]Gender
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make(map[string]Gender, len(raw))
	for k, v := range raw {
		if v != GenderMale && v != GenderFemale {
			return nil, fmt.Errorf("parse %s: invalid gender %q for %q", path, v, k)
		}
		out[strings.ToLower(k)] = v
	}
	return out, nil
}
