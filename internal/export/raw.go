package export

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/datastore"
	"git.home.luguber.info/inful/plenar/internal/manifest"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

// File names of the raw variant.
const (
	FullDataFile   = "full_data.json"
	SummaryFile    = "summary.json"
	SpeechesDBFile = "speeches_db.json"
)

const previewRunes = 150

// RawInput is what the analyze step hands to the raw export.
type RawInput struct {
	Results     []*analysis.AnalysisResult
	Wahlperiode int
}

// Raw writes full_data.json, summary.json and one frequency table per word
// kind.
func (e *Exporter) Raw(in RawInput) error {
	return e.stage("export_raw", func() error {
		fd := analysis.NewFullData(in.Results, in.Wahlperiode, e.now())
		if err := e.writeJSON(FullDataFile, fd, manifest.VariantRaw); err != nil {
			return err
		}
		if err := e.writeJSON(SummaryFile, analysis.NewSummary(in.Results, fd.Metadata), manifest.VariantRaw); err != nil {
			return err
		}
		for _, kind := range []analysis.WordKind{analysis.KindNoun, analysis.KindAdjective, analysis.KindVerb} {
			var buf bytes.Buffer
			if err := analysis.BuildFrequencyTable(in.Results, kind).WriteCSV(&buf); err != nil {
				return err
			}
			if err := e.writeFile(string(kind)+".csv", buf.Bytes(), manifest.VariantRaw); err != nil {
				return err
			}
		}
		return nil
	})
}

// SpeechEntry is one speech of speeches_db.json.
type SpeechEntry struct {
	ID             int                 `json:"id"`
	Speaker        string              `json:"speaker"`
	Party          string              `json:"party"`
	Type           protocol.SpeechType `json:"type"`
	Category       protocol.Category   `json:"category"`
	Words          int                 `json:"words"`
	Text           string              `json:"text"`
	Preview        string              `json:"preview"`
	ProtocolID     int                 `json:"protocolId,omitempty"`
	DocumentNumber string              `json:"documentNumber,omitempty"`
	Date           string              `json:"date,omitempty"`
}

// SpeechDB is the content of speeches_db.json, the searchable transparency
// database of every parsed speech.
type SpeechDB struct {
	GeneratedAt   time.Time     `json:"generatedAt"`
	Speeches      []SpeechEntry `json:"speeches"`
	Speakers      []string      `json:"speakers"`
	Parties       []string      `json:"parties"`
	TotalSpeeches int           `json:"totalSpeeches"`
}

func preview(text string) string {
	p := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	if utf8.RuneCountInString(p) <= previewRunes {
		return p
	}
	r := []rune(p)
	return strings.TrimSpace(string(r[:previewRunes])) + "..."
}

// BuildSpeechDB orders speeches by speaker, keeping protocol order within a
// speaker, and numbers them from 1.
func BuildSpeechDB(records []datastore.SpeechRecord, now time.Time) SpeechDB {
	db := SpeechDB{GeneratedAt: now.UTC(), Speeches: make([]SpeechEntry, 0, len(records))}
	speakers, parties := map[string]struct{}{}, map[string]struct{}{}
	for _, r := range records {
		cat := r.Category
		if cat == "" {
			cat = protocol.CategoryFor(r.Type)
		}
		db.Speeches = append(db.Speeches, SpeechEntry{
			Speaker:        r.Speaker,
			Party:          r.Party,
			Type:           r.Type,
			Category:       cat,
			Words:          r.Words,
			Text:           r.Text,
			Preview:        preview(r.Text),
			ProtocolID:     r.ProtocolID,
			DocumentNumber: r.DocumentNumber,
			Date:           r.Date,
		})
		speakers[r.Speaker] = struct{}{}
		parties[r.Party] = struct{}{}
	}
	slices.SortStableFunc(db.Speeches, func(a, b SpeechEntry) int { return cmp.Compare(a.Speaker, b.Speaker) })
	for i := range db.Speeches {
		db.Speeches[i].ID = i + 1
	}
	db.Speakers = sortedKeys(speakers)
	db.Parties = sortedKeys(parties)
	db.TotalSpeeches = len(db.Speeches)
	return db
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// SpeechDB writes speeches_db.json.
func (e *Exporter) SpeechDB(records []datastore.SpeechRecord) error {
	return e.stage("export_speeches", func() error {
		return e.writeJSON(SpeechesDBFile, BuildSpeechDB(records, e.now()), manifest.VariantRaw)
	})
}
