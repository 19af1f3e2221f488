package snapshot

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/plenar/internal/export"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// Speaker sort keys.
const (
	SortSpeeches = "speeches"
	SortWords    = "words"
	SortAvgWords = "avg_words"
	SortName     = "name"
)

// Search hit types.
const (
	HitSpeaker = "speaker"
	HitWord    = "word"
)

var umlautFolder = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

// Fold normalises s for matching: case folded, umlauts transliterated and
// other accents removed, so "Müller", "MUELLER" and "mueller" are equal.
// Input is composed first so decomposed umlauts transliterate too.
func Fold(s string) string {
	s = norm.NFC.String(cases.Fold().String(strings.TrimSpace(s)))
	s = umlautFolder.Replace(s)
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if out, _, err := transform.String(t, s); err == nil {
		return out
	}
	return s
}

// SamePartyName reports whether a party name from a request means party.
// "grüne", "GRUENE" and "cdu-csu" match "GRÜNE" and "CDU/CSU".
func SamePartyName(party, query string) bool {
	if query == "" {
		return true
	}
	return Fold(party) == Fold(query) || wrapped.Slug(party) == wrapped.Slug(query)
}

// SpeakerFilter selects and orders index rows.
type SpeakerFilter struct {
	Party       string
	Gender      string
	MinSpeeches int
	Query       string
	Sort        string
	Desc        bool
	Limit       int
	Offset      int
}

// Speakers filters the index. It returns the number of matches and the
// requested page.
func (s *Snapshot) Speakers(f SpeakerFilter) (int, []wrapped.SpeakerIndexEntry) {
	if s.Index == nil {
		return 0, []wrapped.SpeakerIndexEntry{}
	}
	q := Fold(f.Query)
	rows := make([]wrapped.SpeakerIndexEntry, 0, len(s.Index.Speakers))
	for _, e := range s.Index.Speakers {
		if !SamePartyName(e.Party, f.Party) {
			continue
		}
		if f.Gender != "" && !strings.EqualFold(string(e.Gender), f.Gender) {
			continue
		}
		if e.Speeches < f.MinSpeeches {
			continue
		}
		if q != "" && !strings.Contains(Fold(e.Name), q) {
			continue
		}
		rows = append(rows, e)
	}
	sortSpeakers(rows, f.Sort, f.Desc)
	return len(rows), paginate(rows, f.Offset, f.Limit)
}

func sortSpeakers(rows []wrapped.SpeakerIndexEntry, key string, desc bool) {
	col := collate.New(language.German, collate.IgnoreCase)
	byName := func(a, b wrapped.SpeakerIndexEntry) int { return col.CompareString(a.Name, b.Name) }
	var metric func(wrapped.SpeakerIndexEntry) int
	switch key {
	case SortName:
		slices.SortStableFunc(rows, func(a, b wrapped.SpeakerIndexEntry) int {
			if desc {
				return byName(b, a)
			}
			return byName(a, b)
		})
		return
	case SortWords:
		metric = func(e wrapped.SpeakerIndexEntry) int { return e.TotalWords }
	case SortAvgWords:
		metric = func(e wrapped.SpeakerIndexEntry) int { return e.AvgWords }
	default:
		metric = func(e wrapped.SpeakerIndexEntry) int { return e.Speeches }
	}
	slices.SortStableFunc(rows, func(a, b wrapped.SpeakerIndexEntry) int {
		c := cmp.Compare(metric(a), metric(b))
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return byName(a, b)
	})
}

func paginate[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[max(offset, 0):]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// Party returns the wrapped.json card of party.
func (s *Snapshot) Party(name string) (wrapped.WebParty, bool) {
	if s.Overview == nil {
		return wrapped.WebParty{}, false
	}
	for _, p := range s.Overview.Parties {
		if SamePartyName(p.Party, name) {
			return p, true
		}
	}
	return wrapped.WebParty{}, false
}

// InterrupterRows returns the interjection authors, filtered by party.
func (s *Snapshot) InterrupterRows(party string, limit int) []export.InterrupterRow {
	if s.Interrupters == nil {
		return []export.InterrupterRow{}
	}
	out := []export.InterrupterRow{}
	for _, r := range s.Interrupters.Data {
		if SamePartyName(r.Party, party) {
			out = append(out, r)
		}
	}
	return paginate(out, 0, limit)
}

// InterruptedRows returns the interrupted speakers, filtered by party.
func (s *Snapshot) InterruptedRows(party string, limit int) []export.InterruptedRow {
	if s.Interrupted == nil {
		return []export.InterruptedRow{}
	}
	out := []export.InterruptedRow{}
	for _, r := range s.Interrupted.Data {
		if SamePartyName(r.Party, party) {
			out = append(out, r)
		}
	}
	return paginate(out, 0, limit)
}

// NeutralRows returns the neutral remarks made by members of party and
// containing query.
func (s *Snapshot) NeutralRows(party, query string, limit int) []export.NeutralText {
	if s.Neutral == nil {
		return []export.NeutralText{}
	}
	q := Fold(query)
	out := []export.NeutralText{}
	for _, n := range s.Neutral.Data {
		if party != "" && !partyInCounts(n.Parties, party) {
			continue
		}
		if q != "" && !strings.Contains(Fold(n.Text), q) {
			continue
		}
		out = append(out, n)
	}
	return paginate(out, 0, limit)
}

func partyInCounts(counts map[string]int, party string) bool {
	for p, c := range counts {
		if c > 0 && SamePartyName(p, party) {
			return true
		}
	}
	return false
}

// Hit is a search result.
type Hit struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Slug   string `json:"slug,omitempty"`
	Word   string `json:"word,omitempty"`
	Party  string `json:"party,omitempty"`
	Count  int    `json:"count,omitempty"`
	Source string `json:"source,omitempty"`
}

// Search finds speakers by name and words in the parties' top word,
// signature word and hot topic lists. kind restricts the hit type.
func (s *Snapshot) Search(query, kind string, limit int) []Hit {
	q := Fold(query)
	if q == "" {
		return []Hit{}
	}
	out := []Hit{}
	if (kind == "" || kind == HitSpeaker) && s.Index != nil {
		for _, e := range s.Index.Speakers {
			if strings.Contains(Fold(e.Name), q) {
				out = append(out, Hit{Type: HitSpeaker, Name: e.Name, Slug: e.Slug, Party: e.Party, Count: e.Speeches})
			}
		}
	}
	if (kind == "" || kind == HitWord) && s.Overview != nil {
		seen := map[Hit]bool{}
		add := func(h Hit) {
			if !seen[h] && strings.Contains(Fold(h.Word), q) {
				seen[h] = true
				out = append(out, h)
			}
		}
		for _, p := range s.Overview.Parties {
			for _, w := range p.TopWords {
				add(Hit{Type: HitWord, Word: w.Word, Party: p.Party, Count: w.Count, Source: "topWords"})
			}
			for _, w := range p.SignatureWords {
				add(Hit{Type: HitWord, Word: w.Word, Party: p.Party, Source: "signatureWords"})
			}
		}
		for _, t := range s.Overview.HotTopics {
			add(Hit{Type: HitWord, Word: t.Word, Count: t.Total, Source: "hotTopics"})
		}
	}
	return paginate(out, 0, limit)
}
