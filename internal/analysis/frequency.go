package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// FrequencyRow is one word of a frequency table with per-party counts and
// per-1000-word frequencies.
type FrequencyRow struct {
	Word    string
	Counts  map[string]int
	Per1000 map[string]float64
}

// FrequencyTable is the party x word matrix written to nouns.csv,
// adjectives.csv and verbs.csv. Rows are sorted by word.
type FrequencyTable struct {
	Parties []string
	Rows    []FrequencyRow
}

// BuildFrequencyTable collects every word of one kind across results.
// Frequencies are relative to each party's total word count, rounded to
// four decimals.
func BuildFrequencyTable(results []*AnalysisResult, kind WordKind) *FrequencyTable {
	t := &FrequencyTable{}
	words := map[string]struct{}{}
	for _, r := range results {
		t.Parties = append(t.Parties, r.Party)
		for w := range r.Counts(kind) {
			words[w] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(words))
	for w := range words {
		sorted = append(sorted, w)
	}
	slices.Sort(sorted)

	for _, w := range sorted {
		row := FrequencyRow{Word: w, Counts: map[string]int{}, Per1000: map[string]float64{}}
		for _, r := range results {
			n := r.Counts(kind)[w]
			row.Counts[r.Party] = n
			row.Per1000[r.Party] = round(r.Per1000(n), 4)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// PartyTotal sums a party's counts over all rows.
func (t *FrequencyTable) PartyTotal(party string) int {
	total := 0
	for _, r := range t.Rows {
		total += r.Counts[party]
	}
	return total
}

// HasParty reports whether the table has columns for party.
func (t *FrequencyTable) HasParty(party string) bool {
	return slices.Contains(t.Parties, party)
}

func (t *FrequencyTable) header() []string {
	h := []string{"word"}
	for _, p := range t.Parties {
		h = append(h, p+"_count", p+"_per1000")
	}
	return h
}

// WriteCSV writes the table with a header of word, <party>_count,
// <party>_per1000 columns.
func (t *FrequencyTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header()); err != nil {
		return err
	}
	rec := make([]string, 1+2*len(t.Parties))
	for _, r := range t.Rows {
		rec[0] = r.Word
		for i, p := range t.Parties {
			rec[1+2*i] = strconv.Itoa(r.Counts[p])
			rec[2+2*i] = strconv.FormatFloat(r.Per1000[p], 'f', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFrequencyCSV parses a table written by WriteCSV.
func ReadFrequencyCSV(r io.Reader) (*FrequencyTable, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty frequency table")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 || header[0] != "word" || len(header)%2 != 1 {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(header, ","))
	}
	t := &FrequencyTable{}
	for i := 1; i < len(header); i += 2 {
		p, ok := strings.CutSuffix(header[i], "_count")
		if !ok || header[i+1] != p+"_per1000" {
			return nil, fmt.Errorf("unexpected columns %q, %q", header[i], header[i+1])
		}
		t.Parties = append(t.Parties, p)
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := FrequencyRow{Word: rec[0], Counts: map[string]int{}, Per1000: map[string]float64{}}
		for i, p := range t.Parties {
			n, err := strconv.Atoi(rec[1+2*i])
			if err != nil {
				return nil, fmt.Errorf("word %q: %s count: %w", rec[0], p, err)
			}
			f, err := strconv.ParseFloat(rec[2+2*i], 64)
			if err != nil {
				return nil, fmt.Errorf("word %q: %s frequency: %w", rec[0], p, err)
			}
			row.Counts[p] = n
			row.Per1000[p] = f
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
