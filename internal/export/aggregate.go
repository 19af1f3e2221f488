package export

import (
	"git.home.luguber.info/inful/plenar/internal/manifest"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// File names of the aggregate variant.
const (
	WrappedFile      = "wrapped.json"
	InterruptersFile = "zwischenrufer.json"
	InterruptedFile  = "interrupted.json"
	NeutralTextsFile = "neutral_interjections.json"
)

// Wrapped writes wrapped.json.
func (e *Exporter) Wrapped(d *wrapped.Data) error {
	return e.stage("export_wrapped", func() error {
		return e.writeJSON(WrappedFile, d.BuildWrapped(), manifest.VariantAggregate)
	})
}

// InterrupterRow is one author of interjections with the sentiment split of
// their remarks.
type InterrupterRow struct {
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Party    string `json:"party"`
	Count    int    `json:"count"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

// Interrupters is the content of zwischenrufer.json.
type Interrupters struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Count       int                      `json:"count"`
	Stats       wrapped.ZwischenrufStats `json:"stats"`
	Data        []InterrupterRow         `json:"data"`
}

// InterruptedRow is one speaker ranked by interjections received.
type InterruptedRow struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Party string `json:"party"`
	Count int    `json:"count"`
}

// Interrupted is the content of interrupted.json.
type Interrupted struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Count       int              `json:"count"`
	Data        []InterruptedRow `json:"data"`
}

// BuildInterrupters ranks every interjection author.
func BuildInterrupters(d *wrapped.Data) Interrupters {
	doc := Interrupters{
		Title:       "Top Zwischenrufer",
		Description: "Abgeordnete nach Anzahl der Zwischenrufe (wer ruft am häufigsten dazwischen)",
		Stats:       d.ZwischenrufStats(),
		Data:        []InterrupterRow{},
	}
	for i, r := range d.Drama.TopInterrupters(0) {
		k := wrapped.SpeakerKey{Name: r.Name, Party: r.Party}
		doc.Data = append(doc.Data, InterrupterRow{
			Rank:     i + 1,
			Name:     r.Name,
			Party:    r.Party,
			Count:    r.Count,
			Positive: d.Drama.Positive[k],
			Negative: d.Drama.Negative[k],
			Neutral:  d.Drama.Neutral[k],
		})
	}
	doc.Count = len(doc.Data)
	return doc
}

// BuildInterrupted ranks every interrupted speaker.
func BuildInterrupted(d *wrapped.Data) Interrupted {
	doc := Interrupted{
		Title:       "Meistens unterbrochen",
		Description: "Abgeordnete nach Anzahl erhaltener Zwischenrufe (wer wird am häufigsten unterbrochen)",
		Data:        []InterruptedRow{},
	}
	for i, r := range d.Drama.MostInterrupted(0) {
		doc.Data = append(doc.Data, InterruptedRow{Rank: i + 1, Name: r.Name, Party: r.Party, Count: r.Count})
	}
	doc.Count = len(doc.Data)
	return doc
}

// Interruptions writes zwischenrufer.json and interrupted.json.
func (e *Exporter) Interruptions(d *wrapped.Data) error {
	return e.stage("export_interruptions", func() error {
		if err := e.writeJSON(InterruptersFile, BuildInterrupters(d), manifest.VariantAggregate); err != nil {
			return err
		}
		return e.writeJSON(InterruptedFile, BuildInterrupted(d), manifest.VariantAggregate)
	})
}

// NeutralText is a distinct neutral remark with its frequency.
type NeutralText struct {
	Text    string         `json:"text"`
	Count   int            `json:"count"`
	Parties map[string]int `json:"parties,omitempty"`
}

// NeutralTexts is the content of neutral_interjections.json.
type NeutralTexts struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	TotalCount  int           `json:"totalCount"`
	UniqueCount int           `json:"uniqueCount"`
	Data        []NeutralText `json:"data"`
}

// BuildNeutralTexts counts identical neutral remark texts.
func BuildNeutralTexts(d *wrapped.Data) NeutralTexts {
	doc := NeutralTexts{
		Title:       "Neutrale Zwischenrufe",
		Description: "Alle neutralen Zwischenruftexte für Muster-Analyse",
		TotalCount:  len(d.Drama.NeutralTexts),
		Data:        []NeutralText{},
	}
	for _, en := range d.Drama.NeutralTextCounts() {
		doc.Data = append(doc.Data, NeutralText{Text: en.Key, Count: en.Count, Parties: d.Drama.NeutralParties[en.Key]})
	}
	doc.UniqueCount = len(doc.Data)
	return doc
}

// NeutralTexts writes neutral_interjections.json.
func (e *Exporter) NeutralTexts(d *wrapped.Data) error {
	return e.stage("export_neutral_texts", func() error {
		return e.writeJSON(NeutralTextsFile, BuildNeutralTexts(d), manifest.VariantAggregate)
	})
}
