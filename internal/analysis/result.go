package analysis

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/plenar/internal/protocol"
)

// TopListSize is the length of the top word lists in full_data.json.
const TopListSize = 100

// AnalysisResult holds the word statistics of one party or text.
type AnalysisResult struct {
	Party           string
	SpeechCount     int
	TotalWords      int
	TotalNouns      int
	TotalAdjectives int
	TotalVerbs      int
	NounCounts      Counter
	AdjectiveCounts Counter
	VerbCounts      Counter
	Categories      *CategoryCounts
}

// TopNouns returns the n most frequent nouns.
func (r *AnalysisResult) TopNouns(n int) []protocol.Entry { return r.NounCounts.MostCommon(n) }

// TopAdjectives returns the n most frequent adjectives.
func (r *AnalysisResult) TopAdjectives(n int) []protocol.Entry {
	return r.AdjectiveCounts.MostCommon(n)
}

// TopVerbs returns the n most frequent verbs.
func (r *AnalysisResult) TopVerbs(n int) []protocol.Entry { return r.VerbCounts.MostCommon(n) }

// Per1000 converts a count into a frequency per 1000 words.
func (r *AnalysisResult) Per1000(count int) float64 {
	if r.TotalWords == 0 {
		return 0
	}
	return float64(count) / float64(r.TotalWords) * 1000
}

// NounPer1000 is the frequency of a noun per 1000 words.
func (r *AnalysisResult) NounPer1000(word string) float64 { return r.Per1000(r.NounCounts[word]) }

// AdjectivePer1000 is the frequency of an adjective per 1000 words.
func (r *AnalysisResult) AdjectivePer1000(word string) float64 {
	return r.Per1000(r.AdjectiveCounts[word])
}

// VerbPer1000 is the frequency of a verb per 1000 words.
func (r *AnalysisResult) VerbPer1000(word string) float64 { return r.Per1000(r.VerbCounts[word]) }

// ToneScores returns the communication style scores.
func (r *AnalysisResult) ToneScores() ToneScores {
	if r.Categories == nil {
		return DefaultToneScores()
	}
	return r.Categories.ToneScores()
}

// TopicScores returns the topic frequencies.
func (r *AnalysisResult) TopicScores() TopicScores {
	if r.Categories == nil {
		return newCategoryCounts().TopicScores()
	}
	return r.Categories.TopicScores()
}

// Counts returns the counter for a word kind.
func (r *AnalysisResult) Counts(kind WordKind) Counter {
	switch kind {
	case KindAdjective:
		return r.AdjectiveCounts
	case KindVerb:
		return r.VerbCounts
	default:
		return r.NounCounts
	}
}

// WordCount is a [word, count] pair.
type WordCount struct {
	Word  string
	Count int
}

// MarshalJSON writes the pair as a two-element array.
func (w WordCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{w.Word, w.Count})
}

// UnmarshalJSON reads a two-element array.
func (w *WordCount) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("word count: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &w.Word); err != nil {
		return fmt.Errorf("word count word: %w", err)
	}
	if err := json.Unmarshal(raw[1], &w.Count); err != nil {
		return fmt.Errorf("word count count: %w", err)
	}
	return nil
}

func pairs(entries []protocol.Entry) []WordCount {
	out := make([]WordCount, len(entries))
	for i, e := range entries {
		out[i] = WordCount{Word: e.Key, Count: e.Count}
	}
	return out
}

// ResultDoc is the serialised form of an AnalysisResult in full_data.json.
type ResultDoc struct {
	Party           string         `json:"party"`
	SpeechCount     int            `json:"speech_count"`
	TotalWords      int            `json:"total_words"`
	TotalNouns      int            `json:"total_nouns"`
	TotalAdjectives int            `json:"total_adjectives"`
	TotalVerbs      int            `json:"total_verbs"`
	TopNouns        []WordCount    `json:"top_nouns"`
	TopAdjectives   []WordCount    `json:"top_adjectives"`
	TopVerbs        []WordCount    `json:"top_verbs"`
	ToneScores      ToneScores     `json:"tone_scores"`
	TopicScores     TopicScores    `json:"topic_scores"`
	Categories      map[string]any `json:"categories,omitempty"`
}

// Document renders the result for full_data.json.
func (r *AnalysisResult) Document() ResultDoc {
	doc := ResultDoc{
		Party:           r.Party,
		SpeechCount:     r.SpeechCount,
		TotalWords:      r.TotalWords,
		TotalNouns:      r.TotalNouns,
		TotalAdjectives: r.TotalAdjectives,
		TotalVerbs:      r.TotalVerbs,
		TopNouns:        pairs(r.TopNouns(TopListSize)),
		TopAdjectives:   pairs(r.TopAdjectives(TopListSize)),
		TopVerbs:        pairs(r.TopVerbs(TopListSize)),
		ToneScores:      r.ToneScores(),
		TopicScores:     r.TopicScores(),
	}
	if r.Categories != nil {
		doc.Categories = r.Categories.ToMap()
	}
	return doc
}
