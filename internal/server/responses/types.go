// Package responses defines the JSON bodies of the plenar HTTP APIs.
package responses

import (
	"time"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/protocol"
	"git.home.luguber.info/inful/plenar/internal/server/snapshot"
)

// ServiceInfo is the NLP API root document.
type ServiceInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}

// NLPHealthResponse reports whether the tagger can serve requests.
type NLPHealthResponse struct {
	Status      string `json:"status"`
	Tagger      string `json:"tagger"`
	TaggerReady bool   `json:"tagger_ready"`
}

// SpeechInfo is one speech returned by /extract/speeches.
type SpeechInfo struct {
	Speaker       string              `json:"speaker"`
	Party         string              `json:"party"`
	Text          string              `json:"text"`
	Type          protocol.SpeechType `json:"type"`
	Category      protocol.Category   `json:"category"`
	Words         int                 `json:"words"`
	FirstName     string              `json:"first_name,omitempty"`
	LastName      string              `json:"last_name,omitempty"`
	AcademicTitle string              `json:"acad_title,omitempty"`
	IsGovernment  bool                `json:"is_government"`
}

// ExtractSpeechesResponse lists the speeches of a protocol text.
type ExtractSpeechesResponse struct {
	Success     bool         `json:"success"`
	SpeechCount int          `json:"speech_count"`
	Speeches    []SpeechInfo `json:"speeches"`
}

// WordCount is a word with its count and frequency per 1000 words.
type WordCount struct {
	Word             string  `json:"word"`
	Count            int     `json:"count"`
	FrequencyPer1000 float64 `json:"frequency_per_1000"`
}

// AnalyzeTextResponse carries word statistics and optional scores.
type AnalyzeTextResponse struct {
	Success         bool                  `json:"success"`
	TotalWords      int                   `json:"total_words"`
	TotalNouns      int                   `json:"total_nouns"`
	TotalAdjectives int                   `json:"total_adjectives"`
	TotalVerbs      int                   `json:"total_verbs"`
	TopNouns        []WordCount           `json:"top_nouns"`
	TopAdjectives   []WordCount           `json:"top_adjectives"`
	TopVerbs        []WordCount           `json:"top_verbs"`
	Categories      map[string]any        `json:"categories,omitempty"`
	ToneScores      *analysis.ToneScores  `json:"tone_scores,omitempty"`
	TopicScores     analysis.TopicScores  `json:"topic_scores,omitempty"`
	TopTopics       []analysis.TopicScore `json:"top_topics,omitempty"`
}

// AnalyzeToneResponse carries tone scores only.
type AnalyzeToneResponse struct {
	Success    bool                `json:"success"`
	TotalWords int                 `json:"total_words"`
	ToneScores analysis.ToneScores `json:"tone_scores"`
}

// ClassifyTopicsResponse carries topic scores and the strongest topics.
type ClassifyTopicsResponse struct {
	Success     bool                  `json:"success"`
	TotalWords  int                   `json:"total_words"`
	TopicScores analysis.TopicScores  `json:"topic_scores"`
	TopTopics   []analysis.TopicScore `json:"top_topics"`
}

// SpeakerProfileResponse summarises the speeches of one speaker.
type SpeakerProfileResponse struct {
	Success            bool                 `json:"success"`
	Name               string               `json:"name"`
	FirstName          string               `json:"first_name,omitempty"`
	LastName           string               `json:"last_name,omitempty"`
	Party              string               `json:"party"`
	AcademicTitle      string               `json:"acad_title,omitempty"`
	Gender             string               `json:"gender,omitempty"`
	TotalSpeeches      int                  `json:"total_speeches"`
	FormalSpeeches     int                  `json:"formal_speeches"`
	Wortbeitraege      int                  `json:"wortbeitraege"`
	BefragungResponses int                  `json:"befragung_responses"`
	TotalWords         int                  `json:"total_words"`
	AvgWordsPerSpeech  float64              `json:"avg_words_per_speech"`
	TopNouns           []WordCount          `json:"top_nouns"`
	TopAdjectives      []WordCount          `json:"top_adjectives"`
	TopVerbs           []WordCount          `json:"top_verbs"`
	ToneScores         analysis.ToneScores  `json:"tone_scores"`
	TopicScores        analysis.TopicScores `json:"topic_scores"`
}

// PartyProfile is one party of a comparison.
type PartyProfile struct {
	Party             string               `json:"party"`
	SpeakerCount      int                  `json:"speaker_count"`
	SpeechCount       int                  `json:"speech_count"`
	TotalWords        int                  `json:"total_words"`
	AvgWordsPerSpeech float64              `json:"avg_words_per_speech"`
	TopNouns          []WordCount          `json:"top_nouns"`
	TopAdjectives     []WordCount          `json:"top_adjectives"`
	TopVerbs          []WordCount          `json:"top_verbs"`
	ToneScores        analysis.ToneScores  `json:"tone_scores"`
	TopicScores       analysis.TopicScores `json:"topic_scores"`
}

// PartyComparisonResponse compares the parties found in a set of speeches.
type PartyComparisonResponse struct {
	Success              bool                  `json:"success"`
	Wahlperiode          int                   `json:"wahlperiode"`
	PartiesCompared      []string              `json:"parties_compared"`
	PartyProfiles        []PartyProfile        `json:"party_profiles"`
	AggressionRanking    []string              `json:"aggression_ranking"`
	CollaborationRanking []string              `json:"collaboration_ranking"`
	SolutionFocusRanking []string              `json:"solution_focus_ranking"`
	DivergentNouns       []analysis.Comparison `json:"divergent_nouns"`
}

// WrappedHealthResponse reports the loaded export.
type WrappedHealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	RunID       string    `json:"run_id,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	LoadedAt    time.Time `json:"loaded_at"`
	Files       []string  `json:"files"`
	Speakers    int       `json:"speakers"`
}

// Page wraps a filtered list with its total before pagination.
type Page[T any] struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	Data    []T  `json:"data"`
}

// SearchResponse lists search hits.
type SearchResponse struct {
	Success bool           `json:"success"`
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []snapshot.Hit `json:"results"`
}
