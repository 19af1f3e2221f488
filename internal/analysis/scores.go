package analysis

import (
	"cmp"
	"encoding/json"
	"math"
	"slices"

	"git.home.luguber.info/inful/plenar/internal/lexicon"
)

// ToneScores are communication style scores on a 0-100 scale, except
// Discriminatory which is per 1000 words.
type ToneScores struct {
	Affirmative        float64 `json:"affirmative"`
	Aggression         float64 `json:"aggression"`
	Labeling           float64 `json:"labeling"`
	SolutionFocus      float64 `json:"solution_focus"`
	Collaboration      float64 `json:"collaboration"`
	DemandIntensity    float64 `json:"demand_intensity"`
	Acknowledgment     float64 `json:"acknowledgment"`
	Authority          float64 `json:"authority"`
	FutureOrientation  float64 `json:"future_orientation"`
	EmotionalIntensity float64 `json:"emotional_intensity"`
	Inclusivity        float64 `json:"inclusivity"`
	Discriminatory     float64 `json:"discriminatory"`
}

// DefaultToneScores are the scores of a text without any categorised word.
func DefaultToneScores() ToneScores {
	return ToneScores{
		Affirmative:        50,
		SolutionFocus:      50,
		Collaboration:      50,
		Authority:          50,
		FutureOrientation:  50,
		EmotionalIntensity: 50,
		Inclusivity:        50,
	}
}

// Rounded returns the scores rounded for output: one decimal, two for
// Discriminatory.
func (t ToneScores) Rounded() ToneScores {
	return ToneScores{
		Affirmative:        round(t.Affirmative, 1),
		Aggression:         round(t.Aggression, 1),
		Labeling:           round(t.Labeling, 1),
		SolutionFocus:      round(t.SolutionFocus, 1),
		Collaboration:      round(t.Collaboration, 1),
		DemandIntensity:    round(t.DemandIntensity, 1),
		Acknowledgment:     round(t.Acknowledgment, 1),
		Authority:          round(t.Authority, 1),
		FutureOrientation:  round(t.FutureOrientation, 1),
		EmotionalIntensity: round(t.EmotionalIntensity, 1),
		Inclusivity:        round(t.Inclusivity, 1),
		Discriminatory:     round(t.Discriminatory, 2),
	}
}

// MarshalJSON writes the rounded scores.
func (t ToneScores) MarshalJSON() ([]byte, error) {
	type plain ToneScores
	return json.Marshal(plain(t.Rounded()))
}

// Metric returns a score by its JSON name.
func (t ToneScores) Metric(name string) (float64, bool) {
	switch name {
	case "affirmative":
		return t.Affirmative, true
	case "aggression":
		return t.Aggression, true
	case "labeling":
		return t.Labeling, true
	case "solution_focus":
		return t.SolutionFocus, true
	case "collaboration":
		return t.Collaboration, true
	case "demand_intensity":
		return t.DemandIntensity, true
	case "acknowledgment":
		return t.Acknowledgment, true
	case "authority":
		return t.Authority, true
	case "future_orientation":
		return t.FutureOrientation, true
	case "emotional_intensity":
		return t.EmotionalIntensity, true
	case "inclusivity":
		return t.Inclusivity, true
	case "discriminatory":
		return t.Discriminatory, true
	}
	return 0, false
}

// ToneMetrics lists the JSON names of all tone scores.
var ToneMetrics = []string{
	"affirmative", "aggression", "labeling", "solution_focus", "collaboration",
	"demand_intensity", "acknowledgment", "authority", "future_orientation",
	"emotional_intensity", "inclusivity", "discriminatory",
}

// TopicScores are per-1000-word topic frequencies.
type TopicScores map[lexicon.Category]float64

// TopicScore is one entry of a topic ranking.
type TopicScore struct {
	Topic lexicon.Category `json:"topic"`
	Score float64          `json:"score"`
}

// MarshalJSON writes every topic rounded to two decimals.
func (s TopicScores) MarshalJSON() ([]byte, error) {
	out := make(map[lexicon.Category]float64, len(s))
	for _, c := range lexicon.Categories(lexicon.GroupTopics) {
		out[c] = round(s[c], 2)
	}
	return json.Marshal(out)
}

// Top returns the n highest-scoring topics rounded to two decimals. Ties
// keep the topic display order.
func (s TopicScores) Top(n int) []TopicScore {
	topics := lexicon.Categories(lexicon.GroupTopics)
	out := make([]TopicScore, 0, len(topics))
	for _, c := range topics {
		out = append(out, TopicScore{Topic: c, Score: s[c]})
	}
	slices.SortStableFunc(out, func(a, b TopicScore) int { return cmp.Compare(b.Score, a.Score) })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	for i := range out {
		out[i].Score = round(out[i].Score, 2)
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func ratio(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
