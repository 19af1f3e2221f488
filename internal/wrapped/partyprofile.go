package wrapped

import (
	"cmp"
	"slices"
)

// toneCategory maps a tone metric onto a party characterisation.
type toneCategory struct {
	Metric      string
	Name        string
	Emoji       string
	Description string
}

var toneCategories = []toneCategory{
	{"aggression", "Aggressiv", "🔥", "Greift an und spitzt zu."},
	{"demand_intensity", "Fordernd", "📢", "Stellt Forderungen an Regierung und Gegner."},
	{"collaboration", "Kooperativ", "🤝", "Sucht Gemeinsamkeiten über Parteigrenzen."},
	{"solution_focus", "Lösungsorientiert", "🛠️", "Redet mehr über Lösungen als über Probleme."},
	{"affirmative", "Positiv", "☀️", "Lobt mehr als sie kritisiert."},
}

var balanced = toneCategory{"balanced", "Ausgewogen", "⚖️", "Keine Tonlage sticht heraus."}

// traitMetrics are the metrics considered for a party's traits.
var traitMetrics = []string{
	"aggression", "labeling", "demand_intensity", "collaboration", "solution_focus",
	"affirmative", "acknowledgment", "authority", "future_orientation", "emotional_intensity",
}

var partyEmojis = map[string]string{
	"SPD":          "🌹",
	"CDU/CSU":      "⚫",
	"GRÜNE":        "🌻",
	"FDP":          "💛",
	"AfD":          "🔵",
	"DIE LINKE":    "🔴",
	"BSW":          "🟣",
	"fraktionslos": "⚪",
}

// PartyEmoji returns the display emoji of a party.
func PartyEmoji(party string) string {
	if e, ok := partyEmojis[party]; ok {
		return e
	}
	return "🏛️"
}

// Trait is a tone metric where a party is among the extremes.
type Trait struct {
	Metric string  `json:"metric"`
	Rank   int     `json:"rank"`
	Score  float64 `json:"score"`
}

// PartyProfile characterises a party by its most pronounced tone category.
type PartyProfile struct {
	Party        string             `json:"party"`
	Category     string             `json:"category"`
	CategoryName string             `json:"categoryName"`
	Emoji        string             `json:"emoji"`
	Description  string             `json:"description"`
	Rank         int                `json:"rank"`
	TotalParties int                `json:"totalParties"`
	Score        float64            `json:"score"`
	Traits       []Trait            `json:"traits"`
	Scores       map[string]float64 `json:"scores"`
}

// ranks returns the rank (1 = highest) of every party on metric.
func (d *Data) ranks(metric string) map[string]int {
	out := map[string]int{}
	for i, e := range d.ToneRanking(metric) {
		out[e.Party] = i + 1
	}
	return out
}

// PartyProfiles assigns each party the tone category where it ranks best.
// Ties between categories go to the higher score; traits are the metrics
// where the party ranks first or second, most extreme first.
func (d *Data) PartyProfiles() map[string]PartyProfile {
	n := 0
	scores := map[string]map[string]float64{}
	for _, p := range d.Parties {
		ts, ok := d.ToneScores(p)
		if !ok {
			continue
		}
		n++
		m := map[string]float64{}
		for _, metric := range traitMetrics {
			v, _ := ts.Metric(metric)
			m[metric] = round(v, 1)
		}
		v, _ := ts.Metric("inclusivity")
		m["inclusivity"] = round(v, 1)
		scores[p] = m
	}
	if n == 0 {
		return map[string]PartyProfile{}
	}

	metrics := slices.Clone(traitMetrics)
	if metricVaries("inclusivity", scores) {
		metrics = append(metrics, "inclusivity")
	}
	rankBy := map[string]map[string]int{}
	for _, m := range metrics {
		rankBy[m] = d.ranks(m)
	}

	out := map[string]PartyProfile{}
	for p, sc := range scores {
		best := balanced
		bestRank, bestScore := n+1, -1.0
		for _, tc := range toneCategories {
			r, s := rankBy[tc.Metric][p], sc[tc.Metric]
			if r < bestRank || (r == bestRank && s > bestScore) {
				best, bestRank, bestScore = tc, r, s
			}
		}
		if bestRank > 1 {
			best, bestScore = balanced, 0
		}

		traits := []Trait{}
		for _, m := range metrics {
			if r := rankBy[m][p]; r > 0 && r <= 2 {
				traits = append(traits, Trait{Metric: m, Rank: r, Score: sc[m]})
			}
		}
		mid := float64(n+1) / 2
		slices.SortStableFunc(traits, func(a, b Trait) int {
			return cmp.Compare(mid-float64(b.Rank), mid-float64(a.Rank))
		})
		if len(traits) > 3 {
			traits = traits[:3]
		}

		out[p] = PartyProfile{
			Party:        p,
			Category:     best.Metric,
			CategoryName: best.Name,
			Emoji:        best.Emoji,
			Description:  best.Description,
			Rank:         bestRank,
			TotalParties: n,
			Score:        bestScore,
			Traits:       traits,
			Scores:       sc,
		}
	}
	return out
}

func metricVaries(metric string, scores map[string]map[string]float64) bool {
	first, seen := 0.0, false
	for _, sc := range scores {
		if !seen {
			first, seen = sc[metric], true
			continue
		}
		if sc[metric] != first {
			return true
		}
	}
	return false
}
