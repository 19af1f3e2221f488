package analysis

import (
	"git.home.luguber.info/inful/plenar/internal/lexicon"
)

// groupKeys are the output keys per group and the top-list size per category.
var groupKeys = []struct {
	group lexicon.Group
	key   string
	limit int
}{
	{lexicon.GroupAdjectives, "adjectives", 50},
	{lexicon.GroupVerbs, "verbs", 50},
	{lexicon.GroupModal, "modal", 20},
	{lexicon.GroupTemporal, "temporal", 20},
	{lexicon.GroupIntensity, "intensity", 30},
	{lexicon.GroupPronoun, "pronouns", 20},
	{lexicon.GroupDiscriminatory, "discriminatory", 20},
	{lexicon.GroupTopics, "topics", 30},
}

// CategoryCounts holds per-word counts for every lexicon category.
type CategoryCounts struct {
	counts map[lexicon.Group]map[lexicon.Category]Counter

	TotalAdjectives int
	TotalVerbs      int
	TotalNouns      int
	TotalWords      int
}

func newCategoryCounts() *CategoryCounts {
	c := &CategoryCounts{counts: make(map[lexicon.Group]map[lexicon.Category]Counter)}
	for _, gk := range groupKeys {
		m := make(map[lexicon.Category]Counter)
		for _, cat := range lexicon.Categories(gk.group) {
			m[cat] = Counter{}
		}
		c.counts[gk.group] = m
	}
	return c
}

// Counter returns the word counter of one category. It is never nil for a
// known category.
func (c *CategoryCounts) Counter(g lexicon.Group, cat lexicon.Category) Counter {
	if m, ok := c.counts[g]; ok {
		if cnt, ok := m[cat]; ok {
			return cnt
		}
	}
	return Counter{}
}

// Totals returns the summed count per category of a group.
func (c *CategoryCounts) Totals(g lexicon.Group) map[lexicon.Category]int {
	out := make(map[lexicon.Category]int)
	for _, cat := range lexicon.Categories(g) {
		out[cat] = c.Counter(g, cat).Total()
	}
	return out
}

// ToMap renders the counts for full_data.json.
func (c *CategoryCounts) ToMap() map[string]any {
	out := make(map[string]any, len(groupKeys)+1)
	for _, gk := range groupKeys {
		section := make(map[string]any)
		totals := make(map[string]int)
		for _, cat := range lexicon.Categories(gk.group) {
			top := make(map[string]int)
			for _, e := range c.Counter(gk.group, cat).MostCommon(gk.limit) {
				top[e.Key] = e.Count
			}
			section[string(cat)] = top
			totals[string(cat)] = c.Counter(gk.group, cat).Total()
		}
		section["totals"] = totals
		switch gk.group {
		case lexicon.GroupAdjectives:
			section["total_analyzed"] = c.TotalAdjectives
		case lexicon.GroupVerbs:
			section["total_analyzed"] = c.TotalVerbs
		case lexicon.GroupTopics:
			section["total_nouns_analyzed"] = c.TotalNouns
		}
		out[gk.key] = section
	}
	out["total_words"] = c.TotalWords
	return out
}

// ToneScores derives communication style scores from the counts.
func (c *CategoryCounts) ToneScores() ToneScores {
	s := DefaultToneScores()

	adj := c.Totals(lexicon.GroupAdjectives)
	if aff, crit := adj[lexicon.Affirmative], adj[lexicon.Critical]; aff+crit > 0 {
		s.Affirmative = ratio(aff, aff+crit)
	}
	if total := sum(adj); total > 0 {
		s.Aggression = ratio(adj[lexicon.Aggressive], total)
		s.Labeling = ratio(adj[lexicon.Labeling], total)
	}

	verbs := c.Totals(lexicon.GroupVerbs)
	if sol, prob := verbs[lexicon.Solution], verbs[lexicon.Problem]; sol+prob > 0 {
		s.SolutionFocus = ratio(sol, sol+prob)
	}
	if col, con := verbs[lexicon.Collaborative], verbs[lexicon.Confrontational]; col+con > 0 {
		s.Collaboration = ratio(col, col+con)
	}
	if total := sum(verbs); total > 0 {
		s.DemandIntensity = ratio(verbs[lexicon.Demanding], total)
		s.Acknowledgment = ratio(verbs[lexicon.Acknowledging], total)
	}

	modal := c.Totals(lexicon.GroupModal)
	if obl, poss := modal[lexicon.Obligation], modal[lexicon.Possibility]; obl+poss > 0 {
		s.Authority = ratio(obl, obl+poss)
	}
	temporal := c.Totals(lexicon.GroupTemporal)
	if pro, retro := temporal[lexicon.Prospective], temporal[lexicon.Retrospective]; pro+retro > 0 {
		s.FutureOrientation = ratio(pro, pro+retro)
	}
	intensity := c.Totals(lexicon.GroupIntensity)
	if in, mod := intensity[lexicon.Intensifier], intensity[lexicon.Moderator]; in+mod > 0 {
		s.EmotionalIntensity = ratio(in, in+mod)
	}
	pronoun := c.Totals(lexicon.GroupPronoun)
	if inc, exc := pronoun[lexicon.Inclusive], pronoun[lexicon.Exclusive]; inc+exc > 0 {
		s.Inclusivity = ratio(inc, inc+exc)
	}
	if c.TotalWords > 0 {
		s.Discriminatory = float64(sum(c.Totals(lexicon.GroupDiscriminatory))) / float64(c.TotalWords) * 1000
	}
	return s
}

// TopicScores returns topic counts per 1000 words.
func (c *CategoryCounts) TopicScores() TopicScores {
	s := make(TopicScores)
	for cat, n := range c.Totals(lexicon.GroupTopics) {
		if c.TotalWords > 0 {
			s[cat] = float64(n) / float64(c.TotalWords) * 1000
		} else {
			s[cat] = 0
		}
	}
	return s
}

func sum(m map[lexicon.Category]int) int {
	t := 0
	for _, v := range m {
		t += v
	}
	return t
}

// Categorizer sorts counted words into lexicon categories.
type Categorizer struct {
	lex *lexicon.Lexicon
}

// NewCategorizer returns a categorizer over lex, or the default lexicon
// when lex is nil.
func NewCategorizer(lex *lexicon.Lexicon) *Categorizer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Categorizer{lex: lex}
}

// Categorize buckets adjective and verb lemmas, style markers from all
// words and topics from nouns. Multi-topic nouns contribute
// int(count*weight) to each topic when the weight is below one.
func (c *Categorizer) Categorize(adjectives, verbs, allWords, nouns Counter) *CategoryCounts {
	out := newCategoryCounts()
	out.TotalAdjectives = adjectives.Total()
	out.TotalVerbs = verbs.Total()
	out.TotalNouns = nouns.Total()
	out.TotalWords = allWords.Total()

	for w, n := range adjectives {
		if cat, ok := c.lex.Adjective(w); ok {
			out.counts[lexicon.GroupAdjectives][cat][w] += n
		}
	}
	for w, n := range verbs {
		if cat, ok := c.lex.Verb(w); ok {
			out.counts[lexicon.GroupVerbs][cat][w] += n
		}
	}
	for w, n := range allWords {
		for _, tag := range c.lex.Extended(w) {
			out.counts[tag.Group][tag.Category][w] += n
		}
	}
	for w, n := range nouns {
		for _, lb := range c.lex.Topics(w) {
			weighted := n
			if lb.Weight < 1.0 {
				weighted = int(float64(n) * lb.Weight)
			}
			if weighted > 0 {
				out.counts[lexicon.GroupTopics][lb.Category][w] += weighted
			}
		}
	}
	return out
}
