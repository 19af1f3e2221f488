package wrapped

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

// PartyStats are the headline numbers of one party.
type PartyStats struct {
	Party           string `json:"party"`
	Speeches        int    `json:"speeches"`
	RealSpeeches    int    `json:"real_speeches"`
	Wortbeitraege   int    `json:"wortbeitraege"`
	TotalWords      int    `json:"total_words"`
	TotalNouns      int    `json:"total_nouns"`
	TotalAdjectives int    `json:"total_adjectives"`
	TotalVerbs      int    `json:"total_verbs"`
	UniqueNouns     int    `json:"unique_nouns"`
}

// PartyStats returns the stats of party, false for unknown parties.
func (d *Data) PartyStats(party string) (PartyStats, bool) {
	r, ok := d.Results[party]
	if !ok {
		return PartyStats{}, false
	}
	return PartyStats{
		Party:           party,
		Speeches:        r.SpeechCount,
		RealSpeeches:    d.Stats.RedeCount[party],
		Wortbeitraege:   d.Stats.WortCount[party],
		TotalWords:      r.TotalWords,
		TotalNouns:      r.TotalNouns,
		TotalAdjectives: r.TotalAdjectives,
		TotalVerbs:      r.TotalVerbs,
		UniqueNouns:     len(r.TopNouns),
	}, true
}

// AllPartyStats returns the stats of every party in metadata order.
func (d *Data) AllPartyStats() []PartyStats {
	out := make([]PartyStats, 0, len(d.Parties))
	for _, p := range d.Parties {
		if s, ok := d.PartyStats(p); ok {
			out = append(out, s)
		}
	}
	return out
}

// TopWords returns a party's most frequent words of a kind.
func (d *Data) TopWords(party string, kind analysis.WordKind, n int) []analysis.WordCount {
	r, ok := d.Results[party]
	if !ok {
		return nil
	}
	var list []analysis.WordCount
	switch kind {
	case analysis.KindAdjective:
		list = r.TopAdjectives
	case analysis.KindVerb:
		list = r.TopVerbs
	default:
		list = r.TopNouns
	}
	if n > 0 && n < len(list) {
		list = list[:n]
	}
	return list
}

// DistinctiveWord is a word a party uses far more often than the others.
type DistinctiveWord struct {
	Word  string  `json:"word"`
	Ratio float64 `json:"ratio"`
	Count int     `json:"count"`
	score float64
}

// distinctive scores every eligible word of party: count at least 0.05% of
// the party's words of that kind, ratio against the mean frequency of the
// other parties above minRatio, not a stopword.
func (d *Data) distinctive(party string, kind analysis.WordKind, minRatio float64) []DistinctiveWord {
	t := d.Tables[kind]
	if t == nil || !t.HasParty(party) {
		return nil
	}
	others := make([]string, 0, len(t.Parties))
	for _, p := range t.Parties {
		if p != party && p != Fraktionslos {
			others = append(others, p)
		}
	}
	minCount := float64(t.PartyTotal(party)) * 0.0005

	var out []DistinctiveWord
	for _, row := range t.Rows {
		count := row.Counts[party]
		if count == 0 || float64(count) < minCount || IsStopword(row.Word) {
			continue
		}
		per1000 := row.Per1000[party]
		othersAvg := 0.0
		for _, p := range others {
			othersAvg += row.Per1000[p]
		}
		if len(others) > 0 {
			othersAvg /= float64(len(others))
		}
		ratio := per1000 / (othersAvg + 0.001)
		if ratio <= minRatio {
			continue
		}
		out = append(out, DistinctiveWord{
			Word:  row.Word,
			Ratio: ratio,
			Count: count,
			score: ratio * math.Sqrt(per1000),
		})
	}
	return out
}

// DistinctiveWords returns the n signature words of party, ranked by
// ratio x sqrt(per1000).
func (d *Data) DistinctiveWords(party string, kind analysis.WordKind, n int) []DistinctiveWord {
	words := d.distinctive(party, kind, 2)
	slices.SortFunc(words, func(a, b DistinctiveWord) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if n > 0 && n < len(words) {
		words = words[:n]
	}
	return words
}

// KeyTopics returns frequent nouns the party uses over-proportionally. Words
// contained in a higher-ranked topic (or containing one) are skipped.
func (d *Data) KeyTopics(party string, n int) []string {
	words := d.distinctive(party, analysis.KindNoun, 1.5)
	slices.SortFunc(words, func(a, b DistinctiveWord) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if len(words) > 2*n {
		words = words[:2*n]
	}
	var out []string
	for _, w := range words {
		dup := slices.ContainsFunc(out, func(kept string) bool {
			return strings.Contains(kept, w.Word) || strings.Contains(w.Word, kept)
		})
		if dup {
			continue
		}
		out = append(out, w.Word)
		if len(out) == n {
			break
		}
	}
	return out
}

// CommunicationStyle are per-party ratios describing how a party speaks.
type CommunicationStyle struct {
	AvgSpeechLength    float64 `json:"avg_speech_length"`
	VocabularyRichness float64 `json:"vocabulary_richness"`
	Descriptiveness    float64 `json:"descriptiveness"`
	ActionOrientation  float64 `json:"action_orientation"`
}

// CommunicationStyle returns the style ratios of party.
func (d *Data) CommunicationStyle(party string) CommunicationStyle {
	r, ok := d.Results[party]
	if !ok {
		return CommunicationStyle{}
	}
	return CommunicationStyle{
		AvgSpeechLength:    round(safeDiv(float64(r.TotalWords), float64(r.SpeechCount)), 1),
		VocabularyRichness: round(safeDiv(float64(len(r.TopNouns)), float64(r.TotalNouns))*100, 2),
		Descriptiveness:    round(safeDiv(float64(r.TotalAdjectives), float64(r.TotalNouns))*100, 1),
		ActionOrientation:  round(safeDiv(float64(r.TotalVerbs), float64(r.TotalNouns))*100, 1),
	}
}

func speakerRanking(byParty map[string]protocol.Counter, party string, n int) []RankedSpeaker {
	m := map[SpeakerKey]int{}
	for p, c := range byParty {
		if party != "" && p != party {
			continue
		}
		if party == "" && p == Fraktionslos {
			continue
		}
		for name, count := range c {
			m[SpeakerKey{Name: name, Party: p}] += count
		}
	}
	return rankSpeakers(m, n)
}

// TopSpeakers ranks speakers by formal speeches. An empty party ranks the
// whole Bundestag.
func (d *Data) TopSpeakers(party string, n int) []RankedSpeaker {
	return speakerRanking(d.Stats.Formal, party, n)
}

// QuestionAskers ranks speakers by Fragestunde questions.
func (d *Data) QuestionAskers(party string, n int) []RankedSpeaker {
	return speakerRanking(d.Stats.Questions, party, n)
}

// BefragungResponders ranks government members by answers given.
func (d *Data) BefragungResponders(n int) []RankedSpeaker {
	return speakerRanking(d.Stats.Befragung, "", n)
}

// PartyChampion returns the party's speaker with the most formal speeches.
func (d *Data) PartyChampion(party string) (RankedSpeaker, bool) {
	top := d.TopSpeakers(party, 1)
	if len(top) == 0 {
		return RankedSpeaker{}, false
	}
	return top[0], true
}

// UniqueSpeakerCount counts the distinct speakers of a party.
func (d *Data) UniqueSpeakerCount(party string) int {
	n := 0
	for _, p := range d.Profiles {
		if p.Party == party {
			n++
		}
	}
	return n
}

// HotTopic is a noun among the top words of several parties.
type HotTopic struct {
	Word       string   `json:"word"`
	Parties    []string `json:"parties"`
	PartyCount int      `json:"partyCount"`
	Total      int      `json:"total"`
}

// HotTopics returns nouns in the top 50 of at least three parties, by party
// count, then total use.
func (d *Data) HotTopics(n int) []HotTopic {
	byWord := map[string]*HotTopic{}
	for _, p := range d.Parties {
		for _, wc := range d.TopWords(p, analysis.KindNoun, 50) {
			h, ok := byWord[wc.Word]
			if !ok {
				h = &HotTopic{Word: wc.Word}
				byWord[wc.Word] = h
			}
			h.Parties = append(h.Parties, p)
			h.Total += wc.Count
		}
	}
	var out []HotTopic
	for _, h := range byWord {
		h.PartyCount = len(h.Parties)
		if h.PartyCount >= 3 {
			out = append(out, *h)
		}
	}
	slices.SortFunc(out, func(a, b HotTopic) int {
		if c := cmp.Compare(b.PartyCount, a.PartyCount); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// WordiestSpeakers ranks speakers by total words over all contributions.
func (d *Data) WordiestSpeakers(n int) []RankedSpeaker {
	m := map[SpeakerKey]int{}
	for _, p := range d.Profiles {
		if p.Party != Fraktionslos {
			m[p.Key()] = p.TotalWords
		}
	}
	return rankSpeakers(m, n)
}

// SpeakersByAvgWords ranks speakers by average words per formal speech,
// considering only speakers with at least minSpeeches formal speeches.
func (d *Data) SpeakersByAvgWords(n, minSpeeches int) []RankedSpeaker {
	type acc struct{ words, speeches int }
	m := map[SpeakerKey]*acc{}
	for _, r := range d.Speeches {
		if r.Type != protocol.TypeRede || r.Party == Fraktionslos {
			continue
		}
		k := SpeakerKey{Name: r.Speaker, Party: r.Party}
		a, ok := m[k]
		if !ok {
			a = &acc{}
			m[k] = a
		}
		a.words += r.Words
		a.speeches++
	}
	avg := map[SpeakerKey]int{}
	for k, a := range m {
		if a.speeches >= minSpeeches {
			avg[k] = a.words / a.speeches
		}
	}
	return rankSpeakers(avg, n)
}

// ToneEntry is a party's score on one tone metric.
type ToneEntry struct {
	Party string  `json:"party"`
	Score float64 `json:"score"`
}

// ToneScores returns the tone scores of party.
func (d *Data) ToneScores(party string) (analysis.ToneScores, bool) {
	r, ok := d.Results[party]
	if !ok {
		return analysis.ToneScores{}, false
	}
	return r.ToneScores, true
}

// ToneRanking ranks parties on a tone metric, highest first.
func (d *Data) ToneRanking(metric string) []ToneEntry {
	var out []ToneEntry
	for _, p := range d.Parties {
		r, ok := d.Results[p]
		if !ok {
			continue
		}
		v, ok := r.ToneScores.Metric(metric)
		if !ok {
			return nil
		}
		out = append(out, ToneEntry{Party: p, Score: round(v, 2)})
	}
	slices.SortStableFunc(out, func(a, b ToneEntry) int { return cmp.Compare(b.Score, a.Score) })
	return out
}

// TopWordsByCategory returns a party's most frequent words of one lexicon
// category, e.g. ("adjectives", "aggressive").
func (d *Data) TopWordsByCategory(party, section, category string, n int) []analysis.WordCount {
	r, ok := d.Results[party]
	if !ok {
		return nil
	}
	words := analysis.CategoryWords(r.Categories, section, category)
	if n > 0 && n < len(words) {
		words = words[:n]
	}
	return words
}

// DiscriminatoryCounts returns the per-category totals of discriminatory
// language per party.
func (d *Data) DiscriminatoryCounts() map[string]map[string]int {
	out := map[string]map[string]int{}
	for _, p := range d.Parties {
		if r, ok := d.Results[p]; ok {
			out[p] = analysis.CategoryTotals(r.Categories, "discriminatory")
		}
	}
	return out
}

// GenderDistribution is the overall split of attributed genders.
type GenderDistribution struct {
	Male          int     `json:"male"`
	Female        int     `json:"female"`
	Unknown       int     `json:"unknown"`
	FemalePercent float64 `json:"femalePercent"`
}

// GenderDistribution counts speakers by attributed gender.
func (d *Data) GenderDistribution() GenderDistribution {
	g := d.Gender
	return GenderDistribution{
		Male:          g.TotalMale,
		Female:        g.TotalFemale,
		Unknown:       g.TotalUnknown,
		FemalePercent: percent(g.TotalFemale, g.TotalMale+g.TotalFemale),
	}
}

// GenderRatioByParty returns the share of women among each party's
// speakers, highest first.
func (d *Data) GenderRatioByParty() []ToneEntry {
	var out []ToneEntry
	for _, p := range d.Parties {
		if st, ok := d.Gender.ByParty[p]; ok {
			out = append(out, ToneEntry{Party: p, Score: st.FemaleShare})
		}
	}
	slices.SortStableFunc(out, func(a, b ToneEntry) int { return cmp.Compare(b.Score, a.Score) })
	return out
}

// TopSpeakersByGender ranks speakers of one gender by formal speeches, or
// by all contributions when formalOnly is false.
func (d *Data) TopSpeakersByGender(g Gender, n int, formalOnly bool) []RankedSpeaker {
	m := map[SpeakerKey]int{}
	for _, p := range d.Profiles {
		count := p.TotalSpeeches
		if formalOnly {
			count = p.FormalSpeeches
		}
		if p.Gender.Gender == g && p.Party != Fraktionslos && count > 0 {
			m[p.Key()] = count
		}
	}
	return rankSpeakers(m, n)
}

// GenderComparison compares men and women on one measure.
type GenderComparison struct {
	Male   float64 `json:"male"`
	Female float64 `json:"female"`
}

// InterruptionPatterns totals interjections made and received by gender.
func (d *Data) InterruptionPatterns() (made, received GenderComparison) {
	for _, p := range d.Profiles {
		switch p.Gender.Gender {
		case GenderMale:
			made.Male += float64(p.InterruptionsMade)
			received.Male += float64(p.InterruptionsReceived)
		case GenderFemale:
			made.Female += float64(p.InterruptionsMade)
			received.Female += float64(p.InterruptionsReceived)
		}
	}
	return made, received
}

// SpeechLengthByGender returns the average words per speech by gender.
func (d *Data) SpeechLengthByGender() GenderComparison {
	var mw, ms, fw, fs int
	for _, p := range d.Profiles {
		switch p.Gender.Gender {
		case GenderMale:
			mw += p.TotalWords
			ms += p.TotalSpeeches
		case GenderFemale:
			fw += p.TotalWords
			fs += p.TotalSpeeches
		}
	}
	return GenderComparison{
		Male:   round(safeDiv(float64(mw), float64(ms)), 1),
		Female: round(safeDiv(float64(fw), float64(fs)), 1),
	}
}

// AcademicTitles returns the share of speakers with a doctorate by gender.
func (d *Data) AcademicTitles() GenderComparison {
	var m, mDr, f, fDr int
	for _, p := range d.Profiles {
		dr := 0
		if p.AcadTitle != "" {
			dr = 1
		}
		switch p.Gender.Gender {
		case GenderMale:
			m++
			mDr += dr
		case GenderFemale:
			f++
			fDr += dr
		}
	}
	return GenderComparison{Male: percent(mDr, m), Female: percent(fDr, f)}
}
