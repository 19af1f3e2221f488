package wrapped

import (
	"cmp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/plenar/internal/protocol"
)

// SpeakerKey identifies a speaker within a party. Interjection authors are
// only known by the name printed in the protocol, which may be a last name.
type SpeakerKey struct {
	Name  string
	Party string
}

// RankedSpeaker is an entry of a speaker ranking.
type RankedSpeaker struct {
	Name  string `json:"name"`
	Party string `json:"party"`
	Count int    `json:"count"`
}

// PartyCount is an entry of a party ranking.
type PartyCount struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}

// Drama aggregates the interjections of all speeches: who interrupts, who is
// interrupted, and which parties applaud or heckle.
type Drama struct {
	Interrupters map[SpeakerKey]int
	Interrupted  map[SpeakerKey]int
	Positive     map[SpeakerKey]int
	Negative     map[SpeakerKey]int
	Neutral      map[SpeakerKey]int
	Applause     protocol.Counter
	Heckles      protocol.Counter
	NeutralTexts []string
	// NeutralParties counts the parties of each neutral remark text.
	NeutralParties map[string]protocol.Counter
}

// noiseNames are stage directions that the remark pattern can mistake for
// a speaker name.
var noiseNames = []string{"Beifall", "Zuruf", "Lachen", "Heiterkeit", "Widerspruch"}

// comparableLastName reduces a name to its lowercase last token, ignoring
// academic titles.
func comparableLastName(name string) string {
	cleaned := strings.NewReplacer("Dr.", "", "Prof.", "").Replace(name)
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[len(fields)-1])
}

// BuildDrama counts the interjections recorded in speeches. Remarks by the
// speaker themself (replies to heckles) are skipped.
func BuildDrama(speeches []protocol.Speech) *Drama {
	d := &Drama{
		Interrupters: map[SpeakerKey]int{},
		Interrupted:  map[SpeakerKey]int{},
		Positive:     map[SpeakerKey]int{},
		Negative:     map[SpeakerKey]int{},
		Neutral:      map[SpeakerKey]int{},
		Applause:     protocol.Counter{},
		Heckles:      protocol.Counter{},

		NeutralParties: map[string]protocol.Counter{},
	}
	for _, s := range speeches {
		speakerLast := comparableLastName(s.Speaker)
		target := SpeakerKey{Name: s.Speaker, Party: s.Party}
		for _, ij := range s.Interjections {
			switch ij.Kind {
			case protocol.KindApplause:
				for _, p := range ij.Parties {
					d.Applause[p]++
				}
			case protocol.KindHeckle:
				for _, p := range ij.Parties {
					d.Heckles[p]++
				}
			case protocol.KindRemark:
				d.addRemark(ij, target, speakerLast)
			}
		}
	}
	return d
}

func (d *Drama) addRemark(ij protocol.Interjection, target SpeakerKey, speakerLast string) {
	name := ij.Speaker
	if slices.ContainsFunc(noiseNames, func(n string) bool { return strings.Contains(name, n) }) {
		return
	}
	name = strings.Join(strings.Fields(strings.TrimPrefix(name, "Abg. ")), " ")
	if name == "" || comparableLastName(name) == speakerLast {
		return
	}
	key := SpeakerKey{Name: name, Party: ij.Party}
	d.Interrupters[key]++
	d.Interrupted[target]++

	sentiment := ij.Sentiment
	if sentiment == "" {
		sentiment = protocol.ClassifyInterjection(name + ": " + ij.Text)
	}
	switch sentiment {
	case protocol.SentimentPositive:
		d.Positive[key]++
	case protocol.SentimentNegative:
		d.Negative[key]++
	default:
		d.Neutral[key]++
		if ij.Text != "" {
			d.NeutralTexts = append(d.NeutralTexts, ij.Text)
			if d.NeutralParties[ij.Text] == nil {
				d.NeutralParties[ij.Text] = protocol.Counter{}
			}
			d.NeutralParties[ij.Text][ij.Party]++
		}
	}
}

func rankSpeakers(m map[SpeakerKey]int, n int) []RankedSpeaker {
	out := make([]RankedSpeaker, 0, len(m))
	for k, c := range m {
		out = append(out, RankedSpeaker{Name: k.Name, Party: k.Party, Count: c})
	}
	slices.SortFunc(out, func(a, b RankedSpeaker) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Party, b.Party)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func rankParties(c protocol.Counter, n int) []PartyCount {
	entries := c.MostCommon(n)
	out := make([]PartyCount, len(entries))
	for i, e := range entries {
		out[i] = PartyCount{Party: e.Key, Count: e.Count}
	}
	return out
}

// TopInterrupters ranks interjection authors. n <= 0 returns all.
func (d *Drama) TopInterrupters(n int) []RankedSpeaker { return rankSpeakers(d.Interrupters, n) }

// MostInterrupted ranks speakers by interjections received.
func (d *Drama) MostInterrupted(n int) []RankedSpeaker { return rankSpeakers(d.Interrupted, n) }

// ApplauseRanking ranks parties by applause given.
func (d *Drama) ApplauseRanking(n int) []PartyCount { return rankParties(d.Applause, n) }

// HeckleRanking ranks parties by named remarks of their members.
func (d *Drama) HeckleRanking(n int) []PartyCount {
	byParty := protocol.Counter{}
	for k, c := range d.Interrupters {
		byParty[k.Party] += c
	}
	return rankParties(byParty, n)
}

// SentimentStats summarises remark sentiment.
type SentimentStats struct {
	Total           int     `json:"total"`
	Positive        int     `json:"positive"`
	Negative        int     `json:"negative"`
	Neutral         int     `json:"neutral"`
	PositivePercent float64 `json:"positivePercent"`
	NegativePercent float64 `json:"negativePercent"`
	NeutralPercent  float64 `json:"neutralPercent"`
}

func sumCounts(m map[SpeakerKey]int) int {
	t := 0
	for _, c := range m {
		t += c
	}
	return t
}

// Sentiment totals the positive, negative and neutral remarks.
func (d *Drama) Sentiment() SentimentStats {
	s := SentimentStats{
		Positive: sumCounts(d.Positive),
		Negative: sumCounts(d.Negative),
		Neutral:  sumCounts(d.Neutral),
	}
	s.Total = s.Positive + s.Negative + s.Neutral
	s.PositivePercent = percent(s.Positive, s.Total)
	s.NegativePercent = percent(s.Negative, s.Total)
	s.NeutralPercent = percent(s.Neutral, s.Total)
	return s
}

// NeutralTextCounts counts identical neutral remark texts, most common first.
func (d *Drama) NeutralTextCounts() []protocol.Entry {
	c := protocol.Counter{}
	for _, t := range d.NeutralTexts {
		c[t]++
	}
	return c.MostCommon(0)
}
