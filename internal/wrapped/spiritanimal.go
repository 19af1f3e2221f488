package wrapped

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"git.home.luguber.info/inful/plenar/internal/analysis"
)

// SpiritAnimal characterises a speaker's parliamentary style. Score is set
// on alternatives only.
type SpiritAnimal struct {
	ID           string         `json:"id"`
	Emoji        string         `json:"emoji"`
	Name         string         `json:"name"`
	Title        string         `json:"title"`
	Reason       string         `json:"reason"`
	Score        float64        `json:"score,omitempty"`
	Alternatives []SpiritAnimal `json:"alternatives,omitempty"`
}

// animalMetrics are the speaker figures animals are matched against.
type animalMetrics struct {
	wordsRank       int
	speechRank      int
	partySpeechRank int
	partySize       int
	speeches        int
	totalWords      int
	avgWords        int
	party           string
	given           int
	received        int
	sigRatio        float64
	sigWordCount    int
	sigWord         string
	tone            analysis.ToneScores
}

type animal struct {
	id, emoji, name string
	// Male, female and neutral titles.
	title, titleF, titleN string
	reason                func(m *animalMetrics) string
}

func (a animal) format(m *animalMetrics, g Gender) SpiritAnimal {
	title := a.title
	switch g {
	case GenderFemale:
		title = a.titleF
	case GenderUnknown:
		title = a.titleN
	}
	return SpiritAnimal{ID: a.id, Emoji: a.emoji, Name: a.name, Title: title, Reason: a.reason(m)}
}

func fixed(s string) func(*animalMetrics) string {
	return func(*animalMetrics) string { return s }
}

var animals = map[string]animal{
	"elefant": {"elefant", "🐘", "Elefant", "Wortgewaltiger Redner", "Wortgewaltige Rednerin", "Wortgewaltige:r Redner:in",
		func(m *animalMetrics) string {
			return germanPrinter.Sprintf("Mit %d Wörtern gehörst du zu den wortreichsten Abgeordneten.", m.totalWords)
		}},
	"adler": {"adler", "🦅", "Adler", "Parlamentarischer Überflieger", "Parlamentarische Überfliegerin", "Parlamentarische:r Überflieger:in",
		func(m *animalMetrics) string {
			return fmt.Sprintf("Top %d bei Reden UND Top %d bei Wörtern, ein echter Überflieger!", m.speechRank, m.wordsRank)
		}},
	"loewe": {"loewe", "🦁", "Löwe", "Fraktionsstimme", "Fraktionsstimme", "Fraktionsstimme",
		func(m *animalMetrics) string {
			return fmt.Sprintf("Als #%d in der %s-Fraktion bist du eine führende Stimme.", m.partySpeechRank, m.party)
		}},
	"eule": {"eule", "🦉", "Eule", "Themenexperte", "Themenexpertin", "Themenexpert:in",
		func(m *animalMetrics) string {
			return fmt.Sprintf("Dein Fachwort %q nutzt du %s× häufiger als deine Fraktion.",
				m.sigWord, strconv.FormatFloat(round(m.sigRatio, 1), 'f', -1, 64))
		}},
	"pfau": {"pfau", "🦚", "Pfau", "Eloquenter Redner", "Eloquente Rednerin", "Eloquente:r Redner:in",
		func(m *animalMetrics) string {
			return fmt.Sprintf("Mit Ø %d Wörtern pro Rede gehörst du zu den ausführlichsten Rednern.", m.avgWords)
		}},
	"wolf": {"wolf", "🐺", "Wolf", "Mutiger Einwerfer", "Mutige Einwerferin", "Mutige:r Einwerfer:in",
		func(m *animalMetrics) string {
			return fmt.Sprintf("Mit %d Zwischenrufen mischst du aktiv in Debatten mit.", m.given)
		}},
	"baer": {"baer", "🐻", "Bär", "Standhafter Debattierer", "Standhafte Debattiererin", "Standhafte:r Debattierer:in",
		func(m *animalMetrics) string {
			return fmt.Sprintf("Trotz %d× unterbrochen zu werden, bleibst du standhaft.", m.received)
		}},
	"papagei": {"papagei", "🦜", "Papagei", "Neugieriger Fragesteller", "Neugierige Fragestellerin", "Neugierige:r Fragesteller:in",
		fixed("Mit vielen Fragen bringst du wichtige Themen auf den Tisch.")},
	"pferd": {"pferd", "🐴", "Pferd", "Fleißiger Debattierer", "Fleißige Debattiererin", "Fleißige:r Debattierer:in",
		func(m *animalMetrics) string {
			return fmt.Sprintf("Mit %d Reden gehörst du zu den aktivsten Abgeordneten.", m.speeches)
		}},
	"kolibri": {"kolibri", "🐦", "Kolibri", "Präziser Wortführer", "Präzise Wortführerin", "Präzise:r Wortführer:in",
		fixed("Viele Redebeiträge, aber immer auf den Punkt gebracht.")},
	"delfin": {"delfin", "🐬", "Delfin", "Diplomatischer Redner", "Diplomatische Rednerin", "Diplomatische:r Redner:in",
		fixed("Aktiv im Parlament, aber respektvoll ohne viele Zwischenrufe.")},
	"schwan": {"schwan", "🦢", "Schwan", "Bedächtiger Redner", "Bedächtige Rednerin", "Bedächtige:r Redner:in",
		fixed("Wenige, aber durchdachte und ausführliche Reden.")},
	"fuchs": {"fuchs", "🦊", "Fuchs", "Cleverer Stratege", "Clevere Strategin", "Clevere:r Strateg:in",
		fixed("Mit eigenem Vokabular hebst du dich von der Fraktion ab.")},
	"igel": {"igel", "🦔", "Igel", "Beharrlicher Redner", "Beharrliche Rednerin", "Beharrliche:r Redner:in",
		fixed("Auch wenn du oft unterbrochen wirst, du lässt dich nicht beirren.")},
	"schildkroete": {"schildkroete", "🐢", "Schildkröte", "Gründlicher Analyst", "Gründliche Analystin", "Gründliche:r Analyst:in",
		fixed("Wenige Reden, aber wenn, dann richtig ausführlich.")},
	"eichhoernchen": {"eichhoernchen", "🐿️", "Eichhörnchen", "Themenhüter", "Themenhüterin", "Themenhüter:in",
		fixed("Du hast deine Spezialthemen, die du immer wieder einbringst.")},
	"biene": {"biene", "🐝", "Biene", "Fleißiger Abgeordneter", "Fleißige Abgeordnete", "Fleißige:r Abgeordnete:r",
		fixed("Zuverlässig und engagiert, ein wichtiger Teil des Parlaments.")},
	"tiger": {"tiger", "🐅", "Tiger", "Wortgewaltiger Kämpfer", "Wortgewaltige Kämpferin", "Wortgewaltige:r Kämpfer:in",
		func(m *animalMetrics) string {
			return germanPrinter.Sprintf("Mit %d Wörtern und klarer Kante dominierst du Debatten.", m.totalWords)
		}},
	"biber": {"biber", "🦫", "Biber", "Konstruktiver Brückenbauer", "Konstruktive Brückenbauerin", "Konstruktive:r Brückenbauer:in",
		fixed("Du baust Brücken zwischen Positionen, kooperativ und lösungsorientiert.")},
	"krabbe": {"krabbe", "🦀", "Krabbe", "Hartnäckiger Debattierer", "Hartnäckige Debattiererin", "Hartnäckige:r Debattierer:in",
		fixed("Du hältst an deinen Positionen fest und lässt nicht locker.")},
	"otter": {"otter", "🦦", "Otter", "Positiver Teamplayer", "Positive Teamplayerin", "Positive:r Teamplayer:in",
		fixed("Du bringst gute Stimmung und konstruktive Beiträge ins Plenum.")},
	"hase": {"hase", "🐇", "Hase", "Wendiger Optimist", "Wendige Optimistin", "Wendige:r Optimist:in",
		fixed("Mit positivem Blick reagierst du schnell auf neue Themen.")},
}

type metric func(m *animalMetrics) float64

var (
	mSpeeches      metric = func(m *animalMetrics) float64 { return float64(m.speeches) }
	mTotalWords    metric = func(m *animalMetrics) float64 { return float64(m.totalWords) }
	mAvgWords      metric = func(m *animalMetrics) float64 { return float64(m.avgWords) }
	mGiven         metric = func(m *animalMetrics) float64 { return float64(m.given) }
	mReceived      metric = func(m *animalMetrics) float64 { return float64(m.received) }
	mSigRatio      metric = func(m *animalMetrics) float64 { return m.sigRatio }
	mSigWordCount  metric = func(m *animalMetrics) float64 { return float64(m.sigWordCount) }
	mAggression    metric = func(m *animalMetrics) float64 { return m.tone.Aggression }
	mCollaboration metric = func(m *animalMetrics) float64 { return m.tone.Collaboration }
	mAffirmative   metric = func(m *animalMetrics) float64 { return m.tone.Affirmative }
	mSolution      metric = func(m *animalMetrics) float64 { return m.tone.SolutionFocus }
	mDemand        metric = func(m *animalMetrics) float64 { return m.tone.DemandIntensity }
	mAuthority     metric = func(m *animalMetrics) float64 { return m.tone.Authority }
)

// criterion contributes weight * value/scale, capped at weight. A speaker
// below atLeast is disqualified; inverse criteria reward low values.
type criterion struct {
	value   metric
	weight  float64
	scale   float64
	atLeast float64
	inverse bool
}

type animalFit struct {
	id       string
	criteria []criterion
}

// animalFits compete in order; ties keep the earlier animal.
var animalFits = []animalFit{
	{"eule", []criterion{{value: mSigRatio, weight: 0.5, scale: 500}, {value: mSigWordCount, weight: 0.3, scale: 5}, {value: mSpeeches, weight: 0.2, scale: 20, atLeast: 5}}},
	{"wolf", []criterion{{value: mGiven, weight: 0.6, scale: 25}, {value: mAggression, weight: 0.25, scale: 20}, {value: mSpeeches, weight: 0.15, scale: 10, atLeast: 2}}},
	{"papagei", []criterion{{value: mSigWordCount, weight: 0.4, scale: 3}, {value: mSpeeches, weight: 0.3, scale: 8}, {value: mAvgWords, weight: 0.3, scale: 400, inverse: true}}},
	{"baer", []criterion{{value: mReceived, weight: 0.7, scale: 25}, {value: mSpeeches, weight: 0.2, scale: 12, atLeast: 4}, {value: mAuthority, weight: 0.1, scale: 100}}},
	{"pfau", []criterion{{value: mAvgWords, weight: 0.5, scale: 800}, {value: mSpeeches, weight: 0.3, scale: 12, atLeast: 3}, {value: mAffirmative, weight: 0.2, scale: 100}}},
	{"otter", []criterion{{value: mAffirmative, weight: 0.4, scale: 100}, {value: mCollaboration, weight: 0.3, scale: 100}, {value: mSolution, weight: 0.3, scale: 100}}},
	{"pferd", []criterion{{value: mSpeeches, weight: 0.5, scale: 15}, {value: mTotalWords, weight: 0.3, scale: 8000}, {value: mGiven, weight: 0.2, scale: 20}}},
	{"kolibri", []criterion{{value: mSpeeches, weight: 0.5, scale: 12, atLeast: 5}, {value: mAvgWords, weight: 0.5, scale: 300, inverse: true}}},
	{"delfin", []criterion{{value: mSpeeches, weight: 0.25, scale: 10, atLeast: 2}, {value: mGiven, weight: 0.35, scale: 5, inverse: true}, {value: mCollaboration, weight: 0.4, scale: 100}}},
	{"biber", []criterion{{value: mCollaboration, weight: 0.4, scale: 100}, {value: mSolution, weight: 0.3, scale: 100}, {value: mGiven, weight: 0.3, scale: 15, inverse: true}}},
	{"schwan", []criterion{{value: mAvgWords, weight: 0.5, scale: 900}, {value: mSpeeches, weight: 0.3, scale: 4, inverse: true}, {value: mSolution, weight: 0.2, scale: 100}}},
	{"fuchs", []criterion{{value: mSigWordCount, weight: 0.5, scale: 5}, {value: mSigRatio, weight: 0.3, scale: 200}, {value: mSpeeches, weight: 0.2, scale: 15, atLeast: 3}}},
	{"krabbe", []criterion{{value: mDemand, weight: 0.5, scale: 25}, {value: mSpeeches, weight: 0.3, scale: 10, atLeast: 2}, {value: mAuthority, weight: 0.2, scale: 100}}},
	{"igel", []criterion{{value: mReceived, weight: 0.5, scale: 20}, {value: mSpeeches, weight: 0.3, scale: 8, atLeast: 2}, {value: mAffirmative, weight: 0.2, scale: 100}}},
	{"schildkroete", []criterion{{value: mAvgWords, weight: 0.4, scale: 800}, {value: mSpeeches, weight: 0.3, scale: 5, inverse: true}, {value: mSolution, weight: 0.3, scale: 100}}},
	{"eichhoernchen", []criterion{{value: mSigWordCount, weight: 0.5, scale: 3}, {value: mSpeeches, weight: 0.3, scale: 8}, {value: mTotalWords, weight: 0.2, scale: 5000}}},
	{"hase", []criterion{{value: mAffirmative, weight: 0.4, scale: 100}, {value: mSolution, weight: 0.4, scale: 100}, {value: mSpeeches, weight: 0.2, scale: 8, inverse: true}}},
	{"biene", []criterion{{value: mSpeeches, weight: 0.5, scale: 8}, {value: mTotalWords, weight: 0.5, scale: 4000}}},
}

// fit scores m against criteria; -1 means disqualified.
func fit(m *animalMetrics, criteria []criterion) float64 {
	var score float64
	for _, c := range criteria {
		v := c.value(m)
		if c.atLeast > 0 && v < c.atLeast {
			return -1
		}
		if c.inverse {
			v = max(0, c.scale-v)
		}
		if c.scale > 0 {
			score += c.weight * min(1, v/c.scale)
		}
	}
	return score
}

type scoredAnimal struct {
	id    string
	score float64
}

func topAnimals(m *animalMetrics, n int) []scoredAnimal {
	var out []scoredAnimal
	for _, a := range animalFits {
		if s := fit(m, a.criteria); s >= 0 {
			out = append(out, scoredAnimal{id: a.id, score: s})
		}
	}
	slices.SortStableFunc(out, func(a, b scoredAnimal) int { return cmp.Compare(b.score, a.score) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// assignSpiritAnimal gives the most prolific speakers an elite animal and
// lets every other speaker fall to the best fitting one. Up to two runners
// up are attached as alternatives.
func assignSpiritAnimal(m *animalMetrics, g Gender) *SpiritAnimal {
	top := topAnimals(m, 3)
	var id string
	switch {
	case m.wordsRank <= 10:
		id = "elefant"
		if m.tone.Aggression > 15 {
			id = "tiger"
		}
	case m.speechRank <= 10 && m.wordsRank <= 20:
		id = "adler"
	case m.partySpeechRank <= 3 && m.partySize >= 20:
		id = "loewe"
	case len(top) > 0:
		id = top[0].id
	default:
		id = "biene"
	}

	primary := animals[id].format(m, g)
	for _, alt := range top {
		if alt.id == id || len(primary.Alternatives) == 2 {
			continue
		}
		a := animals[alt.id].format(m, g)
		a.Score = round(alt.score, 3)
		primary.Alternatives = append(primary.Alternatives, a)
	}
	return &primary
}
