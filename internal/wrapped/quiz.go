package wrapped

import (
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const quizDistractors = 3

// Fallback distractors for speakers whose colleagues have too few
// signature words of their own.
var (
	fallbackWords = []string{
		"bundesregierung", "gesetzentwurf", "abstimmung", "fraktion",
		"antrag", "haushalt", "debatte", "koalition", "opposition",
		"minister", "kanzler", "ausschuss", "gesetz", "reform",
		"wirtschaft", "sicherheit", "zukunft", "bürger", "arbeit",
		"bildung", "energie", "klima", "europa", "migration",
		"demokratie", "freiheit", "verantwortung", "politik", "gesellschaft",
		"familie", "kinder", "rente", "steuern", "investitionen",
	}
	fallbackAdjectives = []string{
		"wichtig", "notwendig", "erfolgreich", "stark", "sicher", "klar",
		"falsch", "gefährlich", "problematisch", "schlecht", "sozial",
		"wirtschaftlich", "politisch", "europäisch", "national",
		"richtig", "gut", "groß", "neu", "jung", "alt",
	}
)

// QuizOption is one answer of a quiz.
type QuizOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Quiz asks which word a speaker uses more often than the party.
type Quiz struct {
	Question             string       `json:"question"`
	Options              []QuizOption `json:"options"`
	ExplanationParty     string       `json:"explanationParty"`
	ExplanationBundestag string       `json:"explanationBundestag"`
}

type quizKind int

const (
	quizWord quizKind = iota
	quizAdjective
)

func (k quizKind) question(speaker, party string) string {
	if k == quizAdjective {
		return "Welches Adjektiv nutzt " + speaker + " häufiger als der Rest der " + party + "-Fraktion?"
	}
	return "Welches Wort nutzt " + speaker + " häufiger als der Rest der Fraktion?"
}

// buildQuiz asks for the top signature word. Distractors come from pool,
// the signature words of other speakers, topped up from fallback. Choice
// and option order depend only on seed, so an export is reproducible.
func buildQuiz(kind quizKind, speaker, party, seed string, sig []SignatureStat, pool, fallback []string) *Quiz {
	if len(sig) == 0 {
		return nil
	}
	own := make(map[string]bool, len(sig))
	for _, s := range sig {
		own[s.Word] = true
	}
	rng := seededRand(seed, kind)
	distractors := pickDistractors(rng, pool, own, quizDistractors)
	if len(distractors) < quizDistractors {
		for _, w := range distractors {
			own[w] = true
		}
		distractors = append(distractors, pickDistractors(rng, fallback, own, quizDistractors-len(distractors))...)
	}
	if len(distractors) < quizDistractors {
		return nil
	}

	title := cases.Title(language.German)
	top := sig[0]
	answer := title.String(top.Word)
	options := []QuizOption{{Text: answer, IsCorrect: true}}
	for _, w := range distractors {
		options = append(options, QuizOption{Text: title.String(w)})
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return &Quiz{
		Question:             kind.question(speaker, party),
		Options:              options,
		ExplanationParty:     `"` + answer + `" nutzt ` + speaker + " " + ratio(top.RatioParty) + "× häufiger als der " + party + "-Durchschnitt.",
		ExplanationBundestag: ratio(top.RatioBundestag) + "× häufiger als der Bundestag-Durchschnitt.",
	}
}

func pickDistractors(rng *rand.Rand, candidates []string, exclude map[string]bool, n int) []string {
	var avail []string
	for _, w := range candidates {
		if !exclude[w] {
			avail = append(avail, w)
		}
	}
	slices.Sort(avail)
	avail = slices.Compact(avail)
	if len(avail) <= n {
		return avail
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(avail))[:n] {
		out = append(out, avail[i])
	}
	return out
}

func seededRand(seed string, kind quizKind) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return rand.New(rand.NewPCG(h.Sum64(), uint64(kind)))
}

func ratio(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
