package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/plenar/internal/lexicon"
	"git.home.luguber.info/inful/plenar/internal/nlp"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

// Counter counts words.
type Counter = protocol.Counter

const minLemmaRunes = 3

// Analyzer extracts word frequencies from speeches.
type Analyzer struct {
	tagger      nlp.Tagger
	lex         *lexicon.Lexicon
	categorizer *Categorizer
}

// NewAnalyzer returns an analyzer using tagger. A nil lexicon selects the
// embedded default.
func NewAnalyzer(tagger nlp.Tagger, lex *lexicon.Lexicon) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Analyzer{tagger: tagger, lex: lex, categorizer: NewCategorizer(lex)}
}

// Tagger returns the underlying tagger.
func (a *Analyzer) Tagger() nlp.Tagger { return a.tagger }

// AnalyzeText analyses a single text under the given label.
func (a *Analyzer) AnalyzeText(ctx context.Context, text, label string) (*AnalysisResult, error) {
	return a.AnalyzeSpeeches(ctx, []string{text}, label)
}

// AnalyzeSpeeches analyses the texts of one party.
//
// Words are tokens containing a letter. Nouns are NOUN tokens (proper nouns
// excluded) with lowercase lemmas of at least three letters that are not
// generic stopwords; adjectives are ADJ and verbs VERB tokens, auxiliaries
// excluded. Style markers are matched on the lowercase surface form first
// and on the lemma otherwise.
func (a *Analyzer) AnalyzeSpeeches(ctx context.Context, texts []string, party string) (*AnalysisResult, error) {
	res := &AnalysisResult{
		Party:           party,
		SpeechCount:     len(texts),
		NounCounts:      Counter{},
		AdjectiveCounts: Counter{},
		VerbCounts:      Counter{},
	}
	allWords := Counter{}

	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokens, err := a.tagger.Tag(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("tag speech %d of %s: %w", i+1, party, err)
		}
		for _, tok := range tokens {
			if !hasLetter(tok.Text) {
				continue
			}
			res.TotalWords++

			surface := strings.ToLower(tok.Text)
			lemma := strings.ToLower(tok.Lemma)
			if lemma == "" {
				lemma = surface
			}
			if len(a.lex.Extended(surface)) > 0 {
				allWords[surface]++
			} else {
				allWords[lemma]++
			}

			if utf8.RuneCountInString(lemma) < minLemmaRunes {
				continue
			}
			switch tok.POS {
			case nlp.POSNoun:
				if !IsStopword(lemma) {
					res.NounCounts[lemma]++
				}
			case nlp.POSAdj:
				res.AdjectiveCounts[lemma]++
			case nlp.POSVerb:
				res.VerbCounts[lemma]++
			}
		}
	}

	res.TotalNouns = res.NounCounts.Total()
	res.TotalAdjectives = res.AdjectiveCounts.Total()
	res.TotalVerbs = res.VerbCounts.Total()
	res.Categories = a.categorizer.Categorize(res.AdjectiveCounts, res.VerbCounts, allWords, res.NounCounts)
	return res, nil
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
