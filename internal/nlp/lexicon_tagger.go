package nlp

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/plenar/internal/lexicon"
)

var lexiconWordRe = regexp.MustCompile(`\p{L}[\p{L}\p{N}-]*`)

// minTaggedRunes is the shortest word that gets a content tag.
const minTaggedRunes = 4

// LexiconTagger tags without linguistic analysis. Every word is returned so
// totals and style markers see the whole text. Words of at least four
// letters found in the adjective or verb lexicons are tagged ADJ or VERB,
// capitalised words that do not start a sentence are tagged NOUN, all
// others are tagged X. Lemmas are the lowercase surface forms.
type LexiconTagger struct {
	lex *lexicon.Lexicon
}

// NewLexiconTagger returns a tagger backed by lex, or the embedded default
// lexicon when lex is nil.
func NewLexiconTagger(lex *lexicon.Lexicon) *LexiconTagger {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &LexiconTagger{lex: lex}
}

// Name implements Tagger.
func (t *LexiconTagger) Name() string { return "lexicon" }

// Ready implements Tagger.
func (t *LexiconTagger) Ready(context.Context) bool { return true }

// Tag implements Tagger.
func (t *LexiconTagger) Tag(ctx context.Context, text string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Token
	for _, loc := range lexiconWordRe.FindAllStringIndex(text, -1) {
		word := strings.Trim(text[loc[0]:loc[1]], "-")
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)
		switch {
		case utf8.RuneCountInString(word) < minTaggedRunes:
			out = append(out, Token{Text: word, Lemma: lower, POS: POSX})
		case t.lex.Contains(lexicon.GroupAdjectives, lower):
			out = append(out, Token{Text: word, Lemma: lower, POS: POSAdj})
		case t.lex.Contains(lexicon.GroupVerbs, lower):
			out = append(out, Token{Text: word, Lemma: lower, POS: POSVerb})
		case isCapitalised(word) && !sentenceInitial(text, loc[0]):
			out = append(out, Token{Text: word, Lemma: lower, POS: POSNoun})
		default:
			out = append(out, Token{Text: word, Lemma: lower, POS: POSX})
		}
	}
	return out, nil
}

func isCapitalised(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

// sentenceInitial reports whether the word at pos is the first word of the
// text or follows sentence-ending punctuation.
func sentenceInitial(text string, pos int) bool {
	before := strings.TrimRightFunc(text[:pos], unicode.IsSpace)
	if before == "" {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(before)
	switch last {
	case '.', '!', '?', ':', '"', '„', '(':
		return true
	}
	return false
}
