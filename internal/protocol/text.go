package protocol

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	unicodeSpaceRe = regexp.MustCompile("[\u00a0\u2007\u202f\u2060]")
	tabsRe         = regexp.MustCompile(`\t+`)
	multiSpaceRe   = regexp.MustCompile(`  +`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	parentheticRe  = regexp.MustCompile(`\([^)]+\)`)
	nameCharsRe    = regexp.MustCompile(`[^a-zA-ZÀ-ÿÖÄÜäöüßğşçıİ\-\s]`)
)

// academicTitles are dropped from names and reported as the title.
var academicTitles = []string{
	"Dr", "Prof", "Frau", "D", "-Ing",
	"von", "und", "zu", "van", "de",
	"Baron", "Freiherr", "Freifrau", "Prinz", "Graf",
	"h", "c",
}

// CleanText normalizes unicode spaces and dashes and collapses runs of spaces.
// Newlines are kept since boundary patterns are line based.
func CleanText(s string) string {
	s = unicodeSpaceRe.ReplaceAllString(s, " ")
	s = strings.NewReplacer("—", "-", "–", "-").Replace(s)
	s = tabsRe.ReplaceAllString(s, " ")
	return multiSpaceRe.ReplaceAllString(s, " ")
}

// StripParenthetical removes bracketed interjections and collapses whitespace.
func StripParenthetical(s string) string {
	s = parentheticRe.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ExtractNameParts splits a speaker name into first name, last name and
// academic title. Punctuation is dropped before splitting.
func ExtractNameParts(name string) (first, last, title string) {
	clean := nameCharsRe.ReplaceAllString(name, " ")
	parts := strings.Fields(clean)

	var titles, rest []string
	for _, p := range parts {
		if slices.Contains(academicTitles, p) {
			titles = append(titles, p)
		} else {
			rest = append(rest, p)
		}
	}
	switch len(rest) {
	case 0:
	case 1:
		last = rest[0]
	default:
		first = strings.Join(rest[:len(rest)-1], " ")
		last = rest[len(rest)-1]
	}
	return first, last, strings.Join(titles, " ")
}

// WordCount counts whitespace separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// headRunes returns the first n runes of s.
func headRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// tailRunes returns the last n runes of s.
func tailRunes(s string, n int) string {
	end := len(s)
	for i := 0; i < n && end > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[end:]
}
