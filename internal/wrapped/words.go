package wrapped

import (
	"io/fs"
	"math"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

const minTokenRunes = 4

var tokenRe = regexp.MustCompile(`[a-zäöüß]+`)

// Tokens returns the lowercase words of at least four letters in text.
func Tokens(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, w := range raw {
		if utf8.RuneCountInString(w) >= minTokenRunes {
			out = append(out, w)
		}
	}
	return out
}

// CountTokens counts Tokens(text) into c.
func CountTokens(c protocol.Counter, text string) {
	for _, w := range Tokens(text) {
		c[w]++
	}
}

type stopwordFile struct {
	Event []string `yaml:"event"`
	Party []string `yaml:"party"`
}

var (
	stopOnce sync.Once
	stopSet  map[string]struct{}
)

// IsStopword reports whether w is excluded from distinctive-word rankings:
// generic function words, party self-references and words tied to one-off
// agenda items.
func IsStopword(w string) bool {
	stopOnce.Do(func() {
		stopSet = map[string]struct{}{}
		data, err := fs.ReadFile(dataFS, "data/stopwords.yaml")
		if err != nil {
			return
		}
		var f stopwordFile
		if yaml.Unmarshal(data, &f) != nil {
			return
		}
		for _, list := range [][]string{f.Event, f.Party} {
			for _, s := range list {
				stopSet[s] = struct{}{}
			}
		}
	})
	w = strings.ToLower(w)
	if analysis.IsStopword(w) {
		return true
	}
	_, ok := stopSet[w]
	return ok
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(part)/float64(total)*100, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
