package protocol

import (
	"regexp"
	"strings"
)

// contextWindow is how many characters before a speech are inspected.
const contextWindow = 600

var (
	questionCallRes = []*regexp.Regexp{
		regexp.MustCompile(`ich rufe die frage \d+`),
		regexp.MustCompile(`die nächste (haupt)?frage stellt`),
		regexp.MustCompile(`(nachfrage gibt|weitere frage gibt|nachfrage\s*\.\s*-)`),
	}
	answerCallRes = []*regexp.Regexp{
		regexp.MustCompile(`(herr|frau)\s+(staatsminister|staatssekretär|bundesminister)[^.]*sie haben das wort`),
		regexp.MustCompile(`sie haben das wort[^.]{0,50}(staatsminister|staatssekretär|bundesminister)`),
	}
)

// ClassifyPrecedingContext inspects the text before pos for the presiding
// officer calling up a question or inviting a minister to answer. It returns
// TypeFragestunde, TypeFragestundeAntwort or false.
func ClassifyPrecedingContext(text string, pos int) (SpeechType, bool) {
	if pos > len(text) {
		pos = len(text)
	}
	ctx := strings.ToLower(tailRunes(text[:pos], contextWindow))
	for _, re := range questionCallRes {
		if re.MatchString(ctx) {
			return TypeFragestunde, true
		}
	}
	for _, re := range answerCallRes {
		if re.MatchString(ctx) {
			return TypeFragestundeAntwort, true
		}
	}
	return "", false
}
