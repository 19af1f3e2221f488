package protocol

import (
	"regexp"
	"sort"
	"strings"
)

// minSpeechChars drops procedural fragments; minUnintroducedWords keeps long
// speeches that were not introduced by the chair.
const (
	minSpeechChars       = 50
	minUnintroducedWords = 500
)

var (
	speakerLineRe   = regexp.MustCompile(`\n([A-ZÄÖÜ][^(\n:]{2,60})\s*\(([^)]+)\):\s*\n`)
	presidentLineRe = regexp.MustCompile(`\n(Vizepräsident(?:in)?|Präsident(?:in)?|Alterspräsident(?:in)?|Bundespräsident(?:in)?)\s+([A-ZÄÖÜ][^:\n]{2,40}):\s*\n`)
)

type boundaryKind int

const (
	boundarySpeaker boundaryKind = iota
	boundaryPresident
	boundaryGovernment
)

type boundary struct {
	start, end int
	speaker    string
	party      string // raw for speakers, resolved for government officials
	kind       boundaryKind
}

func findBoundaries(text string) []boundary {
	var out []boundary
	for _, m := range speakerLineRe.FindAllStringSubmatchIndex(text, -1) {
		name := strings.TrimSpace(text[m[2]:m[3]])
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "frage ") || strings.HasPrefix(lower, "anfrage ") {
			continue
		}
		out = append(out, boundary{start: m[0], end: m[1], speaker: name, party: strings.TrimSpace(text[m[4]:m[5]]), kind: boundarySpeaker})
	}
	for _, m := range presidentLineRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]] + " " + strings.TrimSpace(text[m[4]:m[5]])
		out = append(out, boundary{start: m[0], end: m[1], speaker: name, kind: boundaryPresident})
	}
	for _, m := range governmentLineRe.FindAllStringSubmatchIndex(text, -1) {
		name := strings.TrimSpace(text[m[2]:m[3]])
		party, _ := GovernmentParty(name)
		out = append(out, boundary{start: m[0], end: m[1], speaker: name, party: party, kind: boundaryGovernment})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// ParseProtocol extracts the speeches of a protocol in document order.
// Offsets refer to CleanText(text).
func ParseProtocol(text string) []Speech {
	text = CleanText(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	sessions := FindQASessions(text)
	boundaries := findBoundaries(text)

	var speeches []Speech
	for i, b := range boundaries {
		if b.kind == boundaryPresident {
			continue
		}
		textStart := b.end
		textEnd := len(text)
		if i+1 < len(boundaries) {
			textEnd = boundaries[i+1].start
		}
		if textEnd < textStart {
			continue
		}

		raw := text[textStart:textEnd]
		body := StripParenthetical(raw)
		if len([]rune(body)) < minSpeechChars {
			continue
		}

		party := b.party
		if b.kind == boundarySpeaker {
			party, _ = NormalizeParty(b.party)
		}
		if party == "" {
			continue
		}

		words := WordCount(body)
		prevIsPresident := i > 0 && boundaries[i-1].kind == boundaryPresident
		typ, keep := classify(text, b, body, words, prevIsPresident, sessions)
		if !keep {
			continue
		}

		first, last, title := ExtractNameParts(b.speaker)
		speeches = append(speeches, Speech{
			Speaker:       b.speaker,
			Party:         party,
			Text:          body,
			Type:          typ,
			Category:      CategoryFor(typ),
			Words:         words,
			FirstName:     first,
			LastName:      last,
			AcademicTitle: title,
			IsGovernment:  b.kind == boundaryGovernment,
			Start:         textStart,
			End:           textEnd,
			Interjections: ParseInterjections(raw),
		})
	}
	return speeches
}

// classify applies the type rules in priority order. keep is false for
// continuations and short speeches without a formal introduction.
func classify(text string, b boundary, body string, words int, prevIsPresident bool, sessions []QASession) (SpeechType, bool) {
	startCat := ClassifySpeechStart(body)

	if ctxType, ok := ClassifyPrecedingContext(text, b.start); ok {
		return ctxType, true
	}
	if b.kind == boundaryGovernment {
		s, in := SessionAt(sessions, b.start)
		switch {
		case !in:
			return TypeRede, true
		case s.Type == SessionBefragung:
			return TypeBefragung, true
		default:
			return TypeFragestundeAntwort, true
		}
	}
	if startCat == StartContinuation {
		return "", false
	}
	if prevIsPresident {
		switch startCat {
		case StartFragestunde:
			return TypeFragestunde, true
		case StartRede:
			return TypeRede, true
		}
	}
	if words >= minUnintroducedWords {
		if startCat == StartOther {
			return TypeSonstiges, true
		}
		return SpeechType(startCat), true
	}
	return "", false
}
