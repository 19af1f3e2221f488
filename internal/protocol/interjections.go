package protocol

import (
	"regexp"
	"strings"
)

var (
	bracketGroupRe = regexp.MustCompile(`\(([^)]+)\)`)
	groupSplitRe   = regexp.MustCompile(`\s+-\s+`)
	applauseRe     = regexp.MustCompile(`^Beifall bei (?:der |dem )?(.+)$`)
	heckleRe       = regexp.MustCompile(`^Zurufe? (?:von der |vom |der )?(.+)$`)
	remarkRe       = regexp.MustCompile(`^([A-ZÄÖÜ][^\[\]]{2,40}?)\s*\[([A-ZÄÖÜa-zäöü0-9/\s-]+)\]:\s*(.+)$`)
)

// positiveKeywords mark agreement in a remark.
var positiveKeywords = []string{
	"genau", "richtig", "sehr richtig", "bravo", "sehr wahr",
	"stimmt", "jawohl", "jawoll", "sehr gut", "eben", "so ist es",
	"oh ja", "prima", "völlig richtig", "ganz genau",
	"ausgezeichnet", "wunderbar", "großartig",
	"ja!", "doch!", "korrekt!", "natürlich!", "absolut!",
	"na klar", "ja, klar", "gut so", "schön!",
	"guter mann", "gute frau", "gute rede",
	"so sieht es aus", "so sieht's aus", "zu recht",
	"da hat sie recht", "da hat er recht", "das ist auch gut so",
	"allerdings!", "bingo!", "na also", "wow!",
	"danke schön", "danke!", "interessant!",
	"gott sei dank", "so ist das!",
}

// negativeKeywords mark criticism in a remark.
var negativeKeywords = []string{
	"unsinn", "quatsch", "blödsinn", "falsch", "stimmt nicht",
	"lüge", "unverschämt", "peinlich", "skandal", "unfassbar",
	"unglaublich", "witz", "lachhaft", "absurd", "nonsens",
	"schwachsinn", "irrsinn", "wahnsinn", "frechheit", "lächerlich",
	"stimmt doch nicht", "stimmt gar nicht", "das ist nicht wahr",
	"nein", "niemals", "auf keinen fall", "pfui", "schämen",
	"hört! hört!", "aha!", "ach was!",
	"das glauben sie doch selber nicht", "um gottes willen",
	"mein gott", "o mein gott", "ach gott", "meine güte",
	"sie haben es nicht verstanden", "das ist die unwahrheit",
	"thema verfehlt", "na, na, na", "überhaupt nicht",
	"im gegenteil", "besser nicht", "so ein unfug", "schande",
	"verschwörungstheorien", "das geht nicht", "langweilig",
	"träum weiter", "schön wär's",
	"nee!", "oje!", "eijeijei!", "zur sache!",
	"was reden sie denn da", "damit kennen sie sich ja aus",
	"entschuldigen sie sich", "wie bitte?",
}

// ClassifyInterjection rates the content after the first colon. Positive
// keywords are checked first, so "richtig, aber falsch" counts as positive.
// Text without a colon is neutral.
func ClassifyInterjection(text string) Sentiment {
	_, content, ok := strings.Cut(text, ":")
	if !ok {
		return SentimentNeutral
	}
	content = strings.ToLower(strings.TrimRight(content, ")"))
	for _, kw := range positiveKeywords {
		if strings.Contains(content, kw) {
			return SentimentPositive
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(content, kw) {
			return SentimentNegative
		}
	}
	return SentimentNeutral
}

// ParseInterjections extracts applause, heckles and named remarks from raw
// speech text. A bracket group may contain several parts separated by dashes,
// e.g. "(Beifall bei der SPD - Zuruf von der AfD: Unsinn!)".
func ParseInterjections(raw string) []Interjection {
	var out []Interjection
	for _, g := range bracketGroupRe.FindAllStringSubmatch(raw, -1) {
		for _, part := range groupSplitRe.Split(g[1], -1) {
			part = strings.Join(strings.Fields(part), " ")
			if ij, ok := parseInterjectionPart(part); ok {
				out = append(out, ij)
			}
		}
	}
	return out
}

func parseInterjectionPart(part string) (Interjection, bool) {
	if m := applauseRe.FindStringSubmatch(part); m != nil {
		parties := ExtractPartiesFromApplause(m[1])
		if len(parties) == 0 {
			return Interjection{}, false
		}
		return Interjection{Kind: KindApplause, Parties: parties}, true
	}
	if m := heckleRe.FindStringSubmatch(part); m != nil {
		ij := Interjection{Kind: KindHeckle, Parties: ExtractPartiesFromApplause(m[1])}
		if _, text, ok := strings.Cut(m[1], ":"); ok {
			ij.Text = strings.TrimSpace(text)
		}
		if len(ij.Parties) == 0 {
			return Interjection{}, false
		}
		return ij, true
	}
	if m := remarkRe.FindStringSubmatch(part); m != nil {
		name := strings.TrimSpace(m[1])
		party := strings.TrimSpace(m[2])
		if p, ok := NormalizeParty(party); ok {
			party = p
		}
		return Interjection{
			Kind:      KindRemark,
			Speaker:   name,
			Party:     party,
			Text:      strings.TrimSpace(m[3]),
			Sentiment: ClassifyInterjection(part),
		}, true
	}
	return Interjection{}, false
}
