package protocol

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// Parties lists the parliamentary groups of the current Bundestag in display order.
var Parties = []string{"SPD", "CDU/CSU", "GRÜNE", "FDP", "AfD", "DIE LINKE", "BSW", "fraktionslos"}

// PartyOrder returns found ordered by preferred. Parties missing from
// preferred follow in Parties order, then alphabetically. With an empty
// preferred list every found party is kept; otherwise only preferred ones.
func PartyOrder(found, preferred []string) []string {
	if len(preferred) > 0 {
		out := make([]string, 0, len(preferred))
		for _, p := range preferred {
			if slices.Contains(found, p) && !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
		return out
	}
	out := slices.Clone(found)
	rank := func(p string) int {
		if i := slices.Index(Parties, p); i >= 0 {
			return i
		}
		return len(Parties)
	}
	slices.SortFunc(out, func(a, b string) int {
		if d := cmp.Compare(rank(a), rank(b)); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
	return slices.Compact(out)
}

type faction struct {
	name string
	re   *regexp.Regexp
}

// factions is ordered; the first match wins. The patterns tolerate the
// spelling variants and OCR errors found in older protocols.
var factions = []faction{
	{"CDU/CSU", regexp.MustCompile(`(?i)(?:Gast|-)?(?:\s*C\s*[DSMU]\s*S?[DU]\s*(?:\s*[/,':!.-]?)*\s*(?:\s*C+\s*[DSs]?\s*[UÙ]?\s*)?)(?:-?Hosp\.|-Gast|1)?`)},
	{"SPD", regexp.MustCompile(`(?i)\s*'?S(?:PD|DP)(?:\.|-Gast)?`)},
	{"GRÜNE", regexp.MustCompile(`(?i)(?:BÜNDNIS\s*(?:90)?/?(?:\s*D[1I]E)?|Bündnis\s*90/(?:\s*D[1I]E)?)?\s*[GC]R[UÜ].?\s*[ÑN]EN?(?:/Bündnis 90)?|BÜNDNISSES?\s*90/\s*DIE\s*GRÜNEN|Grünen`)},
	{"FDP", regexp.MustCompile(`(?i)\s*F\.?\s*[PDO][.']?[DP]\.?`)},
	{"AfD", regexp.MustCompile(`(?i)^AfD$|Alternative für Deutschland`)},
	{"DIE LINKE", regexp.MustCompile(`(?i)DIE\s*LIN\s?KEN?|LIN\s?KEN|Die Linke`)},
	{"BSW", regexp.MustCompile(`(?i)^BSW$|Bündnis Sahra Wagenknecht`)},
	{"fraktionslos", regexp.MustCompile(`(?i)(?:fraktionslos|Parteilos|parteilos)`)},
	{"SSW", regexp.MustCompile(`(?i)^SSW$`)},
	{"PDS", regexp.MustCompile(`(?i)(?:Gruppe\s*der\s*)?PDS(?:/(?:LL|Linke Liste))?`)},
	{"GB/BHE", regexp.MustCompile(`(?i)(?:GB[/-]\s*)?BHE(?:-DG)?`)},
	{"DP", regexp.MustCompile(`(?i)^DP$`)},
	{"KPD", regexp.MustCompile(`(?i)^KPD$`)},
	{"FVP", regexp.MustCompile(`(?i)^FVP$`)},
}

// NormalizeParty maps a raw party label onto its canonical faction name.
func NormalizeParty(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, f := range factions {
		if f.re.MatchString(raw) {
			return f.name, true
		}
	}
	return "", false
}

var (
	colonListRe   = regexp.MustCompile(`:\s*[^,)]+`)
	partSplitRe   = regexp.MustCompile(`\s*,\s*|\s+(?:sowie|und|–|-)\s+`)
	bracketPartRe = regexp.MustCompile(`\[([^\]]+)\]`)
	articlePartRe = regexp.MustCompile(`(?:der|dem|des|bei)\s+(\S+)`)
)

// ExtractPartiesFromApplause returns the canonical parties named in an
// applause or heckle annotation such as
// "der CDU/CSU sowie bei Abgeordneten der SPD". Duplicates are removed,
// order of appearance is kept.
func ExtractPartiesFromApplause(text string) []string {
	text = colonListRe.ReplaceAllString(text, "")
	var parties []string
	add := func(p string) {
		if !slices.Contains(parties, p) {
			parties = append(parties, p)
		}
	}
	for _, part := range partSplitRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if p, ok := NormalizeParty(part); ok {
			add(p)
			continue
		}
		if m := bracketPartRe.FindStringSubmatch(part); m != nil {
			if p, ok := NormalizeParty(m[1]); ok {
				add(p)
				continue
			}
		}
		if m := articlePartRe.FindStringSubmatch(part); m != nil {
			if p, ok := NormalizeParty(m[1]); ok {
				add(p)
			}
		}
	}
	return parties
}
