package wrapped

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugTitleRe  = regexp.MustCompile(`\b(?:Dr\.|Prof\.|Dr\s|Prof\s)\s*`)
	slugInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
	umlautFolder = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss", "Ä", "ae", "Ö", "oe", "Ü", "ue")
)

// Slug derives a URL-safe identifier from a speaker name. Academic titles are
// dropped, "Last, First" is reordered, umlauts are transliterated and other
// accents removed:
//
//	"Dr. Paula Piechotta" -> "paula-piechotta"
//	"Müller, Hans"        -> "hans-mueller"
func Slug(name string) string {
	name = strings.TrimSpace(slugTitleRe.ReplaceAllString(name, ""))
	if parts := strings.Split(name, ","); len(parts) == 2 {
		name = strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
	}
	name = umlautFolder.Replace(norm.NFC.String(strings.ToLower(name)))

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if folded, _, err := transform.String(t, name); err == nil {
		name = folded
	}
	name = slugInvalid.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}
