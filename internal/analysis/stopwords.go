package analysis

// GenericStopwords are lowercase noun lemmas that carry no content in
// parliamentary speech: forms of address, procedure and filler nouns.
var GenericStopwords = map[string]struct{}{
	"abgeordnete": {}, "abgeordneter": {}, "abgeordneten": {}, "antrag": {},
	"art": {}, "beifall": {}, "beispiel": {}, "bereich": {}, "blick": {},
	"dame": {}, "damen": {}, "dank": {}, "debatte": {}, "ding": {}, "dinge": {},
	"ende": {}, "fall": {}, "frage": {}, "fragen": {}, "frau": {}, "fraktion": {},
	"grund": {}, "haus": {}, "herr": {}, "herren": {}, "jahr": {}, "jahre": {},
	"jahren": {}, "kollege": {}, "kollegen": {}, "kollegin": {}, "kolleginnen": {},
	"mal": {}, "minute": {}, "minuten": {}, "monat": {}, "monate": {}, "präsident": {},
	"präsidentin": {}, "prozent": {}, "punkt": {}, "rede": {}, "redner": {},
	"rednerin": {}, "sache": {}, "satz": {}, "seite": {}, "sitzung": {},
	"stelle": {}, "tag": {}, "tage": {}, "teil": {}, "thema": {}, "uhr": {},
	"weg": {}, "weise": {}, "woche": {}, "wochen": {}, "wort": {}, "zeit": {},
	"zuruf": {}, "zurufe": {}, "zwischenfrage": {},
}

// IsStopword reports whether a lowercase lemma is a generic stopword.
func IsStopword(lemma string) bool {
	_, ok := GenericStopwords[lemma]
	return ok
}
