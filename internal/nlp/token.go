package nlp

import "context"

// POS is a Universal Dependencies part-of-speech tag.
type POS string

const (
	POSNoun  POS = "NOUN"
	POSPropN POS = "PROPN"
	POSAdj   POS = "ADJ"
	POSVerb  POS = "VERB"
	POSAux   POS = "AUX"
	POSAdv   POS = "ADV"
	POSPron  POS = "PRON"
	POSDet   POS = "DET"
	POSPunct POS = "PUNCT"
	POSX     POS = "X"
)

// Token is one tagged word.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   POS    `json:"pos"`
}

// Tagger tags text.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Token, error)
	// Name identifies the tagger in logs and health output.
	Name() string
	// Ready reports whether the tagger can currently serve requests.
	Ready(ctx context.Context) bool
}
