package config

import "git.home.luguber.info/inful/plenar/internal/foundation/normalization"

// NLPMode selects how tokens are tagged.
type NLPMode string

const (
	// NLPModeAuto uses the tagging service when it answers its health check, the lexicon otherwise.
	NLPModeAuto    NLPMode = "auto"
	NLPModeService NLPMode = "service"
	NLPModeLexicon NLPMode = "lexicon"
)

var nlpModeNormalizer = normalization.NewNormalizer(map[string]NLPMode{
	"auto":    NLPModeAuto,
	"service": NLPModeService,
	"spacy":   NLPModeService,
	"lexicon": NLPModeLexicon,
}, NLPModeAuto)

func NormalizeNLPMode(raw string) NLPMode {
	return nlpModeNormalizer.Normalize(raw)
}
