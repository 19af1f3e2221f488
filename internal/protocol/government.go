package protocol

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/government.yaml
var governmentYAML []byte

// governmentLineRe matches officials speaking in office, e.g.
// "Lars Klingbeil, Bundesminister der Finanzen:".
var governmentLineRe = regexp.MustCompile(`\n([A-ZÄÖÜ][^,\n]{2,50}),\s*` +
	`(Bundeskanzler(?:in)?|` +
	`Bundesminister(?:in)?(?:\s+[^\n:]{0,60})?|` +
	`Parl\.\s*Staatssekretär(?:in)?(?:\s+[^\n:]{0,80})?|` +
	`Staatsminister(?:in)?(?:\s+[^\n:]{0,60})?):\s*\n`)

var titlePrefixRe = regexp.MustCompile(`^(?:Dr\.|Prof\.|Dr\s|Prof\s)\s*`)

var (
	governmentOnce sync.Once
	governmentMap  map[string]string
	governmentErr  error
)

func loadGovernment() (map[string]string, error) {
	governmentOnce.Do(func() {
		var doc struct {
			Officials map[string]string `yaml:"officials"`
		}
		if err := yaml.Unmarshal(governmentYAML, &doc); err != nil {
			governmentErr = fmt.Errorf("decode government officials: %w", err)
			return
		}
		governmentMap = doc.Officials
	})
	return governmentMap, governmentErr
}

// GovernmentParty returns the parliamentary group of a government official.
// The name is tried as written and with a leading Dr./Prof. removed.
func GovernmentParty(name string) (string, bool) {
	officials, err := loadGovernment()
	if err != nil {
		panic(err) // embedded data is validated by tests
	}
	if p, ok := officials[name]; ok {
		return p, true
	}
	p, ok := officials[strings.TrimSpace(titlePrefixRe.ReplaceAllString(name, ""))]
	return p, ok
}
