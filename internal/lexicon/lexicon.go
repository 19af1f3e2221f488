package lexicon

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Files are the lexicon files read from the data directory, in load order.
var Files = []string{"adjectives.yaml", "verbs.yaml", "extended.yaml", "topics.yaml", "multilabel.yaml"}

type categoryDoc struct {
	Info  `yaml:",inline"`
	Words []string `yaml:"words"`
}

type fileDoc struct {
	Adjectives     []categoryDoc         `yaml:"adjectives"`
	Verbs          []categoryDoc         `yaml:"verbs"`
	Modal          []categoryDoc         `yaml:"modal"`
	Temporal       []categoryDoc         `yaml:"temporal"`
	Intensity      []categoryDoc         `yaml:"intensity"`
	Pronoun        []categoryDoc         `yaml:"pronoun"`
	Discriminatory []categoryDoc         `yaml:"discriminatory"`
	Topics         []categoryDoc         `yaml:"topics"`
	TopicWeights   map[string][]Weighted `yaml:"topic_weights"`
	Tags           map[string][]Weighted `yaml:"tags"`
}

func (d *fileDoc) groups() map[Group][]categoryDoc {
	return map[Group][]categoryDoc{
		GroupAdjectives:     d.Adjectives,
		GroupVerbs:          d.Verbs,
		GroupModal:          d.Modal,
		GroupTemporal:       d.Temporal,
		GroupIntensity:      d.Intensity,
		GroupPronoun:        d.Pronoun,
		GroupDiscriminatory: d.Discriminatory,
		GroupTopics:         d.Topics,
	}
}

// Lexicon holds reverse word lookups for every category group.
// It is immutable after Load and safe for concurrent use.
type Lexicon struct {
	words        map[Group]map[string]Category
	info         map[Group]map[Category]Info
	topicWeights map[string][]Weighted
	tags         map[string][]Weighted
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the lexicon built from the embedded data files. It is
// parsed once per process.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultLex, defaultErr = Load(sub)
	})
	if defaultErr != nil {
		panic(defaultErr) // embedded data is validated by tests
	}
	return defaultLex
}

// Load reads the lexicon files from fsys. Files that do not exist are
// skipped; unknown categories are an error.
func Load(fsys fs.FS) (*Lexicon, error) {
	lex := &Lexicon{
		words:        make(map[Group]map[string]Category),
		info:         make(map[Group]map[Category]Info),
		topicWeights: make(map[string][]Weighted),
		tags:         make(map[string][]Weighted),
	}
	for _, name := range Files {
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read lexicon %s: %w", name, err)
		}
		var doc fileDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode lexicon %s: %w", name, err)
		}
		if err := lex.merge(&doc); err != nil {
			return nil, fmt.Errorf("lexicon %s: %w", name, err)
		}
	}
	return lex, nil
}

func (l *Lexicon) merge(doc *fileDoc) error {
	for group, entries := range doc.groups() {
		for _, e := range entries {
			if !known(group, e.Category) {
				return fmt.Errorf("unknown %s category %q", group, e.Category)
			}
			if l.words[group] == nil {
				l.words[group] = make(map[string]Category)
				l.info[group] = make(map[Category]Info)
			}
			l.info[group][e.Category] = e.Info
			for _, w := range e.Words {
				l.words[group][strings.ToLower(strings.TrimSpace(w))] = e.Category
			}
		}
	}
	for word, labels := range doc.TopicWeights {
		for _, lb := range labels {
			if !known(GroupTopics, lb.Category) {
				return fmt.Errorf("unknown topic %q for %q", lb.Category, word)
			}
		}
		l.topicWeights[strings.ToLower(word)] = labels
	}
	for word, labels := range doc.Tags {
		for _, lb := range labels {
			if _, ok := GroupOf(lb.Category); !ok {
				return fmt.Errorf("unknown tag %q for %q", lb.Category, word)
			}
		}
		l.tags[strings.ToLower(word)] = labels
	}
	return nil
}

func known(g Group, c Category) bool {
	for _, cc := range groupCategories[g] {
		if cc == c {
			return true
		}
	}
	return false
}

func (l *Lexicon) lookup(g Group, word string) (Category, bool) {
	c, ok := l.words[g][strings.ToLower(word)]
	return c, ok
}

// Adjective returns the category of an adjective lemma.
func (l *Lexicon) Adjective(lemma string) (Category, bool) { return l.lookup(GroupAdjectives, lemma) }

// Verb returns the category of a verb lemma.
func (l *Lexicon) Verb(lemma string) (Category, bool) { return l.lookup(GroupVerbs, lemma) }

// Extended returns every extended-group hit for a lemma: modal, temporal,
// intensity, pronoun and discriminatory, in that order.
func (l *Lexicon) Extended(lemma string) []Tag {
	var out []Tag
	for _, g := range ExtendedGroups {
		if c, ok := l.lookup(g, lemma); ok {
			out = append(out, Tag{Group: g, Category: c})
		}
	}
	return out
}

// Topics returns the topic labels of a noun lemma. Weighted multi-topic
// entries take precedence over the single-topic word lists.
func (l *Lexicon) Topics(lemma string) []Weighted {
	key := strings.ToLower(lemma)
	if labels, ok := l.topicWeights[key]; ok {
		return append([]Weighted(nil), labels...)
	}
	if c, ok := l.words[GroupTopics][key]; ok {
		return []Weighted{{Category: c, Weight: 1.0}}
	}
	return nil
}

// Tags returns the weighted style dimensions of a word.
func (l *Lexicon) Tags(word string) []Weighted {
	return append([]Weighted(nil), l.tags[strings.ToLower(word)]...)
}

// Info returns the display metadata of a category.
func (l *Lexicon) Info(g Group, c Category) (Info, bool) {
	i, ok := l.info[g][c]
	return i, ok
}

// Words returns the sorted words of one category.
func (l *Lexicon) Words(g Group, c Category) []string {
	var out []string
	for w, cc := range l.words[g] {
		if cc == c {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// Contains reports whether word belongs to any category of the group.
func (l *Lexicon) Contains(g Group, word string) bool {
	_, ok := l.lookup(g, word)
	return ok
}
