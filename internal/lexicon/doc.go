// Package lexicon provides the German word lists used to categorise
// adjectives, verbs, style markers and topic nouns.
//
// The lists ship as YAML inside the binary. Every category carries a
// German display name, a description, an emoji and a colour so exports and
// the web frontend can render them without a second source.
package lexicon
