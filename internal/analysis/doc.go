// Package analysis counts nouns, adjectives and verbs per party and derives
// communication style (tone) and topic scores from the lexicon categories.
package analysis
