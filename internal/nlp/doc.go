// Package nlp turns German text into part-of-speech tagged, lemmatised
// tokens.
//
// Linguistic analysis is delegated to an external spaCy service over HTTP.
// When that service is not configured or not reachable, a lexicon-only
// tagger provides a coarse fallback.
package nlp
