// Package protocol splits Bundestag Plenarprotokoll full texts into speeches.
//
// A protocol is scanned for three kinds of boundaries: speaker lines
// ("Name (PARTY):"), presiding officer lines ("Vizepräsidentin Name:") and
// government lines ("Name, Bundesministerin für ...:"). The text between two
// boundaries belongs to the earlier one. Presiding officers only delimit
// speeches; their own contributions are not returned.
//
// Each speech is classified (rede, befragung, fragestunde, ...) from three
// signals: the 600 characters preceding it, whether it lies inside a question
// session, and how its first sentences read. Interjections are extracted from
// the raw text before parentheticals are stripped.
//
// Offsets (Speech.Start, Speech.End, QASession) are byte offsets into the
// cleaned text returned by CleanText.
package protocol
