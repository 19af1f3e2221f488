package protocol

import (
	"regexp"
	"sort"
)

// SessionType distinguishes government questioning from general question time.
type SessionType string

const (
	SessionBefragung   SessionType = "befragung"
	SessionFragestunde SessionType = "fragestunde"
)

// QASession is a byte range of a protocol in which questions are answered.
type QASession struct {
	Start int         `json:"start"`
	End   int         `json:"end"`
	Type  SessionType `json:"type"`
}

var (
	befragungStartRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Befragung der Bundesregierung`),
		regexp.MustCompile(`(?i)Regierungsbefragung`),
	}
	fragestundeStartRe = regexp.MustCompile(`(?m)(?:^|\n)Fragestunde\s*(?:\n|$)`)
	sessionEndRe       = regexp.MustCompile(`(?i)(?:schließe ich die|beende ich die|Ende der)\s+(?:Befragung|Fragestunde|Regierungsbefragung)`)
)

// FindQASessions locates Befragung and Fragestunde sessions. A session runs
// from its start marker to the next end marker, or to the end of the text.
func FindQASessions(text string) []QASession {
	var sessions []QASession
	add := func(start int, typ SessionType) {
		end := len(text)
		if start+1 <= len(text) {
			if loc := sessionEndRe.FindStringIndex(text[start+1:]); loc != nil {
				end = start + 1 + loc[1]
			}
		}
		sessions = append(sessions, QASession{Start: start, End: end, Type: typ})
	}
	for _, re := range befragungStartRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			add(loc[0], SessionBefragung)
		}
	}
	for _, loc := range fragestundeStartRe.FindAllStringIndex(text, -1) {
		add(loc[0], SessionFragestunde)
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Start < sessions[j].Start })
	return sessions
}

// SessionAt returns the first session containing pos.
func SessionAt(sessions []QASession, pos int) (QASession, bool) {
	for _, s := range sessions {
		if s.Start <= pos && pos < s.End {
			return s, true
		}
	}
	return QASession{}, false
}
