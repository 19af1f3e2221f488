package wrapped

import (
	"cmp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/plenar/internal/protocol"
)

// SpeakerProfile aggregates everything known about one speaker of one party.
type SpeakerProfile struct {
	Name                  string       `json:"name"`
	FirstName             string       `json:"first_name"`
	LastName              string       `json:"last_name"`
	Party                 string       `json:"party"`
	Gender                GenderResult `json:"gender"`
	AcadTitle             string       `json:"acad_title,omitempty"`
	TotalSpeeches         int          `json:"total_speeches"`
	TotalWords            int          `json:"total_words"`
	FormalSpeeches        int          `json:"formal_speeches"`
	Wortbeitraege         int          `json:"wortbeitraege"`
	BefragungResponses    int          `json:"befragung_responses"`
	QuestionSpeeches      int          `json:"question_speeches"`
	AvgWordsPerSpeech     float64      `json:"avg_words_per_speech"`
	InterruptionsMade     int          `json:"interruptions_made"`
	InterruptionsReceived int          `json:"interruptions_received"`
}

// Key returns the (name, party) key of the profile.
func (p *SpeakerProfile) Key() SpeakerKey { return SpeakerKey{Name: p.Name, Party: p.Party} }

// partial reports whether the protocol named the speaker without a first name.
func (p *SpeakerProfile) partial() bool {
	return p.FirstName == "" || len(strings.Fields(p.Name)) < 2
}

func (p *SpeakerProfile) recalc() {
	if p.TotalSpeeches > 0 {
		p.AvgWordsPerSpeech = round(float64(p.TotalWords)/float64(p.TotalSpeeches), 1)
	}
}

func (p *SpeakerProfile) add(s protocol.Speech) {
	p.TotalSpeeches++
	p.TotalWords += s.Words
	switch s.Type {
	case protocol.TypeRede:
		p.FormalSpeeches++
	case protocol.TypeBefragung, protocol.TypeFragestundeAntwort:
		p.BefragungResponses++
	case protocol.TypeFragestunde:
		p.QuestionSpeeches++
	}
	if s.Type != protocol.TypeRede {
		p.Wortbeitraege++
	}
}

// BuildProfiles creates one profile per (speaker, party), attributes gender
// from the first name and attaches interjection counts from d. Profiles are
// sorted by speech count, then name.
func BuildProfiles(speeches []protocol.Speech, d *Drama, detector *GenderDetector) []*SpeakerProfile {
	byKey := map[SpeakerKey]*SpeakerProfile{}
	var order []SpeakerKey
	for _, s := range speeches {
		if s.Speaker == "" {
			continue
		}
		key := SpeakerKey{Name: s.Speaker, Party: s.Party}
		p, ok := byKey[key]
		if !ok {
			first, last, title := s.FirstName, s.LastName, s.AcademicTitle
			if first == "" && last == "" {
				first, last, title = protocol.ExtractNameParts(s.Speaker)
			}
			p = &SpeakerProfile{Name: s.Speaker, Party: s.Party, FirstName: first, LastName: last, AcadTitle: title}
			byKey[key] = p
			order = append(order, key)
		}
		p.add(s)
	}

	out := make([]*SpeakerProfile, 0, len(order))
	for _, k := range order {
		p := byKey[k]
		p.recalc()
		if detector != nil {
			p.Gender = detector.Detect(p.FirstName)
		} else {
			p.Gender = GenderResult{Gender: GenderUnknown, Source: SourceEmpty}
		}
		if d != nil {
			p.InterruptionsMade = interruptionsBy(d, p)
			p.InterruptionsReceived = d.Interrupted[k]
		}
		out = append(out, p)
	}
	sortProfiles(out)
	return out
}

// interruptionsBy matches remark authors to a profile. Remarks usually carry
// the full name; bare last names are matched within the party.
func interruptionsBy(d *Drama, p *SpeakerProfile) int {
	last := strings.ToLower(p.LastName)
	n := 0
	for k, c := range d.Interrupters {
		if k.Party != p.Party {
			continue
		}
		if k.Name == p.Name || (len(strings.Fields(k.Name)) == 1 && strings.ToLower(k.Name) == last) {
			n += c
		}
	}
	return n
}

func sortProfiles(ps []*SpeakerProfile) {
	slices.SortFunc(ps, func(a, b *SpeakerProfile) int {
		if c := cmp.Compare(b.TotalSpeeches, a.TotalSpeeches); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Party, b.Party)
	})
}

// MergePartialProfiles folds profiles recorded under a bare last name into
// the full-name profile with the same last name and party. When several
// full profiles match, the one with more speeches wins. Unmatched partial
// profiles are kept.
func MergePartialProfiles(ps []*SpeakerProfile) []*SpeakerProfile {
	type groupKey struct{ last, party string }
	full := map[groupKey]*SpeakerProfile{}
	for _, p := range ps {
		if p.partial() {
			continue
		}
		k := groupKey{strings.ToLower(p.LastName), p.Party}
		if cur, ok := full[k]; !ok || p.TotalSpeeches > cur.TotalSpeeches {
			full[k] = p
		}
	}

	out := make([]*SpeakerProfile, 0, len(ps))
	for _, p := range ps {
		if !p.partial() {
			out = append(out, p)
			continue
		}
		last := p.LastName
		if last == "" {
			last = comparableLastName(p.Name)
		}
		target, ok := full[groupKey{strings.ToLower(last), p.Party}]
		if !ok {
			out = append(out, p)
			continue
		}
		target.TotalSpeeches += p.TotalSpeeches
		target.TotalWords += p.TotalWords
		target.FormalSpeeches += p.FormalSpeeches
		target.Wortbeitraege += p.Wortbeitraege
		target.BefragungResponses += p.BefragungResponses
		target.QuestionSpeeches += p.QuestionSpeeches
		target.InterruptionsReceived += p.InterruptionsReceived
		if p.InterruptionsMade > target.InterruptionsMade {
			// Both profiles were matched against the same bare-name remarks.
			target.InterruptionsMade = p.InterruptionsMade
		}
		target.recalc()
	}
	sortProfiles(out)
	return out
}

// GenderPartyStats are the per-party gender figures.
type GenderPartyStats struct {
	MaleSpeakers        int     `json:"male_speakers"`
	FemaleSpeakers      int     `json:"female_speakers"`
	UnknownSpeakers     int     `json:"unknown_speakers"`
	MaleSpeeches        int     `json:"male_speeches"`
	FemaleSpeeches      int     `json:"female_speeches"`
	MaleWords           int     `json:"male_words"`
	FemaleWords         int     `json:"female_words"`
	MaleAvgLength       float64 `json:"male_avg_length"`
	FemaleAvgLength     float64 `json:"female_avg_length"`
	MaleInterruptions   int     `json:"male_interruptions"`
	FemaleInterruptions int     `json:"female_interruptions"`
	MaleInterrupted     int     `json:"male_interrupted"`
	FemaleInterrupted   int     `json:"female_interrupted"`
	MaleDr              int     `json:"male_dr"`
	FemaleDr            int     `json:"female_dr"`
	FemaleShare         float64 `json:"female_share"`
	FemaleSpeechShare   float64 `json:"female_speech_share"`
}

// GenderStats summarises gender over all profiles.
type GenderStats struct {
	TotalMale    int                          `json:"total_male"`
	TotalFemale  int                          `json:"total_female"`
	TotalUnknown int                          `json:"total_unknown"`
	ByParty      map[string]*GenderPartyStats `json:"by_party"`
}

// BuildGenderStats counts speakers, speeches, words, interruptions and
// academic titles by gender and party.
func BuildGenderStats(ps []*SpeakerProfile) *GenderStats {
	gs := &GenderStats{ByParty: map[string]*GenderPartyStats{}}
	for _, p := range ps {
		st, ok := gs.ByParty[p.Party]
		if !ok {
			st = &GenderPartyStats{}
			gs.ByParty[p.Party] = st
		}
		dr := 0
		if p.AcadTitle != "" {
			dr = 1
		}
		switch p.Gender.Gender {
		case GenderMale:
			gs.TotalMale++
			st.MaleSpeakers++
			st.MaleSpeeches += p.TotalSpeeches
			st.MaleWords += p.TotalWords
			st.MaleInterruptions += p.InterruptionsMade
			st.MaleInterrupted += p.InterruptionsReceived
			st.MaleDr += dr
		case GenderFemale:
			gs.TotalFemale++
			st.FemaleSpeakers++
			st.FemaleSpeeches += p.TotalSpeeches
			st.FemaleWords += p.TotalWords
			st.FemaleInterruptions += p.InterruptionsMade
			st.FemaleInterrupted += p.InterruptionsReceived
			st.FemaleDr += dr
		default:
			gs.TotalUnknown++
			st.UnknownSpeakers++
		}
	}
	for _, st := range gs.ByParty {
		st.MaleAvgLength = round(safeDiv(float64(st.MaleWords), float64(st.MaleSpeeches)), 1)
		st.FemaleAvgLength = round(safeDiv(float64(st.FemaleWords), float64(st.FemaleSpeeches)), 1)
		st.FemaleShare = percent(st.FemaleSpeakers, st.MaleSpeakers+st.FemaleSpeakers)
		st.FemaleSpeechShare = percent(st.FemaleSpeeches, st.MaleSpeeches+st.FemaleSpeeches)
	}
	return gs
}
