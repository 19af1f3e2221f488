package wrapped

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

func TestSpeakerSet_Index(t *testing.T) {
	s := fixtureData(t).BuildSpeakerSet()
	require.Equal(t, 6, s.Len())

	idx := s.Index()
	require.Equal(t, 6, idx.TotalSpeakers)
	require.Equal(t, []string{"AfD", "CDU/CSU", "SPD", Fraktionslos}, idx.Parties)
	require.Equal(t, []string{
		"anna-schmidt", "paula-weber", "hans-mueller", "kim-berger", "max-einzel", "schmidt",
	}, s.Slugs())

	anna := idx.Speakers[0]
	require.Equal(t, 2, anna.Speeches)
	require.Equal(t, 50, anna.TotalWords)
	require.Equal(t, 25, anna.AvgWords)
	require.Equal(t, 20, anna.MinWords)
	require.Equal(t, 30, anna.MaxWords)
	require.Equal(t, GenderFemale, anna.Gender)
}

func TestSpeakerSet_Page(t *testing.T) {
	s := fixtureData(t).BuildSpeakerSet()

	_, ok := s.Page("nobody")
	require.False(t, ok)

	p, ok := s.Page("anna-schmidt")
	require.True(t, ok)
	require.Equal(t, "SPD", p.Party)
	require.Equal(t, 1, p.Rankings.SpeechRank)
	require.Equal(t, 3, p.Rankings.PartySize)
	require.Nil(t, p.Rankings.VerbosityRank, "fewer than three formal speeches")
	require.InDelta(t, 83.3, p.Rankings.Percentile, 1e-9)

	require.Equal(t, 1, p.Drama.InterruptionsGiven)
	require.Equal(t, 2, p.Drama.InterruptionsReceived)
	require.Equal(t, 2, *p.Drama.InterrupterRank)
	require.Equal(t, 1, *p.Drama.InterruptedRank)

	require.Equal(t, WordStat{Word: "rente", Count: 35}, p.Words.TopWords[0])
	var sig []string
	for _, w := range p.Words.SignatureWords {
		sig = append(sig, w.Word)
	}
	require.Equal(t, []string{"rente", "zukunft", "arbeit"}, sig)
	require.InDelta(t, 7000.0, p.Words.SignatureWords[0].RatioParty, 1e-9)
	require.NotNil(t, p.Words.SignatureAdjectives)

	require.Equal(t, "low", p.ToneProfile.Confidence)
	require.Equal(t, 50, p.ToneProfile.SampleSize.Words)
	require.NotNil(t, p.Topics)

	require.NotEmpty(t, p.FunFacts)
	require.LessOrEqual(t, len(p.FunFacts), maxSpeakerFacts)
	require.Equal(t, "Reden gehalten", p.FunFacts[0].Label)
}

func TestSpeakerSet_SlugCollision(t *testing.T) {
	fd := analysis.NewFullData(nil, 21, time.Now())
	det, err := NewGenderDetector()
	require.NoError(t, err)
	d := NewData(fd, records(
		speech("Max Müller", "SPD", protocol.TypeRede, "eins zwei"),
		speech("Max Müller", "CDU/CSU", protocol.TypeRede, "drei vier"),
		speech("Eva Roth", "SPD", protocol.TypeRede, "fünf"),
	), 1, det)

	s := d.BuildSpeakerSet()
	require.ElementsMatch(t, []string{"max-mueller-spd", "max-mueller-cdu-csu", "eva-roth"}, s.Slugs())
	p, ok := s.Page("max-mueller-cdu-csu")
	require.True(t, ok)
	require.Equal(t, "CDU/CSU", p.Party)
}

func TestSpeakerSet_CollationIgnoresUmlauts(t *testing.T) {
	fd := analysis.NewFullData(nil, 21, time.Now())
	d := NewData(fd, records(
		speech("Zoe Zander", "SPD", protocol.TypeRede, "text"),
		speech("Özlem Ötzel", "SPD", protocol.TypeRede, "text"),
		speech("Olaf Otto", "SPD", protocol.TypeRede, "text"),
	), 1, nil)

	var names []string
	for _, e := range d.BuildSpeakerSet().Index().Speakers {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"Olaf Otto", "Özlem Ötzel", "Zoe Zander"}, names)
}
