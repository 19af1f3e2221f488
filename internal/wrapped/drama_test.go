package wrapped

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/protocol"
)

func TestBuildDrama_Remarks(t *testing.T) {
	d := fixtureData(t).Drama

	require.Equal(t, 2, d.Interrupters[SpeakerKey{"Hans Müller", "CDU/CSU"}])
	require.Equal(t, 1, d.Interrupters[SpeakerKey{"Anna Schmidt", "SPD"}], "Abg. prefix and double spaces are normalised")
	require.Equal(t, 2, d.Interrupted[SpeakerKey{"Anna Schmidt", "SPD"}])
	require.Equal(t, 1, d.Interrupted[SpeakerKey{"Kim Berger", "AfD"}])

	_, self := d.Interrupters[SpeakerKey{"Schmidt", "SPD"}]
	require.False(t, self, "replies by the speaker are not interruptions")
	for k := range d.Interrupters {
		require.NotContains(t, k.Name, "Beifall")
	}
}

func TestBuildDrama_PartyReactions(t *testing.T) {
	d := fixtureData(t).Drama
	require.Equal(t, 1, d.Applause["SPD"])
	require.Equal(t, 1, d.Applause["GRÜNE"])
	require.Equal(t, 1, d.Heckles["AfD"])

	heckles := d.HeckleRanking(0)
	require.Equal(t, PartyCount{Party: "CDU/CSU", Count: 2}, heckles[0])
}

func TestDrama_Sentiment(t *testing.T) {
	d := fixtureData(t).Drama
	s := d.Sentiment()
	require.Equal(t, 3, s.Total)
	require.Equal(t, 1, s.Positive)
	require.Equal(t, 1, s.Negative)
	require.Equal(t, 1, s.Neutral)
	require.InDelta(t, 33.3, s.NeutralPercent, 1e-9)

	texts := d.NeutralTextCounts()
	require.Len(t, texts, 1)
	require.Equal(t, "Was soll das denn heißen?", texts[0].Key)
	require.Equal(t, protocol.Counter{"SPD": 1}, d.NeutralParties["Was soll das denn heißen?"])
}

func TestDrama_RankingOrder(t *testing.T) {
	d := BuildDrama([]protocol.Speech{
		speech("Anna Schmidt", "SPD", protocol.TypeRede, "text",
			remark("Zoe Bauer", "GRÜNE", "Ja"),
			remark("Adam Bauer", "FDP", "Ja"),
			remark("Adam Bauer", "AfD", "Ja"),
		),
	})
	top := d.TopInterrupters(0)
	require.Equal(t, []RankedSpeaker{
		{Name: "Adam Bauer", Party: "AfD", Count: 1},
		{Name: "Adam Bauer", Party: "FDP", Count: 1},
		{Name: "Zoe Bauer", Party: "GRÜNE", Count: 1},
	}, top)
	require.Len(t, d.TopInterrupters(2), 2)
}
