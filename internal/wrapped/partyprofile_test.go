package wrapped

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestData_PartyProfiles(t *testing.T) {
	d := fixtureData(t)
	spd := d.Results["SPD"]
	spd.ToneScores.Aggression = 80
	d.Results["SPD"] = spd
	cdu := d.Results["CDU/CSU"]
	cdu.ToneScores.Collaboration = 90
	d.Results["CDU/CSU"] = cdu

	profiles := d.PartyProfiles()
	require.Len(t, profiles, 3)

	require.Equal(t, "aggression", profiles["SPD"].Category)
	require.Equal(t, "Aggressiv", profiles["SPD"].CategoryName)
	require.Equal(t, 1, profiles["SPD"].Rank)
	require.InDelta(t, 80.0, profiles["SPD"].Score, 1e-9)
	require.Len(t, profiles["SPD"].Traits, 3)

	require.Equal(t, "Kooperativ", profiles["CDU/CSU"].CategoryName)
	require.Equal(t, 3, profiles["CDU/CSU"].TotalParties)

	afd := profiles["AfD"]
	require.Equal(t, "balanced", afd.Category)
	require.Equal(t, "⚖️", afd.Emoji)
	require.NotNil(t, afd.Traits)
	require.Empty(t, afd.Traits)
	_, hasInclusivity := afd.Scores["inclusivity"]
	require.True(t, hasInclusivity)
}

func TestPartyEmoji(t *testing.T) {
	require.Equal(t, "🌹", PartyEmoji("SPD"))
	require.Equal(t, "🏛️", PartyEmoji("Piraten"))
}
