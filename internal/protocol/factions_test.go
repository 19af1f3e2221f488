package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeParty(t *testing.T) {
	cases := map[string]string{
		"CDU/CSU":                     "CDU/CSU",
		"CDU":                         "CDU/CSU",
		"SPD":                         "SPD",
		"BÜNDNIS 90/DIE GRÜNEN":       "GRÜNE",
		"FDP":                         "FDP",
		"AfD":                         "AfD",
		"Alternative für Deutschland": "AfD",
		"Die Linke":                   "DIE LINKE",
		"DIE LINKE":                   "DIE LINKE",
		"BSW":                         "BSW",
		"fraktionslos":                "fraktionslos",
		"SSW":                         "SSW",
	}
	for raw, want := range cases {
		got, ok := NormalizeParty(raw)
		require.True(t, ok, raw)
		require.Equal(t, want, got, raw)
	}

	_, ok := NormalizeParty("")
	require.False(t, ok)
	_, ok = NormalizeParty("Piraten")
	require.False(t, ok)
}

func TestExtractPartiesFromApplause(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"der CDU/CSU sowie bei Abgeordneten der SPD", []string{"CDU/CSU", "SPD"}},
		{"AfD und der CDU/CSU", []string{"AfD", "CDU/CSU"}},
		{"des Abg. Dr. Ralf Stegner [SPD]", []string{"SPD"}},
		{"der SPD, der GRÜNEN und der SPD", []string{"SPD", "GRÜNE"}},
		{"AfD: Oh!", []string{"AfD"}},
		{"im ganzen Hause", nil},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ExtractPartiesFromApplause(tc.in), tc.in)
	}
}

func TestGovernmentParty(t *testing.T) {
	p, ok := GovernmentParty("Friedrich Merz")
	require.True(t, ok)
	require.Equal(t, "CDU/CSU", p)

	p, ok = GovernmentParty("Dr. Lars Klingbeil")
	require.True(t, ok)
	require.Equal(t, "SPD", p)

	_, ok = GovernmentParty("Erika Unbekannt")
	require.False(t, ok)
}

func TestGovernmentData_PartiesAreCanonical(t *testing.T) {
	officials, err := loadGovernment()
	require.NoError(t, err)
	require.NotEmpty(t, officials)
	for name, party := range officials {
		got, ok := NormalizeParty(party)
		require.True(t, ok, name)
		require.Equal(t, party, got, name)
	}
}

func TestPartyOrder(t *testing.T) {
	found := []string{"fraktionslos", "AfD", "SSW", "CDU/CSU", "SPD", "PDS"}
	require.Equal(t, []string{"SPD", "CDU/CSU", "AfD", "fraktionslos", "PDS", "SSW"}, PartyOrder(found, nil))
	require.Equal(t, []string{"AfD", "SPD"}, PartyOrder(found, []string{"AfD", "FDP", "SPD", "AfD"}))
	require.Empty(t, PartyOrder(nil, nil))
}
