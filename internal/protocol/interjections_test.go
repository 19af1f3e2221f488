package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyInterjection(t *testing.T) {
	cases := map[string]Sentiment{
		"Stephan Brandner [AfD]: Sehr richtig!":         SentimentPositive,
		"Dr. Ralf Stegner [SPD]: So ein Unsinn!)":       SentimentNegative,
		"Britta Haßelmann [GRÜNE]: Wer hat's erfunden?": SentimentNeutral,
		"Beifall bei der SPD":                           SentimentNeutral,
		"X [SPD]: Richtig falsch":                       SentimentPositive,
	}
	for in, want := range cases {
		require.Equal(t, want, ClassifyInterjection(in), in)
	}
}

func TestParseInterjections(t *testing.T) {
	raw := "Wir handeln. (Beifall bei der CDU/CSU sowie bei Abgeordneten der SPD) " +
		"Und zwar sofort. (Zurufe von der AfD) Weiter. " +
		"(Heiterkeit bei der SPD - Dr. Ralf Stegner [SPD]: Bravo! - Zuruf vom BSW: Nein!) " +
		"(Lachen bei der AfD)"
	got := ParseInterjections(CleanText(raw))
	require.Equal(t, []Interjection{
		{Kind: KindApplause, Parties: []string{"CDU/CSU", "SPD"}},
		{Kind: KindHeckle, Parties: []string{"AfD"}},
		{Kind: KindRemark, Speaker: "Dr. Ralf Stegner", Party: "SPD", Text: "Bravo!", Sentiment: SentimentPositive},
		{Kind: KindHeckle, Parties: []string{"BSW"}, Text: "Nein!"},
	}, got)
}

func TestParseInterjections_None(t *testing.T) {
	require.Empty(t, ParseInterjections("Keine Zwischenrufe hier."))
}
