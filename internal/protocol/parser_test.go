package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleProtocol is a trimmed plenary session: a government questioning, a
// debate opened by the chancellor and a question time.
var sampleProtocol = strings.Join([]string{
	"Deutscher Bundestag Stenografischer Bericht 12. Sitzung",
	"Präsidentin Julia Klöckner:",
	"Ich rufe Tagesordnungspunkt 1 auf: Befragung der Bundesregierung. Es antwortet der Bundesminister der Finanzen.",
	"Lars Klingbeil, Bundesminister der Finanzen:",
	"Vielen Dank für die Einladung. Die Bundesregierung hat heute den Haushaltsentwurf beschlossen und ich stelle ihn kurz vor.",
	"Präsidentin Julia Klöckner:",
	"Vielen Dank. Damit beende ich die Befragung. Ich eröffne die Aussprache. Das Wort hat der Bundeskanzler.",
	"Friedrich Merz, Bundeskanzler:",
	"Sehr geehrte Frau Präsidentin! Liebe Kolleginnen und Kollegen! Wir stehen heute vor großen Aufgaben für unser Land. (Beifall bei der CDU/CSU und der SPD – Tino Chrupalla [AfD]: Unsinn!) Wir werden die Wirtschaft stärken.",
	"Präsidentin Julia Klöckner:",
	"Das Wort hat Tino Chrupalla für die AfD.",
	"Tino Chrupalla (AfD):",
	"Sehr geehrte Frau Präsidentin! Meine Damen und Herren! Die Regierung hat keinen Plan für dieses Land und seine Bürger. (Zuruf von der SPD: Quatsch!)",
	"Präsidentin Julia Klöckner:",
	"Herr Kollege, Ihre Redezeit ist abgelaufen.",
	"Lars Klingbeil (SPD):",
	"– Ich komme zum Schluss; der letzte Satz ist wichtig für unser Land, liebe Kolleginnen und Kollegen.",
	"Fragestunde",
	"Präsidentin Julia Klöckner:",
	"Ich rufe die Frage 1 des Abgeordneten Max Mustermann auf.",
	"Max Mustermann (BÜNDNIS 90/DIE GRÜNEN):",
	"Wie hoch sind die Kosten des neuen Programms, und welche Schritte plant die Bundesregierung bis Ende des Jahres?",
	"Präsidentin Julia Klöckner:",
	"Damit schließe ich die Fragestunde.",
	"",
}, "\n")

func TestParseProtocol_Sample(t *testing.T) {
	speeches := ParseProtocol(sampleProtocol)
	require.Len(t, speeches, 4)

	klingbeil := speeches[0]
	require.Equal(t, "Lars Klingbeil", klingbeil.Speaker)
	require.Equal(t, "SPD", klingbeil.Party)
	require.Equal(t, TypeBefragung, klingbeil.Type)
	require.Equal(t, CategoryWortbeitrag, klingbeil.Category)
	require.True(t, klingbeil.IsGovernment)

	merz := speeches[1]
	require.Equal(t, "Friedrich Merz", merz.Speaker)
	require.Equal(t, "CDU/CSU", merz.Party)
	require.Equal(t, TypeRede, merz.Type)
	require.Equal(t, CategoryRede, merz.Category)
	require.Equal(t, "Friedrich", merz.FirstName)
	require.Equal(t, "Merz", merz.LastName)
	require.NotContains(t, merz.Text, "Beifall")
	require.Equal(t, WordCount(merz.Text), merz.Words)
	require.Len(t, merz.Interjections, 2)
	require.Equal(t, KindApplause, merz.Interjections[0].Kind)
	require.Equal(t, []string{"CDU/CSU", "SPD"}, merz.Interjections[0].Parties)
	require.Equal(t, KindRemark, merz.Interjections[1].Kind)
	require.Equal(t, "Tino Chrupalla", merz.Interjections[1].Speaker)
	require.Equal(t, "AfD", merz.Interjections[1].Party)
	require.Equal(t, SentimentNegative, merz.Interjections[1].Sentiment)

	chrupalla := speeches[2]
	require.Equal(t, "AfD", chrupalla.Party)
	require.Equal(t, TypeRede, chrupalla.Type)
	require.False(t, chrupalla.IsGovernment)
	require.Len(t, chrupalla.Interjections, 1)
	require.Equal(t, KindHeckle, chrupalla.Interjections[0].Kind)
	require.Equal(t, []string{"SPD"}, chrupalla.Interjections[0].Parties)
	require.Equal(t, "Quatsch!", chrupalla.Interjections[0].Text)

	question := speeches[3]
	require.Equal(t, "Max Mustermann", question.Speaker)
	require.Equal(t, "GRÜNE", question.Party)
	require.Equal(t, TypeFragestunde, question.Type)

	cleaned := CleanText(sampleProtocol)
	for i, s := range speeches {
		require.Less(t, s.Start, s.End, "speech %d", i)
		require.LessOrEqual(t, s.End, len(cleaned))
		if i > 0 {
			require.Greater(t, s.Start, speeches[i-1].Start)
		}
	}
}

func TestParseProtocol_Empty(t *testing.T) {
	require.Empty(t, ParseProtocol(""))
	require.Empty(t, ParseProtocol("   \n\n"))
}

func TestParseProtocol_UnknownOfficialDropped(t *testing.T) {
	text := "\nErika Unbekannt, Bundesministerin für Sonderaufgaben:\n" +
		"Sehr geehrte Frau Präsidentin! Ich stelle heute unser umfangreiches Programm für die kommenden Jahre vor.\n"
	require.Empty(t, ParseProtocol(text))
}

func TestParseProtocol_SkipsQuestionHeaders(t *testing.T) {
	text := "\nPräsident Max Muster:\nBitte.\nFrage des Abgeordneten Hans (SPD):\n" +
		"Sehr geehrter Herr Präsident! Dies ist ein ausreichend langer Text, der als Rede gewertet werden könnte.\n"
	require.Empty(t, ParseProtocol(text))
}

func TestParseProtocol_ShortUnintroducedDropped(t *testing.T) {
	text := "\nAnna Beispiel (SPD):\nDas ist eine kurze Anmerkung ohne Einleitung durch das Präsidium, aber lang genug.\n"
	require.Empty(t, ParseProtocol(text))
}

func TestParseProtocol_LongUnintroducedKept(t *testing.T) {
	body := "Wir benötigen " + strings.Repeat("mehr Investitionen in Schulen ", 130)
	text := "\nAnna Beispiel (SPD):\n" + body + "\n"
	speeches := ParseProtocol(text)
	require.Len(t, speeches, 1)
	require.Equal(t, TypeProtokoll, speeches[0].Type)
	require.GreaterOrEqual(t, speeches[0].Words, minUnintroducedWords)

	other := "\nAnna Beispiel (SPD):\n" + strings.Repeat("Investitionen in Schulen sind wichtig ", 130) + "\n"
	speeches = ParseProtocol(other)
	require.Len(t, speeches, 1)
	require.Equal(t, TypeSonstiges, speeches[0].Type)
}
