package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindQASessions(t *testing.T) {
	text := "Eröffnung\nFragestunde\nFrage eins. Damit schließe ich die Fragestunde. " +
		"Regierungsbefragung folgt. Ende der Befragung. Rest"
	sessions := FindQASessions(text)
	require.Len(t, sessions, 2)

	require.Equal(t, SessionFragestunde, sessions[0].Type)
	require.Equal(t, strings.Index(text, "\nFragestunde"), sessions[0].Start)
	require.Equal(t, strings.Index(text, "Fragestunde. ")+len("Fragestunde"), sessions[0].End)

	require.Equal(t, SessionBefragung, sessions[1].Type)
	require.Equal(t, strings.Index(text, "Ende der Befragung")+len("Ende der Befragung"), sessions[1].End)

	s, ok := SessionAt(sessions, strings.Index(text, "Frage eins"))
	require.True(t, ok)
	require.Equal(t, SessionFragestunde, s.Type)
	_, ok = SessionAt(sessions, strings.Index(text, "Rest"))
	require.False(t, ok)
}

func TestFindQASessions_OpenEnded(t *testing.T) {
	text := "Befragung der Bundesregierung ohne Ende"
	sessions := FindQASessions(text)
	require.Equal(t, []QASession{{Start: 0, End: len(text), Type: SessionBefragung}}, sessions)
}

func TestClassifyPrecedingContext(t *testing.T) {
	cases := []struct {
		before string
		want   SpeechType
		ok     bool
	}{
		{"Ich rufe die Frage 3 des Abgeordneten auf.", TypeFragestunde, true},
		{"Die nächste Hauptfrage stellt die Kollegin.", TypeFragestunde, true},
		{"Ich sehe, dass es eine Nachfrage gibt.", TypeFragestunde, true},
		{"Herr Staatssekretär, Sie haben das Wort.", TypeFragestundeAntwort, true},
		{"Sie haben das Wort, Frau Bundesministerin.", TypeFragestundeAntwort, true},
		{"Das Wort hat der Kollege.", "", false},
	}
	for _, tc := range cases {
		text := tc.before + "\nSprecher (SPD):\n"
		got, ok := ClassifyPrecedingContext(text, len(tc.before))
		require.Equal(t, tc.ok, ok, tc.before)
		require.Equal(t, tc.want, got, tc.before)
	}
}

func TestClassifyPrecedingContext_WindowIsBounded(t *testing.T) {
	text := "Ich rufe die Frage 1 auf." + strings.Repeat("x", contextWindow)
	_, ok := ClassifyPrecedingContext(text, len(text))
	require.False(t, ok)
}

func TestClassifySpeechStart(t *testing.T) {
	cases := []struct {
		text string
		want StartCategory
	}{
		{"Sehr geehrte Frau Präsidentin! Liebe Kolleginnen und Kollegen!", StartRede},
		{"Sehr geehrter Herr Präsident! Sehr geehrter Herr Bundesminister! Wir beraten heute.", StartRede},
		{"Frau Ministerin, wie bewerten Sie die Lage?", StartFragestunde},
		{"Vielen Dank, Frau Präsidentin. Ich habe eine Nachfrage zu Ihrer Antwort.", StartFragestunde},
		{"Vielen Dank, dass Sie die Zwischenfrage zulassen.", StartZwischenfrage},
		{"- Ich komme zum Schluss, Frau Präsidentin.", StartContinuation},
		{"Verehrtes Präsidium! Meine Damen und Herren!", StartRede},
		{"Ich stimme dem Gesetzentwurf nicht zu, weil", StartAbstimmung},
		{"Die Frage der Wehrpflicht beschäftigt uns.", StartStatement},
		{"Heute berät der Bundestag über den Haushalt.", StartProtokoll},
		{"Deutschland hat in den vergangenen Jahren viele Ortskräfte aufgenommen.", StartOrtskraefte},
		{"Welche Maßnahmen plant die Bundesregierung?", StartFragestunde},
		{"Nein, das sehe ich anders.", StartZwischenfrage},
		{"Herr Kollege, Sie irren sich.", StartZwischenfrage},
		{"Vielen Dank, Herr Präsident. Liebe Kolleginnen und Kollegen!", StartRede},
		{"Danke schön. Das war deutlich.", StartZwischenfrage},
		{"Meine Damen und Herren, wir handeln.", StartRede},
		{"Der Haushalt steht.", StartOther},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifySpeechStart(tc.text), tc.text)
	}
}
