package wrapped

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/datastore"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

func speech(speaker, party string, typ protocol.SpeechType, text string, ij ...protocol.Interjection) protocol.Speech {
	first, last, title := protocol.ExtractNameParts(speaker)
	return protocol.Speech{
		Speaker:       speaker,
		Party:         party,
		Text:          text,
		Type:          typ,
		Category:      protocol.CategoryFor(typ),
		Words:         protocol.WordCount(text),
		FirstName:     first,
		LastName:      last,
		AcademicTitle: title,
		Interjections: ij,
	}
}

func remark(speaker, party, text string) protocol.Interjection {
	return protocol.Interjection{
		Kind:      protocol.KindRemark,
		Speaker:   speaker,
		Party:     party,
		Text:      text,
		Sentiment: protocol.ClassifyInterjection(speaker + ": " + text),
	}
}

func records(speeches ...protocol.Speech) []datastore.SpeechRecord {
	out := make([]datastore.SpeechRecord, len(speeches))
	for i, s := range speeches {
		out[i] = datastore.SpeechRecord{Speech: s, ProtocolID: 1 + i%2, Date: "2025-05-14"}
	}
	return out
}

func repeat(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

// fixtureData is a small Bundestag: two SPD speakers, one of them also
// recorded under a bare last name, one CDU/CSU speaker, one AfD speaker and
// a fraktionslos member.
func fixtureData(t *testing.T) *Data {
	t.Helper()
	speeches := []protocol.Speech{
		speech("Anna Schmidt", "SPD", protocol.TypeRede, repeat("rente", 20)+" "+repeat("zukunft", 10),
			remark("Hans Müller", "CDU/CSU", "Das ist doch Unsinn!"),
			protocol.Interjection{Kind: protocol.KindApplause, Parties: []string{"SPD", "GRÜNE"}},
		),
		speech("Anna Schmidt", "SPD", protocol.TypeRede, repeat("rente", 15)+" "+repeat("arbeit", 5),
			remark("Hans Müller", "CDU/CSU", "Genau!"),
			remark("Schmidt", "SPD", "Das habe ich gesagt"),
		),
		speech("Schmidt", "SPD", protocol.TypeBefragung, repeat("antwort", 12)),
		speech("Dr. Paula Weber", "SPD", protocol.TypeRede, repeat("bildung", 30)),
		speech("Hans Müller", "CDU/CSU", protocol.TypeRede, repeat("wirtschaft", 40),
			remark("Beifall bei der SPD", "SPD", ""),
			protocol.Interjection{Kind: protocol.KindHeckle, Parties: []string{"AfD"}},
		),
		speech("Hans Müller", "CDU/CSU", protocol.TypeFragestunde, repeat("frage", 8)),
		speech("Kim Berger", "AfD", protocol.TypeRede, repeat("grenze", 25),
			remark("Abg. Anna  Schmidt", "SPD", "Was soll das denn heißen?"),
		),
		speech("Max Einzel", Fraktionslos, protocol.TypeRede, repeat("freiheit", 10)),
	}

	results := []*analysis.AnalysisResult{
		{Party: "SPD", SpeechCount: 3, TotalWords: 3000, TotalNouns: 900, TotalAdjectives: 200, TotalVerbs: 400,
			NounCounts: analysis.Counter{"rente": 60, "bildung": 30, "zukunft": 10, "wirtschaft": 5}},
		{Party: "CDU/CSU", SpeechCount: 2, TotalWords: 2000, TotalNouns: 700, TotalAdjectives: 100, TotalVerbs: 300,
			NounCounts: analysis.Counter{"wirtschaft": 40, "rente": 4, "zukunft": 3}},
		{Party: "AfD", SpeechCount: 1, TotalWords: 1000, TotalNouns: 300, TotalAdjectives: 90, TotalVerbs: 100,
			NounCounts: analysis.Counter{"grenze": 25, "rente": 2, "zukunft": 1, "wirtschaft": 2}},
		{Party: Fraktionslos, SpeechCount: 1, TotalWords: 10, NounCounts: analysis.Counter{"freiheit": 10}},
	}
	fd := analysis.NewFullData(results, 21, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	det, err := NewGenderDetector()
	require.NoError(t, err)
	d := NewData(fd, records(speeches...), 2, det)
	d.Tables[analysis.KindNoun] = analysis.BuildFrequencyTable(results, analysis.KindNoun)
	return d
}
