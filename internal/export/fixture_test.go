package export

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/datastore"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/protocol"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

var fixedNow = time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

type stageRecorder struct {
	metrics.NoopRecorder
	mu      sync.Mutex
	results map[string]metrics.ResultLabel
}

func (r *stageRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = map[string]metrics.ResultLabel{}
	}
	r.results[stage] = result
}

func newExporter(t *testing.T, dir string) (*Exporter, *stageRecorder) {
	t.Helper()
	rec := &stageRecorder{}
	e, err := New(dir, Options{Recorder: rec, Workers: 2, ToolVersion: "test", Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	return e, rec
}

func rede(speaker, party, text string, ij ...protocol.Interjection) datastore.SpeechRecord {
	first, last, title := protocol.ExtractNameParts(speaker)
	return datastore.SpeechRecord{
		Speech: protocol.Speech{
			Speaker:       speaker,
			Party:         party,
			Text:          text,
			Type:          protocol.TypeRede,
			Category:      protocol.CategoryRede,
			Words:         protocol.WordCount(text),
			FirstName:     first,
			LastName:      last,
			AcademicTitle: title,
			Interjections: ij,
		},
		ProtocolID: 1,
		Date:       "2025-05-14",
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

func fixtureResults() []*analysis.AnalysisResult {
	return []*analysis.AnalysisResult{
		{Party: "SPD", SpeechCount: 1, TotalWords: 300, TotalNouns: 90, TotalAdjectives: 20, TotalVerbs: 40,
			NounCounts: analysis.Counter{"rente": 6, "zukunft": 2}, AdjectiveCounts: analysis.Counter{"sozial": 3},
			VerbCounts: analysis.Counter{"sichern": 2}},
		{Party: "CDU/CSU", SpeechCount: 1, TotalWords: 200, TotalNouns: 70, TotalAdjectives: 10, TotalVerbs: 30,
			NounCounts: analysis.Counter{"wirtschaft": 4, "rente": 1}, AdjectiveCounts: analysis.Counter{"stark": 1},
			VerbCounts: analysis.Counter{"wachsen": 1}},
	}
}

// fixtureData holds two speakers; Anna Schmidt is interrupted twice, once
// by a neutral question from the Greens.
func fixtureData(t *testing.T) *wrapped.Data {
	t.Helper()
	records := []datastore.SpeechRecord{
		rede("Anna Schmidt", "SPD", strings.Repeat("rente ", 30)+"zukunft",
			remark("Hans Müller", "CDU/CSU", "Das ist doch Unsinn!"),
			remark("Lea Grün", "GRÜNE", "Was soll das denn heißen?"),
		),
		rede("Hans Müller", "CDU/CSU", strings.Repeat("wirtschaft ", 20)),
	}
	det, err := wrapped.NewGenderDetector()
	require.NoError(t, err)
	fd := analysis.NewFullData(fixtureResults(), 21, fixedNow)
	return wrapped.NewData(fd, records, 1, det)
}
