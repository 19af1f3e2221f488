package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/nlp"
	"git.home.luguber.info/inful/plenar/internal/protocol"
	"git.home.luguber.info/inful/plenar/internal/server/responses"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// stubTagger tags whitespace-separated "text/lemma/POS" triples.
type stubTagger struct {
	err   error
	ready bool
}

func (s stubTagger) Name() string { return "stub" }

func (s stubTagger) Ready(context.Context) bool { return s.ready }

func (s stubTagger) Tag(_ context.Context, text string) ([]nlp.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []nlp.Token
	for _, f := range strings.Fields(text) {
		parts := strings.Split(f, "/")
		if len(parts) != 3 {
			continue
		}
		out = append(out, nlp.Token{Text: parts[0], Lemma: parts[1], POS: nlp.POS(parts[2])})
	}
	return out, nil
}

const taggedText = "Rente/Rente/NOUN sichern/sichern/VERB Rente/Rente/NOUN gefährlich/gefährlich/ADJ"

var protocolText = strings.Join([]string{
	"Deutscher Bundestag Stenografischer Bericht 12. Sitzung",
	"Präsidentin Julia Klöckner:",
	"Ich eröffne die Aussprache. Das Wort hat der Bundeskanzler.",
	"Friedrich Merz, Bundeskanzler:",
	"Sehr geehrte Frau Präsidentin! Liebe Kolleginnen und Kollegen! Wir stehen heute vor großen Aufgaben für unser Land. Wir werden die Wirtschaft stärken.",
	"Präsidentin Julia Klöckner:",
	"Das Wort hat Tino Chrupalla für die AfD.",
	"Tino Chrupalla (AfD):",
	"Sehr geehrte Frau Präsidentin! Meine Damen und Herren! Die Regierung hat keinen Plan für dieses Land und seine Bürger.",
	"Präsidentin Julia Klöckner:",
	"Vielen Dank.",
	"",
}, "\n")

func newNLPHandlers(t *testing.T, tagger nlp.Tagger) *NLPHandlers {
	t.Helper()
	detector, err := wrapped.NewGenderDetector()
	require.NoError(t, err)
	return NewNLPHandlers(analysis.NewAnalyzer(tagger, nil), detector, nil)
}

func postJSON(t *testing.T, h http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, detail string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decodeBody[ferrors.HTTPErrorResponse](t, rec)
	require.False(t, body.Success)
	require.NotEmpty(t, body.Error)
	if detail != "" {
		require.Contains(t, body.Detail, detail)
	}
}

func TestNLP_RootAndHealth(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})

	rec := httptest.NewRecorder()
	h.HandleRoot(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	info := decodeBody[responses.ServiceInfo](t, rec)
	require.Equal(t, "plenar-nlp", info.Service)
	require.Equal(t, "/docs", info.Docs)

	rec = httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, responses.NLPHealthResponse{Status: "healthy", Tagger: "stub", TaggerReady: true},
		decodeBody[responses.NLPHealthResponse](t, rec))

	h = newNLPHandlers(t, stubTagger{})
	rec = httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, "degraded", decodeBody[responses.NLPHealthResponse](t, rec).Status)
}

func TestNLP_ExtractSpeeches(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})

	rec := postJSON(t, h.HandleExtractSpeeches, "/extract/speeches", map[string]string{"text": protocolText})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[responses.ExtractSpeechesResponse](t, rec)
	require.True(t, resp.Success)
	require.Equal(t, len(resp.Speeches), resp.SpeechCount)
	require.NotZero(t, resp.SpeechCount)

	want := protocol.ParseProtocol(protocolText)
	require.Len(t, resp.Speeches, len(want))
	for i, s := range want {
		require.Equal(t, s.Speaker, resp.Speeches[i].Speaker)
		require.Equal(t, s.Party, resp.Speeches[i].Party)
		require.Equal(t, s.Words, resp.Speeches[i].Words)
	}

	rec = postJSON(t, h.HandleExtractSpeeches, "/extract/speeches", map[string]string{"text": "zu kurz"})
	requireError(t, rec, http.StatusBadRequest, "Text too short")
}

func TestNLP_InvalidBody(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})

	rec := httptest.NewRecorder()
	h.HandleAnalyzeText(rec, httptest.NewRequest(http.MethodPost, "/analyze/text", strings.NewReader("{")))
	requireError(t, rec, http.StatusBadRequest, "")

	rec = httptest.NewRecorder()
	h.HandleAnalyzeText(rec, httptest.NewRequest(http.MethodPost, "/analyze/text", http.NoBody))
	requireError(t, rec, http.StatusBadRequest, "empty body")
}

func TestNLP_AnalyzeText(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})

	rec := postJSON(t, h.HandleAnalyzeText, "/analyze/text", map[string]any{"text": taggedText})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[responses.AnalyzeTextResponse](t, rec)
	require.True(t, resp.Success)
	require.Equal(t, 4, resp.TotalWords)
	require.Equal(t, 2, resp.TotalNouns)
	require.Equal(t, []responses.WordCount{{Word: "rente", Count: 2, FrequencyPer1000: 500}}, resp.TopNouns)
	require.Equal(t, []responses.WordCount{{Word: "gefährlich", Count: 1, FrequencyPer1000: 250}}, resp.TopAdjectives)
	require.Equal(t, []responses.WordCount{{Word: "sichern", Count: 1, FrequencyPer1000: 250}}, resp.TopVerbs)
	require.NotEmpty(t, resp.Categories)
	require.NotNil(t, resp.ToneScores)
	require.Len(t, resp.TopTopics, 3)

	rec = postJSON(t, h.HandleAnalyzeText, "/analyze/text", map[string]any{
		"text": taggedText, "include_categories": false, "include_tone": false, "include_topics": false,
	})
	raw := decodeBody[map[string]any](t, rec)
	require.NotContains(t, raw, "categories")
	require.NotContains(t, raw, "tone_scores")
	require.NotContains(t, raw, "top_topics")
}

func TestNLP_AnalyzeTextValidation(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})

	rec := postJSON(t, h.HandleAnalyzeText, "/analyze/text", map[string]any{"text": "kurz"})
	requireError(t, rec, http.StatusBadRequest, "Text too short")

	rec = postJSON(t, h.HandleAnalyzeText, "/analyze/text", map[string]any{"text": taggedText, "top_n": 0})
	requireError(t, rec, http.StatusBadRequest, "top_n")

	rec = postJSON(t, h.HandleAnalyzeText, "/analyze/text", map[string]any{"text": taggedText, "top_n": 501})
	requireError(t, rec, http.StatusBadRequest, "top_n")
}

func TestNLP_TaggerFailures(t *testing.T) {
	unavailable := ferrors.NLPError("nlp service unavailable").Retryable().Build()
	h := newNLPHandlers(t, stubTagger{err: unavailable})
	rec := postJSON(t, h.HandleAnalyzeTone, "/analyze/tone", map[string]any{"text": taggedText})
	requireError(t, rec, http.StatusBadGateway, "")
	require.True(t, decodeBody[ferrors.HTTPErrorResponse](t, rec).Retryable)

	h = newNLPHandlers(t, stubTagger{err: errors.New("boom")})
	rec = postJSON(t, h.HandleAnalyzeTopics, "/analyze/topics", map[string]any{"text": taggedText})
	requireError(t, rec, http.StatusUnprocessableEntity, "boom")
}

func TestNLP_ToneAndTopics(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})

	rec := postJSON(t, h.HandleAnalyzeTone, "/analyze/tone", map[string]any{"text": taggedText})
	require.Equal(t, http.StatusOK, rec.Code)
	raw := decodeBody[map[string]any](t, rec)
	require.Contains(t, raw["tone_scores"], "aggression")

	rec = postJSON(t, h.HandleAnalyzeTopics, "/analyze/topics", map[string]any{"text": taggedText})
	require.Equal(t, http.StatusOK, rec.Code)
	topics := decodeBody[responses.ClassifyTopicsResponse](t, rec)
	require.Len(t, topics.TopTopics, 3)
	require.NotEmpty(t, topics.TopicScores)
}

func TestNLP_SpeakerProfile(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})
	speeches := []protocol.Speech{
		{Speaker: "Anna Schmidt", FirstName: "Anna", LastName: "Schmidt", Party: "SPD", Type: protocol.TypeRede, Category: protocol.CategoryRede, Text: taggedText},
		{Speaker: "Anna Schmidt", Party: "SPD", Type: protocol.TypeBefragung, Category: protocol.CategoryWortbeitrag, Text: "Arbeit/Arbeit/NOUN"},
		{Speaker: "Anna Schmidt", Party: "SPD", Type: protocol.TypeFragestundeAntwort, Category: protocol.CategoryWortbeitrag, Text: "Rente/Rente/NOUN"},
	}

	rec := postJSON(t, h.HandleSpeakerProfile, "/analysis/speaker-profile?speaker_name=Anna+Schmidt", map[string]any{"speeches": speeches})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[responses.SpeakerProfileResponse](t, rec)
	require.Equal(t, "Anna Schmidt", resp.Name)
	require.Equal(t, "SPD", resp.Party)
	require.Equal(t, string(wrapped.GenderFemale), resp.Gender)
	require.Equal(t, 3, resp.TotalSpeeches)
	require.Equal(t, 1, resp.FormalSpeeches)
	require.Equal(t, 2, resp.Wortbeitraege)
	require.Equal(t, 2, resp.BefragungResponses)
	require.Equal(t, 6, resp.TotalWords)
	require.InDelta(t, 2.0, resp.AvgWordsPerSpeech, 0.001)
	require.Equal(t, "rente", resp.TopNouns[0].Word)
	require.Equal(t, 3, resp.TopNouns[0].Count)

	rec = postJSON(t, h.HandleSpeakerProfile, "/analysis/speaker-profile", map[string]any{"speeches": speeches})
	requireError(t, rec, http.StatusBadRequest, "speaker_name")

	rec = postJSON(t, h.HandleSpeakerProfile, "/analysis/speaker-profile?speaker_name=Niemand", map[string]any{"speeches": []protocol.Speech{}})
	requireError(t, rec, http.StatusBadRequest, "No speeches provided for speaker: Niemand")
}

func TestNLP_SpeakerProfileUnknownParty(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})
	rec := postJSON(t, h.HandleSpeakerProfile, "/analysis/speaker-profile?speaker_name=X", map[string]any{
		"speeches": []protocol.Speech{{Speaker: "X", Text: taggedText}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "unknown", decodeBody[responses.SpeakerProfileResponse](t, rec).Party)
}

func TestNLP_PartyComparison(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})
	speeches := []protocol.Speech{
		{Speaker: "Anna Schmidt", Party: "SPD", Text: "Rente/Rente/NOUN Rente/Rente/NOUN Arbeit/Arbeit/NOUN"},
		{Speaker: "Hans Müller", Party: "CDU/CSU", Text: "Wirtschaft/Wirtschaft/NOUN Rente/Rente/NOUN"},
		{Speaker: "Ömer Öztürk", Party: "SPD", Text: "Arbeit/Arbeit/NOUN"},
		{Speaker: "Lea Grün", Party: "GRÜNE", Text: "Klima/Klima/NOUN"},
		{Speaker: "Präsidentin", Text: "Ordnung/Ordnung/NOUN"},
	}

	rec := postJSON(t, h.HandlePartyComparison, "/analysis/party-comparison?parties=SPD,CDU/CSU&top_n=5&wahlperiode=20", map[string]any{"speeches": speeches})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[responses.PartyComparisonResponse](t, rec)
	require.Equal(t, 20, resp.Wahlperiode)
	require.Equal(t, []string{"SPD", "CDU/CSU"}, resp.PartiesCompared)
	require.Len(t, resp.PartyProfiles, 2)

	spd := resp.PartyProfiles[0]
	require.Equal(t, "SPD", spd.Party)
	require.Equal(t, 2, spd.SpeakerCount)
	require.Equal(t, 2, spd.SpeechCount)
	require.Equal(t, 4, spd.TotalWords)
	require.InDelta(t, 2.0, spd.AvgWordsPerSpeech, 0.001)
	require.Equal(t, []responses.WordCount{
		{Word: "arbeit", Count: 2, FrequencyPer1000: 500},
		{Word: "rente", Count: 2, FrequencyPer1000: 500},
	}, spd.TopNouns)

	require.ElementsMatch(t, []string{"SPD", "CDU/CSU"}, resp.AggressionRanking)
	require.ElementsMatch(t, []string{"SPD", "CDU/CSU"}, resp.CollaborationRanking)
	require.ElementsMatch(t, []string{"SPD", "CDU/CSU"}, resp.SolutionFocusRanking)
	require.NotEmpty(t, resp.DivergentNouns)
	require.LessOrEqual(t, len(resp.DivergentNouns), 5)

	rec = postJSON(t, h.HandlePartyComparison, "/analysis/party-comparison", map[string]any{"speeches": speeches})
	require.Equal(t, []string{"SPD", "CDU/CSU", "GRÜNE"}, decodeBody[responses.PartyComparisonResponse](t, rec).PartiesCompared)
}

func TestNLP_PartyComparisonValidation(t *testing.T) {
	h := newNLPHandlers(t, stubTagger{ready: true})
	speeches := []protocol.Speech{{Speaker: "Anna Schmidt", Party: "SPD", Text: taggedText}}

	rec := postJSON(t, h.HandlePartyComparison, "/analysis/party-comparison?top_n=101", map[string]any{"speeches": speeches})
	requireError(t, rec, http.StatusBadRequest, "top_n")

	rec = postJSON(t, h.HandlePartyComparison, "/analysis/party-comparison", map[string]any{"speeches": []protocol.Speech{}})
	requireError(t, rec, http.StatusBadRequest, "No speeches provided")

	rec = postJSON(t, h.HandlePartyComparison, "/analysis/party-comparison?parties=AfD", map[string]any{"speeches": speeches})
	requireError(t, rec, http.StatusBadRequest, "No speeches found")
}
