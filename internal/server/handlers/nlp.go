package handlers

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/protocol"
	"git.home.luguber.info/inful/plenar/internal/server/responses"
	"git.home.luguber.info/inful/plenar/internal/version"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

const (
	minProtocolRunes = 100
	minTextRunes     = 10

	defaultTopN         = 50
	maxTopN             = 500
	profileTopN         = 20
	defaultCompareTopN  = 20
	maxCompareTopN      = 100
	defaultWahlperiode  = 21
	compareParallelism  = 4
	unknownParty        = "unknown"
	nlpServiceName      = "plenar-nlp"
	textTooShortMessage = "Text too short for analysis"
)

// NLPHandlers serve the stateless analysis endpoints.
type NLPHandlers struct {
	analyzer     *analysis.Analyzer
	detector     *wrapped.GenderDetector
	errorAdapter *ferrors.HTTPErrorAdapter
}

// NewNLPHandlers creates the NLP handlers. detector may be nil, which leaves
// the gender of speaker profiles empty.
func NewNLPHandlers(analyzer *analysis.Analyzer, detector *wrapped.GenderDetector, logger *slog.Logger) *NLPHandlers {
	return &NLPHandlers{
		analyzer:     analyzer,
		detector:     detector,
		errorAdapter: ferrors.NewHTTPErrorAdapter(logger),
	}
}

func (h *NLPHandlers) respond(w http.ResponseWriter, r *http.Request, v any) {
	if err := writeJSONPretty(w, r, http.StatusOK, v); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write response").Build())
	}
}

// HandleRoot describes the service.
func (h *NLPHandlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, responses.ServiceInfo{
		Service: nlpServiceName,
		Version: version.Version,
		Docs:    "/docs",
		Health:  "/health",
	})
}

// HandleHealth reports the tagger state.
func (h *NLPHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	tagger := h.analyzer.Tagger()
	ready := tagger.Ready(r.Context())
	status := "healthy"
	if !ready {
		status = "degraded"
	}
	h.respond(w, r, responses.NLPHealthResponse{Status: status, Tagger: tagger.Name(), TaggerReady: ready})
}

type textRequest struct {
	Text string `json:"text"`
}

func tooShort(text string, minRunes int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < minRunes
}

func shortTextError(message string) error {
	return ferrors.ValidationError(message).WithContext("detail", message).Build()
}

// HandleExtractSpeeches parses a protocol text into speeches.
func (h *NLPHandlers) HandleExtractSpeeches(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if tooShort(req.Text, minProtocolRunes) {
		h.errorAdapter.WriteErrorResponse(w, r, shortTextError("Text too short - expected full protocol text"))
		return
	}

	speeches := protocol.ParseProtocol(req.Text)
	resp := responses.ExtractSpeechesResponse{Success: true, SpeechCount: len(speeches), Speeches: make([]responses.SpeechInfo, len(speeches))}
	for i, s := range speeches {
		resp.Speeches[i] = responses.SpeechInfo{
			Speaker:       s.Speaker,
			Party:         s.Party,
			Text:          s.Text,
			Type:          s.Type,
			Category:      s.Category,
			Words:         s.Words,
			FirstName:     s.FirstName,
			LastName:      s.LastName,
			AcademicTitle: s.AcademicTitle,
			IsGovernment:  s.IsGovernment,
		}
	}
	h.respond(w, r, resp)
}

type analyzeTextRequest struct {
	Text              string `json:"text"`
	IncludeCategories *bool  `json:"include_categories"`
	IncludeTone       *bool  `json:"include_tone"`
	IncludeTopics     *bool  `json:"include_topics"`
	TopN              *int   `json:"top_n"`
}

func enabled(b *bool) bool { return b == nil || *b }

// HandleAnalyzeText returns word statistics and, unless disabled, category
// counts, tone and topic scores.
func (h *NLPHandlers) HandleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	topN := defaultTopN
	if req.TopN != nil {
		topN = *req.TopN
		if topN < 1 || topN > maxTopN {
			h.errorAdapter.WriteErrorResponse(w, r, rangeError("top_n", 1, maxTopN))
			return
		}
	}
	res, err := h.analyzeText(r.Context(), req.Text)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := responses.AnalyzeTextResponse{
		Success:         true,
		TotalWords:      res.TotalWords,
		TotalNouns:      res.TotalNouns,
		TotalAdjectives: res.TotalAdjectives,
		TotalVerbs:      res.TotalVerbs,
		TopNouns:        wordCounts(res, res.TopNouns(topN)),
		TopAdjectives:   wordCounts(res, res.TopAdjectives(topN)),
		TopVerbs:        wordCounts(res, res.TopVerbs(topN)),
	}
	if enabled(req.IncludeCategories) && res.Categories != nil {
		resp.Categories = res.Categories.ToMap()
	}
	if enabled(req.IncludeTone) {
		tone := res.ToneScores()
		resp.ToneScores = &tone
	}
	if enabled(req.IncludeTopics) {
		resp.TopicScores = res.TopicScores()
		resp.TopTopics = res.TopicScores().Top(3)
	}
	h.respond(w, r, resp)
}

// HandleAnalyzeTone returns tone scores only.
func (h *NLPHandlers) HandleAnalyzeTone(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	res, err := h.analyzeText(r.Context(), req.Text)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	h.respond(w, r, responses.AnalyzeToneResponse{Success: true, TotalWords: res.TotalWords, ToneScores: res.ToneScores()})
}

// HandleAnalyzeTopics returns topic scores and the three strongest topics.
func (h *NLPHandlers) HandleAnalyzeTopics(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	res, err := h.analyzeText(r.Context(), req.Text)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	scores := res.TopicScores()
	h.respond(w, r, responses.ClassifyTopicsResponse{
		Success:     true,
		TotalWords:  res.TotalWords,
		TopicScores: scores,
		TopTopics:   scores.Top(3),
	})
}

func (h *NLPHandlers) analyzeText(ctx context.Context, text string) (*analysis.AnalysisResult, error) {
	if tooShort(text, minTextRunes) {
		return nil, shortTextError(textTooShortMessage)
	}
	return h.analyze(ctx, []string{text}, "analysis")
}

func (h *NLPHandlers) analyze(ctx context.Context, texts []string, label string) (*analysis.AnalysisResult, error) {
	res, err := h.analyzer.AnalyzeSpeeches(ctx, texts, label)
	if err != nil {
		if _, ok := ferrors.AsClassified(err); ok {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryAnalysis, "analysis failed").
			WithContext("detail", err.Error()).Build()
	}
	return res, nil
}

type speechesRequest struct {
	Speeches []protocol.Speech `json:"speeches"`
}

// HandleSpeakerProfile summarises the posted speeches of the speaker named
// by the speaker_name query parameter.
func (h *NLPHandlers) HandleSpeakerProfile(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("speaker_name"))
	if name == "" {
		h.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError("missing query parameter").
			WithContext("parameter", "speaker_name").
			WithContext("detail", "speaker_name is required").Build())
		return
	}
	var req speechesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if len(req.Speeches) == 0 {
		msg := "No speeches provided for speaker: " + name
		h.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError(msg).WithContext("detail", msg).Build())
		return
	}

	first := req.Speeches[0]
	resp := responses.SpeakerProfileResponse{
		Success:       true,
		Name:          name,
		FirstName:     first.FirstName,
		LastName:      first.LastName,
		Party:         cmp.Or(first.Party, unknownParty),
		AcademicTitle: first.AcademicTitle,
		TotalSpeeches: len(req.Speeches),
	}
	texts := make([]string, len(req.Speeches))
	for i, s := range req.Speeches {
		texts[i] = s.Text
		switch s.Category {
		case protocol.CategoryRede:
			resp.FormalSpeeches++
		case protocol.CategoryWortbeitrag:
			resp.Wortbeitraege++
		}
		if s.Type == protocol.TypeBefragung || s.Type == protocol.TypeFragestundeAntwort {
			resp.BefragungResponses++
		}
	}
	if h.detector != nil && first.FirstName != "" {
		resp.Gender = string(h.detector.Detect(first.FirstName).Gender)
	}

	res, err := h.analyze(r.Context(), texts, resp.Party)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	resp.TotalWords = res.TotalWords
	resp.AvgWordsPerSpeech = round(float64(res.TotalWords)/float64(len(texts)), 1)
	resp.TopNouns = wordCounts(res, res.TopNouns(profileTopN))
	resp.TopAdjectives = wordCounts(res, res.TopAdjectives(profileTopN))
	resp.TopVerbs = wordCounts(res, res.TopVerbs(profileTopN))
	resp.ToneScores = res.ToneScores()
	resp.TopicScores = res.TopicScores()
	h.respond(w, r, resp)
}

// HandlePartyComparison groups the posted speeches by party and compares
// vocabulary, tone and topics. Query parameters: parties (repeatable or
// comma separated), wahlperiode, top_n.
func (h *NLPHandlers) HandlePartyComparison(w http.ResponseWriter, r *http.Request) {
	wp, err := queryInt(r, "wahlperiode", defaultWahlperiode, 1, 99)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	topN, err := queryInt(r, "top_n", defaultCompareTopN, 1, maxCompareTopN)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	var only []string
	for _, v := range r.URL.Query()["parties"] {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				only = append(only, p)
			}
		}
	}
	var req speechesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if len(req.Speeches) == 0 {
		h.errorAdapter.WriteErrorResponse(w, r, shortTextError("No speeches provided for comparison"))
		return
	}

	var order []string
	byParty := map[string][]protocol.Speech{}
	for _, s := range req.Speeches {
		if s.Party == "" || (len(only) > 0 && !slices.Contains(only, s.Party)) {
			continue
		}
		if _, ok := byParty[s.Party]; !ok {
			order = append(order, s.Party)
		}
		byParty[s.Party] = append(byParty[s.Party], s)
	}
	if len(order) == 0 {
		h.errorAdapter.WriteErrorResponse(w, r, shortTextError("No speeches found for the specified parties"))
		return
	}

	results := make([]*analysis.AnalysisResult, len(order))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(compareParallelism)
	for i, party := range order {
		g.Go(func() error {
			texts := make([]string, len(byParty[party]))
			for j, s := range byParty[party] {
				texts[j] = s.Text
			}
			res, err := h.analyze(ctx, texts, party)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", party, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := responses.PartyComparisonResponse{
		Success:         true,
		Wahlperiode:     wp,
		PartiesCompared: order,
		PartyProfiles:   make([]responses.PartyProfile, len(order)),
	}
	for i, res := range results {
		speeches := byParty[res.Party]
		speakers := map[string]struct{}{}
		for _, s := range speeches {
			if s.Speaker != "" {
				speakers[s.Speaker] = struct{}{}
			}
		}
		resp.PartyProfiles[i] = responses.PartyProfile{
			Party:             res.Party,
			SpeakerCount:      len(speakers),
			SpeechCount:       len(speeches),
			TotalWords:        res.TotalWords,
			AvgWordsPerSpeech: round(float64(res.TotalWords)/float64(len(speeches)), 1),
			TopNouns:          wordCounts(res, res.TopNouns(topN)),
			TopAdjectives:     wordCounts(res, res.TopAdjectives(topN)),
			TopVerbs:          wordCounts(res, res.TopVerbs(topN)),
			ToneScores:        res.ToneScores(),
			TopicScores:       res.TopicScores(),
		}
	}
	resp.AggressionRanking = rankBy(results, func(t analysis.ToneScores) float64 { return t.Aggression })
	resp.CollaborationRanking = rankBy(results, func(t analysis.ToneScores) float64 { return t.Collaboration })
	resp.SolutionFocusRanking = rankBy(results, func(t analysis.ToneScores) float64 { return t.SolutionFocus })
	divergent := analysis.CompareParties(results, topN, analysis.KindNoun)
	resp.DivergentNouns = divergent[:min(topN, len(divergent))]
	h.respond(w, r, resp)
}

// rankBy orders parties by a tone metric, highest first. Ties keep the
// order in which the parties appeared.
func rankBy(results []*analysis.AnalysisResult, metric func(analysis.ToneScores) float64) []string {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b *analysis.AnalysisResult) int {
		return cmp.Compare(metric(b.ToneScores()), metric(a.ToneScores()))
	})
	out := make([]string, len(sorted))
	for i, r := range sorted {
		out[i] = r.Party
	}
	return out
}

func wordCounts(res *analysis.AnalysisResult, entries []protocol.Entry) []responses.WordCount {
	out := make([]responses.WordCount, len(entries))
	for i, e := range entries {
		out[i] = responses.WordCount{Word: e.Key, Count: e.Count, FrequencyPer1000: round(res.Per1000(e.Count), 2)}
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
