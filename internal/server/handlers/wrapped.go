package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"git.home.luguber.info/inful/plenar/internal/export"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/manifest"
	"git.home.luguber.info/inful/plenar/internal/server/responses"
	"git.home.luguber.info/inful/plenar/internal/server/snapshot"
	"git.home.luguber.info/inful/plenar/internal/version"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

var speakerSorts = []string{snapshot.SortSpeeches, snapshot.SortWords, snapshot.SortAvgWords, snapshot.SortName}

// SnapshotSource yields the export currently served.
type SnapshotSource interface {
	Snapshot() *snapshot.Snapshot
}

// WrappedHandlers serve the read-only export endpoints.
type WrappedHandlers struct {
	source       SnapshotSource
	errorAdapter *ferrors.HTTPErrorAdapter
}

// NewWrappedHandlers creates the Wrapped API handlers.
func NewWrappedHandlers(source SnapshotSource, logger *slog.Logger) *WrappedHandlers {
	return &WrappedHandlers{source: source, errorAdapter: ferrors.NewHTTPErrorAdapter(logger)}
}

func (h *WrappedHandlers) respond(w http.ResponseWriter, r *http.Request, v any) {
	if err := writeJSONPretty(w, r, http.StatusOK, v); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write response").Build())
	}
}

func missingFile(file string) error {
	return ferrors.NotFoundError("export file not available").
		WithContext("file", file).
		WithContext("detail", file+" is not part of the loaded export").Build()
}

func notFound(kind, key string) error {
	return ferrors.NotFoundError(kind+" not found").
		WithContext(kind, key).
		WithContext("detail", "unknown "+kind+": "+key).Build()
}

// HandleHealth reports which export is loaded.
func (h *WrappedHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	resp := responses.WrappedHealthResponse{
		Status:      "healthy",
		Version:     version.Version,
		RunID:       s.RunID(),
		ContentHash: s.ContentHash(),
		LoadedAt:    s.LoadedAt,
		Files:       s.Files(),
	}
	if s.Index != nil {
		resp.Speakers = len(s.Index.Speakers)
	}
	if len(resp.Files) == 0 {
		resp.Status = "empty"
		resp.Files = []string{}
	}
	h.respond(w, r, resp)
}

// HandleManifest returns manifest.json.
func (h *WrappedHandlers) HandleManifest(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	if s.Manifest == nil {
		h.errorAdapter.WriteErrorResponse(w, r, missingFile(manifest.FileName))
		return
	}
	h.respond(w, r, s.Manifest)
}

// HandleWrapped returns wrapped.json as exported.
func (h *WrappedHandlers) HandleWrapped(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	if s.Wrapped == nil {
		h.errorAdapter.WriteErrorResponse(w, r, missingFile(export.WrappedFile))
		return
	}
	writeRaw(w, s.Wrapped)
}

// HandleParties lists the party cards.
func (h *WrappedHandlers) HandleParties(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	if s.Overview == nil {
		h.errorAdapter.WriteErrorResponse(w, r, missingFile(export.WrappedFile))
		return
	}
	parties := s.Overview.Parties
	if parties == nil {
		parties = []wrapped.WebParty{}
	}
	h.respond(w, r, responses.Page[wrapped.WebParty]{
		Success: true,
		Total:   len(parties),
		Limit:   len(parties),
		Data:    parties,
	})
}

// HandleParty returns one party card. The name may be given as slug.
func (h *WrappedHandlers) HandleParty(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	if s.Overview == nil {
		h.errorAdapter.WriteErrorResponse(w, r, missingFile(export.WrappedFile))
		return
	}
	name := r.PathValue("party")
	p, ok := s.Party(name)
	if !ok {
		h.errorAdapter.WriteErrorResponse(w, r, notFound("party", name))
		return
	}
	h.respond(w, r, p)
}

// HandleSpeakers filters, sorts and pages the speaker index.
func (h *WrappedHandlers) HandleSpeakers(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	if s.Index == nil {
		h.errorAdapter.WriteErrorResponse(w, r, missingFile(export.SpeakersDir+"/"+export.IndexFile))
		return
	}
	q := r.URL.Query()
	f := snapshot.SpeakerFilter{
		Party:  q.Get("party"),
		Gender: q.Get("gender"),
		Query:  q.Get("q"),
		Sort:   strings.ToLower(q.Get("sort")),
		Desc:   true,
	}
	if f.Sort == "" {
		f.Sort = snapshot.SortSpeeches
	}
	if !slices.Contains(speakerSorts, f.Sort) {
		h.errorAdapter.WriteErrorResponse(w, r, enumError("sort", speakerSorts))
		return
	}
	switch order := strings.ToLower(q.Get("order")); order {
	case "":
		f.Desc = f.Sort != snapshot.SortName
	case "asc":
		f.Desc = false
	case "desc":
	default:
		h.errorAdapter.WriteErrorResponse(w, r, enumError("order", []string{"asc", "desc"}))
		return
	}
	var err error
	if f.MinSpeeches, err = queryInt(r, "min_speeches", 0, 0, 1_000_000); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if f.Limit, f.Offset, err = pageParams(r); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	total, rows := s.Speakers(f)
	h.respond(w, r, responses.Page[wrapped.SpeakerIndexEntry]{
		Success: true,
		Total:   total,
		Offset:  f.Offset,
		Limit:   f.Limit,
		Data:    rows,
	})
}

// HandleSpeaker returns the exported file of one speaker.
func (h *WrappedHandlers) HandleSpeaker(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	page, ok := h.source.Snapshot().Page(slug)
	if !ok {
		h.errorAdapter.WriteErrorResponse(w, r, notFound("speaker", slug))
		return
	}
	writeRaw(w, page)
}

// HandleSearch searches speaker names and word lists.
func (h *WrappedHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError("missing query parameter").
			WithContext("parameter", "q").
			WithContext("detail", "q is required").Build())
		return
	}
	kind := strings.ToLower(r.URL.Query().Get("type"))
	if kind != "" && kind != snapshot.HitSpeaker && kind != snapshot.HitWord {
		h.errorAdapter.WriteErrorResponse(w, r, enumError("type", []string{snapshot.HitSpeaker, snapshot.HitWord}))
		return
	}
	limit, err := queryInt(r, "limit", defaultListLimit, 1, maxListLimit)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	hits := h.source.Snapshot().Search(query, kind, limit)
	h.respond(w, r, responses.SearchResponse{Success: true, Query: query, Count: len(hits), Results: hits})
}

// HandleInterrupters lists the interjection authors.
func (h *WrappedHandlers) HandleInterrupters(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	if s.Interrupters == nil {
		h.errorAdapter.WriteErrorResponse(w, r, missingFile(export.InterruptersFile))
		return
	}
	limit, err := queryInt(r, "limit", defaultListLimit, 1, maxListLimit)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	rows := s.InterrupterRows(r.URL.Query().Get("party"), limit)
	h.respond(w, r, responses.Page[export.InterrupterRow]{Success: true, Total: len(rows), Limit: limit, Data: rows})
}

// HandleInterrupted lists the most interrupted speakers.
func (h *WrappedHandlers) HandleInterrupted(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	if s.Interrupted == nil {
		h.errorAdapter.WriteErrorResponse(w, r, missingFile(export.InterruptedFile))
		return
	}
	limit, err := queryInt(r, "limit", defaultListLimit, 1, maxListLimit)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	rows := s.InterruptedRows(r.URL.Query().Get("party"), limit)
	h.respond(w, r, responses.Page[export.InterruptedRow]{Success: true, Total: len(rows), Limit: limit, Data: rows})
}

// HandleNeutralInterjections lists neutral remarks.
func (h *WrappedHandlers) HandleNeutralInterjections(w http.ResponseWriter, r *http.Request) {
	s := h.source.Snapshot()
	if s.Neutral == nil {
		h.errorAdapter.WriteErrorResponse(w, r, missingFile(export.NeutralTextsFile))
		return
	}
	limit, err := queryInt(r, "limit", defaultListLimit, 1, maxListLimit)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	q := r.URL.Query()
	rows := s.NeutralRows(q.Get("party"), q.Get("q"), limit)
	h.respond(w, r, responses.Page[export.NeutralText]{Success: true, Total: len(rows), Limit: limit, Data: rows})
}

func pageParams(r *http.Request) (limit, offset int, err error) {
	if limit, err = queryInt(r, "limit", defaultListLimit, 1, maxListLimit); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(r, "offset", 0, 0, 1_000_000); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func enumError(name string, allowed []string) error {
	return ferrors.ValidationError("invalid query parameter").
		WithContext("parameter", name).
		WithContext("detail", name+" must be one of "+strings.Join(allowed, ", ")).Build()
}
