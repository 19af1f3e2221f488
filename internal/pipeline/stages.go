package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/datastore"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/protocol"
	"git.home.luguber.info/inful/plenar/internal/source"
)

// DefaultDownloadWorkers bounds concurrent protocol downloads.
const DefaultDownloadWorkers = 4

// ProtocolSource lists and fetches Plenarprotokolle. *source.Bundestag
// implements it.
type ProtocolSource interface {
	ProtocolIDs(ctx context.Context, wahlperiode, maxProtocols int) ([]source.ProtocolRef, error)
	GetProtocol(ctx context.Context, id source.ID) (*source.Protocol, error)
}

// DownloadOptions configure a download.
type DownloadOptions struct {
	Wahlperiode  int
	MaxProtocols int
	Server       string // recorded in a fresh state
	Workers      int
	Logger       *slog.Logger
	Recorder     metrics.Recorder
}

// DownloadResult summarises a download.
type DownloadResult struct {
	Resumed     bool
	Wahlperiode int
	Total       int
	Attempted   int
	Downloaded  int
	Failed      int
}

// Download fetches every pending protocol into store. An existing state is
// resumed with its own Wahlperiode; otherwise the protocol list is fetched
// first. Failed protocols are recorded and stay pending for the next run.
func Download(ctx context.Context, store *datastore.Store, src ProtocolSource, opts DownloadOptions) (DownloadResult, error) {
	logger, recorder := defaults(opts.Logger, opts.Recorder)
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultDownloadWorkers
	}

	var res DownloadResult
	st, err := store.LoadState()
	switch {
	case err == nil:
		res.Resumed = true
		logger.Info("Resuming download",
			logfields.File(store.Dir()),
			slog.Int("wahlperiode", st.Wahlperiode),
			slog.Int("downloaded", len(st.Downloaded)))
	case errors.Is(err, datastore.ErrNoState):
		refs, err := src.ProtocolIDs(ctx, opts.Wahlperiode, opts.MaxProtocols)
		if err != nil {
			return res, ferrors.WrapError(err, ferrors.CategorySource, "list protocols").
				WithContext("wahlperiode", opts.Wahlperiode).Build()
		}
		ids := make([]int, 0, len(refs))
		for _, r := range refs {
			ids = append(ids, int(r.ID))
		}
		logger.Info("Found protocols", logfields.Count(len(ids)), slog.Int("wahlperiode", opts.Wahlperiode))
		if st, err = store.InitState(opts.Wahlperiode, opts.Server, ids); err != nil {
			return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write download state").Build()
		}
	default:
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read download state").Build()
	}

	res.Wahlperiode = st.Wahlperiode
	res.Total = len(st.ProtocolIDs)
	pending := st.Pending()
	res.Attempted = len(pending)
	if len(pending) == 0 {
		logger.Info("Download already complete", logfields.Count(len(st.Downloaded)))
		res.Downloaded = len(st.Downloaded)
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := src.GetProtocol(gctx, source.ID(id))
			if err == nil && p == nil {
				err = fmt.Errorf("protocol %d not found", id)
			}
			if err == nil {
				err = store.SaveProtocol(p)
			}
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				recorder.IncProtocolDownload(false)
				logger.Warn("Protocol download failed", logfields.ProtocolID(strconv.Itoa(id)), logfields.Error(err))
				return store.MarkFailed(st, id)
			}
			recorder.IncProtocolDownload(true)
			logger.Debug("Downloaded protocol", logfields.ProtocolID(strconv.Itoa(id)))
			return store.MarkDownloaded(st, id)
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	res.Downloaded = len(st.Downloaded)
	res.Failed = len(st.Failed)
	logger.Info("Download finished",
		slog.Int("downloaded", res.Downloaded),
		slog.Int("failed", res.Failed))
	return res, nil
}

// ParseResult summarises a parse.
type ParseResult struct {
	Protocols int
	Speeches  int
	ByParty   map[string]int
}

// Parse extracts the speeches of every downloaded protocol and writes
// speeches.json grouped by party. Protocols without text are skipped.
func Parse(ctx context.Context, store *datastore.Store, logger *slog.Logger, recorder metrics.Recorder) (ParseResult, error) {
	logger, recorder = defaults(logger, recorder)
	st, err := store.LoadState()
	if errors.Is(err, datastore.ErrNoState) {
		return ParseResult{}, ferrors.ValidationError("no download state found, run download first").
			WithContext("data_dir", store.Dir()).UserAction().Build()
	}
	if err != nil {
		return ParseResult{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read download state").Build()
	}
	if len(st.Downloaded) == 0 {
		return ParseResult{}, ferrors.ValidationError("no protocols downloaded yet").
			WithContext("data_dir", store.Dir()).UserAction().Build()
	}

	ids := slices.Clone(st.Downloaded)
	slices.Sort(ids)
	res := ParseResult{ByParty: map[string]int{}}
	byParty := map[string][]datastore.SpeechRecord{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p, err := store.LoadProtocol(id)
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Downloaded protocol missing on disk", logfields.ProtocolID(strconv.Itoa(id)))
			continue
		}
		if err != nil {
			return res, ferrors.WrapError(err, ferrors.CategoryParse, "load protocol").
				WithContext("protocol_id", id).Build()
		}
		if p.FullText == "" {
			continue
		}
		speeches := protocol.ParseProtocol(p.FullText)
		for party, list := range protocol.GroupByParty(speeches) {
			for _, s := range list {
				byParty[party] = append(byParty[party], datastore.SpeechRecord{
					Speech:         s,
					ProtocolID:     id,
					DocumentNumber: p.DocumentNumber,
					Date:           p.Date,
				})
			}
		}
		res.Protocols++
		res.Speeches += len(speeches)
		logger.Debug("Parsed protocol", logfields.ProtocolID(strconv.Itoa(id)), logfields.Count(len(speeches)))
	}

	if err := store.SaveSpeeches(byParty); err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write speeches").
			WithContext("file", store.SpeechesPath()).Build()
	}
	st.Parsed = true
	if err := store.SaveState(st); err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write download state").Build()
	}
	for p, list := range byParty {
		res.ByParty[p] = len(list)
	}
	recorder.AddSpeechesParsed(res.Speeches)
	logger.Info("Parsing complete",
		logfields.Count(res.Speeches),
		slog.Int("protocols", res.Protocols),
		slog.Int("parties", len(byParty)))
	return res, nil
}

// AnalyzeOptions configure an analysis.
type AnalyzeOptions struct {
	Parties     []string // empty: all parties found
	Wahlperiode int      // used when the data directory has no state
	Logger      *slog.Logger
}

// AnalyzeResult carries the per-party results in the order of
// AnalyzeOptions.Parties, or the display order of protocol.Parties.
type AnalyzeResult struct {
	Wahlperiode int
	Results     []*analysis.AnalysisResult
}

// Analyze runs the word analysis over the formal speeches (rede) of each
// party in speeches.json.
func Analyze(ctx context.Context, store *datastore.Store, analyzer *analysis.Analyzer, opts AnalyzeOptions) (AnalyzeResult, error) {
	logger, _ := defaults(opts.Logger, nil)
	byParty, err := store.LoadSpeeches()
	if errors.Is(err, os.ErrNotExist) {
		return AnalyzeResult{}, ferrors.ValidationError("no speeches.json found, run parse first").
			WithContext("data_dir", store.Dir()).UserAction().Build()
	}
	if err != nil {
		return AnalyzeResult{}, ferrors.WrapError(err, ferrors.CategoryAnalysis, "load speeches").Build()
	}

	res := AnalyzeResult{Wahlperiode: opts.Wahlperiode}
	if st, err := store.LoadState(); err == nil && st.Wahlperiode != 0 {
		res.Wahlperiode = st.Wahlperiode
	}

	parties := protocol.PartyOrder(slices.Collect(maps.Keys(byParty)), opts.Parties)
	if len(parties) == 0 {
		return res, ferrors.NotFoundError("no speeches found for the selected parties").
			WithContext("parties", opts.Parties).Build()
	}

	for _, party := range parties {
		var texts []string
		for _, s := range byParty[party] {
			if s.Type == protocol.TypeRede {
				texts = append(texts, s.Text)
			}
		}
		r, err := analyzer.AnalyzeSpeeches(ctx, texts, party)
		if err != nil {
			if _, ok := ferrors.AsClassified(err); ok {
				return res, err
			}
			return res, ferrors.WrapError(err, ferrors.CategoryAnalysis, "analyze speeches").
				WithContext("party", party).Build()
		}
		res.Results = append(res.Results, r)
		logger.Info("Analyzed party",
			logfields.Party(party),
			logfields.Count(len(texts)),
			slog.Int("nouns", r.TotalNouns),
			slog.Int("adjectives", r.TotalAdjectives),
			slog.Int("verbs", r.TotalVerbs))
	}
	return res, nil
}

func defaults(logger *slog.Logger, recorder metrics.Recorder) (*slog.Logger, metrics.Recorder) {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return logger, recorder
}
