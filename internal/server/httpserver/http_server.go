package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/server/handlers"
	smw "git.home.luguber.info/inful/plenar/internal/server/middleware"
)

// Server is one HTTP API bound to a single address.
type Server struct {
	name    string
	addr    string
	handler http.Handler
	logger  *slog.Logger

	srv *http.Server
	ln  net.Listener
}

// NewNLPServer wires the NLP API routes.
func NewNLPServer(addr string, h *handlers.NLPHandlers, opts Options) (*Server, error) {
	opts = opts.withDefaults()
	docs, err := handlers.DocsHandler(handlers.DocsNLP, opts.Logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.HandleRoot)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /docs", docs)
	mux.HandleFunc("POST /extract/speeches", h.HandleExtractSpeeches)
	mux.HandleFunc("POST /analyze/text", h.HandleAnalyzeText)
	mux.HandleFunc("POST /analyze/tone", h.HandleAnalyzeTone)
	mux.HandleFunc("POST /analyze/topics", h.HandleAnalyzeTopics)
	mux.HandleFunc("POST /analysis/speaker-profile", h.HandleSpeakerProfile)
	mux.HandleFunc("POST /analysis/party-comparison", h.HandlePartyComparison)
	mountMetrics(mux, opts)

	return newServer(NameNLP, addr, mux, opts), nil
}

// NewWrappedServer wires the read-only Wrapped API routes.
func NewWrappedServer(addr string, h *handlers.WrappedHandlers, opts Options) (*Server, error) {
	opts = opts.withDefaults()
	docs, err := handlers.DocsHandler(handlers.DocsWrapped, opts.Logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /docs", docs)
	mux.HandleFunc("GET /api/manifest", h.HandleManifest)
	mux.HandleFunc("GET /api/wrapped", h.HandleWrapped)
	mux.HandleFunc("GET /api/parties", h.HandleParties)
	// Party names contain slashes ("CDU/CSU").
	mux.HandleFunc("GET /api/parties/{party...}", h.HandleParty)
	mux.HandleFunc("GET /api/speakers", h.HandleSpeakers)
	mux.HandleFunc("GET /api/speakers/{slug}", h.HandleSpeaker)
	mux.HandleFunc("GET /api/search", h.HandleSearch)
	mux.HandleFunc("GET /api/drama/zwischenrufer", h.HandleInterrupters)
	mux.HandleFunc("GET /api/drama/interrupted", h.HandleInterrupted)
	mux.HandleFunc("GET /api/interjections/neutral", h.HandleNeutralInterjections)
	mountMetrics(mux, opts)

	return newServer(NameWrapped, addr, mux, opts), nil
}

func mountMetrics(mux *http.ServeMux, opts Options) {
	if opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", opts.MetricsHandler)
	}
}

func newServer(name, addr string, mux *http.ServeMux, opts Options) *Server {
	adapter := ferrors.NewHTTPErrorAdapter(opts.Logger)
	chain := smw.Chain(name, opts.Logger, adapter, opts.Recorder)
	return &Server{
		name:    name,
		addr:    addr,
		handler: chain(mux),
		logger:  opts.Logger,
	}
}

// Name returns the server name.
func (s *Server) Name() string { return s.name }

// Handler returns the routed handler including middleware.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Start binds every server before serving any of them so that an address
// conflict fails fast instead of leaving some APIs half started.
func Start(ctx context.Context, servers ...*Server) error {
	var bindErrs []error
	lc := net.ListenConfig{}
	for _, s := range servers {
		ln, err := lc.Listen(ctx, "tcp", s.addr)
		if err != nil {
			bindErrs = append(bindErrs, fmt.Errorf("%s %s: %w", s.name, s.addr, err))
			continue
		}
		s.ln = ln
	}
	if len(bindErrs) > 0 {
		for _, s := range servers {
			if s.ln != nil {
				_ = s.ln.Close()
				s.ln = nil
			}
		}
		return ferrors.WrapError(errors.Join(bindErrs...), ferrors.CategoryRuntime, "http startup failed").
			UserAction().Build()
	}

	for _, s := range servers {
		s.serve()
	}
	return nil
}

// serve launches the http.Server on the pre-bound listener.
func (s *Server) serve() {
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.logger.Info("HTTP server started", slog.String("server", s.name), slog.String("addr", s.Addr()))
	go func() {
		if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(fmt.Sprintf("%s server error", s.name), logfields.Error(err))
		}
	}()
}

// Stop gracefully shuts the servers down in reverse order.
func Stop(ctx context.Context, servers ...*Server) error {
	var errs []error
	for i := len(servers) - 1; i >= 0; i-- {
		s := servers[i]
		if s.srv == nil {
			continue
		}
		if err := s.srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s server shutdown: %w", s.name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}
	slog.Info("HTTP servers stopped")
	return nil
}
