package commands

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/plenar/internal/config"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/server/handlers"
	"git.home.luguber.info/inful/plenar/internal/server/httpserver"
	"git.home.luguber.info/inful/plenar/internal/server/snapshot"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

const (
	shutdownTimeout = 30 * time.Second
	reloadDebounce  = 500 * time.Millisecond
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Listen string `short:"l" help:"Listen address host:port (default from config, 0.0.0.0:8000)"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	reg := metrics.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	analyzer := newAnalyzer(ctx, cfg, recorder)
	detector, err := newDetector(cfg, g.Logger)
	if err != nil {
		return err
	}

	srv, err := httpserver.NewNLPServer(
		orDefault(s.Listen, cfg.Servers.NLP.Addr()),
		handlers.NewNLPHandlers(analyzer, detector, g.Logger),
		httpserver.Options{Logger: g.Logger, Recorder: recorder, MetricsHandler: metrics.HTTPHandler(reg)},
	)
	if err != nil {
		return classify(err, ferrors.CategoryInternal, "create NLP server")
	}
	g.Logger.Info("Starting NLP API", slog.String("tagger", analyzer.Tagger().Name()))
	return serveUntilDone(ctx, g.Logger, srv)
}

func newDetector(cfg *config.Config, logger *slog.Logger) (*wrapped.GenderDetector, error) {
	opts := []wrapped.DetectorOption{wrapped.WithDetectorLogger(logger)}
	if cfg.Data.GenderMapping != "" {
		m, err := wrapped.LoadCustomMappings(cfg.Data.GenderMapping)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "load gender mapping").
				WithContext("file", cfg.Data.GenderMapping).UserAction().Build()
		}
		opts = append(opts, wrapped.WithCustomMappings(m))
	}
	d, err := wrapped.NewGenderDetector(opts...)
	if err != nil {
		return nil, classify(err, ferrors.CategoryInternal, "create gender detector")
	}
	return d, nil
}

// ServeWrappedCmd implements the 'serve-wrapped' command.
type ServeWrappedCmd struct {
	Dir     string `short:"d" help:"Export directory to serve (default from config)" type:"path"`
	Listen  string `short:"l" help:"Listen address host:port (default from config, 0.0.0.0:8001)"`
	NoWatch bool   `name:"no-watch" help:"Do not reload when the export directory changes"`
}

func (s *ServeWrappedCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	dir := orDefault(s.Dir, cfg.Data.WebDir)
	if !dirExists(dir) {
		return ferrors.NotFoundError("export directory not found, run export-all first").
			WithContext("dir", dir).UserAction().Build()
	}
	store, err := snapshot.NewStore(dir, g.Logger)
	if err != nil {
		return classify(err, ferrors.CategoryExport, "load export")
	}
	if !s.NoWatch {
		w, err := snapshot.NewWatcher(store, reloadDebounce, g.Logger)
		if err != nil {
			return classify(err, ferrors.CategoryRuntime, "watch export directory")
		}
		if err := w.Start(ctx); err != nil {
			return classify(err, ferrors.CategoryRuntime, "watch export directory")
		}
		defer func() { _ = w.Stop() }()
	}

	reg := metrics.NewRegistry()
	srv, err := httpserver.NewWrappedServer(
		orDefault(s.Listen, cfg.Servers.Wrapped.Addr()),
		handlers.NewWrappedHandlers(store, g.Logger),
		httpserver.Options{
			Logger:         g.Logger,
			Recorder:       metrics.NewPrometheusRecorder(reg),
			MetricsHandler: metrics.HTTPHandler(reg),
		},
	)
	if err != nil {
		return classify(err, ferrors.CategoryInternal, "create Wrapped server")
	}
	return serveUntilDone(ctx, g.Logger, srv)
}

// serveUntilDone starts the servers and shuts them down gracefully once
// ctx is done.
func serveUntilDone(ctx context.Context, logger *slog.Logger, servers ...*httpserver.Server) error {
	if err := httpserver.Start(ctx, servers...); err != nil {
		return err
	}
	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping servers...")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpserver.Stop(stopCtx, servers...); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "stop servers").Build()
	}
	return nil
}
