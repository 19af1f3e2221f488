package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/plenar/internal/config"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/pipeline"
	"git.home.luguber.info/inful/plenar/internal/retry"
)

// PipelineFlags are shared by run and watch.
type PipelineFlags struct {
	DataDir      string   `arg:"" name:"data-dir" help:"Data directory (default from config)" optional:"" type:"path"`
	Wahlperiode  int      `short:"w" help:"Legislative period (default from config)"`
	MaxProtocols int      `short:"m" name:"max-protocols" help:"Maximum number of protocols, 0 for all (default from config)" default:"-1"`
	Parties      []string `short:"p" help:"Parties to analyze (default: all found)" sep:","`
	ResultsDir   string   `short:"r" name:"results-dir" help:"Analyze output directory (default from config)" type:"path"`
	WebDir       string   `short:"o" name:"web-dir" help:"Export directory (default from config)" type:"path"`
	SkipDownload bool     `name:"skip-download" help:"Use the protocols already in the data directory"`
	SkipSpeeches bool     `name:"skip-speeches" help:"Do not write speeches_db.json"`
}

func (f PipelineFlags) plan(cfg *config.Config, server string) *pipeline.Plan {
	return pipeline.NewPlanBuilder(cfg).
		WithDataDir(f.DataDir).
		WithOutput(f.ResultsDir, f.WebDir).
		WithServer(server).
		WithWahlperiode(f.Wahlperiode).
		WithMaxProtocols(f.MaxProtocols).
		WithParties(f.Parties).
		WithSkipDownload(f.SkipDownload).
		WithSkipSpeeches(f.SkipSpeeches).
		Build()
}

// runOnce dials the source unless the plan skips the download and executes
// one pipeline run.
func runOnce(ctx context.Context, g *Global, cfg *config.Config, plan *pipeline.Plan, bus *pipeline.Bus) (*pipeline.Report, error) {
	deps := pipeline.Deps{
		Analyzer: newAnalyzer(ctx, cfg, nil),
		Bus:      bus,
		Logger:   g.Logger,
	}
	if !plan.SkipDownload {
		src, err := g.Dial(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer func() { _ = src.Close() }()
		deps.Source = src
	}
	return pipeline.NewRunner(plan, deps).Run(ctx)
}

// RunCmd implements the 'run' command.
type RunCmd struct {
	PipelineFlags `embed:""`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	bus, closeBus, err := newBus(cfg, g.Logger)
	if err != nil {
		g.Logger.Warn("Export notification disabled", logfields.Error(err))
	} else {
		defer closeBus()
	}

	plan := r.plan(cfg, root.Server)
	report, err := runOnce(ctx, g, cfg, plan, bus)
	if err != nil {
		return err
	}
	printReport(g, plan, report)
	return nil
}

func printReport(g *Global, plan *pipeline.Plan, report *pipeline.Report) {
	if !plan.SkipDownload {
		fmt.Fprintf(g.Out, "Download: %d/%d protocols, %d failed\n",
			report.Download.Downloaded, report.Download.Total, report.Download.Failed)
	}
	fmt.Fprintf(g.Out, "Parse:    %d speeches from %d protocols\n", report.Parse.Speeches, report.Parse.Protocols)
	fmt.Fprintf(g.Out, "Analyze:  %d parties, Wahlperiode %d\n", len(report.Analyze.Results), report.Analyze.Wahlperiode)
	fmt.Fprintf(g.Out, "Export:   %d speaker profiles to %s (run %s)\n",
		report.Export.Speakers.Exported, plan.WebDir, report.Export.RunID)
}

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	PipelineFlags `embed:""`
	Every         time.Duration `name:"every" help:"Interval between runs (default from config)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	interval := orDefault(w.Every, cfg.Schedule.Interval)
	if interval <= 0 {
		return ferrors.ValidationError("watch interval must be positive").
			WithContext("every", interval.String()).UserAction().Build()
	}
	ctx, cancel := g.signalContext()
	defer cancel()

	bus, closeBus, err := newBus(cfg, g.Logger)
	if err != nil {
		g.Logger.Warn("Export notification disabled", logfields.Error(err))
	} else {
		defer closeBus()
	}

	plan := w.plan(cfg, root.Server)
	err = pipeline.Watch(ctx, interval, g.Logger, func(ctx context.Context) error {
		report, err := runOnce(ctx, g, cfg, plan, bus)
		if err != nil {
			return err
		}
		printReport(g, plan, report)
		return nil
	})
	if err != nil {
		return classify(err, ferrors.CategoryRuntime, "watch")
	}
	g.Logger.Info("Watch stopped")
	return nil
}

// newBus subscribes a NATS notifier when notify.nats_url is set. Failed
// deliveries are retried with the source retry policy and parked in a dead
// letter queue that is reported on close. Without a URL both the bus and
// the error are nil.
func newBus(cfg *config.Config, logger *slog.Logger) (*pipeline.Bus, func(), error) {
	if cfg.Notify.NATSURL == "" {
		return nil, func() {}, nil
	}
	n, err := pipeline.ConnectNotifier(cfg.Notify.NATSURL, cfg.Notify.Subject, logger)
	if err != nil {
		return nil, func() {}, err
	}
	dlq := pipeline.NewDeadLetterQueue(pipeline.DefaultDLQCapacity)
	bus := pipeline.NewBus()
	bus.Subscribe(pipeline.EventExportCompleted, pipeline.WithRetry(n.Handle, retry.FromConfig(cfg.Source.Retry), dlq))
	return bus, func() {
		for _, fe := range dlq.Drain() {
			logger.Warn("Export notification undelivered",
				slog.String("event", fe.Event.Name()),
				slog.Time("failed_at", fe.Timestamp),
				logfields.Error(fe.Error))
		}
		if err := n.Close(); err != nil {
			logger.Warn("Closing NATS connection failed", logfields.Error(err))
		}
	}, nil
}
