package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/datastore"
	"git.home.luguber.info/inful/plenar/internal/export"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// Run outcomes recorded by the run counter.
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

// Deps are the collaborators of a Runner.
type Deps struct {
	Source   ProtocolSource // may be nil when the plan skips the download
	Analyzer *analysis.Analyzer
	Bus      *Bus // optional; receives ExportCompleted
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

// Report collects the stage results of a run.
type Report struct {
	Download  DownloadResult
	Parse     ParseResult
	Analyze   AnalyzeResult
	Export    export.Summary
	Execution *ExecutionResult
}

// Runner executes download, parse, analyze and export for a Plan.
type Runner struct {
	plan *Plan
	deps Deps
}

// NewRunner creates a runner.
func NewRunner(plan *Plan, deps Deps) *Runner {
	deps.Logger, deps.Recorder = defaults(deps.Logger, deps.Recorder)
	return &Runner{plan: plan, deps: deps}
}

// Run executes one full run. A failing notification does not fail the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	store, err := datastore.Open(r.plan.DataDir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "open data directory").
			WithContext("dir", r.plan.DataDir).Build()
	}

	report := &Report{}
	stages := []Stage{
		{Name: StageDownload, Run: func(ctx context.Context) error {
			if r.plan.SkipDownload || r.deps.Source == nil {
				return ErrSkipStage
			}
			var err error
			report.Download, err = Download(ctx, store, r.deps.Source, DownloadOptions{
				Wahlperiode:  r.plan.Wahlperiode,
				MaxProtocols: r.plan.MaxProtocols,
				Server:       r.plan.Server,
				Logger:       r.deps.Logger,
				Recorder:     r.deps.Recorder,
			})
			return err
		}},
		{Name: StageParse, Run: func(ctx context.Context) error {
			var err error
			report.Parse, err = Parse(ctx, store, r.deps.Logger, r.deps.Recorder)
			return err
		}},
		{Name: StageAnalyze, Run: func(ctx context.Context) error {
			var err error
			report.Analyze, err = Analyze(ctx, store, r.deps.Analyzer, AnalyzeOptions{
				Parties:     r.plan.Parties,
				Wahlperiode: r.plan.Wahlperiode,
				Logger:      r.deps.Logger,
			})
			return err
		}},
		{Name: StageExport, Run: func(ctx context.Context) error {
			var err error
			report.Export, err = r.export(ctx, report.Analyze)
			return err
		}},
	}

	p := New(stages, WithLogger(r.deps.Logger), WithRecorder(r.deps.Recorder))
	exec, runErr := p.Execute(ctx)
	report.Execution = exec
	r.deps.Recorder.ObserveRunDuration(time.Since(start))

	switch {
	case runErr == nil:
		r.deps.Recorder.IncRunOutcome(OutcomeSuccess)
	case exec != nil && exec.Canceled, errors.Is(runErr, context.Canceled):
		r.deps.Recorder.IncRunOutcome(OutcomeCanceled)
		return report, runErr
	default:
		r.deps.Recorder.IncRunOutcome(OutcomeFailed)
		return report, runErr
	}

	r.deps.Logger.Info("Run complete",
		logfields.RunID(report.Export.RunID),
		slog.Int("downloaded", report.Download.Downloaded),
		slog.Int("speeches", report.Parse.Speeches),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	if r.deps.Bus != nil {
		ev := ExportCompleted{
			RunID:       report.Export.RunID,
			ContentHash: report.Export.ContentHash,
			Dir:         r.plan.WebDir,
			Speakers:    report.Export.Speakers.Exported,
			Wahlperiode: report.Analyze.Wahlperiode,
			GeneratedAt: time.Now().UTC(),
		}
		if report.Export.Manifest != nil {
			ev.Files = len(report.Export.Manifest.Files)
		}
		if err := r.deps.Bus.Publish(ctx, ev); err != nil {
			r.deps.Logger.Warn("Export notification failed", logfields.Error(err))
		}
	}
	return report, nil
}

// export writes the raw results and then the web exports computed from them.
func (r *Runner) export(ctx context.Context, analyzed AnalyzeResult) (export.Summary, error) {
	opts := export.Options{Logger: r.deps.Logger, Recorder: r.deps.Recorder}
	raw, err := export.New(r.plan.ResultsDir, opts)
	if err != nil {
		return export.Summary{}, err
	}
	if err := raw.Raw(export.RawInput{Results: analyzed.Results, Wahlperiode: analyzed.Wahlperiode}); err != nil {
		return export.Summary{}, err
	}
	if _, err := raw.Finish(); err != nil {
		return export.Summary{}, err
	}

	d, err := wrapped.Load(wrapped.LoadOptions{
		DataDir:       r.plan.DataDir,
		ResultsDir:    r.plan.ResultsDir,
		Logger:        r.deps.Logger,
		GenderMapping: r.plan.GenderMapping,
		UnknownNames:  r.plan.UnknownNames,
	})
	if err != nil {
		return export.Summary{}, ferrors.WrapError(err, ferrors.CategoryExport, "load wrapped data").Build()
	}
	web, err := export.New(r.plan.WebDir, opts)
	if err != nil {
		return export.Summary{}, err
	}
	return web.All(ctx, d, r.plan.SkipSpeeches)
}
