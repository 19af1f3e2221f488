package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/metrics"
)

// StageName identifies a pipeline stage.
type StageName string

const (
	StageDownload StageName = "download"
	StageParse    StageName = "parse"
	StageAnalyze  StageName = "analyze"
	StageExport   StageName = "export"
)

// ErrSkipStage is returned by a stage that had nothing to do. The pipeline
// records the stage as skipped and continues.
var ErrSkipStage = errors.New("stage skipped")

// Stage is one named step of a run.
type Stage struct {
	Name StageName
	Run  func(ctx context.Context) error
}

// StageExecution is the outcome of one stage.
type StageExecution struct {
	Err      error
	Skipped  bool
	Duration time.Duration
}

// IsSuccess reports whether the stage completed or was skipped.
func (s StageExecution) IsSuccess() bool { return s.Err == nil }

// Pipeline runs stages in order.
type Pipeline struct {
	stages      []Stage
	logger      *slog.Logger
	recorder    metrics.Recorder
	stopOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithStopOnError configures whether the pipeline stops on the first error.
func WithStopOnError(stop bool) Option {
	return func(p *Pipeline) { p.stopOnError = stop }
}

// New creates a pipeline over stages. It stops on the first error unless
// configured otherwise.
func New(stages []Stage, options ...Option) *Pipeline {
	p := &Pipeline{stages: stages, stopOnError: true}
	for _, opt := range options {
		opt(p)
	}
	p.logger, p.recorder = defaults(p.logger, p.recorder)
	return p
}

// ExecutionResult contains the results of a pipeline execution.
type ExecutionResult struct {
	Order    []StageName
	Stages   map[StageName]StageExecution
	Canceled bool
}

// IsSuccess returns true if every executed stage succeeded.
func (r *ExecutionResult) IsSuccess() bool {
	if r.Canceled {
		return false
	}
	for _, s := range r.Stages {
		if !s.IsSuccess() {
			return false
		}
	}
	return true
}

// FailedStages returns the failed stages in execution order.
func (r *ExecutionResult) FailedStages() []StageName {
	var out []StageName
	for _, name := range r.Order {
		if !r.Stages[name].IsSuccess() {
			out = append(out, name)
		}
	}
	return out
}

// Execute runs every stage in order. The returned error is the first stage
// failure, or the context error when the run was canceled.
func (p *Pipeline) Execute(ctx context.Context) (*ExecutionResult, error) {
	result := &ExecutionResult{Stages: make(map[StageName]StageExecution, len(p.stages))}
	var firstErr error

	p.logger.Info("Executing pipeline", slog.Int("stages", len(p.stages)))
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			result.Canceled = true
			p.recorder.IncStageResult(string(stage.Name), metrics.ResultCanceled)
			return result, err
		}

		start := time.Now()
		err := stage.Run(ctx)
		exec := StageExecution{Duration: time.Since(start)}
		result.Order = append(result.Order, stage.Name)
		p.recorder.ObserveStageDuration(string(stage.Name), exec.Duration)

		switch {
		case errors.Is(err, ErrSkipStage):
			exec.Skipped = true
			p.recorder.IncStageResult(string(stage.Name), metrics.ResultSuccess)
			p.logger.Info("Stage skipped", logfields.Stage(string(stage.Name)))
		case err != nil && ctx.Err() != nil:
			exec.Err = err
			result.Stages[stage.Name] = exec
			result.Canceled = true
			p.recorder.IncStageResult(string(stage.Name), metrics.ResultCanceled)
			return result, err
		case err != nil:
			exec.Err = err
			p.recorder.IncStageResult(string(stage.Name), metrics.ResultFatal)
			p.logger.Error("Stage failed", logfields.Stage(string(stage.Name)), logfields.Error(err))
		default:
			p.recorder.IncStageResult(string(stage.Name), metrics.ResultSuccess)
			p.logger.Info("Stage completed",
				logfields.Stage(string(stage.Name)),
				logfields.DurationMS(float64(exec.Duration.Milliseconds())))
		}
		result.Stages[stage.Name] = exec

		if exec.Err != nil {
			if firstErr == nil {
				firstErr = exec.Err
			}
			if p.stopOnError {
				return result, exec.Err
			}
		}
	}
	return result, firstErr
}
