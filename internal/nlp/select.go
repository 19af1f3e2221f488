package nlp

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/plenar/internal/config"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/retry"
)

// New picks a tagger according to the configured mode. In auto mode the
// service is used when its health check succeeds and the lexicon tagger
// otherwise.
func New(ctx context.Context, cfg config.NLPConfig, policy retry.Policy, recorder metrics.Recorder) Tagger {
	if cfg.Mode == config.NLPModeLexicon {
		return NewLexiconTagger(nil)
	}
	svc := NewServiceTagger(cfg.ServiceURL, cfg.Model, cfg.Timeout,
		WithRetryPolicy(policy), WithRecorder(recorder))
	if cfg.Mode == config.NLPModeService {
		return svc
	}
	if svc.Ready(ctx) {
		slog.Info("Using NLP service", slog.String("url", cfg.ServiceURL), slog.String("model", cfg.Model))
		return svc
	}
	slog.Warn("NLP service not reachable, falling back to lexicon tagger",
		slog.String("url", cfg.ServiceURL))
	return NewLexiconTagger(nil)
}
