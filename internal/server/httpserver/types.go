package httpserver

import (
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/plenar/internal/metrics"
)

// Server names, used as log attribute and metrics label.
const (
	NameNLP     = "nlp"
	NameWrapped = "wrapped"
)

// Options configures wiring shared by both APIs.
type Options struct {
	Logger *slog.Logger

	// Recorder receives per-request observations. Nil disables them.
	Recorder metrics.Recorder

	// MetricsHandler is mounted at GET /metrics when set.
	MetricsHandler http.Handler
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Recorder == nil {
		o.Recorder = metrics.NoopRecorder{}
	}
	return o
}
