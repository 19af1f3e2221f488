package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for pipeline stages, protocol downloads
// and HTTP requests.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome string) // success|warning|failed|canceled
	IncProtocolDownload(success bool)
	AddSpeechesParsed(n int)
	IncRetry(stage string)
	ObserveHTTPRequest(server, route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)                 {}
func (NoopRecorder) IncStageResult(string, ResultLabel)                         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                           {}
func (NoopRecorder) IncRunOutcome(string)                                       {}
func (NoopRecorder) IncProtocolDownload(bool)                                   {}
func (NoopRecorder) AddSpeechesParsed(int)                                      {}
func (NoopRecorder) IncRetry(string)                                            {}
func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
