// Package metrics provides observability hooks for the plenar pipeline and HTTP APIs.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default so call sites never need nil checks:
//
//	runner := pipeline.NewRunner(plan, pipeline.Deps{
//		Recorder: metrics.NewPrometheusRecorder(reg), // nil means NoopRecorder{}
//	})
//
// PrometheusRecorder registers its collectors on the given registry and
// HTTPHandler exposes that registry on /metrics.
package metrics
