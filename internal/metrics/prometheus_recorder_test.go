package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("parse", 150*time.Millisecond)
	pr.IncStageResult("parse", ResultSuccess)
	pr.ObserveRunDuration(2 * time.Second)
	pr.IncRunOutcome("success")
	pr.IncProtocolDownload(true)
	pr.IncProtocolDownload(false)
	pr.IncProtocolDownload(false)
	pr.AddSpeechesParsed(42)
	pr.IncRetry("download")
	pr.ObserveHTTPRequest("nlp", "/health", 200, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	require.InDelta(t, 2, testutil.ToFloat64(pr.downloads.WithLabelValues("failed")), 0)
	require.InDelta(t, 42, testutil.ToFloat64(pr.speechesParsed), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.httpRequests.WithLabelValues("nlp", "/health", "200")), 0)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveStageDuration("x", time.Second)
		pr.IncRunOutcome("failed")
		pr.ObserveHTTPRequest("wrapped", "/", 500, time.Second)
	})
}

func TestHTTPHandler_ServesRegistry(t *testing.T) {
	reg := NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncRunOutcome("success")

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "plenar_run_outcomes_total")
	require.Contains(t, string(body), "go_goroutines")
}
