package httpserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/nlp"
	"git.home.luguber.info/inful/plenar/internal/server/handlers"
	"git.home.luguber.info/inful/plenar/internal/server/snapshot"
)

func newServers(t *testing.T, addr string, opts Options) (*Server, *Server) {
	t.Helper()
	nlpSrv, err := NewNLPServer(addr, handlers.NewNLPHandlers(analysis.NewAnalyzer(nlp.NewLexiconTagger(nil), nil), nil, nil), opts)
	require.NoError(t, err)

	store, err := snapshot.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	wrappedSrv, err := NewWrappedServer(addr, handlers.NewWrappedHandlers(store, nil), opts)
	require.NoError(t, err)
	return nlpSrv, wrappedSrv
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func TestRoutes(t *testing.T) {
	reg := metrics.NewRegistry()
	nlpSrv, wrappedSrv := newServers(t, "127.0.0.1:0", Options{
		Recorder:       metrics.NewPrometheusRecorder(reg),
		MetricsHandler: metrics.HTTPHandler(reg),
	})

	require.Equal(t, http.StatusOK, serve(t, nlpSrv.Handler(), http.MethodGet, "/", "").Code)
	require.Equal(t, http.StatusOK, serve(t, nlpSrv.Handler(), http.MethodGet, "/docs", "").Code)
	require.Equal(t, http.StatusNotFound, serve(t, nlpSrv.Handler(), http.MethodGet, "/unknown", "").Code)
	require.Equal(t, http.StatusMethodNotAllowed, serve(t, nlpSrv.Handler(), http.MethodGet, "/analyze/text", "").Code)
	rec := serve(t, nlpSrv.Handler(), http.MethodPost, "/analyze/tone",
		`{"text":"Wir müssen die Rente sichern und die Wirtschaft stärken."}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, http.StatusOK, serve(t, wrappedSrv.Handler(), http.MethodGet, "/health", "").Code)
	require.Equal(t, http.StatusNotFound, serve(t, wrappedSrv.Handler(), http.MethodGet, "/api/parties/CDU/CSU", "").Code)
	require.Equal(t, http.StatusNotFound, serve(t, wrappedSrv.Handler(), http.MethodGet, "/", "").Code)

	rec = serve(t, wrappedSrv.Handler(), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `route="POST /analyze/tone"`)
	require.Contains(t, rec.Body.String(), `server="wrapped"`)
}

func TestRoutes_NoMetricsHandler(t *testing.T) {
	nlpSrv, _ := newServers(t, "127.0.0.1:0", Options{})
	require.Equal(t, http.StatusNotFound, serve(t, nlpSrv.Handler(), http.MethodGet, "/metrics", "").Code)
}

func TestStartStop(t *testing.T) {
	nlpSrv, wrappedSrv := newServers(t, "127.0.0.1:0", Options{})
	ctx := context.Background()
	require.NoError(t, Start(ctx, nlpSrv, wrappedSrv))
	defer func() {
		stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		require.NoError(t, Stop(stopCtx, nlpSrv, wrappedSrv))
	}()

	require.NotEqual(t, "127.0.0.1:0", nlpSrv.Addr())
	resp, err := http.Get("http://" + nlpSrv.Addr() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStart_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	nlpSrv, wrappedSrv := newServers(t, "127.0.0.1:0", Options{})
	wrappedSrv.addr = ln.Addr().String()
	err = Start(context.Background(), nlpSrv, wrappedSrv)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryRuntime))
	require.Contains(t, err.Error(), "wrapped")
	// The listener that did bind is released again.
	require.Nil(t, nlpSrv.ln)
	require.NoError(t, Stop(context.Background(), nlpSrv, wrappedSrv))
}
