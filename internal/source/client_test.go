package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/config"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/retry"
)

// newMCPTestServer serves a minimal bundestag-mcp on /mcp.
func newMCPTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := server.NewMCPServer("bundestag-mcp", "test", server.WithToolCapabilities(true))

	s.AddTool(mcp.NewTool(ToolSearchProtocols, mcp.WithDescription("search protocols")),
		func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			data, _ := json.Marshal(SearchPage{
				Results:      []ProtocolRef{{ID: 5713, Publisher: PublisherBundestag, Wahlperiode: int(args["wahlperiode"].(float64))}},
				TotalResults: 1,
			})
			return mcp.NewToolResultText(string(data)), nil
		})
	s.AddTool(mcp.NewTool(ToolGetProtocol, mcp.WithDescription("get protocol")),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultError("document not indexed"), nil
		})

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMCPClient_CallTool(t *testing.T) {
	srv := newMCPTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := Dial(ctx, srv.URL+"/", WithTimeout(5*time.Second))
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Close()) }()

	b := NewBundestag(c)
	page, err := b.SearchProtocols(ctx, 21, 10, "")
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalResults)
	require.Equal(t, 21, page.Results[0].Wahlperiode)

	ok, err := b.TestConnection(ctx, 21)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMCPClient_ToolErrorIsNotRetried(t *testing.T) {
	srv := newMCPTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := Dial(ctx, srv.URL,
		WithRetryPolicy(retry.NewPolicy(config.BackoffFixed, time.Millisecond, time.Millisecond, 2)))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, err = c.CallTool(ctx, ToolGetProtocol, map[string]any{"id": 1})
	require.Error(t, err)
	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, ferrors.CategorySource, ce.Category())
	detail, _ := ce.Context().GetString("detail")
	require.Equal(t, "document not indexed", detail)
}

func TestDial_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := Dial(ctx, url)
	require.Error(t, err)
	require.True(t, ferrors.IsRetryable(err))
}
