package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"git.home.luguber.info/inful/plenar/internal/config"
	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/retry"
	"git.home.luguber.info/inful/plenar/internal/version"
)

// ToolCaller invokes MCP tools and returns the text content of the result.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, args map[string]any) ([]byte, error)
	Close() error
}

// clientName identifies this tool to the MCP server.
const clientName = "plenar"

// MCPClient is a ToolCaller over the MCP streamable HTTP transport.
type MCPClient struct {
	c        *client.Client
	endpoint string
	timeout  time.Duration
	policy   retry.Policy
	recorder metrics.Recorder
}

// Option customises an MCPClient.
type Option func(*MCPClient)

// WithTimeout bounds every tool call.
func WithTimeout(d time.Duration) Option {
	return func(m *MCPClient) { m.timeout = d }
}

// WithRetryPolicy sets the retry policy for tool calls.
func WithRetryPolicy(p retry.Policy) Option {
	return func(m *MCPClient) { m.policy = p }
}

// WithRecorder records retries.
func WithRecorder(r metrics.Recorder) Option {
	return func(m *MCPClient) {
		if r != nil {
			m.recorder = r
		}
	}
}

// Endpoint returns the MCP endpoint of a server base URL.
func Endpoint(serverURL string) string {
	return strings.TrimSuffix(serverURL, "/") + "/mcp"
}

// Dial connects to the MCP server at serverURL and initialises a session.
func Dial(ctx context.Context, serverURL string, opts ...Option) (*MCPClient, error) {
	m := &MCPClient{
		endpoint: Endpoint(serverURL),
		timeout:  120 * time.Second,
		policy:   retry.NewPolicy(config.BackoffExponential, time.Second, 4*time.Second, 2),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}

	c, err := client.NewStreamableHttpClient(m.endpoint)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySource, "create MCP client").
			WithContext("endpoint", m.endpoint).
			Build()
	}
	if err := c.Start(ctx); err != nil {
		_ = c.Close()
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "start MCP transport").
			Retryable().
			WithContext("endpoint", m.endpoint).
			Build()
	}

	init := mcp.InitializeRequest{}
	init.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	init.Params.ClientInfo = mcp.Implementation{Name: clientName, Version: version.Version}
	if _, err := c.Initialize(ctx, init); err != nil {
		_ = c.Close()
		return nil, ferrors.WrapError(err, ferrors.CategorySource, "initialize MCP session").
			Retryable().
			WithContext("endpoint", m.endpoint).
			Build()
	}
	m.c = c
	slog.Debug("MCP session initialized", slog.String("endpoint", m.endpoint))
	return m, nil
}

// CallTool implements ToolCaller. Transport failures are retried; tool
// errors reported by the server are not.
func (m *MCPClient) CallTool(ctx context.Context, name string, args map[string]any) ([]byte, error) {
	var out []byte
	err := m.policy.Do(ctx, func(ctx context.Context) error {
		var callErr error
		out, callErr = m.callOnce(ctx, name, args)
		return callErr
	}, func(attempt int, err error) {
		m.recorder.IncRetry("source")
		slog.Warn("MCP tool call failed, retrying",
			slog.String("tool", name),
			slog.Int("attempt", attempt),
			logfields.Error(err))
	})
	return out, err
}

func (m *MCPClient) callOnce(ctx context.Context, name string, args map[string]any) ([]byte, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := m.c.CallTool(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "MCP tool call failed").
			Retryable().
			WithContext("tool", name).
			Build()
	}

	text := firstText(res)
	if res.IsError {
		return nil, ferrors.SourceError("MCP tool returned an error").
			WithRetry(ferrors.RetryNever).
			WithContext("tool", name).
			WithContext("detail", text).
			Build()
	}
	if text == "" {
		return nil, ferrors.SourceError(fmt.Sprintf("MCP tool %s returned no text content", name)).
			WithRetry(ferrors.RetryNever).
			Build()
	}
	return []byte(text), nil
}

func firstText(res *mcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			return tc.Text
		}
	}
	return ""
}

// Close implements ToolCaller.
func (m *MCPClient) Close() error {
	if m.c == nil {
		return nil
	}
	return m.c.Close()
}
