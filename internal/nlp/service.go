package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
	"git.home.luguber.info/inful/plenar/internal/metrics"
	"git.home.luguber.info/inful/plenar/internal/retry"
)

const (
	maxServiceResponseBytes = 64 * 1024 * 1024
	healthTimeout           = 3 * time.Second
)

type tagRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

type tagResponse struct {
	Tokens []Token `json:"tokens"`
}

// ServiceTagger calls an external spaCy service:
//
//	POST {url}/tag    {"text": "...", "model": "de_core_news_lg"} -> {"tokens": [...]}
//	GET  {url}/health 2xx when the model is loaded
type ServiceTagger struct {
	baseURL  string
	model    string
	client   *http.Client
	policy   retry.Policy
	recorder metrics.Recorder
}

// ServiceOption customises a ServiceTagger.
type ServiceOption func(*ServiceTagger)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *ServiceTagger) { s.client = c }
}

// WithRetryPolicy sets the retry policy for tag requests.
func WithRetryPolicy(p retry.Policy) ServiceOption {
	return func(s *ServiceTagger) { s.policy = p }
}

// WithRecorder records retries.
func WithRecorder(r metrics.Recorder) ServiceOption {
	return func(s *ServiceTagger) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewServiceTagger returns a tagger for the service at baseURL.
func NewServiceTagger(baseURL, model string, timeout time.Duration, opts ...ServiceOption) *ServiceTagger {
	s := &ServiceTagger{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		model:    model,
		client:   &http.Client{Timeout: timeout},
		policy:   retry.DefaultPolicy(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Tagger.
func (s *ServiceTagger) Name() string { return "spacy:" + s.model }

// Ready implements Tagger.
func (s *ServiceTagger) Ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", http.NoBody)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Tag implements Tagger.
func (s *ServiceTagger) Tag(ctx context.Context, text string) ([]Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	body, err := json.Marshal(tagRequest{Text: text, Model: s.model})
	if err != nil {
		return nil, fmt.Errorf("encode tag request: %w", err)
	}

	var tokens []Token
	err = s.policy.Do(ctx, func(ctx context.Context) error {
		var callErr error
		tokens, callErr = s.tagOnce(ctx, body)
		return callErr
	}, func(attempt int, err error) {
		s.recorder.IncRetry("nlp")
		slog.Warn("NLP service request failed, retrying",
			slog.Int("attempt", attempt),
			logfields.Error(err))
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *ServiceTagger) tagOnce(ctx context.Context, body []byte) ([]Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/tag", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, "NLP service unreachable").
			Retryable().
			WithContext("url", s.baseURL).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		b := ferrors.NLPError(fmt.Sprintf("NLP service returned %d", resp.StatusCode)).
			WithContext("url", s.baseURL).
			WithContext("body", strings.TrimSpace(string(snippet)))
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			b = b.WithRetry(ferrors.RetryNever)
		}
		return nil, b.Build()
	}

	var out tagResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxServiceResponseBytes)).Decode(&out); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNLP, "decode NLP service response").Build()
	}
	return out.Tokens, nil
}
