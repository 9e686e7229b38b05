// Package httpengine provides the default template.HTTPEngine: a
// net/http client rate-limited with golang.org/x/time/rate and
// wrapped in the retry package's exponential backoff.
package httpengine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/slumberhq/slumber/internal/retry"
	"github.com/slumberhq/slumber/pkg/template"
)

// Config configures an Engine.
type Config struct {
	// HTTPClient is the underlying client. If nil, a client with
	// sensible connection-pooling defaults is used.
	HTTPClient *http.Client

	// RequestsPerSecond bounds outgoing request rate. Zero disables
	// rate limiting.
	RequestsPerSecond float64
	Burst             int

	// Retry configures retry behavior for transport-level failures and
	// 5xx responses. A MaxRetries of zero uses retry.DefaultConfig. Its
	// ShouldRetry is always replaced by the engine's own check.
	Retry retry.Config
}

// Engine is the default template.HTTPEngine implementation.
type Engine struct {
	client  *http.Client
	limiter *rate.Limiter
	retry   retry.Config
}

// New returns an Engine built from cfg.
func New(cfg Config) *Engine {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	retryCfg := cfg.Retry
	if retryCfg.MaxRetries == 0 {
		retryCfg = retry.DefaultConfig()
	}
	retryCfg.ShouldRetry = isRetryableStatus

	return &Engine{client: client, limiter: limiter, retry: retryCfg}
}

// Send implements template.HTTPEngine. Timeouts are left entirely to
// the configured http.Client and the caller's context; this layer
// adds only rate limiting and retries.
func (e *Engine) Send(ctx context.Context, req template.BuiltRequest) (template.Response, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return template.Response{}, fmt.Errorf("httpengine: rate limiter: %w", err)
		}
	}

	var resp template.Response
	err := retry.Do(ctx, e.retry, func(ctx context.Context) error {
		r, err := e.do(ctx, req)
		if err != nil {
			return err
		}
		resp = r
		if isRetryableStatus(statusError(r.StatusCode)) {
			return statusError(r.StatusCode)
		}
		return nil
	})
	if err != nil && resp.StatusCode == 0 {
		return template.Response{}, err
	}
	return resp, nil
}

func (e *Engine) do(ctx context.Context, req template.BuiltRequest) (template.Response, error) {
	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return template.Response{}, fmt.Errorf("httpengine: building request: %w", err)
	}
	for name, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return template.Response{}, fmt.Errorf("httpengine: sending request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return template.Response{}, fmt.Errorf("httpengine: reading response body: %w", err)
	}

	return template.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    map[string][]string(httpResp.Header),
		Body:       body,
	}, nil
}

// statusError makes a 5xx status code retryable through retry.Config's
// ShouldRetry hook without having to thread the whole response back.
type statusError int

func (s statusError) Error() string { return fmt.Sprintf("server returned status %d", int(s)) }

func isRetryableStatus(err error) bool {
	var s statusError
	if se, ok := err.(statusError); ok {
		s = se
		return int(s) >= 500
	}
	return retry.IsRetryable(err)
}
