package serp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Version is reported in the default User-Agent.
const Version = "1.0.0"

// EnvAPIKey is the environment variable consulted when Config.APIKey is
// empty.
const EnvAPIKey = "SERP_API_KEY"

const (
	defaultBaseURL    = "https://serpapi.com"
	defaultTimeout    = 30 * time.Second
	defaultRetryAfter = 60 * time.Second
)

// Doer executes a single HTTP request. Satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	// APIKey authenticates against the API. Falls back to the
	// SERP_API_KEY environment variable when empty.
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a proxy or a mock
	// server. Default https://serpapi.com.
	BaseURL string
	// Timeout applies to each transport attempt. Default 30s.
	Timeout time.Duration
	// UserAgent overrides the User-Agent header.
	UserAgent string
	// Headers are added to every request.
	Headers http.Header
	// Retry overrides the default retry policy.
	Retry *RetryPolicy
	// RateLimit caps outgoing requests per second across all operations
	// sharing this client. Zero disables client-side pacing.
	RateLimit float64
	// HTTPClient overrides the transport.
	HTTPClient Doer
	// Metrics enables prometheus instrumentation when non-nil.
	Metrics *Metrics
}

// Client executes search requests against the API. It is safe for
// concurrent use; independent operations share the pooled transport
// without any external locking.
type Client struct {
	apiKey    string
	baseURL   string
	userAgent string
	headers   http.Header
	retry     RetryPolicy
	limiter   *rate.Limiter
	client    Doer
	logger    *zap.Logger
	metrics   *Metrics
}

// New builds a client from cfg. The credential is resolved from
// cfg.APIKey or the SERP_API_KEY environment variable; without one New
// fails with ErrMissingAPIKey before any network call. A nil logger
// disables logging.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "serp-go/" + Version
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	retry := DefaultRetryPolicy()
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		headers:   cfg.Headers,
		retry:     retry,
		limiter:   limiter,
		client:    httpClient,
		logger:    logger,
		metrics:   cfg.Metrics,
	}, nil
}

// MaskedAPIKey returns a log-safe form of the configured credential.
func (c *Client) MaskedAPIKey() string {
	if len(c.apiKey) > 8 {
		return c.apiKey[:4] + "***" + c.apiKey[len(c.apiKey)-4:]
	}
	return "***"
}

// Search executes one logical search call: it drives transport attempts
// under the retry policy until success, a fatal failure, or budget
// exhaustion. At most MaxRetries+1 transport invocations are made.
// Cancelling ctx aborts any pending wait promptly.
func (c *Client) Search(ctx context.Context, q Query) (*SearchResults, error) {
	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		c.logger.Debug("executing search request",
			zap.Int("attempt", attempt+1),
			zap.String("term", q.Term()),
			zap.Int("offset", q.Offset()),
		)

		start := time.Now()
		results, err := c.do(ctx, q)
		c.metrics.RecordAttempt(statusLabel(err), time.Since(start))

		if err == nil {
			c.logger.Debug("search completed",
				zap.Int("results", results.Count(q.SearchType())),
				zap.Float64("time_taken", results.SearchMetadata.TotalTimeTaken),
			)
			return results, nil
		}

		var rateErr *RateLimitError
		if errors.As(err, &rateErr) {
			c.metrics.RecordRateLimitHit()
		}

		if ctx.Err() != nil {
			// cancelled mid-attempt; never retried
			return nil, err
		}

		delay, ok := c.retry.Next(attempt, err)
		if !ok {
			attempts := attempt + 1
			if Retryable(err) {
				err = &ExhaustedError{Attempts: attempts, Err: err}
			}
			c.logger.Warn("search failed permanently",
				zap.Error(err),
				zap.Int("attempts", attempts),
			)
			return nil, err
		}

		c.logger.Warn("search attempt failed, retrying",
			zap.Error(err),
			zap.Duration("backoff", delay),
			zap.Int("attempt", attempt+1),
		)
		c.metrics.RecordRetry()
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// do performs a single transport attempt and classifies the outcome.
func (c *Client) do(ctx context.Context, q Query) (*SearchResults, error) {
	url := c.baseURL + "/search?" + c.queryString(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for name, values := range c.headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var results SearchResults
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &results, nil
}

func (c *Client) queryString(q Query) string {
	values := q.Values()
	values.Set("engine", "google")
	values.Set("api_key", c.apiKey)
	return values.Encode()
}

// parseRetryAfter handles both delta-seconds and HTTP-date forms of the
// Retry-After header. Absent or unparsable values default to 60s.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
		return 0
	}
	return defaultRetryAfter
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var (
		rateErr   *RateLimitError
		apiErr    *APIError
		decodeErr *DecodeError
	)
	switch {
	case errors.As(err, &rateErr):
		return "rate_limited"
	case errors.As(err, &apiErr):
		return "api_error"
	case errors.As(err, &decodeErr):
		return "decode_error"
	default:
		return "transport_error"
	}
}
