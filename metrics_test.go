package serp

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	// a client without metrics must not panic
	m.RecordAttempt("ok", time.Second)
	m.RecordRetry()
	m.RecordRateLimitHit()
	m.RecordPage()
}

func TestMetrics_RecordsSearchOutcomes(t *testing.T) {
	transport := httpmock.NewMockTransport()

	calls := 0
	transport.RegisterResponder("GET", searchURL, func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			resp := httpmock.NewStringResponse(http.StatusTooManyRequests, "rate limited")
			resp.Header.Set("Retry-After", "0")
			resp.Request = req
			return resp, nil
		}
		return httpmock.NewJsonResponse(http.StatusOK, organicPage(1, 0))
	})

	metrics := NewMetrics(prometheus.NewRegistry())
	retry := fastRetry(2)

	client, err := New(Config{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: transport},
		Retry:      &retry,
		Metrics:    metrics,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, err := client.Search(context.Background(), mustBuild(t, NewQuery("test"))); err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if got := testutil.ToFloat64(metrics.AttemptsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("attempts{ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.AttemptsTotal.WithLabelValues("rate_limited")); got != 1 {
		t.Errorf("attempts{rate_limited} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.RetriesTotal); got != 1 {
		t.Errorf("retries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.RateLimitHitsTotal); got != 1 {
		t.Errorf("rate limit hits = %v, want 1", got)
	}
}

func TestMetrics_RecordsStreamedPages(t *testing.T) {
	transport := httpmock.NewMockTransport()
	var offsets []int
	transport.RegisterResponder("GET", searchURL,
		pagedResponder(t, &offsets, 5, 5, 5))

	metrics := NewMetrics(prometheus.NewRegistry())
	retry := fastRetry(0)

	client, err := New(Config{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: transport},
		Retry:      &retry,
		Metrics:    metrics,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	stream, err := client.Stream(mustBuild(t, NewQuery("test")), StreamConfig{PageSize: 5, MaxPages: 3})
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}
	for stream.Next(context.Background()) {
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	if got := testutil.ToFloat64(metrics.PagesStreamedTotal); got != 3 {
		t.Errorf("pages streamed = %v, want 3", got)
	}
}
