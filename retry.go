package serp

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy controls how the client retries transient failures.
// The policy is a pure decision value: it computes delays but never
// sleeps; the client owns the actual wait.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps every computed delay, including rate limit hints.
	MaxDelay time.Duration
	// Multiplier grows the delay between consecutive retries (>1).
	Multiplier float64
	// Jitter perturbs each delay by up to ±20% to avoid synchronized
	// retry storms across concurrent callers.
	Jitter bool
}

// DefaultRetryPolicy returns the standard policy: 3 retries, 100ms base
// delay, 10s cap, doubling backoff, no jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
	}
}

// Backoff computes the delay before retry number attempt (0-based):
// min(MaxDelay, BaseDelay * Multiplier^attempt), optionally jittered.
// The result never exceeds MaxDelay.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt))
	if limit := float64(p.MaxDelay); d > limit {
		d = limit
	}
	delay := time.Duration(d)
	if p.Jitter {
		delay += time.Duration((rand.Float64()*0.4 - 0.2) * float64(delay))
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
		if delay < 0 {
			delay = 0
		}
	}
	return delay
}

// Retryable reports whether err may be worth another attempt at all.
// Transport failures and rate limits are transient; API errors only in
// the 5xx range. Everything else is fatal regardless of budget.
func Retryable(err error) bool {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return false
}

// Next decides whether retry attempt (0-based) may proceed and with
// what delay. It returns false when the budget is exhausted or the
// failure is fatal. A rate limit hint overrides the computed backoff,
// clamped to MaxDelay.
func (p RetryPolicy) Next(attempt int, err error) (time.Duration, bool) {
	if attempt >= p.MaxRetries || !Retryable(err) {
		return 0, false
	}

	var rateErr *RateLimitError
	if errors.As(err, &rateErr) && rateErr.RetryAfter > 0 {
		d := rateErr.RetryAfter
		if p.MaxDelay > 0 && d > p.MaxDelay {
			d = p.MaxDelay
		}
		return d, true
	}

	return p.Backoff(attempt), true
}
