package services

import (
	"context"
	"log"
	"time"
)

// SleepFunc blocks for the given duration or until the context is done. It is
// injectable so tests can record the backoff schedule instead of waiting.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy wraps a generation call with a bounded, rate-limit-aware retry
// loop: rate-limited failures wait backoffBase*attempt (30s, 60s with the
// default config) and retry up to maxAttempts; any other failure escalates
// immediately.
type RetryPolicy struct {
	maxAttempts int
	backoffBase time.Duration
	sleep       SleepFunc
}

func NewRetryPolicy(maxAttempts int, backoffBase time.Duration) *RetryPolicy {
	return NewRetryPolicyWithSleep(maxAttempts, backoffBase, sleepContext)
}

func NewRetryPolicyWithSleep(maxAttempts int, backoffBase time.Duration, sleep SleepFunc) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryPolicy{
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		sleep:       sleep,
	}
}

// Execute runs fn until it succeeds, a non-rate-limit error occurs, or the
// attempt budget is spent. There is no sleep after the final failed attempt.
func (p *RetryPolicy) Execute(ctx context.Context, fn func() (string, error)) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRateLimited(err) {
			return "", &AnalysisError{Kind: KindUpstreamFailure, Err: err}
		}

		if attempt < p.maxAttempts {
			wait := time.Duration(attempt) * p.backoffBase
			log.Printf("⏳ Rate limited, waiting %s before retry (attempt %d/%d)\n", wait, attempt, p.maxAttempts)
			if err := p.sleep(ctx, wait); err != nil {
				return "", &AnalysisError{Kind: KindUpstreamFailure, Err: err}
			}
		}
	}

	return "", &AnalysisError{Kind: KindQuotaExhausted, Err: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
