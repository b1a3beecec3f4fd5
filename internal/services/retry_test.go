package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	sleeps []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.sleeps = append(r.sleeps, d)
	return nil
}

func TestRetryPolicySuccessFirstAttempt(t *testing.T) {
	recorder := &sleepRecorder{}
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, recorder.sleep)

	calls := 0
	result, err := policy.Execute(context.Background(), func() (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
	assert.Empty(t, recorder.sleeps)
}

func TestRetryPolicyRateLimitSchedule(t *testing.T) {
	recorder := &sleepRecorder{}
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, recorder.sleep)

	calls := 0
	_, err := policy.Execute(context.Background(), func() (string, error) {
		calls++
		return "", errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")
	})

	require.Error(t, err)
	assert.Equal(t, KindQuotaExhausted, KindOf(err))
	assert.Equal(t, 3, calls)
	// Linear backoff, no sleep after the final failed attempt.
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second}, recorder.sleeps)
}

func TestRetryPolicyNonRateLimitEscalatesImmediately(t *testing.T) {
	recorder := &sleepRecorder{}
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, recorder.sleep)

	calls := 0
	_, err := policy.Execute(context.Background(), func() (string, error) {
		calls++
		return "", errors.New("connection reset by peer")
	})

	require.Error(t, err)
	assert.Equal(t, KindUpstreamFailure, KindOf(err))
	assert.Equal(t, 1, calls)
	assert.Empty(t, recorder.sleeps)
}

func TestRetryPolicyRecoversAfterRateLimit(t *testing.T) {
	recorder := &sleepRecorder{}
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, recorder.sleep)

	calls := 0
	result, err := policy.Execute(context.Background(), func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("429 too many requests")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []time.Duration{30 * time.Second}, recorder.sleeps)
}

func TestRetryPolicyContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := NewRetryPolicy(3, time.Millisecond)

	calls := 0
	_, err := policy.Execute(ctx, func() (string, error) {
		calls++
		return "", errors.New("429 too many requests")
	})

	require.Error(t, err)
	assert.Equal(t, KindUpstreamFailure, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 429", errors.New("googleapi: Error 429: rate limit"), true},
		{"resource exhausted", errors.New("rpc error: code = ResourceExhausted desc = RESOURCE_EXHAUSTED"), true},
		{"quota message", errors.New("Quota exceeded for model"), true},
		{"server error", errors.New("500 internal server error"), false},
		{"network error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}
