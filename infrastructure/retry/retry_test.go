package retry_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraerrors "github.com/jonesrussell/north-cloud/company-research/infrastructure/errors"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/retry"
)

func fastConfig() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	var retried []int
	cfg := fastConfig()
	cfg.OnRetry = func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) }

	err := retry.Retry(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return &infraerrors.HTTPError{StatusCode: http.StatusServiceUnavailable}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retry.Retry(context.Background(), fastConfig(), func() error {
		calls++
		return &infraerrors.HTTPError{StatusCode: http.StatusUnauthorized}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.NotErrorIs(t, err, retry.ErrMaxAttemptsExceeded)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	err := retry.Retry(context.Background(), fastConfig(), func() error {
		calls++
		return errors.New("read tcp: i/o timeout")
	})

	require.ErrorIs(t, err, retry.ErrMaxAttemptsExceeded)
	assert.Equal(t, 3, calls)
}

func TestRetry_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry.Retry(ctx, fastConfig(), func() error { calls++; return nil })

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDefaultIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", &infraerrors.HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{"bad gateway", &infraerrors.HTTPError{StatusCode: http.StatusBadGateway}, true},
		{"not found", &infraerrors.HTTPError{StatusCode: http.StatusNotFound}, false},
		{"wrapped 503", infraerrors.WrapWithContext(&infraerrors.HTTPError{StatusCode: 503}, "brave search"), true},
		{"connection refused", errors.New("dial tcp 127.0.0.1:1: connect: Connection Refused"), true},
		{"canceled", context.Canceled, false},
		{"plain", errors.New("invalid character"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, retry.DefaultIsRetryable(tt.err))
		})
	}
}
