package apiclient

import (
	"context"
	"errors"
	"math"
	"time"

	"kbclient/internal/apierr"
)

// RetryPolicy is an opt-in retry loop, mirroring the teacher's
// middleware_retry.go: retries are never automatic, a caller must
// explicitly pass each operation it wants retried to Do.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy makes up to three attempts in total (at most two
// retries) on transient server/network failures, with exponential
// backoff, the same shape as the teacher's retry middleware.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 200 * time.Millisecond}
}

// Do runs op, retrying on Network or Server errors, for at most
// MaxAttempts calls of op in total (at least one). BadRequest, Auth, NotFound, and Decode errors are never
// retried: retrying a malformed request or a rejected credential cannot
// change the outcome.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}
		delay := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt)))
		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(delay):
		}
	}
	return lastErr
}

func retryable(err error) bool {
	var network *apierr.Network
	var server *apierr.Server
	return errors.As(err, &network) || errors.As(err, &server)
}
