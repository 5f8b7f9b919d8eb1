package generator

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy 控制模型调用的重试。默认只调用一次。
type RetryPolicy struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// SingleAttempt is the default policy: one call, no retry.
func SingleAttempt() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1}
}

// Retry runs fn with exponential backoff until it succeeds, returns a
// non-retryable error, or the attempts run out.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	factor := p.BackoffFactor
	if factor < 1 {
		factor = 2.0
	}
	delay := p.InitialDelay

	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts-1 || !retryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * factor)
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return zero, lastErr
}

// retryable 判断错误是否值得再试：取消、超时和 4xx（429 除外）不重试。
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrEmptyTopic) || errors.Is(err, ErrMissingAPIKey) {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) && pe.StatusCode >= 400 && pe.StatusCode < 500 && pe.StatusCode != 429 {
		return false
	}
	return true
}
