package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss   = errors.New("cache miss")
	ErrUnavailable = errors.New("cache backend unavailable")
)

// RetryableError marks a transient failure.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or an error it wraps, was marked by
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryDelay is the pause after the first failed attempt. Each further
// pause is twice as long.
var RetryDelay = 200 * time.Millisecond

const retryAttempts = 3

// RetryWithBackoff calls fn until it succeeds, fails permanently or has
// failed retryAttempts times. The last error is returned.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	err := fn()
	for attempt, delay := 1, RetryDelay; attempt < retryAttempts && IsRetryable(err); attempt, delay = attempt+1, delay*2 {
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		err = fn()
	}
	return err
}
