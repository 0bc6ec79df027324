package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrBackend reports that a Redis or MongoDB backend failed or could not
	// be reached.
	ErrBackend = errors.New("cache backend unavailable")

	// ErrInvalidURL reports a cache target that does not parse.
	ErrInvalidURL = errors.New("invalid cache url")
)

// RetryableError marks a backend failure worth another attempt, such as a
// dropped connection or a server-side timeout.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const retryAttempts = 3

// retryDelay is the wait before the second attempt; it doubles after that.
var retryDelay = 100 * time.Millisecond

// RetryWithBackoff runs fn until it succeeds, returns an error not marked
// [Retryable], or has been tried three times. It returns ctx.Err() if ctx
// ends while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	err := fn()
	for attempt, delay := 1, retryDelay; attempt < retryAttempts && IsRetryable(err); attempt, delay = attempt+1, delay*2 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		err = fn()
	}
	return err
}
