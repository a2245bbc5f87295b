package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a remote backend that could not be reached.
	ErrNetwork = errors.New("network error")

	// ErrCorrupt marks a stored entry that could not be decoded.
	ErrCorrupt = errors.New("corrupt cache entry")
)

// transient marks an error worth another attempt.
type transient struct{ err error }

func (t transient) Error() string { return t.err.Error() }
func (t transient) Unwrap() error { return t.err }

// Retryable marks err as transient so that [Backoff.Do] tries again.
// Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return transient{err}
}

// IsRetryable reports whether err, or an error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var t transient
	return errors.As(err, &t)
}

// Backoff retries an operation while it fails with a transient error,
// doubling the pause after each attempt up to Max.
type Backoff struct {
	Attempts int           // total calls, including the first
	Delay    time.Duration // pause after the first failure
	Max      time.Duration // upper bound on a single pause; zero means none
}

// DefaultBackoff makes three attempts with 200ms then 400ms between them.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 200 * time.Millisecond, Max: 2 * time.Second}

// Do calls fn until it succeeds, returns an error not marked with
// [Retryable], or runs out of attempts. It returns the last error, or the
// context's error when ctx ends during a pause.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	return err
}

// RetryWithBackoff runs fn under [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
