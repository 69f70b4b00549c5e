package courtlistener

import (
	"errors"
	"time"

	"caselaw/internal/caselawerr"
)

// RetryPolicy decides whether and when a failed upstream request is
// reissued. The default policy never retries: rate-limit and transient
// failures are surfaced to the caller, who owns retry semantics. The
// hook exists so backoff can be added without touching the tool
// boundary.
type RetryPolicy interface {
	// Attempts is the total number of tries, including the first.
	Attempts() int
	// Backoff returns the delay before the given attempt (1-based).
	Backoff(attempt int) time.Duration
	// ShouldRetry reports whether the error is worth another try.
	ShouldRetry(err error) bool
}

// NoRetry performs exactly one attempt.
type NoRetry struct{}

// Attempts implements RetryPolicy.
func (NoRetry) Attempts() int { return 1 }

// Backoff implements RetryPolicy.
func (NoRetry) Backoff(int) time.Duration { return 0 }

// ShouldRetry implements RetryPolicy.
func (NoRetry) ShouldRetry(error) bool { return false }

// FixedBackoff retries transient upstream failures a fixed number of
// times with a constant delay. Invalid input and not-found errors are
// never retried.
type FixedBackoff struct {
	MaxAttempts int
	Delay       time.Duration
}

// Attempts implements RetryPolicy.
func (f FixedBackoff) Attempts() int {
	if f.MaxAttempts < 1 {
		return 1
	}
	return f.MaxAttempts
}

// Backoff implements RetryPolicy.
func (f FixedBackoff) Backoff(int) time.Duration { return f.Delay }

// ShouldRetry implements RetryPolicy.
func (f FixedBackoff) ShouldRetry(err error) bool {
	var coded *caselawerr.Error
	if errors.As(err, &coded) {
		return coded.Code == caselawerr.UpstreamFailure
	}
	return false
}
