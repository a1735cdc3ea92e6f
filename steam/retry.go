package steam

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds the retry loop around one fetch: a fixed interval
// between attempts and a wall-clock budget measured from the first attempt.
type RetryPolicy struct {
	Interval time.Duration
	Budget   time.Duration
}

// DefaultRetryPolicy is the reference fetch policy: retry every second for
// up to ten seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Interval: 1 * time.Second,
		Budget:   10 * time.Second,
	}
}

// backOff builds a constant-interval backoff that stops once the budget has
// elapsed, so the last attempt's error surfaces to the caller.
func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Interval
	b.MaxInterval = p.Interval
	b.Multiplier = 1
	b.RandomizationFactor = 0
	b.MaxElapsedTime = p.Budget
	return b
}

// StatusError reports a request that kept failing until the retry budget
// expired, carrying the last response's status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed after retry budget: status code %d", e.StatusCode)
}
