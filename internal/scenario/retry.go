package scenario

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultMaxRetries re-runs a failed scenario twice
const DefaultMaxRetries = 2

// RetryPolicy bounds how often a failed scenario is re-run
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// DefaultRetryPolicy retries twice without delay
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultMaxRetries}
}

// NoRetry runs a scenario exactly once
func NoRetry() RetryPolicy {
	return RetryPolicy{}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(retries))
	return backoff.WithContext(b, ctx)
}
