// Package retry implements a bounded retry loop with exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/docsieve/docsieve/internal/logger"
)

// Policy parameterizes the retry loop.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Factor       float64 // backoff multiplier applied after each failed attempt
}

// DefaultPolicy matches the remote extraction contract: three attempts,
// 500ms initial delay, doubling, no jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		Factor:       2,
	}
}

// SleepFunc suspends between attempts. It must return early with the
// context error when ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures Do.
type Option func(*options)

type options struct {
	sleep SleepFunc
}

// WithSleep replaces the sleeper, letting tests simulate elapsed time.
func WithSleep(s SleepFunc) Option {
	return func(o *options) {
		o.sleep = s
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as non-retryable: Do stops immediately and returns it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs op until it succeeds, a permanent error occurs, the context is
// cancelled, or the attempt budget is spent. The error from the final
// attempt is returned unmodified.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error, opts ...Option) error {
	o := options{sleep: sleepContext}
	for _, opt := range opts {
		opt(&o)
	}

	delay := p.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			logger.Debug("retry aborted on permanent error", "attempt", attempt, "error", perm.err)
			return perm.err
		}

		lastErr = err
		if attempt == p.MaxAttempts {
			break
		}

		logger.Debug("retrying after failure",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", delay,
			"error", err)

		if err := o.sleep(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * p.Factor)
	}

	return lastErr
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
