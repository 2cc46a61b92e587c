// Package retry wraps avast/retry-go behind a small interface so services can
// take a Retry as a dependency and tests can swap it out.
//
// Exponential backoff is always used. Attempts, delays, and error reporting
// are configurable through functional options:
//
//	r := retry.New(
//	    retry.WithAttempts(5),
//	    retry.WithDelay(500*time.Millisecond),
//	)
//	err := r.Execute(ctx, func() error {
//	    return syncHistory(ctx, script)
//	})
package retry

import (
	"context"
	"time"

	"github.com/gabapcia/addresswatch/internal/pkg/logger"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes an operation until it succeeds, the attempts run out, or the
// context is done.
type Retry interface {
	// Execute runs operation with the configured retry policy. The operation
	// should be idempotent. Errors wrapped with Unrecoverable stop retrying
	// immediately.
	Execute(ctx context.Context, operation func() error) error
}

type config struct {
	attempts    uint          // maximum number of attempts, including the first
	delay       time.Duration // base delay between attempts
	maxDelay    time.Duration // cap on the backoff delay
	lastErrOnly bool          // return only the last error instead of all of them
	name        string        // operation name used in retry log lines
}

// Option configures the retry mechanism.
type Option func(*config)

type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a Retry configured with the provided options.
//
// Defaults: 3 attempts, 1s base delay, 5s max delay, last error only.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
		name:        "operation",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn(ctx, "retrying after failure",
				"retry.operation", r.cfg.name,
				"retry.attempt", attempt+1,
				"error", err,
			)
		}),
	}

	return retry.Do(operation, options...)
}

// Unrecoverable marks err so that Execute returns it without further attempts.
func Unrecoverable(err error) error {
	return retry.Unrecoverable(err)
}

// WithAttempts sets the maximum number of attempts (including the initial attempt).
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between retry attempts.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential growth of the delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly sets whether to return only the last error.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// WithName labels the operation in retry log lines.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
