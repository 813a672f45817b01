package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, cfg: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	retriedInvalid := false

	for attempt := range r.cfg.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &retriedInvalid) || attempt == r.cfg.MaxAttempts-1 {
			break
		}
		if err := r.sleep(ctx, r.backoff(attempt, err)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable classifies err. Schema failures get exactly one retry because a
// second sample often parses; truncation and cancellation never retry.
func retryable(err error, retriedInvalid *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *retriedInvalid {
			return false
		}
		*retriedInvalid = true
		return true
	}

	return true
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1) // ±20%
	return time.Duration(math.Max(wait, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
