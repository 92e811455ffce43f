package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// RetryPolicy wraps network-crossing store calls in a bounded retry with
// exponential backoff. Exhausting the attempts surfaces the underlying
// transport error rather than retrying indefinitely.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy returns the policy applied to every backend call.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// Do runs fn, retrying transient failures up to MaxAttempts with exponential
// backoff. Non-transient failures and context cancellation return immediately.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	delay := p.BaseDelay
	var err error
	for attempt := 1; ; attempt++ {
		err = fn(ctx)
		if err == nil || !retryable(err) {
			return err
		}
		if attempt >= p.MaxAttempts {
			break
		}

		log.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("Transient store error, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
	return fmt.Errorf("%s: retries exhausted: %w", op, err)
}

// retryable reports whether an error is worth another attempt. Absence and
// cancellation are final; everything else coming back from the backend is
// treated as a transient transport condition.
func retryable(err error) bool {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
