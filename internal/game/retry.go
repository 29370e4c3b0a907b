package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/kevinzwang/randy/internal/session"
	"golang.org/x/time/rate"
)

// ErrNoContent is returned when every allowed attempt produced an empty reply.
var ErrNoContent = errors.New("model kept returning empty replies")

// Responder produces the themed reaction to a round outcome.
type Responder interface {
	Respond(ctx context.Context, model, outcome string) (string, error)
}

// RetryPolicy controls how often an empty reply is re-requested. Empty replies
// are not errors; the same request is simply sent again.
type RetryPolicy struct {
	// MaxAttempts caps the number of requests. Zero means no cap.
	MaxAttempts int
	// Limiter paces the attempts. Nil means no pacing.
	Limiter *rate.Limiter
}

// DefaultRetryPolicy retries forever without pacing.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Limiter: rate.NewLimiter(rate.Inf, 1)}
}

// NewRetryPolicy builds a policy from config values. A non-positive rate
// disables pacing.
func NewRetryPolicy(maxAttempts int, perSecond float64) RetryPolicy {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return RetryPolicy{MaxAttempts: maxAttempts, Limiter: rate.NewLimiter(limit, 1)}
}

// Reply asks r for a reaction to outcome until it returns non-empty text.
// Transport and decode errors are returned as is and end the retry loop. It
// also returns the number of requests made.
func (p RetryPolicy) Reply(ctx context.Context, r Responder, model string, outcome session.Outcome) (string, int, error) {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", attempts, err
		}
		if p.MaxAttempts > 0 && attempts >= p.MaxAttempts {
			return "", attempts, fmt.Errorf("%w after %d attempts", ErrNoContent, attempts)
		}
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return "", attempts, err
			}
		}

		attempts++
		text, err := r.Respond(ctx, model, outcome.String())
		if err != nil {
			return "", attempts, err
		}
		if text != "" {
			return text, attempts, nil
		}
	}
}
