package ports

import (
	"context"
	"errors"

	"hawker/internal/core/domain/model/kernel"
)

// ErrTooManyAttempts is returned once an order used up its pickup code attempts.
var ErrTooManyAttempts = errors.New("too many pickup code attempts")

// AttemptLimiter counts pickup code attempts per order. Allow records one attempt and
// returns ErrTooManyAttempts past the limit; any other error means the counter itself
// is unavailable.
type AttemptLimiter interface {
	Allow(ctx context.Context, orderID kernel.UUID) error
}
