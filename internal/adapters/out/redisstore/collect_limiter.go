package redisstore

import (
	"context"
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/ports"
)

// ErrTooManyAttempts is ports.ErrTooManyAttempts, re-exported for callers of this package.
var ErrTooManyAttempts = ports.ErrTooManyAttempts

var _ ports.AttemptLimiter = CollectLimiter{}

const (
	DefaultCollectMaxAttempts = 5
	DefaultCollectWindow      = time.Minute
)

// CollectLimiter implements ports.AttemptLimiter on a Redis fixed window.
type CollectLimiter struct {
	client      *Client
	maxAttempts int64
	window      time.Duration
}

func NewCollectLimiter(client *Client, maxAttempts int, window time.Duration) CollectLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultCollectMaxAttempts
	}
	if window <= 0 {
		window = DefaultCollectWindow
	}
	return CollectLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allow records an attempt on orderID and fails with ErrTooManyAttempts past the limit.
func (l CollectLimiter) Allow(ctx context.Context, orderID kernel.UUID) error {
	allowed, _, err := l.client.FixedWindowAllow(ctx, "collect:"+orderID.String(), l.maxAttempts, l.window)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrTooManyAttempts
	}
	return nil
}
