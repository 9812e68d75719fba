// Package ports declares what the fulfillment core needs from the outside world:
// order persistence, a transaction boundary and an event sink.
package ports

import (
	"context"
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their items.
type OrderRepository interface {
	// Add inserts a new order and its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate back if the stored version still equals
	// aggregate.Version(); otherwise it fails with errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking it. A missing order is errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads an order and holds its row lock until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListAwaitingCreatedBefore returns up to limit ids of AWAITING orders placed before
	// cutoff, oldest first.
	ListAwaitingCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]kernel.UUID, error)
}
