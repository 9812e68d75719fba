package ports

import (
	"context"

	"hawker/internal/core/domain/model/order"
)

// EventPublisher ships fulfillment events to other services. It is called after the
// transaction commits, so a failure never undoes a transition.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
