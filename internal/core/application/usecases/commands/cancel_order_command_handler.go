package commands

import (
	"context"
	"time"

	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
)

type CancelOrderCommandHandler struct {
	transitions OrderTransitioner
	machine     services.FulfillmentMachine
}

func NewCancelOrderCommandHandler(
	transitions OrderTransitioner,
	machine services.FulfillmentMachine,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{transitions: transitions, machine: machine}
}

// Handle cancels a non-terminal order on behalf of its stall's operator and revokes
// the pickup token.
//
// Returns:
//   - *order.Order: the CANCELLED order
//   - error: order.ErrInvalidState for a COLLECTED or CANCELLED order, access / not
//     found errors from the ownership check
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return h.transitions.asOperator(ctx, command.Identity(), command.OrderID(), "cancel",
		func(o *order.Order, now time.Time) error {
			return h.machine.Cancel(o, now)
		})
}
