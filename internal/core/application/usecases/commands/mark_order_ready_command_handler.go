package commands

import (
	"context"
	"time"

	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
)

// MarkOrderReadyCommandHandler moves a fully prepared order to READY.
type MarkOrderReadyCommandHandler struct {
	transitions OrderTransitioner
	machine     services.FulfillmentMachine
}

func NewMarkOrderReadyCommandHandler(
	transitions OrderTransitioner,
	machine services.FulfillmentMachine,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{transitions: transitions, machine: machine}
}

// Handle marks the order ready and stamps readyAt.
//
// Returns:
//   - *order.Order: the READY order
//   - error: order.ErrInvalidState unless the order is PREPARING,
//     order.ErrItemsIncomplete while a line is still unprepared, access / not found
//     errors from the ownership check
func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, command MarkOrderReadyCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return h.transitions.asOperator(ctx, command.Identity(), command.OrderID(), "mark_ready",
		func(o *order.Order, now time.Time) error {
			return h.machine.MarkReady(o, now)
		})
}
