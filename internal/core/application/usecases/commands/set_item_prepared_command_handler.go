package commands

import (
	"context"
	"time"

	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
)

// SetItemPreparedCommandHandler flips one order line's prepared flag while the order is
// being prepared.
//
// Example:
//
//	handler := NewSetItemPreparedCommandHandler(transitions, machine)
//	cmd, _ := NewSetItemPreparedCommand(identity, orderID, itemID, true)
//
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	// o.Items() carries the updated line
type SetItemPreparedCommandHandler struct {
	transitions OrderTransitioner
	machine     services.FulfillmentMachine
}

func NewSetItemPreparedCommandHandler(
	transitions OrderTransitioner,
	machine services.FulfillmentMachine,
) SetItemPreparedCommandHandler {
	return SetItemPreparedCommandHandler{transitions: transitions, machine: machine}
}

// Handle sets the flag and saves the order. Setting a flag to its current value still
// succeeds.
//
// Returns:
//   - *order.Order: the saved order, including the updated item
//   - error: order.ErrInvalidState unless the order is PREPARING, a not found error
//     for an unknown item, access / not found errors from the ownership check
func (h SetItemPreparedCommandHandler) Handle(ctx context.Context, command SetItemPreparedCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return h.transitions.asOperator(ctx, command.Identity(), command.OrderID(), "set_item_prepared",
		func(o *order.Order, _ time.Time) error {
			return h.machine.SetItemPrepared(o, command.ItemID(), command.Prepared())
		})
}
