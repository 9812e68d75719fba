package commands

import (
	"context"
	"time"

	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
)

// AcceptOrderResult carries the pickup token plaintext. It is not stored anywhere, so
// the caller must hand it to the customer now.
type AcceptOrderResult struct {
	Order       *order.Order
	PickupToken string
}

// AcceptOrderCommandHandler starts preparation of a paid order and issues its pickup
// token.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(transitions, machine)
//	cmd, _ := NewAcceptOrderCommand(identity, orderID, nil)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("accept order: %w", err)
//	}
//	// result.PickupToken goes to the customer once, result.Order is PREPARING
type AcceptOrderCommandHandler struct {
	transitions OrderTransitioner
	machine     services.FulfillmentMachine
}

func NewAcceptOrderCommandHandler(transitions OrderTransitioner, machine services.FulfillmentMachine) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{transitions: transitions, machine: machine}
}

// Handle accepts the order with the command's estimate override, or the estimate
// derived from the order lines when there is none.
//
// Returns:
//   - AcceptOrderResult: the PREPARING order and the pickup token plaintext
//   - error: order.ErrInvalidState unless the order is AWAITING or when another
//     writer saved it first, order.ErrNotPaid, access / not found errors from the
//     ownership check
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) (AcceptOrderResult, error) {
	if err := command.Validate(); err != nil {
		return AcceptOrderResult{}, err
	}

	var token string
	o, err := h.transitions.asOperator(ctx, command.Identity(), command.OrderID(), "accept",
		func(o *order.Order, now time.Time) error {
			var err error
			token, err = h.machine.Accept(o, command.MinutesOverride(), now)
			return err
		})
	if err != nil {
		return AcceptOrderResult{}, err
	}

	return AcceptOrderResult{Order: o, PickupToken: token}, nil
}
