package commands

import (
	"context"
	"errors"
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
	"hawker/internal/core/ports"
)

// CollectOrderCommandHandler hands a READY order over to the customer who presents its
// pickup code.
type CollectOrderCommandHandler struct {
	transitions OrderTransitioner
	machine     services.FulfillmentMachine
	limiter     ports.AttemptLimiter
}

// NewCollectOrderCommandHandler builds the handler. limiter may be nil, in which case
// attempts are not counted.
func NewCollectOrderCommandHandler(
	transitions OrderTransitioner,
	machine services.FulfillmentMachine,
	limiter ports.AttemptLimiter,
) CollectOrderCommandHandler {
	return CollectOrderCommandHandler{transitions: transitions, machine: machine, limiter: limiter}
}

// Handle verifies the presented token and moves the order to COLLECTED.
//
// An attempt is counted only once the caller is known to own the order, so an operator
// of another stall cannot use up the real operator's attempts.
//
// Returns:
//   - the collected order on success
//   - ports.ErrTooManyAttempts when the order's attempt window is used up
//   - order.ErrInvalidState unless the order is READY
//   - services.ErrTokenMissing, services.ErrTokenAlreadyUsed or services.ErrTokenMismatch
//     from verification
//   - access / not found errors from the ownership check
func (h CollectOrderCommandHandler) Handle(ctx context.Context, command CollectOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return h.transitions.asOperator(ctx, command.Identity(), command.OrderID(), "collect",
		func(o *order.Order, now time.Time) error {
			if err := h.countAttempt(ctx, o.ID()); err != nil {
				return err
			}
			return h.machine.Collect(o, command.Token(), now)
		})
}

// countAttempt fails open when the limiter itself is unavailable.
func (h CollectOrderCommandHandler) countAttempt(ctx context.Context, orderID kernel.UUID) error {
	if h.limiter == nil {
		return nil
	}
	err := h.limiter.Allow(ctx, orderID)
	if err == nil || errors.Is(err, ports.ErrTooManyAttempts) {
		return err
	}
	h.transitions.log.Warn(h.transitions.log.WithOrderID(ctx, orderID.String()), "collect limiter unavailable", err)
	return nil
}
