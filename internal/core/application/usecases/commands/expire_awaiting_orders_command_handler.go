package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
)

var errNoLongerAwaiting = errors.New("order left AWAITING before it could expire")

type ExpireAwaitingOrdersCommandHandler struct {
	transitions OrderTransitioner
	machine     services.FulfillmentMachine
}

func NewExpireAwaitingOrdersCommandHandler(
	transitions OrderTransitioner,
	machine services.FulfillmentMachine,
) ExpireAwaitingOrdersCommandHandler {
	return ExpireAwaitingOrdersCommandHandler{transitions: transitions, machine: machine}
}

// Handle cancels each stale order in its own transaction and returns how many it
// cancelled. An order accepted meanwhile is skipped; other failures are collected and
// returned together.
func (h ExpireAwaitingOrdersCommandHandler) Handle(ctx context.Context, command ExpireAwaitingOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.transitions.uowFactory.Create().OrderRepository().
		ListAwaitingCreatedBefore(ctx, command.Cutoff(), command.BatchSize())
	if err != nil {
		return 0, err
	}

	expired := 0
	var failures []error
	for _, id := range ids {
		_, err = h.transitions.asSystem(ctx, id, "expire", func(o *order.Order, now time.Time) error {
			if o.Status() != order.Awaiting {
				return errNoLongerAwaiting
			}
			return h.machine.Cancel(o, now)
		})

		switch {
		case err == nil:
			expired++
		case errors.Is(err, errNoLongerAwaiting):
		default:
			failures = append(failures, fmt.Errorf("expire order %s: %w", id, err))
		}
	}

	return expired, errors.Join(failures...)
}
