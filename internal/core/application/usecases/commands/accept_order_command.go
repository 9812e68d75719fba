package commands

import (
	"errors"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand starts preparation of a paid order. MinutesOverride, when positive,
// replaces the computed estimate.
type AcceptOrderCommand struct {
	identity        access.Identity
	orderID         kernel.UUID
	minutesOverride *int

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(identity access.Identity, orderID kernel.UUID, minutesOverride *int) (AcceptOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		identity:        identity,
		orderID:         orderID,
		minutesOverride: minutesOverride,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Identity() access.Identity { return c.identity }
func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c AcceptOrderCommand) MinutesOverride() *int { return c.minutesOverride }

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}
