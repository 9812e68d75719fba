package commands

import (
	"errors"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

type CancelOrderCommand struct {
	identity access.Identity
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(identity access.Identity, orderID kernel.UUID) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{identity: identity, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Identity() access.Identity { return c.identity }
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}
