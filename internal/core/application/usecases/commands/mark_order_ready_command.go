package commands

import (
	"errors"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/guard"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

type MarkOrderReadyCommand struct {
	identity access.Identity
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkOrderReadyCommand(identity access.Identity, orderID kernel.UUID) (MarkOrderReadyCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkOrderReadyCommand{}, err
	}
	return MarkOrderReadyCommand{identity: identity, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkOrderReadyCommand) Identity() access.Identity { return c.identity }
func (c MarkOrderReadyCommand) OrderID() kernel.UUID { return c.orderID }

func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}
