package commands

import (
	"errors"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/guard"
)

var ErrSetItemPreparedCommandIsNotConstructed = errors.New(
	"SetItemPreparedCommand must be created via NewSetItemPreparedCommand constructor",
)

// SetItemPreparedCommand ticks (or unticks) one order line on the kitchen board.
type SetItemPreparedCommand struct {
	identity access.Identity
	orderID  kernel.UUID
	itemID   kernel.UUID
	prepared bool

	guard guard.ConstructorGuard
}

func NewSetItemPreparedCommand(
	identity access.Identity,
	orderID, itemID kernel.UUID,
	prepared bool,
) (SetItemPreparedCommand, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate()); err != nil {
		return SetItemPreparedCommand{}, err
	}

	return SetItemPreparedCommand{
		identity: identity,
		orderID:  orderID,
		itemID:   itemID,
		prepared: prepared,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetItemPreparedCommand) Identity() access.Identity { return c.identity }
func (c SetItemPreparedCommand) OrderID() kernel.UUID { return c.orderID }
func (c SetItemPreparedCommand) ItemID() kernel.UUID { return c.itemID }
func (c SetItemPreparedCommand) Prepared() bool { return c.prepared }

func (c SetItemPreparedCommand) Validate() error {
	return c.guard.Validate(ErrSetItemPreparedCommandIsNotConstructed)
}
