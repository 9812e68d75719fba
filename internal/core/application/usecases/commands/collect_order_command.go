package commands

import (
	"errors"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/guard"
)

var ErrCollectOrderCommandIsNotConstructed = errors.New(
	"CollectOrderCommand must be created via NewCollectOrderCommand constructor",
)

// CollectOrderCommand hands a ready order over against the token the customer shows.
// An empty token is accepted here and fails verification as a mismatch.
type CollectOrderCommand struct {
	identity access.Identity
	orderID  kernel.UUID
	token    string

	guard guard.ConstructorGuard
}

func NewCollectOrderCommand(identity access.Identity, orderID kernel.UUID, token string) (CollectOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CollectOrderCommand{}, err
	}
	return CollectOrderCommand{
		identity: identity,
		orderID:  orderID,
		token:    token,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CollectOrderCommand) Identity() access.Identity { return c.identity }
func (c CollectOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CollectOrderCommand) Token() string { return c.token }

func (c CollectOrderCommand) Validate() error {
	return c.guard.Validate(ErrCollectOrderCommandIsNotConstructed)
}
