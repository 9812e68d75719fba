package commands

import (
	"errors"
	"time"

	"hawker/internal/pkg/errs"
	"hawker/internal/pkg/guard"
)

var ErrExpireAwaitingOrdersCommandIsNotConstructed = errors.New(
	"ExpireAwaitingOrdersCommand must be created via NewExpireAwaitingOrdersCommand constructor",
)

// ExpireAwaitingOrdersCommand cancels orders nobody accepted before cutoff.
type ExpireAwaitingOrdersCommand struct {
	cutoff    time.Time
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireAwaitingOrdersCommand(cutoff time.Time, batchSize int) (ExpireAwaitingOrdersCommand, error) {
	if cutoff.IsZero() {
		return ExpireAwaitingOrdersCommand{}, errs.NewValueIsRequiredError("cutoff")
	}
	if batchSize <= 0 {
		return ExpireAwaitingOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return ExpireAwaitingOrdersCommand{cutoff: cutoff, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireAwaitingOrdersCommand) Cutoff() time.Time { return c.cutoff }
func (c ExpireAwaitingOrdersCommand) BatchSize() int { return c.batchSize }

func (c ExpireAwaitingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireAwaitingOrdersCommandIsNotConstructed)
}
