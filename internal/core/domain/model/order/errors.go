package order

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState          = errors.New("order is not in a valid state for this operation")
	ErrNotPaid               = errors.New("order is not paid")
	ErrItemsIncomplete       = errors.New("not every order item is prepared")
	ErrPickupNotVerified     = errors.New("pickup token has not been verified")
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or Restore")
)

// InvalidStateError names the operation that was refused and the status that refused it.
type InvalidStateError struct {
	Operation string
	Status    FulfillmentStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s while %s", ErrInvalidState, e.Operation, e.Status)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
