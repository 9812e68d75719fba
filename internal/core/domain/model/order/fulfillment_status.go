package order

import (
	"fmt"
	"slices"

	"hawker/internal/pkg/errs"
)

// FulfillmentStatus is the stall-side lifecycle state of an order.
type FulfillmentStatus int

const (
	Unknown FulfillmentStatus = iota
	Awaiting
	Preparing
	Ready
	Collected
	Cancelled
)

var fulfillmentCodes = map[FulfillmentStatus]string{
	Awaiting:  "AWAITING",
	Preparing: "PREPARING",
	Ready:     "READY",
	Collected: "COLLECTED",
	Cancelled: "CANCELLED",
}

// fulfillmentEdges lists every legal move. Terminal states have no entry.
var fulfillmentEdges = map[FulfillmentStatus][]FulfillmentStatus{
	Awaiting:  {Preparing, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {Collected, Cancelled},
}

// ParseFulfillmentStatus reads the persisted code ("AWAITING", ...).
func ParseFulfillmentStatus(code string) (FulfillmentStatus, error) {
	for status, c := range fulfillmentCodes {
		if c == code {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"fulfillmentStatus",
		fmt.Errorf("%q is not a fulfillment status", code),
	)
}

func (s FulfillmentStatus) Validate() error {
	if _, ok := fulfillmentCodes[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillmentStatus",
			fmt.Errorf("%d is not a fulfillment status", s),
		)
	}
	return nil
}

func (s FulfillmentStatus) String() string {
	if code, ok := fulfillmentCodes[s]; ok {
		return code
	}
	return "UNKNOWN"
}

func (s FulfillmentStatus) IsTerminal() bool {
	return s == Collected || s == Cancelled
}

func (s FulfillmentStatus) CanTransitionTo(next FulfillmentStatus) bool {
	return slices.Contains(fulfillmentEdges[s], next)
}

// TransitionTo checks the edge s -> next against the fulfillment graph
// (AWAITING -> PREPARING -> READY -> COLLECTED, with CANCELLED reachable from any
// non-terminal status). It does not mutate anything; the aggregate applies the result.
//
// Returns:
//   - FulfillmentStatus: next when the edge exists, s otherwise
//   - error: *InvalidStateError (matching ErrInvalidState) when the edge does not exist
//
// Example:
//
//	next, err := Ready.TransitionTo(Collected)
//	// next == Collected, err == nil
//
//	_, err = Collected.TransitionTo(Preparing)
//	// errors.Is(err, ErrInvalidState) == true
func (s FulfillmentStatus) TransitionTo(next FulfillmentStatus) (FulfillmentStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, &InvalidStateError{Operation: "move to " + next.String(), Status: s}
	}
	return next, nil
}
