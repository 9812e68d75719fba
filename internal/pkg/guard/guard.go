// Package guard detects values that skipped their constructor.
//
// Commands, queries and aggregates embed a ConstructorGuard; only their New... function
// sets it, so a zero-value struct fails Validate.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplied no error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) unless the
// guard came from NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
