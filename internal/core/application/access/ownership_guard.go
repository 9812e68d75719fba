// Package access decides whether a verified caller may operate on a stall's orders.
//
// The HTTP layer verifies the bearer token and hands over an Identity; this package
// never reads request state itself.
package access

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/pkg/errs"
)

// RoleOperator is the user role allowed to run a stall.
const RoleOperator = "hawker"

var (
	ErrUnauthenticated = errors.New("caller is not authenticated")
	ErrForbidden       = errors.New("caller may not operate on this stall")
)

// Identity is what an upstream authenticator vouches for.
type Identity struct {
	Subject string
	Email   string
}

func (i Identity) normalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(i.Email))
}

// User is the directory's view of an account.
type User struct {
	ID    kernel.UUID
	Email string
	Role  string
}

// Directory looks up accounts and stall ownership.
type Directory interface {
	// FindUserByEmail fails with errs.ErrObjectNotFound for unknown emails.
	FindUserByEmail(ctx context.Context, email string) (User, error)
	ListStallIDsByOwner(ctx context.Context, ownerID kernel.UUID) ([]kernel.UUID, error)
}

// Operator is a resolved stall operator and the stalls they own.
type Operator struct {
	ID       kernel.UUID
	Email    string
	StallIDs []kernel.UUID
}

func (o Operator) Owns(stallID kernel.UUID) bool {
	return slices.ContainsFunc(o.StallIDs, stallID.IsEqual)
}

type OwnershipGuard struct {
	directory Directory
}

func NewOwnershipGuard(directory Directory) OwnershipGuard {
	return OwnershipGuard{directory: directory}
}

// ResolveOperator maps an identity to an operator owning at least one stall.
func (g OwnershipGuard) ResolveOperator(ctx context.Context, identity Identity) (Operator, error) {
	email := identity.normalizedEmail()
	if email == "" {
		return Operator{}, ErrUnauthenticated
	}

	user, err := g.directory.FindUserByEmail(ctx, email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Operator{}, fmt.Errorf("%w: no account for %s", ErrUnauthenticated, email)
	}
	if err != nil {
		return Operator{}, err
	}

	if user.Role != RoleOperator {
		return Operator{}, fmt.Errorf("%w: role %q is not %q", ErrForbidden, user.Role, RoleOperator)
	}

	stallIDs, err := g.directory.ListStallIDsByOwner(ctx, user.ID)
	if err != nil {
		return Operator{}, err
	}
	if len(stallIDs) == 0 {
		return Operator{}, fmt.Errorf("%w: %s owns no stall", ErrForbidden, email)
	}

	return Operator{ID: user.ID, Email: email, StallIDs: stallIDs}, nil
}

// AuthorizeOrder allows the operation when the order belongs to one of the operator's
// stalls.
func (g OwnershipGuard) AuthorizeOrder(operator Operator, o *order.Order) error {
	if !operator.Owns(o.StallID()) {
		return fmt.Errorf("%w: order %s belongs to stall %s", ErrForbidden, o.ID(), o.StallID())
	}
	return nil
}
