// Package commands holds the write side of stall fulfillment. Every handler follows the
// same shape: resolve the operator, open a unit of work, lock the order, run one
// domain transition, save with a version check, commit, then publish events.
package commands

import (
	"context"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW is a transaction scoped to order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OwnershipGuard is satisfied by access.OwnershipGuard.
	OwnershipGuard interface {
		ResolveOperator(ctx context.Context, identity access.Identity) (access.Operator, error)
		AuthorizeOrder(operator access.Operator, o *order.Order) error
	}

	// TransitionObserver records the outcome of every transition attempt.
	TransitionObserver interface {
		ObserveTransition(operation string, err error)
	}
)
