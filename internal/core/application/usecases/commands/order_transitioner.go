package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/ports"
	"hawker/internal/pkg/errs"
	"hawker/internal/pkg/logger"
)

// OrderTransitioner runs one locked, version-checked transition per call and is shared
// by every command handler.
type OrderTransitioner struct {
	uowFactory OrderUoWFactory
	guard      OwnershipGuard
	publisher  ports.EventPublisher
	observer   TransitionObserver
	log        *logger.Logger
	now        func() time.Time
}

func NewOrderTransitioner(
	uowFactory OrderUoWFactory,
	guard OwnershipGuard,
	publisher ports.EventPublisher,
	observer TransitionObserver,
	log *logger.Logger,
) OrderTransitioner {
	if log == nil {
		log = logger.Nop()
	}
	return OrderTransitioner{
		uowFactory: uowFactory,
		guard:      guard,
		publisher:  publisher,
		observer:   observer,
		log:        log,
		now:        time.Now,
	}
}

// WithClock replaces time.Now. Tests pin it.
func (t OrderTransitioner) WithClock(now func() time.Time) OrderTransitioner {
	t.now = now
	return t
}

type transitionFunc func(o *order.Order, now time.Time) error

// asOperator resolves the caller, then runs apply on an order they own.
func (t OrderTransitioner) asOperator(
	ctx context.Context,
	identity access.Identity,
	orderID kernel.UUID,
	operation string,
	apply transitionFunc,
) (*order.Order, error) {
	operator, err := t.guard.ResolveOperator(ctx, identity)
	if err != nil {
		t.observe(operation, err)
		return nil, err
	}

	ctx = t.log.WithOperatorID(ctx, operator.ID.String())
	return t.run(ctx, orderID, operation, func(o *order.Order) error {
		return t.guard.AuthorizeOrder(operator, o)
	}, apply)
}

// asSystem runs apply without an operator; background jobs use it.
func (t OrderTransitioner) asSystem(
	ctx context.Context,
	orderID kernel.UUID,
	operation string,
	apply transitionFunc,
) (*order.Order, error) {
	return t.run(ctx, orderID, operation, nil, apply)
}

func (t OrderTransitioner) run(
	ctx context.Context,
	orderID kernel.UUID,
	operation string,
	authorize func(o *order.Order) error,
	apply transitionFunc,
) (result *order.Order, err error) {
	defer func() { t.observe(operation, err) }()

	uow := t.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if authorize != nil {
		if err = authorize(o); err != nil {
			return nil, err
		}
	}

	if err = apply(o, t.now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, fmt.Errorf("%w: %w", order.ErrInvalidState, err)
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	t.publish(t.log.WithOrderID(ctx, o.ID().String()), o)
	return o, nil
}

func (t OrderTransitioner) publish(ctx context.Context, o *order.Order) {
	events := o.DomainEvents()
	o.ClearDomainEvents()
	if t.publisher == nil || len(events) == 0 {
		return
	}

	if err := t.publisher.Publish(ctx, events...); err != nil {
		t.log.Warn(ctx, "publish fulfillment events", err)
	}
}

func (t OrderTransitioner) observe(operation string, err error) {
	if t.observer != nil {
		t.observer.ObserveTransition(operation, err)
	}
}
