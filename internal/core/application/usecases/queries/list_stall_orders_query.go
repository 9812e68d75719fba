// Package queries holds the read side of the stall dashboard. Handlers read straight
// from the database into projections; they never load aggregates.
package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/errs"
	"hawker/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListStallOrdersQueryIsNotConstructed = errors.New(
	"ListStallOrdersQuery must be created via NewListStallOrdersQuery constructor",
)

// OrderView selects which orders the dashboard shows.
type OrderView string

const (
	// ViewCurrent lists paid orders still in the kitchen or waiting at the counter.
	ViewCurrent OrderView = "current"
	// ViewHistory lists collected and cancelled orders, most recent first.
	ViewHistory OrderView = "history"
)

// ParseOrderView accepts "current", "history" or an empty string meaning current.
func ParseOrderView(raw string) (OrderView, error) {
	switch view := OrderView(strings.ToLower(strings.TrimSpace(raw))); view {
	case "", ViewCurrent:
		return ViewCurrent, nil
	case ViewHistory:
		return ViewHistory, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("unknown view %q", raw))
	}
}

// ListStallOrdersQuery lists the orders of every stall the caller owns.
//
//	query, err := NewListStallOrdersQuery(identity, ViewCurrent)
//	if err != nil {
//	    return err
//	}
//	board, err := handler.Handle(ctx, query)
type ListStallOrdersQuery struct {
	identity access.Identity
	view     OrderView

	guard guard.ConstructorGuard
}

func NewListStallOrdersQuery(identity access.Identity, view OrderView) (ListStallOrdersQuery, error) {
	if view != ViewCurrent && view != ViewHistory {
		return ListStallOrdersQuery{}, errs.NewValueIsInvalidError(fmt.Sprintf("view %q", view))
	}

	return ListStallOrdersQuery{
		identity: identity,
		view:     view,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListStallOrdersQuery) Identity() access.Identity { return q.identity }
func (q ListStallOrdersQuery) View() OrderView { return q.view }

func (q ListStallOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListStallOrdersQueryIsNotConstructed)
}

// StallOrders is the dashboard payload. The current view fills Incoming, Pending and
// Ready; READY orders appear in both Pending and Ready. The history view fills History.
// Lists are never nil.
type StallOrders struct {
	View     OrderView
	Incoming []OrderProjection
	Pending  []OrderProjection
	Ready    []OrderProjection
	History  []OrderProjection
}

// OrderProjection is one order as the stall operator sees it. It never carries the
// pickup token.
type OrderProjection struct {
	ID                     kernel.UUID
	StallID                kernel.UUID
	StallName              string
	OrderCode              string
	PaymentStatus          string
	FulfillmentStatus      string
	CreatedAt              time.Time
	AcceptedAt             *time.Time
	EstimatedMinutes       *int
	EstimatedReadyTime     *time.Time
	ReadyAt                *time.Time
	CollectedAt            *time.Time
	CancelledAt            *time.Time
	DefaultEstimateMinutes int
	Subtotal               decimal.Decimal
	ServiceFee             decimal.Decimal
	Voucher                decimal.Decimal
	Total                  decimal.Decimal
	Items                  []ItemProjection
}

type ItemProjection struct {
	ID              kernel.UUID
	MenuItemID      kernel.UUID
	Name            string
	Quantity        int
	Note            string
	IsPrepared      bool
	PrepTimeMinutes int
	UnitPrice       decimal.Decimal
}
