package queries

import (
	"context"
	"time"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultHistoryLimit caps the history view.
const DefaultHistoryLimit = 100

// OperatorResolver is satisfied by access.OwnershipGuard.
type OperatorResolver interface {
	ResolveOperator(ctx context.Context, identity access.Identity) (access.Operator, error)
}

// ListStallOrdersQueryHandler reads dashboard projections with two queries: one for
// the orders, one for all of their lines.
type ListStallOrdersQueryHandler struct {
	db           *gorm.DB
	operators    OperatorResolver
	estimates    services.EstimateCalculator
	historyLimit int
}

func NewListStallOrdersQueryHandler(db *gorm.DB, operators OperatorResolver) ListStallOrdersQueryHandler {
	return ListStallOrdersQueryHandler{
		db:           db,
		operators:    operators,
		estimates:    services.NewEstimateCalculator(),
		historyLimit: DefaultHistoryLimit,
	}
}

type orderRow struct {
	ID                 uuid.UUID
	StallID            uuid.UUID
	StallName          string
	OrderCode          string
	PaymentStatus      string
	FulfillmentStatus  string
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	EstimatedMinutes   *int
	EstimatedReadyTime *time.Time
	ReadyAt            *time.Time
	CollectedAt        *time.Time
	CancelledAt        *time.Time
	ServiceFeeCents    int64
	VoucherCents       int64
	TotalCents         *int64
}

type itemRow struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	MenuItemID      uuid.UUID
	MenuItemName    string
	Quantity        int
	CustomerNote    string
	IsPrepared      bool
	PrepTimeMinutes int
	PriceCents      int64
}

func (h ListStallOrdersQueryHandler) Handle(ctx context.Context, query ListStallOrdersQuery) (StallOrders, error) {
	if err := query.Validate(); err != nil {
		return StallOrders{}, err
	}

	operator, err := h.operators.ResolveOperator(ctx, query.Identity())
	if err != nil {
		return StallOrders{}, err
	}

	stallIDs := make([]uuid.UUID, 0, len(operator.StallIDs))
	for _, id := range operator.StallIDs {
		stallIDs = append(stallIDs, id.Google())
	}

	var orders []orderRow
	if query.View() == ViewHistory {
		orders, err = h.historyOrders(ctx, stallIDs)
	} else {
		orders, err = h.currentOrders(ctx, stallIDs)
	}
	if err != nil {
		return StallOrders{}, err
	}

	items, err := h.itemsOf(ctx, orders)
	if err != nil {
		return StallOrders{}, err
	}

	result := StallOrders{
		View:     query.View(),
		Incoming: make([]OrderProjection, 0),
		Pending:  make([]OrderProjection, 0),
		Ready:    make([]OrderProjection, 0),
		History:  make([]OrderProjection, 0),
	}

	for _, row := range orders {
		projection, projErr := h.project(row, items[row.ID])
		if projErr != nil {
			return StallOrders{}, projErr
		}

		if query.View() == ViewHistory {
			result.History = append(result.History, projection)
			continue
		}

		switch row.FulfillmentStatus {
		case order.Awaiting.String():
			result.Incoming = append(result.Incoming, projection)
		case order.Preparing.String():
			result.Pending = append(result.Pending, projection)
		case order.Ready.String():
			result.Pending = append(result.Pending, projection)
			result.Ready = append(result.Ready, projection)
		}
	}

	return result, nil
}

const orderColumns = `
	o.id,
	o.stall_id,
	s.name AS stall_name,
	o.order_code,
	o.payment_status,
	o.fulfillment_status,
	o.created_at,
	o.accepted_at,
	o.estimated_minutes,
	o.estimated_ready_time,
	o.ready_at,
	o.collected_at,
	o.cancelled_at,
	o.service_fee_cents,
	o.voucher_cents,
	o.total_cents`

func (h ListStallOrdersQueryHandler) currentOrders(ctx context.Context, stallIDs []uuid.UUID) ([]orderRow, error) {
	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders o
		JOIN stalls s ON s.id = o.stall_id
		WHERE o.stall_id IN ?
			AND o.payment_status IN ?
			AND o.fulfillment_status IN ?
		ORDER BY o.created_at DESC, o.id
	`,
		stallIDs,
		[]string{order.PaymentPaid.String(), order.PaymentCompleted.String()},
		[]string{order.Awaiting.String(), order.Preparing.String(), order.Ready.String()},
	).Scan(&rows).Error
	return rows, err
}

func (h ListStallOrdersQueryHandler) historyOrders(ctx context.Context, stallIDs []uuid.UUID) ([]orderRow, error) {
	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders o
		JOIN stalls s ON s.id = o.stall_id
		WHERE o.stall_id IN ?
			AND o.fulfillment_status IN ?
		ORDER BY COALESCE(o.collected_at, o.cancelled_at, o.created_at) DESC, o.id
		LIMIT ?
	`,
		stallIDs,
		[]string{order.Collected.String(), order.Cancelled.String()},
		h.historyLimit,
	).Scan(&rows).Error
	return rows, err
}

func (h ListStallOrdersQueryHandler) itemsOf(ctx context.Context, orders []orderRow) (map[uuid.UUID][]itemRow, error) {
	byOrder := make(map[uuid.UUID][]itemRow, len(orders))
	if len(orders) == 0 {
		return byOrder, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	var rows []itemRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			oi.id,
			oi.order_id,
			oi.menu_item_id,
			COALESCE(mi.name, '') AS menu_item_name,
			oi.quantity,
			oi.customer_note,
			oi.is_prepared,
			COALESCE(mi.prep_time_minutes, 0) AS prep_time_minutes,
			COALESCE(mi.price_cents, 0) AS price_cents
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id IN ?
		ORDER BY oi.order_id, oi.position
	`, orderIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		byOrder[row.OrderID] = append(byOrder[row.OrderID], row)
	}
	return byOrder, nil
}

func (h ListStallOrdersQueryHandler) project(row orderRow, items []itemRow) (OrderProjection, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return OrderProjection{}, err
	}
	stallID, err := kernel.UUIDFromGoogle(row.StallID)
	if err != nil {
		return OrderProjection{}, err
	}

	lines := make([]services.PrepLine, 0, len(items))
	projected := make([]ItemProjection, 0, len(items))
	var subtotalCents int64
	for _, item := range items {
		itemID, idErr := kernel.UUIDFromGoogle(item.ID)
		if idErr != nil {
			return OrderProjection{}, idErr
		}
		menuItemID, idErr := kernel.UUIDFromGoogle(item.MenuItemID)
		if idErr != nil {
			return OrderProjection{}, idErr
		}

		lines = append(lines, services.PrepLine{PrepTimeMinutes: item.PrepTimeMinutes, Quantity: item.Quantity})
		subtotalCents += item.PriceCents * int64(item.Quantity)
		projected = append(projected, ItemProjection{
			ID:              itemID,
			MenuItemID:      menuItemID,
			Name:            item.MenuItemName,
			Quantity:        item.Quantity,
			Note:            item.CustomerNote,
			IsPrepared:      item.IsPrepared,
			PrepTimeMinutes: item.PrepTimeMinutes,
			UnitPrice:       cents(item.PriceCents),
		})
	}

	totalCents := subtotalCents + row.ServiceFeeCents - row.VoucherCents
	if row.TotalCents != nil {
		totalCents = *row.TotalCents
	}

	return OrderProjection{
		ID:                     id,
		StallID:                stallID,
		StallName:              row.StallName,
		OrderCode:              row.OrderCode,
		PaymentStatus:          row.PaymentStatus,
		FulfillmentStatus:      row.FulfillmentStatus,
		CreatedAt:              row.CreatedAt.UTC(),
		AcceptedAt:             utc(row.AcceptedAt),
		EstimatedMinutes:       row.EstimatedMinutes,
		EstimatedReadyTime:     utc(row.EstimatedReadyTime),
		ReadyAt:                utc(row.ReadyAt),
		CollectedAt:            utc(row.CollectedAt),
		CancelledAt:            utc(row.CancelledAt),
		DefaultEstimateMinutes: h.estimates.Default(lines),
		Subtotal:               cents(subtotalCents),
		ServiceFee:             cents(row.ServiceFeeCents),
		Voucher:                cents(row.VoucherCents),
		Total:                  cents(totalCents),
		Items:                  projected,
	}, nil
}

func cents(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
