package http

import (
	"hawker/internal/core/application/usecases/queries"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/generated/servers"
)

func toStallOrdersResponse(board queries.StallOrders) servers.StallOrders {
	return servers.StallOrders{
		View:     string(board.View),
		Incoming: toOrders(board.Incoming),
		Pending:  toOrders(board.Pending),
		Ready:    toOrders(board.Ready),
		History:  toOrders(board.History),
	}
}

func toOrders(projections []queries.OrderProjection) []servers.Order {
	out := make([]servers.Order, 0, len(projections))
	for _, p := range projections {
		out = append(out, toOrder(p))
	}
	return out
}

func toOrder(p queries.OrderProjection) servers.Order {
	items := make([]servers.OrderItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, servers.OrderItem{
			Id:              item.ID.Google(),
			MenuItemId:      item.MenuItemID.Google(),
			Name:            optionalString(item.Name),
			Note:            optionalString(item.Note),
			Quantity:        item.Quantity,
			IsPrepared:      item.IsPrepared,
			PrepTimeMinutes: item.PrepTimeMinutes,
			UnitPrice:       item.UnitPrice.StringFixed(2),
		})
	}

	return servers.Order{
		Id:                     p.ID.Google(),
		StallId:                p.StallID.Google(),
		StallName:              optionalString(p.StallName),
		OrderCode:              p.OrderCode,
		PaymentStatus:          servers.OrderPaymentStatus(p.PaymentStatus),
		FulfillmentStatus:      servers.OrderFulfillmentStatus(p.FulfillmentStatus),
		CreatedAt:              p.CreatedAt,
		AcceptedAt:             p.AcceptedAt,
		EstimatedMinutes:       p.EstimatedMinutes,
		EstimatedReadyTime:     p.EstimatedReadyTime,
		ReadyAt:                p.ReadyAt,
		CollectedAt:            p.CollectedAt,
		CancelledAt:            p.CancelledAt,
		DefaultEstimateMinutes: p.DefaultEstimateMinutes,
		Subtotal:               p.Subtotal.StringFixed(2),
		ServiceFee:             p.ServiceFee.StringFixed(2),
		Voucher:                p.Voucher.StringFixed(2),
		Total:                  p.Total.StringFixed(2),
		Items:                  items,
	}
}

// toOrderState never includes the pickup token; only accept returns it, next to
// the order.
func toOrderState(o *order.Order) servers.OrderState {
	items := make([]servers.OrderStateItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, servers.OrderStateItem{
			Id:         item.ID().Google(),
			MenuItemId: item.MenuItemID().Google(),
			Quantity:   item.Quantity(),
			Note:       optionalString(item.Note()),
			IsPrepared: item.IsPrepared(),
		})
	}

	return servers.OrderState{
		Id:                 o.ID().Google(),
		StallId:            o.StallID().Google(),
		PaymentStatus:      o.PaymentStatus().String(),
		FulfillmentStatus:  o.Status().String(),
		CreatedAt:          o.CreatedAt(),
		AcceptedAt:         o.AcceptedAt(),
		EstimatedMinutes:   o.EstimatedMinutes(),
		EstimatedReadyTime: o.EstimatedReadyTime(),
		ReadyAt:            o.ReadyAt(),
		CollectedAt:        o.CollectedAt(),
		CompletedAt:        o.CompletedAt(),
		CancelledAt:        o.CancelledAt(),
		Items:              items,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
