// Package orderrepo persists the order aggregate: one orders row plus its order_items.
// Prep times are read from menu_items when an order is loaded and never written back.
package orderrepo

import (
	"strings"
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	StallID            uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_stall_status"`
	OrderCode          string    `gorm:"not null;default:''"`
	PaymentStatus      string    `gorm:"not null"`
	FulfillmentStatus  string    `gorm:"not null;index:idx_orders_stall_status;index:idx_orders_status_created"`
	CreatedAt          time.Time `gorm:"not null;index:idx_orders_status_created"`
	AcceptedAt         *time.Time
	EstimatedMinutes   *int
	EstimatedReadyTime *time.Time
	ReadyAt            *time.Time
	CollectedAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	PickupTokenHash    *string
	PickupTokenUsedAt  *time.Time
	ServiceFeeCents    int64 `gorm:"not null;default:0"`
	VoucherCents       int64 `gorm:"not null;default:0"`
	TotalCents         *int64
	Version            int       `gorm:"not null;default:1"`
	Items              []ItemDTO `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID   uuid.UUID `gorm:"type:uuid;not null"`
	Position     int       `gorm:"not null;default:0"`
	Quantity     int       `gorm:"not null"`
	CustomerNote string    `gorm:"not null;default:''"`
	IsPrepared   bool      `gorm:"not null;default:false"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// itemRow is an order line joined with the prep time of its menu item.
type itemRow struct {
	ItemDTO         `gorm:"embedded"`
	PrepTimeMinutes int
}

// OrderCodeOf derives the short code printed on receipts for orders created here.
func OrderCodeOf(id kernel.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	items := make([]ItemDTO, 0, len(s.Items))
	for i, item := range s.Items {
		items = append(items, ItemDTO{
			ID:           item.ID.Google(),
			OrderID:      s.ID.Google(),
			MenuItemID:   item.MenuItemID.Google(),
			Position:     i,
			Quantity:     item.Quantity,
			CustomerNote: item.Note,
			IsPrepared:   item.IsPrepared,
		})
	}

	var hash *string
	if s.PickupTokenDigest != "" {
		digest := s.PickupTokenDigest
		hash = &digest
	}

	return OrderDTO{
		ID:                 s.ID.Google(),
		StallID:            s.StallID.Google(),
		OrderCode:          OrderCodeOf(s.ID),
		PaymentStatus:      s.PaymentStatus.String(),
		FulfillmentStatus:  s.Status.String(),
		CreatedAt:          s.CreatedAt,
		AcceptedAt:         s.AcceptedAt,
		EstimatedMinutes:   s.EstimatedMinutes,
		EstimatedReadyTime: s.EstimatedReadyTime,
		ReadyAt:            s.ReadyAt,
		CollectedAt:        s.CollectedAt,
		CompletedAt:        s.CompletedAt,
		CancelledAt:        s.CancelledAt,
		PickupTokenHash:    hash,
		PickupTokenUsedAt:  s.PickupTokenUsedAt,
		Version:            s.Version,
		Items:              items,
	}
}

func toDomain(dto OrderDTO, rows []itemRow) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	stallID, err := kernel.UUIDFromGoogle(dto.StallID)
	if err != nil {
		return nil, err
	}
	payment, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseFulfillmentStatus(dto.FulfillmentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemSnapshot, 0, len(rows))
	for _, row := range rows {
		itemID, idErr := kernel.UUIDFromGoogle(row.ID)
		if idErr != nil {
			return nil, idErr
		}
		menuItemID, idErr := kernel.UUIDFromGoogle(row.MenuItemID)
		if idErr != nil {
			return nil, idErr
		}
		items = append(items, order.ItemSnapshot{
			ID:              itemID,
			MenuItemID:      menuItemID,
			Quantity:        row.Quantity,
			Note:            row.CustomerNote,
			PrepTimeMinutes: row.PrepTimeMinutes,
			IsPrepared:      row.IsPrepared,
		})
	}

	var digest string
	if dto.PickupTokenHash != nil {
		digest = *dto.PickupTokenHash
	}

	return order.Restore(order.Snapshot{
		ID:                 id,
		StallID:            stallID,
		PaymentStatus:      payment,
		Status:             status,
		Items:              items,
		CreatedAt:          dto.CreatedAt.UTC(),
		AcceptedAt:         utc(dto.AcceptedAt),
		EstimatedMinutes:   dto.EstimatedMinutes,
		EstimatedReadyTime: utc(dto.EstimatedReadyTime),
		ReadyAt:            utc(dto.ReadyAt),
		CollectedAt:        utc(dto.CollectedAt),
		CompletedAt:        utc(dto.CompletedAt),
		CancelledAt:        utc(dto.CancelledAt),
		PickupTokenDigest:  digest,
		PickupTokenUsedAt:  utc(dto.PickupTokenUsedAt),
		Version:            dto.Version,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
