package orderrepo

import (
	"context"
	"errors"
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order row and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every mutable column back, guarded by the version read at load time.
// Item rows only ever change their prepared flag.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"payment_status":       dto.PaymentStatus,
			"fulfillment_status":   dto.FulfillmentStatus,
			"accepted_at":          dto.AcceptedAt,
			"estimated_minutes":    dto.EstimatedMinutes,
			"estimated_ready_time": dto.EstimatedReadyTime,
			"ready_at":             dto.ReadyAt,
			"collected_at":         dto.CollectedAt,
			"completed_at":         dto.CompletedAt,
			"cancelled_at":         dto.CancelledAt,
			"pickup_token_hash":    dto.PickupTokenHash,
			"pickup_token_used_at": dto.PickupTokenUsedAt,
			"version":              dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("order")
	}

	prepared, pending := splitByPrepared(dto.Items)
	if err := r.setPrepared(db, dto.ID, prepared, true); err != nil {
		return err
	}
	if err := r.setPrepared(db, dto.ID, pending, false); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

func (r *GormOrderRepository) setPrepared(db *gorm.DB, orderID uuid.UUID, itemIDs []uuid.UUID, prepared bool) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return db.Model(&ItemDTO{}).
		Where("order_id = ? AND id IN ?", orderID, itemIDs).
		Update("is_prepared", prepared).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate retrieves an order and locks its row with SELECT ... FOR UPDATE.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, true)
}

func (r *GormOrderRepository) load(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var rows []itemRow
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.*, COALESCE(mi.prep_time_minutes, 0) AS prep_time_minutes").
		Joins("LEFT JOIN menu_items AS mi ON mi.id = oi.menu_item_id").
		Where("oi.order_id = ?", dto.ID).
		Order("oi.position").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, rows)
}

// ListAwaitingCreatedBefore returns up to limit AWAITING order ids, oldest first.
func (r *GormOrderRepository) ListAwaitingCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]kernel.UUID, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("fulfillment_status = ? AND created_at < ?", order.Awaiting.String(), cutoff).
		Order("created_at").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		orderID, convErr := kernel.UUIDFromGoogle(id)
		if convErr != nil {
			return nil, convErr
		}
		out = append(out, orderID)
	}
	return out, nil
}

func splitByPrepared(items []ItemDTO) (prepared, pending []uuid.UUID) {
	for _, item := range items {
		if item.IsPrepared {
			prepared = append(prepared, item.ID)
		} else {
			pending = append(pending, item.ID)
		}
	}
	return prepared, pending
}
