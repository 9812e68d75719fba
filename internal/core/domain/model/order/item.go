package order

import (
	"errors"
	"fmt"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/errs"
)

// Item is one order line. PrepTimeMinutes is copied from the menu when the order is
// loaded so the estimate can be computed without another lookup.
type Item struct {
	id              kernel.UUID
	menuItemID      kernel.UUID
	quantity        int
	note            string
	prepTimeMinutes int
	isPrepared      bool
}

// ItemSnapshot is the persisted shape of an Item.
type ItemSnapshot struct {
	ID              kernel.UUID
	MenuItemID      kernel.UUID
	Quantity        int
	Note            string
	PrepTimeMinutes int
	IsPrepared      bool
}

func NewItem(id, menuItemID kernel.UUID, quantity, prepTimeMinutes int, note string) (*Item, error) {
	return RestoreItem(ItemSnapshot{
		ID:              id,
		MenuItemID:      menuItemID,
		Quantity:        quantity,
		Note:            note,
		PrepTimeMinutes: prepTimeMinutes,
	})
}

func RestoreItem(s ItemSnapshot) (*Item, error) {
	var quantityErr, prepErr error
	if s.Quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", s.Quantity))
	}
	if s.PrepTimeMinutes < 0 {
		prepErr = errs.NewValueIsInvalidErrorWithCause("prepTimeMinutes", fmt.Errorf("%d is negative", s.PrepTimeMinutes))
	}
	if err := errors.Join(s.ID.Validate(), s.MenuItemID.Validate(), quantityErr, prepErr); err != nil {
		return nil, err
	}

	return &Item{
		id:              s.ID,
		menuItemID:      s.MenuItemID,
		quantity:        s.Quantity,
		note:            s.Note,
		prepTimeMinutes: s.PrepTimeMinutes,
		isPrepared:      s.IsPrepared,
	}, nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) MenuItemID() kernel.UUID { return i.menuItemID }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) Note() string { return i.note }
func (i *Item) PrepTimeMinutes() int { return i.prepTimeMinutes }
func (i *Item) IsPrepared() bool { return i.isPrepared }

func (i *Item) snapshot() ItemSnapshot {
	return ItemSnapshot{
		ID:              i.id,
		MenuItemID:      i.menuItemID,
		Quantity:        i.quantity,
		Note:            i.note,
		PrepTimeMinutes: i.prepTimeMinutes,
		IsPrepared:      i.isPrepared,
	}
}
