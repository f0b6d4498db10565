package order

import (
	"fmt"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/pkg/errs"
)

// MaxLineQuantity bounds a single line; a canteen order above this is a typo.
const MaxLineQuantity = 100

// Line is an immutable snapshot of one cart line at order time: the item's
// name and unit price are copied out of the catalog so later catalog edits
// never change what the customer agreed to pay. ItemID is kept as a
// non-owning reference back to the catalog purely for traceability.
type Line struct {
	itemID    kernel.UUID
	name      string
	unitPrice int64
	quantity  int

	isConstructed bool
}

// NewLine snapshots a validated cart line. Quantity must be at least 1 and
// unitPrice non-negative.
func NewLine(itemID kernel.UUID, name string, unitPrice int64, quantity int) (Line, error) {
	if err := itemID.Validate(); err != nil {
		return Line{}, err
	}
	if name == "" {
		return Line{}, errs.NewValueIsRequiredError("line name")
	}
	if unitPrice < 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%d is negative", unitPrice))
	}
	if quantity < 1 || quantity > MaxLineQuantity {
		return Line{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxLineQuantity)
	}

	return Line{
		itemID:        itemID,
		name:          name,
		unitPrice:     unitPrice,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// ItemID returns the catalog reference of the snapshotted item.
func (l Line) ItemID() kernel.UUID {
	return l.itemID
}

// Name returns the item name captured at order time.
func (l Line) Name() string {
	return l.name
}

// UnitPrice returns the unit price captured at order time.
func (l Line) UnitPrice() int64 {
	return l.unitPrice
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// Subtotal returns unit price times quantity.
func (l Line) Subtotal() int64 {
	return l.unitPrice * int64(l.quantity)
}

// Validate ensures the Line was created via NewLine.
func (l Line) Validate() error {
	if !l.isConstructed {
		return errs.NewValueIsRequiredError("Line must be created via NewLine")
	}
	return nil
}
