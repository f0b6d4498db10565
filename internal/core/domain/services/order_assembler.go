package services

import (
	"canteen/internal/core/domain/model/menu"
	"canteen/internal/core/domain/model/order"
)

// OrderAssembler is a domain service that turns a requested quantity of a
// catalog item into a priced order line.
//
// Assembly couples two aggregates: the catalog item gives up stock, and the
// order line snapshots the item's name and unit price at that moment. Keeping
// both steps in one service guarantees a line is never created without the
// matching reservation, and a reservation never happens without producing a
// line.
//
// Business rules:
//   - The item must be a valid, constructed aggregate
//   - Reservation is all-or-nothing per line
//   - The line price is the item's price at assembly time; later catalog
//     price changes do not affect it
//
// Example usage:
//
//	assembler := services.NewOrderAssembler()
//	line, err := assembler.Assemble(item, 2)
//	if err != nil {
//	    // Stock shortfall or inactive item; the item is untouched
//	    return err
//	}
//	// item stock is decremented and line is ready for order.NewOrder
type OrderAssembler struct{}

// NewOrderAssembler creates a new OrderAssembler instance.
func NewOrderAssembler() OrderAssembler {
	return OrderAssembler{}
}

// Assemble reserves quantity units of item and returns the resulting order
// line.
//
// The item is mutated only on success. The caller is responsible for holding
// a storage-level lock on the item row and for persisting the decremented
// stock in the same transaction as the order.
func (a OrderAssembler) Assemble(item *menu.Item, quantity int) (order.Line, error) {
	if err := item.Validate(); err != nil {
		return order.Line{}, err
	}

	if err := item.Reserve(quantity); err != nil {
		return order.Line{}, err
	}

	return order.NewLine(item.ID(), item.Name(), item.Price(), quantity)
}
