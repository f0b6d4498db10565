// Package ports defines the contracts between the application core and
// infrastructure adapters. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"
	"time"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
)

// OrderFilter narrows order listings. Zero values mean "no constraint".
type OrderFilter struct {
	Status order.Status
	From   time.Time
	To     time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including any status history entries appended since it was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier,
	// complete with lines and status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration
	// of the current transaction, so a concurrent status change on the
	// same order blocks until this transaction resolves.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllForCustomer retrieves every order owned by the given customer,
	// most recent first.
	GetAllForCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAll retrieves orders matching the filter, most recent first.
	GetAll(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// GetAllActive retrieves orders that have not reached a terminal
	// status, oldest first. Used for the kiosk board snapshot.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
