package ports

import (
	"context"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/menu"
)

// MenuItemRepository defines the persistence contract for catalog items.
type MenuItemRepository interface {
	// Add persists a new menu item.
	Add(ctx context.Context, item *menu.Item) error

	// Update persists changes to an existing menu item, including its
	// remaining stock after a reservation.
	Update(ctx context.Context, item *menu.Item) error

	// Get retrieves a menu item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*menu.Item, error)

	// GetForUpdate retrieves a menu item and locks its row for the
	// duration of the current transaction. Stock reservations must go
	// through this method so two concurrent orders cannot both take
	// the last unit.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*menu.Item, error)

	// GetAllActive retrieves every item currently offered for sale.
	GetAllActive(ctx context.Context) ([]*menu.Item, error)
}
