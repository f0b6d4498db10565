package queries

import (
	"context"

	"canteen/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItemResponse is the read model of one catalog item.
type MenuItemResponse struct {
	ID             kernel.UUID
	Name           string
	Description    string
	Category       string
	Price          int64
	AvailableStock int
	IsVeg          bool
}

// ListMenuQueryHandler reads the active catalog from the database, grouped
// by category.
type ListMenuQueryHandler struct {
	db *gorm.DB
}

// NewListMenuQueryHandler creates a handler for menu queries.
func NewListMenuQueryHandler(db *gorm.DB) ListMenuQueryHandler {
	return ListMenuQueryHandler{db: db}
}

// Handle executes the menu query. Inactive items are left out entirely;
// sold-out items stay listed with zero stock.
func (h ListMenuQueryHandler) Handle(ctx context.Context, query ListMenuQuery) ([]MenuItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items := make([]MenuItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			category,
			price,
			available_stock,
			is_veg
		FROM menu_items
		WHERE is_active = TRUE
		ORDER BY category, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item MenuItemResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.Price,
			&item.AvailableStock,
			&item.IsVeg,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID

		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
