// Package menurepo provides data transfer objects and mapping functions for
// menu item persistence.
package menurepo

import (
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// ItemDTO represents the database structure for persisting catalog items.
type ItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Description    string
	Category       string `gorm:"type:varchar(16);index"`
	Price          int64
	AvailableStock int
	IsVeg          bool
	IsActive       bool `gorm:"index"`
}

// TableName overrides GORM's default naming to use "menu_items".
func (ItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(item *menu.Item) ItemDTO {
	return ItemDTO{
		ID:             item.ID().Bytes(),
		Name:           item.Name(),
		Description:    item.Description(),
		Category:       item.Category().String(),
		Price:          item.Price(),
		AvailableStock: item.AvailableStock(),
		IsVeg:          item.IsVeg(),
		IsActive:       item.IsActive(),
	}
}

func toDomain(dto ItemDTO) (*menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	category, err := menu.CategoryFromString(dto.Category)
	if err != nil {
		return nil, err
	}

	return menu.RestoreItem(
		id,
		dto.Name,
		dto.Description,
		category,
		dto.Price,
		dto.AvailableStock,
		dto.IsVeg,
		dto.IsActive,
	)
}
