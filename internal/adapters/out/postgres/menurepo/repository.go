package menurepo

import (
	"context"
	"errors"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/menu"
	"canteen/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMenuItemRepository implements ports.MenuItemRepository using GORM.
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GORM menu item repository.
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// Add saves a new menu item.
func (r *GormMenuItemRepository) Add(ctx context.Context, item *menu.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing menu item.
func (r *GormMenuItemRepository) Update(ctx context.Context, item *menu.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&ItemDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menuItem", item.ID().String())
	}

	return nil
}

// Get retrieves a menu item by ID.
func (r *GormMenuItemRepository) Get(ctx context.Context, id kernel.UUID) (*menu.Item, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a menu item and locks its row until the
// surrounding transaction resolves. All stock reservations go through this
// path so concurrent orders for the same item serialize.
func (r *GormMenuItemRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*menu.Item, error) {
	return r.get(ctx, id, true)
}

func (r *GormMenuItemRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*menu.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto ItemDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menuItem", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every item currently offered for sale.
func (r *GormMenuItemRepository) GetAllActive(ctx context.Context) ([]*menu.Item, error) {
	var dtos []ItemDTO
	err := r.db.WithContext(ctx).
		Order("category, name").
		Find(&dtos, "is_active = ?", true).Error
	if err != nil {
		return nil, err
	}

	items := make([]*menu.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		items = append(items, item)
	}

	return items, nil
}
