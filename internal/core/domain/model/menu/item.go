package menu

import (
	"errors"
	"fmt"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Category classifies a menu item for the catalog.
type Category string

const (
	CategorySnacks    Category = "snacks"
	CategoryDrinks    Category = "drinks"
	CategoryMeals     Category = "meals"
	CategoryDesserts  Category = "desserts"
	CategoryBeverages Category = "beverages"
)

// CategoryFromString validates a category value from the catalog store.
func CategoryFromString(s string) (Category, error) {
	switch Category(s) {
	case CategorySnacks, CategoryDrinks, CategoryMeals, CategoryDesserts, CategoryBeverages:
		return Category(s), nil
	default:
		return "", errs.NewValueIsInvalidError("category")
	}
}

func (c Category) String() string {
	return string(c)
}

// Item is a menu item as the ordering engine sees it. The catalog store owns
// the full record; the engine reads it to validate carts and mutates only
// availableStock through Reserve.
//
// Invariants:
//   - price is never negative
//   - availableStock is never negative; a reservation that would drive it
//     below zero is rejected whole, never capped
type Item struct {
	id             kernel.UUID
	name           string
	description    string
	category       Category
	price          int64
	availableStock int
	isVeg          bool
	isActive       bool

	isConstructed bool
}

// NewItem creates a menu item with validation. Price is in the smallest
// currency unit.
func NewItem(id kernel.UUID, name string, description string, category Category, price int64, availableStock int, isVeg, isActive bool) (*Item, error) {
	item := &Item{
		description:   description,
		isVeg:         isVeg,
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setCategory(category),
		item.setPrice(price),
		item.setStock(availableStock),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs a menu item from persistence. The same invariants
// apply; persisted rows that violate them are treated as corrupt.
func RestoreItem(id kernel.UUID, name string, description string, category Category, price int64, availableStock int, isVeg, isActive bool) (*Item, error) {
	return NewItem(id, name, description, category, price, availableStock, isVeg, isActive)
}

// Validate ensures the Item was constructed through NewItem or RestoreItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Name returns the item's display name.
func (i *Item) Name() string {
	return i.name
}

// Description returns the item's catalog description.
func (i *Item) Description() string {
	return i.description
}

// Category returns the item's catalog category.
func (i *Item) Category() Category {
	return i.category
}

// Price returns the current unit price in the smallest currency unit.
func (i *Item) Price() int64 {
	return i.price
}

// AvailableStock returns the quantity currently available for ordering.
func (i *Item) AvailableStock() int {
	return i.availableStock
}

// IsVeg reports whether the item is vegetarian.
func (i *Item) IsVeg() bool {
	return i.isVeg
}

// IsActive reports whether the item may currently be ordered.
func (i *Item) IsActive() bool {
	return i.isActive
}

// Reserve decrements availableStock by quantity for an order being placed.
//
// The reservation is all-or-nothing: an inactive item or a shortfall rejects
// the full requested quantity with a ConflictError that reports the currently
// available amount, and leaves the stock untouched. The caller is responsible
// for holding a storage-level lock on the item row so concurrent reservations
// serialize.
func (i *Item) Reserve(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, i.availableStock)
	}
	if !i.isActive {
		return errs.NewConflictError(i.name, "item is currently unavailable")
	}
	if i.availableStock < quantity {
		return errs.NewConflictError(i.name,
			fmt.Sprintf("insufficient stock: requested %d, available %d", quantity, i.availableStock))
	}

	i.availableStock -= quantity
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setCategory(category Category) error {
	if _, err := CategoryFromString(string(category)); err != nil {
		return err
	}
	i.category = category
	return nil
}

func (i *Item) setPrice(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is negative", price))
	}
	i.price = price
	return nil
}

func (i *Item) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("availableStock", fmt.Errorf("%d is negative", stock))
	}
	i.availableStock = stock
	return nil
}
