package services

import (
	"testing"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/menu"
	"canteen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogItem(t *testing.T, stock int, active bool) *menu.Item {
	t.Helper()
	item, err := menu.NewItem(kernel.NewUUID(), "Chai", "Masala chai", menu.CategoryBeverages, 10, stock, true, active)
	require.NoError(t, err)
	return item
}

func TestOrderAssembler_Assemble(t *testing.T) {
	t.Run("reserves stock and prices the line", func(t *testing.T) {
		assembler := NewOrderAssembler()
		item := newCatalogItem(t, 5, true)

		line, err := assembler.Assemble(item, 2)

		require.NoError(t, err)
		assert.Equal(t, item.ID(), line.ItemID())
		assert.Equal(t, "Chai", line.Name())
		assert.Equal(t, int64(10), line.UnitPrice())
		assert.Equal(t, 2, line.Quantity())
		assert.Equal(t, int64(20), line.Subtotal())
		assert.Equal(t, 3, item.AvailableStock())
	})

	t.Run("reservation down to zero succeeds", func(t *testing.T) {
		assembler := NewOrderAssembler()
		item := newCatalogItem(t, 2, true)

		_, err := assembler.Assemble(item, 2)

		require.NoError(t, err)
		assert.Equal(t, 0, item.AvailableStock())
	})

	t.Run("insufficient stock leaves the item untouched", func(t *testing.T) {
		assembler := NewOrderAssembler()
		item := newCatalogItem(t, 1, true)

		_, err := assembler.Assemble(item, 2)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, 1, item.AvailableStock())
	})

	t.Run("inactive item rejects reservation", func(t *testing.T) {
		assembler := NewOrderAssembler()
		item := newCatalogItem(t, 5, false)

		_, err := assembler.Assemble(item, 1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, 5, item.AvailableStock())
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		assembler := NewOrderAssembler()
		item := newCatalogItem(t, 5, true)

		_, err := assembler.Assemble(item, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 5, item.AvailableStock())
	})

	t.Run("unconstructed item is rejected", func(t *testing.T) {
		assembler := NewOrderAssembler()

		_, err := assembler.Assemble(&menu.Item{}, 1)

		require.Error(t, err)
		require.ErrorIs(t, err, menu.ErrItemIsNotConstructed)
	})
}
