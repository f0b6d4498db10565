package menu_test

import (
	"testing"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/menu"
	"canteen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, stock int, active bool) *menu.Item {
	t.Helper()
	item, err := menu.NewItem(kernel.NewUUID(), "Chai", "masala chai", menu.CategoryBeverages, 10, stock, true, active)
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("should create valid item", func(t *testing.T) {
		item := newTestItem(t, 100, true)

		require.NoError(t, item.Validate())
		assert.Equal(t, "Chai", item.Name())
		assert.Equal(t, int64(10), item.Price())
		assert.Equal(t, 100, item.AvailableStock())
		assert.True(t, item.IsActive())
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		var id kernel.UUID

		item, err := menu.NewItem(id, "Chai", "", menu.CategoryBeverages, 10, 100, true, true)

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		item, err := menu.NewItem(kernel.NewUUID(), "", "", menu.CategorySnacks, 10, 100, true, true)

		require.Error(t, err)
		assert.Nil(t, item)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with negative price", func(t *testing.T) {
		item, err := menu.NewItem(kernel.NewUUID(), "Chai", "", menu.CategoryBeverages, -1, 100, true, true)

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("should fail with negative stock", func(t *testing.T) {
		item, err := menu.NewItem(kernel.NewUUID(), "Chai", "", menu.CategoryBeverages, 10, -1, true, true)

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("should fail with unknown category", func(t *testing.T) {
		item, err := menu.NewItem(kernel.NewUUID(), "Chai", "", menu.Category("sides"), 10, 100, true, true)

		require.Error(t, err)
		assert.Nil(t, item)
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var item menu.Item

		require.ErrorIs(t, item.Validate(), menu.ErrItemIsNotConstructed)
	})
}

func TestItem_Reserve(t *testing.T) {
	t.Run("decrements stock", func(t *testing.T) {
		item := newTestItem(t, 100, true)

		require.NoError(t, item.Reserve(3))

		assert.Equal(t, 97, item.AvailableStock())
	})

	t.Run("rejects shortfall whole, never caps", func(t *testing.T) {
		item := newTestItem(t, 2, true)

		err := item.Reserve(5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "requested 5, available 2")
		assert.Equal(t, 2, item.AvailableStock())
	})

	t.Run("rejects inactive item", func(t *testing.T) {
		item := newTestItem(t, 100, false)

		err := item.Reserve(1)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "unavailable")
		assert.Equal(t, 100, item.AvailableStock())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := newTestItem(t, 100, true)

		require.ErrorIs(t, item.Reserve(0), errs.ErrValueIsOutOfRange)
		assert.Equal(t, 100, item.AvailableStock())
	})

	t.Run("can drain stock to zero", func(t *testing.T) {
		item := newTestItem(t, 2, true)

		require.NoError(t, item.Reserve(2))

		assert.Equal(t, 0, item.AvailableStock())
		require.ErrorIs(t, item.Reserve(1), errs.ErrConflict)
	})
}

func TestCategoryFromString(t *testing.T) {
	for _, s := range []string{"snacks", "drinks", "meals", "desserts", "beverages"} {
		c, err := menu.CategoryFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(c))
	}

	_, err := menu.CategoryFromString("frozen")
	require.Error(t, err)
}
