package store

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(id int64, color string) domain.CartKey {
	return domain.CartKey{ProductID: id, Color: color}
}

func TestCart_Add(t *testing.T) {
	t.Run("SameKeyMerges", func(t *testing.T) {
		c := NewCart()

		assert.False(t, c.Add(key(1, "Red")))
		assert.True(t, c.Add(key(1, "Red")))

		require.Equal(t, 1, c.Len())
		line, ok := c.Line(key(1, "Red"))
		require.True(t, ok)
		assert.Equal(t, 2, line.Quantity)
	})

	t.Run("DifferentColorsAreDistinct", func(t *testing.T) {
		c := NewCart()
		c.Add(key(1, "Red"))
		c.Add(key(1, "Blue"))

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, domain.CartLine{CartKey: key(1, "Red"), Quantity: 1}, lines[0])
		assert.Equal(t, domain.CartLine{CartKey: key(1, "Blue"), Quantity: 1}, lines[1])
	})

	t.Run("NoColorIsItsOwnKey", func(t *testing.T) {
		c := NewCart()
		c.Add(key(1, ""))
		c.Add(key(1, "Red"))
		c.Add(key(1, ""))

		assert.Equal(t, 2, c.Len())
		assert.Equal(t, 3, c.ItemCount())
	})
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("Overwrite", func(t *testing.T) {
		c := NewCart()
		c.Add(key(1, "Red"))
		c.SetQuantity(key(1, "Red"), 7)

		line, _ := c.Line(key(1, "Red"))
		assert.Equal(t, 7, line.Quantity)
		assert.Equal(t, 7, c.ItemCount())
	})

	t.Run("ZeroRemoves", func(t *testing.T) {
		c := NewCart()
		c.Add(key(1, "Red"))
		c.Add(key(2, ""))
		c.SetQuantity(key(1, "Red"), 0)

		_, ok := c.Line(key(1, "Red"))
		assert.False(t, ok)
		assert.Equal(t, 1, c.ItemCount())
	})

	t.Run("NegativeRemoves", func(t *testing.T) {
		c := NewCart()
		c.Add(key(1, ""))
		c.SetQuantity(key(1, ""), -3)
		assert.Zero(t, c.Len())
	})

	t.Run("MissingLineIsNoop", func(t *testing.T) {
		c := NewCart()
		c.SetQuantity(key(1, ""), 4)
		assert.Zero(t, c.Len())
	})
}

func TestCart_Remove(t *testing.T) {
	c := NewCart()
	c.Add(key(1, "Red"))
	c.Add(key(1, "Blue"))

	assert.True(t, c.Remove(key(1, "Red")))
	assert.False(t, c.Remove(key(1, "Red")))
	assert.Equal(t, []domain.CartLine{{CartKey: key(1, "Blue"), Quantity: 1}}, c.Lines())
}

func TestCart_LinesIsCopy(t *testing.T) {
	c := NewCart()
	c.Add(key(1, ""))
	lines := c.Lines()
	lines[0].Quantity = 100
	assert.Equal(t, 1, c.ItemCount())
}

func TestFavorites_Toggle(t *testing.T) {
	f := NewFavorites()
	f.Toggle(3)
	before := f.IDs()

	assert.True(t, f.Toggle(7))
	assert.True(t, f.Contains(7))
	assert.False(t, f.Toggle(7))
	assert.False(t, f.Contains(7))

	assert.Equal(t, before, f.IDs())
}

func TestFavorites_InsertionOrder(t *testing.T) {
	f := NewFavorites()
	f.Toggle(5)
	f.Toggle(2)
	f.Toggle(9)
	f.Toggle(2)
	assert.Equal(t, []int64{5, 9}, f.IDs())
	assert.Equal(t, 2, f.Len())
}

func TestCompare_Toggle(t *testing.T) {
	t.Run("CapacityIsHard", func(t *testing.T) {
		c := NewCompare(0)
		require.Equal(t, DefaultCompareCapacity, c.Capacity())

		assert.Equal(t, domain.CompareAdded, c.Toggle(1))
		assert.Equal(t, domain.CompareAdded, c.Toggle(2))
		assert.Equal(t, domain.CompareAdded, c.Toggle(3))
		assert.Equal(t, domain.CompareRejected, c.Toggle(4))

		assert.Equal(t, []int64{1, 2, 3}, c.IDs())
		assert.False(t, c.Contains(4))
	})

	t.Run("RemoveFreesSlot", func(t *testing.T) {
		c := NewCompare(3)
		c.Toggle(1)
		c.Toggle(2)
		c.Toggle(3)

		assert.Equal(t, domain.CompareRemoved, c.Toggle(2))
		assert.Equal(t, domain.CompareAdded, c.Toggle(4))
		assert.Equal(t, []int64{1, 3, 4}, c.IDs())
	})

	t.Run("CustomCapacity", func(t *testing.T) {
		c := NewCompare(1)
		c.Toggle(1)
		assert.Equal(t, domain.CompareRejected, c.Toggle(2))
		assert.Equal(t, 1, c.Len())
	})
}
