package catalogfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Embedded(t *testing.T) {
	products, categories, err := New("").LoadCatalog(t.Context())
	require.NoError(t, err)

	assert.Len(t, products, 8)
	assert.Equal(t, []string{"Electronics", "Fashion", "Home", "Sports"}, categories)

	first := products[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "AirPods Pro Max Wireless", first.Name)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("549.99")))
	require.NotNil(t, first.OriginalPrice)
	assert.True(t, first.OriginalPrice.Equal(decimal.RequireFromString("699.99")))
	require.NotNil(t, first.DiscountPercent)
	assert.Equal(t, 21, *first.DiscountPercent)
	assert.Equal(t, "Apple", first.Brand)
	assert.Len(t, first.Colors, 5)

	c, err := catalog.New(products, categories)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Len())
}

func TestSource_File(t *testing.T) {
	doc := `
categories: [Home]
products:
  - id: 10
    name: Lamp
    price: 12.50
    rating: 4
    reviews: 3
    category: Home
    brand: Lumo
    colors: [White]
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	products, categories, err := New(path).LoadCatalog(t.Context())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, []string{"Home"}, categories)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("12.5")))
	assert.Nil(t, products[0].OriginalPrice)
	assert.Nil(t, products[0].DiscountPercent)
}

func TestSource_Errors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, _, err := New(filepath.Join(t.TempDir(), "nope.yaml")).LoadCatalog(t.Context())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("BadPrice", func(t *testing.T) {
		_, _, err := Decode([]byte("products:\n  - id: 1\n    price: cheap\n"))
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, _, err := Decode([]byte("products:\n  - id: 1\n    colour: red\n"))
		assert.Error(t, err)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, _, err := New("").LoadCatalog(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
