// Package catalog holds the read-only product set browsed in a session
// and the facets derived from it.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateID     = errors.New("duplicate product id")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmpty           = errors.New("catalog is empty")
)

// Catalog is immutable after New returns.
type Catalog struct {
	products   []domain.Product
	index      map[int64]int
	categories []string
	brands     []string
}

// New validates products and builds the catalog. Categories lists the
// known category values in display order, without the "All" sentinel.
func New(products []domain.Product, categories []string) (*Catalog, error) {
	const op = "catalog.New"

	if len(products) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmpty)
	}

	c := &Catalog{
		products:   cloneProducts(products),
		index:      make(map[int64]int, len(products)),
		categories: slices.Clone(categories),
	}

	for i, p := range c.products {
		if err := validate(p, categories); err != nil {
			return nil, fmt.Errorf("%s: product %d: %w", op, p.ID, err)
		}
		if _, ok := c.index[p.ID]; ok {
			return nil, fmt.Errorf("%s: product %d: %w", op, p.ID, ErrDuplicateID)
		}
		c.index[p.ID] = i
		if !slices.Contains(c.brands, p.Brand) {
			c.brands = append(c.brands, p.Brand)
		}
	}
	return c, nil
}

func validate(p domain.Product, categories []string) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: id must be positive", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	case p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price):
		return fmt.Errorf("%w: original price below price", ErrInvalidProduct)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: rating out of range", ErrInvalidProduct)
	case p.ReviewCount < 0 || p.StockCount < 0:
		return fmt.Errorf("%w: negative count", ErrInvalidProduct)
	case len(p.Colors) == 0:
		return fmt.Errorf("%w: no color options", ErrInvalidProduct)
	}

	seen := make(map[string]struct{}, len(p.Colors))
	for _, color := range p.Colors {
		if _, ok := seen[color]; ok {
			return fmt.Errorf("%w: duplicate color %q", ErrInvalidProduct, color)
		}
		seen[color] = struct{}{}
	}

	if !slices.Contains(categories, p.Category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, p.Category)
	}
	return nil
}

// Products returns the products in catalog order. The result shares no
// memory with the catalog.
func (c *Catalog) Products() []domain.Product {
	return cloneProducts(c.products)
}

func (c *Catalog) Product(id int64) (domain.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i].Clone(), true
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Categories returns the "All" sentinel followed by the known categories.
func (c *Catalog) Categories() []string {
	return append([]string{domain.AllCategories}, c.categories...)
}

// Brands returns distinct brands in order of first appearance.
func (c *Catalog) Brands() []string {
	return slices.Clone(c.brands)
}

// PriceBounds spans the catalog floor (zero) up to the highest price.
func (c *Catalog) PriceBounds() domain.PriceRange {
	maxPrice := decimal.Zero
	for _, p := range c.products {
		if p.Price.GreaterThan(maxPrice) {
			maxPrice = p.Price
		}
	}
	return domain.PriceRange{Min: decimal.Zero, Max: maxPrice}
}

// Select returns the products whose ids are in ids, in catalog order.
func (c *Catalog) Select(ids []int64) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, p := range c.products {
		if slices.Contains(ids, p.ID) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func cloneProducts(ps []domain.Product) []domain.Product {
	out := make([]domain.Product, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}
