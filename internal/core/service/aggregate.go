package service

import (
	"slices"

	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	CartLineView struct {
		domain.CartLine
		Product  domain.Product
		Subtotal decimal.Decimal
	}

	CartSummary struct {
		Lines     []CartLineView
		ItemCount int
		Total     decimal.Decimal
	}

	Facets struct {
		Categories  []string
		Brands      []string
		PriceBounds domain.PriceRange
	}

	// A View is everything the presentation layer renders after a change.
	View struct {
		Criteria        domain.Criteria
		Products        []domain.Product
		Cart            CartSummary
		Favorites       []domain.Product
		Compare         []domain.Product
		CompareCapacity int
		Notifications   []domain.Notification
		Facets          Facets
	}
)

// Summarize prices cart lines at the current catalog price.
// Lines referring to products missing from the catalog are skipped.
func Summarize(c *catalog.Catalog, lines []domain.CartLine) CartSummary {
	s := CartSummary{
		Lines: make([]CartLineView, 0, len(lines)),
		Total: decimal.Zero,
	}
	for _, l := range lines {
		p, ok := c.Product(l.ProductID)
		if !ok {
			continue
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		s.Lines = append(s.Lines, CartLineView{CartLine: l, Product: p, Subtotal: sub})
		s.ItemCount += l.Quantity
		s.Total = s.Total.Add(sub)
	}
	return s
}

func (v View) ResultCount() int {
	return len(v.Products)
}

func (v View) IsFavorite(id int64) bool {
	return containsProduct(v.Favorites, id)
}

func (v View) IsCompared(id int64) bool {
	return containsProduct(v.Compare, id)
}

func containsProduct(ps []domain.Product, id int64) bool {
	return slices.ContainsFunc(ps, func(p domain.Product) bool { return p.ID == id })
}
