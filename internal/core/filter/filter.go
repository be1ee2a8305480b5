// Package filter turns a product sequence and criteria into the ordered
// sequence shown to the user. Functions here never mutate their inputs.
package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Visible returns the products matching c, ordered by c.Sort.
// The result is a new slice and is never nil.
func Visible(products []domain.Product, c domain.Criteria) []domain.Product {
	query := strings.ToLower(c.SearchText)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if match(p, c, query) {
			out = append(out, p)
		}
	}

	sortProducts(out, c.Sort)
	return out
}

// Match reports whether p satisfies every predicate of c.
func Match(p domain.Product, c domain.Criteria) bool {
	return match(p, c, strings.ToLower(c.SearchText))
}

func match(p domain.Product, c domain.Criteria, query string) bool {
	return matchCategory(p, c.Category) &&
		matchSearch(p, query) &&
		c.Price.Contains(p.Price) &&
		matchBrand(p, c.Brands) &&
		p.Rating >= c.MinRating
}

func matchCategory(p domain.Product, category string) bool {
	return category == domain.AllCategories || p.Category == category
}

func matchSearch(p domain.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

func matchBrand(p domain.Product, brands []string) bool {
	return len(brands) == 0 || slices.Contains(brands, p.Brand)
}

func sortProducts(ps []domain.Product, key domain.SortKey) {
	cmpFn := comparator(key)
	if cmpFn == nil {
		return
	}
	slices.SortStableFunc(ps, cmpFn)
}

func comparator(key domain.SortKey) func(a, b domain.Product) int {
	switch key {
	case domain.SortPriceAsc:
		return func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case domain.SortPriceDesc:
		return func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case domain.SortRatingDesc:
		return func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case domain.SortNewestFirst:
		return func(a, b domain.Product) int { return cmp.Compare(rank(b.IsNew), rank(a.IsNew)) }
	case domain.SortPopularityDesc:
		return func(a, b domain.Product) int { return cmp.Compare(b.ReviewCount, a.ReviewCount) }
	default:
		return nil
	}
}

func rank(b bool) int {
	if b {
		return 1
	}
	return 0
}
