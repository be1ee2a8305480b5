package domain

import (
	"slices"
	"strings"
)

type SortKey string

const (
	SortFeatured       SortKey = "featured"
	SortPriceAsc       SortKey = "price-asc"
	SortPriceDesc      SortKey = "price-desc"
	SortRatingDesc     SortKey = "rating-desc"
	SortNewestFirst    SortKey = "newest-first"
	SortPopularityDesc SortKey = "popularity-desc"
)

// Labels used by the storefront sort dropdown.
var sortAliases = map[string]SortKey{
	"price-low":  SortPriceAsc,
	"price-high": SortPriceDesc,
	"rating":     SortRatingDesc,
	"newest":     SortNewestFirst,
	"popular":    SortPopularityDesc,
}

// ParseSortKey maps a sort name or dropdown label to a SortKey.
// Unknown names fall back to SortFeatured.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case SortFeatured, SortPriceAsc, SortPriceDesc,
		SortRatingDesc, SortNewestFirst, SortPopularityDesc:
		return k
	}
	if alias, ok := sortAliases[string(k)]; ok {
		return alias
	}
	return SortFeatured
}

// Criteria holds every user-adjustable parameter deciding which products
// are visible and in what order.
type Criteria struct {
	SearchText string
	Category   string
	Price      PriceRange
	Brands     []string
	MinRating  float64
	Sort       SortKey
}

// DefaultCriteria returns unrestricted criteria over the given price range.
func DefaultCriteria(price PriceRange) Criteria {
	return Criteria{
		Category: AllCategories,
		Price:    price,
		Sort:     SortFeatured,
	}
}

func (c Criteria) HasBrand(brand string) bool {
	return slices.Contains(c.Brands, brand)
}

// Clone returns a copy that shares no memory with c.
func (c Criteria) Clone() Criteria {
	c.Brands = slices.Clone(c.Brands)
	return c
}
