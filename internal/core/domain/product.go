package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// AllCategories is the category sentinel meaning "no category restriction".
const AllCategories = "All"

type (
	Product struct {
		ID              int64
		Name            string
		Price           decimal.Decimal
		OriginalPrice   *decimal.Decimal
		Rating          float64
		ReviewCount     int
		ImageRef        string
		Category        string
		IsNew           bool
		IsTrending      bool
		DiscountPercent *int
		Description     string
		Features        []string
		StockCount      int
		Brand           string
		Colors          []string
	}

	// A PriceRange is inclusive on both ends.
	PriceRange struct {
		Min decimal.Decimal
		Max decimal.Decimal
	}
)

func (r PriceRange) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(r.Min) && v.LessThanOrEqual(r.Max)
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		p.OriginalPrice = &v
	}
	if p.DiscountPercent != nil {
		v := *p.DiscountPercent
		p.DiscountPercent = &v
	}
	p.Features = slices.Clone(p.Features)
	p.Colors = slices.Clone(p.Colors)
	return p
}
