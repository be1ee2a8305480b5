package filter_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/filter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func fullRange() domain.PriceRange {
	return domain.PriceRange{Min: price(0), Max: price(1000)}
}

func ids(ps []domain.Product) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func twoProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Price: price(50), Rating: 4.5, Brand: "A", Category: "Electronics"},
		{ID: 2, Price: price(150), Rating: 3.0, Brand: "B", Category: "Electronics"},
	}
}

func TestVisible_TwoProducts(t *testing.T) {
	ps := twoProducts()

	t.Run("PriceRange", func(t *testing.T) {
		c := domain.DefaultCriteria(domain.PriceRange{Min: price(0), Max: price(100)})
		assert.Equal(t, []int64{1}, ids(filter.Visible(ps, c)))
	})

	t.Run("MinRating", func(t *testing.T) {
		c := domain.DefaultCriteria(fullRange())
		c.MinRating = 4
		assert.Equal(t, []int64{1}, ids(filter.Visible(ps, c)))
	})

	t.Run("BrandSet", func(t *testing.T) {
		c := domain.DefaultCriteria(fullRange())
		c.Brands = []string{"B"}
		assert.Equal(t, []int64{2}, ids(filter.Visible(ps, c)))
	})

	t.Run("Default", func(t *testing.T) {
		c := domain.DefaultCriteria(fullRange())
		assert.Equal(t, []int64{1, 2}, ids(filter.Visible(ps, c)))
	})
}

func TestVisible_Search(t *testing.T) {
	ps := []domain.Product{
		{ID: 1, Name: "Yoga Mat", Brand: "Manduka", Description: "non-slip", Category: "Sports"},
		{ID: 2, Name: "Keyboard", Brand: "Corsair", Description: "RGB backlit", Category: "Electronics"},
		{ID: 3, Name: "Lamp", Brand: "Philips", Description: "wireless charging", Category: "Home"},
	}

	cases := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 2, 3}},
		{"YOGA", []int64{1}},
		{"corsair", []int64{2}},
		{"Wireless", []int64{3}},
		{"ir", []int64{2, 3}},
		{"nothing", []int64{}},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			c := domain.DefaultCriteria(fullRange())
			c.SearchText = tc.query
			assert.Equal(t, tc.want, ids(filter.Visible(ps, c)))
		})
	}
}

func TestVisible_Category(t *testing.T) {
	ps := []domain.Product{
		{ID: 1, Category: "Sports"},
		{ID: 2, Category: "Home"},
		{ID: 3, Category: "Sports"},
	}
	c := domain.DefaultCriteria(fullRange())
	c.Category = "Sports"
	assert.Equal(t, []int64{1, 3}, ids(filter.Visible(ps, c)))
}

func TestVisible_Sort(t *testing.T) {
	ps := []domain.Product{
		{ID: 1, Price: price(30), Rating: 4.1, ReviewCount: 10},
		{ID: 2, Price: price(10), Rating: 4.9, ReviewCount: 300, IsNew: true},
		{ID: 3, Price: price(20), Rating: 4.1, ReviewCount: 200},
		{ID: 4, Price: price(10), Rating: 3.0, ReviewCount: 10, IsNew: true},
	}

	cases := map[domain.SortKey][]int64{
		domain.SortFeatured:       {1, 2, 3, 4},
		domain.SortPriceAsc:       {2, 4, 3, 1},
		domain.SortPriceDesc:      {1, 3, 2, 4},
		domain.SortRatingDesc:     {2, 1, 3, 4},
		domain.SortNewestFirst:    {2, 4, 1, 3},
		domain.SortPopularityDesc: {2, 3, 1, 4},
		domain.SortKey("bogus"):   {1, 2, 3, 4},
	}

	for key, want := range cases {
		t.Run(string(key), func(t *testing.T) {
			c := domain.DefaultCriteria(fullRange())
			c.Sort = key
			assert.Equal(t, want, ids(filter.Visible(ps, c)))
		})
	}
}

func TestVisible_DoesNotMutateInput(t *testing.T) {
	ps := []domain.Product{
		{ID: 1, Price: price(30)},
		{ID: 2, Price: price(10)},
	}
	c := domain.DefaultCriteria(fullRange())
	c.Sort = domain.SortPriceAsc

	got := filter.Visible(ps, c)
	require.Equal(t, []int64{2, 1}, ids(got))
	assert.Equal(t, []int64{1, 2}, ids(ps))
}

func TestVisible_EmptyResult(t *testing.T) {
	c := domain.DefaultCriteria(fullRange())
	c.MinRating = 5

	got := filter.Visible(twoProducts(), c)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

var (
	testBrands     = []string{"A", "B", "C"}
	testCategories = []string{"Electronics", "Fashion", "Home"}
	testWords      = []string{"", "a", "mat", "pro", "B", "x"}
)

func productsGen() *rapid.Generator[[]domain.Product] {
	return rapid.Custom(func(t *rapid.T) []domain.Product {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		ps := make([]domain.Product, n)
		for i := range ps {
			ps[i] = domain.Product{
				ID:          int64(i + 1),
				Name:        rapid.SampledFrom([]string{"Pro Mat", "Lamp", "Bag", "max"}).Draw(t, "name"),
				Description: rapid.SampledFrom([]string{"", "extra", "durable"}).Draw(t, "desc"),
				Price:       price(rapid.Int64Range(0, 600).Draw(t, "price")),
				Rating:      float64(rapid.IntRange(0, 50).Draw(t, "rating")) / 10,
				ReviewCount: rapid.IntRange(0, 5000).Draw(t, "reviews"),
				Category:    rapid.SampledFrom(testCategories).Draw(t, "category"),
				Brand:       rapid.SampledFrom(testBrands).Draw(t, "brand"),
				IsNew:       rapid.Bool().Draw(t, "isNew"),
			}
		}
		return ps
	})
}

func criteriaGen() *rapid.Generator[domain.Criteria] {
	return rapid.Custom(func(t *rapid.T) domain.Criteria {
		category := rapid.SampledFrom(append([]string{domain.AllCategories}, testCategories...)).Draw(t, "category")
		return domain.Criteria{
			SearchText: rapid.SampledFrom(testWords).Draw(t, "search"),
			Category:   category,
			Price: domain.PriceRange{
				Min: price(0),
				Max: price(rapid.Int64Range(0, 600).Draw(t, "max")),
			},
			Brands:    rapid.SliceOfDistinct(rapid.SampledFrom(testBrands), func(s string) string { return s }).Draw(t, "brands"),
			MinRating: float64(rapid.IntRange(0, 5).Draw(t, "minRating")),
			Sort: rapid.SampledFrom([]domain.SortKey{
				domain.SortFeatured, domain.SortPriceAsc, domain.SortPriceDesc,
				domain.SortRatingDesc, domain.SortNewestFirst, domain.SortPopularityDesc,
			}).Draw(t, "sort"),
		}
	})
}

func TestVisible_SoundAndComplete(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ps := productsGen().Draw(t, "products")
		c := criteriaGen().Draw(t, "criteria")

		got := filter.Visible(ps, c)

		seen := make(map[int64]int)
		for _, p := range got {
			if !filter.Match(p, c) {
				t.Fatalf("product %d does not match criteria", p.ID)
			}
			seen[p.ID]++
		}

		for _, p := range ps {
			want := 0
			if filter.Match(p, c) {
				want = 1
			}
			if seen[p.ID] != want {
				t.Fatalf("product %d appears %d times, want %d", p.ID, seen[p.ID], want)
			}
		}
	})
}

func TestVisible_NewestFirstIsStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ps := productsGen().Draw(t, "products")
		c := domain.DefaultCriteria(domain.PriceRange{Min: price(0), Max: price(600)})
		c.Sort = domain.SortNewestFirst

		got := filter.Visible(ps, c)

		var want []int64
		for _, isNew := range []bool{true, false} {
			for _, p := range ps {
				if p.IsNew == isNew {
					want = append(want, p.ID)
				}
			}
		}
		if len(want) == 0 {
			want = []int64{}
		}
		if gotIDs := ids(got); !assert.ObjectsAreEqual(want, gotIDs) {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	})
}
