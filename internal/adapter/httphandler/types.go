package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/carousel"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID              int64            `json:"id"`
		Name            string           `json:"name"`
		Price           decimal.Decimal  `json:"price"`
		OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
		Rating          float64          `json:"rating"`
		ReviewCount     int              `json:"review_count"`
		ImageRef        string           `json:"image_ref"`
		Category        string           `json:"category"`
		IsNew           bool             `json:"is_new"`
		IsTrending      bool             `json:"is_trending"`
		DiscountPercent *int             `json:"discount_percent,omitempty"`
		Description     string           `json:"description"`
		Features        []string         `json:"features"`
		StockCount      int              `json:"stock_count"`
		Brand           string           `json:"brand"`
		Colors          []string         `json:"colors"`
		IsFavorite      bool             `json:"is_favorite"`
		IsCompared      bool             `json:"is_compared"`
	}

	Criteria struct {
		SearchText string          `json:"search_text"`
		Category   string          `json:"category"`
		PriceMin   decimal.Decimal `json:"price_min"`
		PriceMax   decimal.Decimal `json:"price_max"`
		Brands     []string        `json:"brands"`
		MinRating  float64         `json:"min_rating"`
		Sort       string          `json:"sort"`
	}

	CartLine struct {
		ProductID int64           `json:"product_id"`
		Name      string          `json:"name"`
		Color     string          `json:"color,omitempty"`
		Quantity  int             `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unit_price"`
		Subtotal  decimal.Decimal `json:"subtotal"`
	}

	Cart struct {
		Lines     []CartLine      `json:"lines"`
		ItemCount int             `json:"item_count"`
		Total     decimal.Decimal `json:"total"`
	}

	Notification struct {
		ID        uint64    `json:"id"`
		Message   string    `json:"message"`
		Severity  string    `json:"severity"`
		CreatedAt time.Time `json:"created_at"`
	}

	Facets struct {
		Categories []string        `json:"categories"`
		Brands     []string        `json:"brands"`
		PriceMin   decimal.Decimal `json:"price_min"`
		PriceMax   decimal.Decimal `json:"price_max"`
	}

	View struct {
		Criteria        Criteria       `json:"criteria"`
		Products        []Product      `json:"products"`
		ResultCount     int            `json:"result_count"`
		Cart            Cart           `json:"cart"`
		Favorites       []Product      `json:"favorites"`
		Compare         []Product      `json:"compare"`
		CompareCapacity int            `json:"compare_capacity"`
		Notifications   []Notification `json:"notifications"`
		Facets          Facets         `json:"facets"`
	}

	Slide struct {
		Index    int    `json:"index"`
		Count    int    `json:"count"`
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		ImageRef string `json:"image_ref"`
		CTA      string `json:"cta"`
		Badge    string `json:"badge,omitempty"`
	}
)

type (
	CategoryRequest struct {
		Category string `json:"category"`
	}

	SearchRequest struct {
		Text string `json:"text"`
	}

	PriceMaxRequest struct {
		PriceMax *decimal.Decimal `json:"price_max"`
	}

	BrandsRequest struct {
		Brands []string `json:"brands"`
	}

	BrandRequest struct {
		Brand string `json:"brand"`
	}

	MinRatingRequest struct {
		MinRating float64 `json:"min_rating"`
	}

	SortRequest struct {
		Sort string `json:"sort"`
	}

	CartItemRequest struct {
		ProductID int64  `json:"product_id"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
	}
)

func toView(v service.View) View {
	out := View{
		Criteria: Criteria{
			SearchText: v.Criteria.SearchText,
			Category:   v.Criteria.Category,
			PriceMin:   v.Criteria.Price.Min,
			PriceMax:   v.Criteria.Price.Max,
			Brands:     nonNil(v.Criteria.Brands),
			MinRating:  v.Criteria.MinRating,
			Sort:       string(v.Criteria.Sort),
		},
		Products:        toProducts(v, v.Products),
		ResultCount:     v.ResultCount(),
		Favorites:       toProducts(v, v.Favorites),
		Compare:         toProducts(v, v.Compare),
		CompareCapacity: v.CompareCapacity,
		Notifications:   make([]Notification, len(v.Notifications)),
		Facets: Facets{
			Categories: nonNil(v.Facets.Categories),
			Brands:     nonNil(v.Facets.Brands),
			PriceMin:   v.Facets.PriceBounds.Min,
			PriceMax:   v.Facets.PriceBounds.Max,
		},
		Cart: Cart{
			Lines:     make([]CartLine, len(v.Cart.Lines)),
			ItemCount: v.Cart.ItemCount,
			Total:     v.Cart.Total,
		},
	}

	for i, l := range v.Cart.Lines {
		out.Cart.Lines[i] = CartLine{
			ProductID: l.ProductID,
			Name:      l.Product.Name,
			Color:     l.Color,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
			Subtotal:  l.Subtotal,
		}
	}

	for i, n := range v.Notifications {
		out.Notifications[i] = Notification{
			ID:        n.ID,
			Message:   n.Message,
			Severity:  string(n.Severity),
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}

func toProducts(v service.View, ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = Product{
			ID:              p.ID,
			Name:            p.Name,
			Price:           p.Price,
			OriginalPrice:   p.OriginalPrice,
			Rating:          p.Rating,
			ReviewCount:     p.ReviewCount,
			ImageRef:        p.ImageRef,
			Category:        p.Category,
			IsNew:           p.IsNew,
			IsTrending:      p.IsTrending,
			DiscountPercent: p.DiscountPercent,
			Description:     p.Description,
			Features:        nonNil(p.Features),
			StockCount:      p.StockCount,
			Brand:           p.Brand,
			Colors:          nonNil(p.Colors),
			IsFavorite:      v.IsFavorite(p.ID),
			IsCompared:      v.IsCompared(p.ID),
		}
	}
	return out
}

func toSlide(idx, count int, s carousel.Slide) Slide {
	return Slide{
		Index:    idx,
		Count:    count,
		Title:    s.Title,
		Subtitle: s.Subtitle,
		ImageRef: s.ImageRef,
		CTA:      s.CTA,
		Badge:    s.Badge,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
