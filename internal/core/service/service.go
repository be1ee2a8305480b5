package service

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/filter"
	"github.com/niksmo/storefront/internal/core/notify"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
	"github.com/shopspring/decimal"
)

const maxRating = 5

type Opt func(*sessionOpts)

type sessionOpts struct {
	compareCapacity int
	notificationTTL time.Duration
	priceCeiling    decimal.Decimal
	clock           port.Clock
	recorder        port.ActivityRecorder
}

func CompareCapacityOpt(n int) Opt {
	return func(o *sessionOpts) { o.compareCapacity = n }
}

func NotificationTTLOpt(d time.Duration) Opt {
	return func(o *sessionOpts) { o.notificationTTL = d }
}

// PriceCeilingOpt sets the upper end of the price slider. Zero keeps the
// highest catalog price.
func PriceCeilingOpt(v decimal.Decimal) Opt {
	return func(o *sessionOpts) { o.priceCeiling = v }
}

func ClockOpt(c port.Clock) Opt {
	return func(o *sessionOpts) { o.clock = c }
}

func ActivityRecorderOpt(r port.ActivityRecorder) Opt {
	return func(o *sessionOpts) { o.recorder = r }
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.ActivityEvent) {}

// Session owns the filter criteria and selection stores of one shopper.
// All methods are safe for concurrent use and serialised; every mutator
// returns the view recomputed after the change.
type Session struct {
	mu        sync.Mutex
	id        uuid.UUID
	catalog   *catalog.Catalog
	defaults  domain.Criteria
	criteria  domain.Criteria
	cart      *store.Cart
	favorites *store.Favorites
	compare   *store.Compare
	notes     *notify.Queue
	clock     port.Clock
	recorder  port.ActivityRecorder
}

func New(c *catalog.Catalog, opts ...Opt) *Session {
	options := sessionOpts{clock: notify.SystemClock, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&options)
	}
	if options.clock == nil {
		options.clock = notify.SystemClock
	}
	if options.recorder == nil {
		options.recorder = nopRecorder{}
	}

	bounds := c.PriceBounds()
	if options.priceCeiling.IsPositive() {
		bounds.Max = options.priceCeiling
	}
	defaults := domain.DefaultCriteria(bounds)

	return &Session{
		id:        uuid.New(),
		catalog:   c,
		defaults:  defaults,
		criteria:  defaults.Clone(),
		cart:      store.NewCart(),
		favorites: store.NewFavorites(),
		compare:   store.NewCompare(options.compareCapacity),
		notes:     notify.NewQueue(options.clock, options.notificationTTL),
		clock:     options.clock,
		recorder:  options.recorder,
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Close cancels pending notification timers.
func (s *Session) Close() {
	s.notes.Close()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	return View{
		Criteria:        s.criteria.Clone(),
		Products:        filter.Visible(s.catalog.Products(), s.criteria),
		Cart:            Summarize(s.catalog, s.cart.Lines()),
		Favorites:       s.catalog.Select(s.favorites.IDs()),
		Compare:         s.catalog.Select(s.compare.IDs()),
		CompareCapacity: s.compare.Capacity(),
		Notifications:   s.notes.List(),
		Facets: Facets{
			Categories:  s.catalog.Categories(),
			Brands:      s.catalog.Brands(),
			PriceBounds: s.defaults.Price,
		},
	}
}

// SetCategory selects a category or "All". Unknown categories are ignored.
func (s *Session) SetCategory(category string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.catalog.Categories(), category) {
		s.criteria.Category = category
	}
	return s.view()
}

func (s *Session) SetSearchText(text string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria.SearchText = text
	if text != "" {
		s.record(domain.ActivityEvent{Kind: domain.ActivitySearch, Query: text})
	}
	return s.view()
}

// SetPriceMax moves the upper price bound, clamped to the slider range.
func (s *Session) SetPriceMax(v decimal.Decimal) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	bounds := s.defaults.Price
	switch {
	case v.LessThan(bounds.Min):
		v = bounds.Min
	case v.GreaterThan(bounds.Max):
		v = bounds.Max
	}
	s.criteria.Price.Max = v
	return s.view()
}

// SetBrandFilter replaces the allowed brand set. Empty means any brand.
func (s *Session) SetBrandFilter(brands []string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make([]string, 0, len(brands))
	for _, b := range brands {
		if !slices.Contains(set, b) {
			set = append(set, b)
		}
	}
	s.criteria.Brands = set
	return s.view()
}

// ToggleBrand checks or unchecks one brand in the brand filter.
func (s *Session) ToggleBrand(brand string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.criteria.HasBrand(brand) {
		s.criteria.Brands = slices.DeleteFunc(s.criteria.Brands,
			func(b string) bool { return b == brand })
	} else {
		s.criteria.Brands = append(s.criteria.Brands, brand)
	}
	return s.view()
}

func (s *Session) SetMinRating(r float64) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria.MinRating = min(max(r, 0), maxRating)
	return s.view()
}

func (s *Session) SetSortKey(key domain.SortKey) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria.Sort = domain.ParseSortKey(string(key))
	return s.view()
}

// ResetFilters restores the default criteria. The sort key is kept, as the
// "clear all filters" action only touches filters.
func (s *Session) ResetFilters() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	sortKey := s.criteria.Sort
	s.criteria = s.defaults.Clone()
	s.criteria.Sort = sortKey
	return s.view()
}

// AddToCart adds one unit of the product in the given color ("" for none).
func (s *Session) AddToCart(productID int64, color string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Product(productID)
	if !ok {
		return s.view()
	}

	key := domain.CartKey{ProductID: productID, Color: color}
	if s.cart.Add(key) {
		s.notify(fmt.Sprintf("Updated %s quantity in cart", p.Name), domain.SeveritySuccess)
	} else {
		s.notify(fmt.Sprintf("Added %s to cart", p.Name), domain.SeveritySuccess)
	}

	line, _ := s.cart.Line(key)
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityCartAdd,
		ProductID: productID,
		Color:     color,
		Quantity:  line.Quantity,
	})
	return s.view()
}

func (s *Session) RemoveFromCart(productID int64, color string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeFromCart(productID, color)
	return s.view()
}

func (s *Session) removeFromCart(productID int64, color string) {
	if _, ok := s.catalog.Product(productID); !ok {
		return
	}
	key := domain.CartKey{ProductID: productID, Color: color}
	if s.cart.Remove(key) {
		s.record(domain.ActivityEvent{
			Kind:      domain.ActivityCartRemove,
			ProductID: productID,
			Color:     color,
		})
	}
	s.notify("Item removed from cart", domain.SeverityInfo)
}

// SetCartQuantity overwrites a line quantity; non-positive removes the line.
func (s *Session) SetCartQuantity(productID int64, color string, quantity int) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeFromCart(productID, color)
		return s.view()
	}

	key := domain.CartKey{ProductID: productID, Color: color}
	if _, ok := s.cart.Line(key); ok {
		s.cart.SetQuantity(key, quantity)
		s.record(domain.ActivityEvent{
			Kind:      domain.ActivityCartQuantity,
			ProductID: productID,
			Color:     color,
			Quantity:  quantity,
		})
	}
	return s.view()
}

func (s *Session) ToggleFavorite(productID int64) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Product(productID)
	if !ok {
		return s.view()
	}

	added := s.favorites.Toggle(productID)
	if added {
		s.notify(fmt.Sprintf("Added %s to wishlist", p.Name), domain.SeveritySuccess)
	} else {
		s.notify(fmt.Sprintf("Removed %s from wishlist", p.Name), domain.SeverityInfo)
	}
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityFavoriteToggle,
		ProductID: productID,
		Selected:  added,
	})
	return s.view()
}

func (s *Session) ToggleCompare(productID int64) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Product(productID)
	if !ok {
		return s.view()
	}

	res := s.compare.Toggle(productID)
	switch res {
	case domain.CompareRemoved:
		s.notify("Removed from comparison", domain.SeverityInfo)
	case domain.CompareRejected:
		s.notify(fmt.Sprintf("Maximum %d products can be compared",
			s.compare.Capacity()), domain.SeverityWarning)
		return s.view()
	case domain.CompareAdded:
		s.notify(fmt.Sprintf("Added %s to comparison", p.Name), domain.SeveritySuccess)
	}
	s.record(domain.ActivityEvent{
		Kind:      domain.ActivityCompareToggle,
		ProductID: productID,
		Selected:  res == domain.CompareAdded,
	})
	return s.view()
}

// DismissNotification removes a notification before it expires.
func (s *Session) DismissNotification(id uint64) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes.Dismiss(id)
	return s.view()
}

func (s *Session) notify(message string, severity domain.Severity) {
	const op = "Session.notify"
	n := s.notes.Push(message, severity)
	slog.Debug("notification pushed", "op", op,
		"id", n.ID, "severity", n.Severity, "message", n.Message)
}

func (s *Session) record(evt domain.ActivityEvent) {
	evt.ID = uuid.New()
	evt.SessionID = s.id
	evt.OccurredAt = s.clock.Now()
	s.recorder.Record(evt)
}
