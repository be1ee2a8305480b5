package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/carousel"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
)

var errInvalidID = errors.New("invalid product id")

// A Session is the storefront state a client drives over HTTP.
type Session interface {
	View() service.View
	SetCategory(category string) service.View
	SetSearchText(text string) service.View
	SetPriceMax(v decimal.Decimal) service.View
	SetBrandFilter(brands []string) service.View
	ToggleBrand(brand string) service.View
	SetMinRating(r float64) service.View
	SetSortKey(key domain.SortKey) service.View
	ResetFilters() service.View
	AddToCart(productID int64, color string) service.View
	RemoveFromCart(productID int64, color string) service.View
	SetCartQuantity(productID int64, color string, quantity int) service.View
	ToggleFavorite(productID int64) service.View
	ToggleCompare(productID int64) service.View
	DismissNotification(id uint64) service.View
}

type Carousel interface {
	Current() (idx int, s carousel.Slide, ok bool)
	Next() int
	Prev() int
	Len() int
}

// GET    v1/view                          (200 OK)
// PUT    v1/filters/{field}    JSON       (200 OK, 400 Bad request)
// POST   v1/filters/brands/toggle JSON    (200 OK, 400 Bad request)
// DELETE v1/filters                       (200 OK)
// POST   v1/cart/items         JSON       (200 OK, 400 Bad request)
// PUT    v1/cart/items         JSON       (200 OK, 400 Bad request)
// DELETE v1/cart/items         JSON       (200 OK, 400 Bad request)
// POST   v1/favorites/{id}/toggle         (200 OK, 400 Bad request)
// POST   v1/compare/{id}/toggle           (200 OK, 400 Bad request)
// DELETE v1/notifications/{id}            (200 OK, 400 Bad request)

type SessionHandler struct {
	session Session
}

func RegisterSession(mux *http.ServeMux, session Session) {
	h := SessionHandler{session}
	mux.HandleFunc("GET /v1/view", h.GetView)

	mux.HandleFunc("PUT /v1/filters/category", h.PutCategory)
	mux.HandleFunc("PUT /v1/filters/search", h.PutSearch)
	mux.HandleFunc("PUT /v1/filters/price-max", h.PutPriceMax)
	mux.HandleFunc("PUT /v1/filters/brands", h.PutBrands)
	mux.HandleFunc("POST /v1/filters/brands/toggle", h.ToggleBrand)
	mux.HandleFunc("PUT /v1/filters/min-rating", h.PutMinRating)
	mux.HandleFunc("PUT /v1/filters/sort", h.PutSort)
	mux.HandleFunc("DELETE /v1/filters", h.DeleteFilters)

	mux.HandleFunc("POST /v1/cart/items", h.PostCartItem)
	mux.HandleFunc("PUT /v1/cart/items", h.PutCartItem)
	mux.HandleFunc("DELETE /v1/cart/items", h.DeleteCartItem)

	mux.HandleFunc("POST /v1/favorites/{id}/toggle", h.ToggleFavorite)
	mux.HandleFunc("POST /v1/compare/{id}/toggle", h.ToggleCompare)
	mux.HandleFunc("DELETE /v1/notifications/{id}", h.DeleteNotification)
}

func (h SessionHandler) GetView(w http.ResponseWriter, r *http.Request) {
	writeView(w, "SessionHandler.GetView", h.session.View())
}

func (h SessionHandler) PutCategory(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PutCategory"

	var req CategoryRequest
	if !decodeJSON(w, r, op, &req) {
		return
	}
	writeView(w, op, h.session.SetCategory(req.Category))
}

func (h SessionHandler) PutSearch(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PutSearch"

	var req SearchRequest
	if !decodeJSON(w, r, op, &req) {
		return
	}
	writeView(w, op, h.session.SetSearchText(req.Text))
}

func (h SessionHandler) PutPriceMax(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PutPriceMax"

	var req PriceMaxRequest
	if !decodeJSON(w, r, op, &req) {
		return
	}
	if req.PriceMax == nil {
		http.Error(w, "price_max is required", http.StatusBadRequest)
		return
	}
	writeView(w, op, h.session.SetPriceMax(*req.PriceMax))
}

func (h SessionHandler) PutBrands(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PutBrands"

	var req BrandsRequest
	if !decodeJSON(w, r, op, &req) {
		return
	}
	writeView(w, op, h.session.SetBrandFilter(req.Brands))
}

func (h SessionHandler) ToggleBrand(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.ToggleBrand"

	var req BrandRequest
	if !decodeJSON(w, r, op, &req) {
		return
	}
	if req.Brand == "" {
		http.Error(w, "brand is required", http.StatusBadRequest)
		return
	}
	writeView(w, op, h.session.ToggleBrand(req.Brand))
}

func (h SessionHandler) PutMinRating(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PutMinRating"

	var req MinRatingRequest
	if !decodeJSON(w, r, op, &req) {
		return
	}
	writeView(w, op, h.session.SetMinRating(req.MinRating))
}

func (h SessionHandler) PutSort(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PutSort"

	var req SortRequest
	if !decodeJSON(w, r, op, &req) {
		return
	}
	writeView(w, op, h.session.SetSortKey(domain.SortKey(req.Sort)))
}

func (h SessionHandler) DeleteFilters(w http.ResponseWriter, r *http.Request) {
	writeView(w, "SessionHandler.DeleteFilters", h.session.ResetFilters())
}

func (h SessionHandler) PostCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostCartItem"

	var req CartItemRequest
	if !decodeCartItem(w, r, op, &req) {
		return
	}
	writeView(w, op, h.session.AddToCart(req.ProductID, req.Color))
}

func (h SessionHandler) PutCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PutCartItem"

	var req CartItemRequest
	if !decodeCartItem(w, r, op, &req) {
		return
	}
	writeView(w, op,
		h.session.SetCartQuantity(req.ProductID, req.Color, req.Quantity))
}

func (h SessionHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.DeleteCartItem"

	var req CartItemRequest
	if !decodeCartItem(w, r, op, &req) {
		return
	}
	writeView(w, op, h.session.RemoveFromCart(req.ProductID, req.Color))
}

func (h SessionHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.ToggleFavorite"

	id, ok := pathID(w, r, op)
	if !ok {
		return
	}
	writeView(w, op, h.session.ToggleFavorite(id))
}

func (h SessionHandler) ToggleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.ToggleCompare"

	id, ok := pathID(w, r, op)
	if !ok {
		return
	}
	writeView(w, op, h.session.ToggleCompare(id))
}

func (h SessionHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.DeleteNotification"
	log := slog.With("op", op)

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		log.Warn("failed to parse notification id", "err", err)
		return
	}
	writeView(w, op, h.session.DismissNotification(id))
}

// GET  v1/carousel       (200 OK, 204 No content)
// POST v1/carousel/next  (200 OK, 204 No content)
// POST v1/carousel/prev  (200 OK, 204 No content)

type CarouselHandler struct {
	carousel Carousel
}

func RegisterCarousel(mux *http.ServeMux, c Carousel) {
	h := CarouselHandler{c}
	mux.HandleFunc("GET /v1/carousel", h.GetSlide)
	mux.HandleFunc("POST /v1/carousel/next", h.NextSlide)
	mux.HandleFunc("POST /v1/carousel/prev", h.PrevSlide)
}

func (h CarouselHandler) GetSlide(w http.ResponseWriter, r *http.Request) {
	h.writeCurrent(w, "CarouselHandler.GetSlide")
}

func (h CarouselHandler) NextSlide(w http.ResponseWriter, r *http.Request) {
	h.carousel.Next()
	h.writeCurrent(w, "CarouselHandler.NextSlide")
}

func (h CarouselHandler) PrevSlide(w http.ResponseWriter, r *http.Request) {
	h.carousel.Prev()
	h.writeCurrent(w, "CarouselHandler.PrevSlide")
}

func (h CarouselHandler) writeCurrent(w http.ResponseWriter, op string) {
	idx, s, ok := h.carousel.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, op, toSlide(idx, h.carousel.Len(), s))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	log := slog.With("op", op)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return false
	}
	return true
}

func decodeCartItem(
	w http.ResponseWriter, r *http.Request, op string, req *CartItemRequest,
) bool {
	if !decodeJSON(w, r, op, req) {
		return false
	}
	if req.ProductID <= 0 {
		http.Error(w, errInvalidID.Error(), http.StatusBadRequest)
		slog.Warn("rejected cart item", "op", op, "productID", req.ProductID)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, errInvalidID.Error(), http.StatusBadRequest)
		slog.Warn("failed to parse product id", "op", op,
			"err", fmt.Errorf("%w: %q", errInvalidID, r.PathValue("id")))
		return 0, false
	}
	return id, true
}

func writeView(w http.ResponseWriter, op string, v service.View) {
	writeJSON(w, op, toView(v))
}

func writeJSON(w http.ResponseWriter, op string, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
