package domain

import (
	"time"

	"github.com/google/uuid"
)

type ActivityKind string

const (
	ActivitySearch         ActivityKind = "search"
	ActivityCartAdd        ActivityKind = "cart_add"
	ActivityCartRemove     ActivityKind = "cart_remove"
	ActivityCartQuantity   ActivityKind = "cart_quantity"
	ActivityFavoriteToggle ActivityKind = "favorite_toggle"
	ActivityCompareToggle  ActivityKind = "compare_toggle"
)

// An ActivityEvent describes one user action in a storefront session.
// Fields not relevant to Kind are left zero.
type ActivityEvent struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	Kind       ActivityKind
	ProductID  int64
	Color      string
	Quantity   int
	Query      string
	Selected   bool
	OccurredAt time.Time
}
