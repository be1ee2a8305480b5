package store

import (
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

// idSet is an insertion-ordered set of product ids.
type idSet struct {
	ids []int64
}

func (s *idSet) contains(id int64) bool {
	return slices.Contains(s.ids, id)
}

func (s *idSet) add(id int64) {
	s.ids = append(s.ids, id)
}

func (s *idSet) remove(id int64) {
	s.ids = slices.DeleteFunc(s.ids, func(v int64) bool { return v == id })
}

func (s *idSet) list() []int64 {
	return slices.Clone(s.ids)
}

// Favorites is the wishlist.
type Favorites struct {
	set idSet
}

func NewFavorites() *Favorites {
	return &Favorites{}
}

// Toggle flips membership of id and reports whether it was added.
func (f *Favorites) Toggle(id int64) (added bool) {
	if f.set.contains(id) {
		f.set.remove(id)
		return false
	}
	f.set.add(id)
	return true
}

func (f *Favorites) Contains(id int64) bool { return f.set.contains(id) }
func (f *Favorites) IDs() []int64           { return f.set.list() }
func (f *Favorites) Len() int               { return len(f.set.ids) }

// DefaultCompareCapacity is the number of products that can be compared
// side by side.
const DefaultCompareCapacity = 3

// Compare is a capacity-bounded set. Adding to a full set is rejected;
// existing members are never evicted.
type Compare struct {
	set      idSet
	capacity int
}

// NewCompare returns a compare list holding at most capacity products.
// A non-positive capacity selects DefaultCompareCapacity.
func NewCompare(capacity int) *Compare {
	if capacity <= 0 {
		capacity = DefaultCompareCapacity
	}
	return &Compare{capacity: capacity}
}

func (c *Compare) Toggle(id int64) domain.CompareResult {
	if c.set.contains(id) {
		c.set.remove(id)
		return domain.CompareRemoved
	}
	if len(c.set.ids) >= c.capacity {
		return domain.CompareRejected
	}
	c.set.add(id)
	return domain.CompareAdded
}

func (c *Compare) Contains(id int64) bool { return c.set.contains(id) }
func (c *Compare) IDs() []int64           { return c.set.list() }
func (c *Compare) Len() int               { return len(c.set.ids) }
func (c *Compare) Capacity() int          { return c.capacity }
