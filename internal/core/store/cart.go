// Package store holds the mutable selection state of a session: the cart,
// the wishlist and the compare list. Stores reference products by id only
// and are not safe for concurrent use; the owning session serialises access.
package store

import (
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Cart keeps one line per (product, color) key in insertion order.
type Cart struct {
	lines []domain.CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add increments the line for key or creates it with quantity 1.
// It reports whether the line already existed.
func (c *Cart) Add(key domain.CartKey) (updated bool) {
	if i := c.find(key); i >= 0 {
		c.lines[i].Quantity++
		return true
	}
	c.lines = append(c.lines, domain.CartLine{CartKey: key, Quantity: 1})
	return false
}

// SetQuantity overwrites the line quantity. A non-positive quantity
// removes the line. Setting a quantity for a missing line is a no-op.
func (c *Cart) SetQuantity(key domain.CartKey, quantity int) {
	if quantity <= 0 {
		c.Remove(key)
		return
	}
	if i := c.find(key); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// Remove deletes the line for key and reports whether it was present.
func (c *Cart) Remove(key domain.CartKey) (removed bool) {
	i := c.find(key)
	if i < 0 {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return true
}

func (c *Cart) Line(key domain.CartKey) (domain.CartLine, bool) {
	if i := c.find(key); i >= 0 {
		return c.lines[i], true
	}
	return domain.CartLine{}, false
}

func (c *Cart) Lines() []domain.CartLine {
	return slices.Clone(c.lines)
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) find(key domain.CartKey) int {
	return slices.IndexFunc(c.lines, func(l domain.CartLine) bool {
		return l.CartKey == key
	})
}
