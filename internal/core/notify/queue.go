// Package notify implements the transient message log shown after
// selection changes. Every notification removes itself a fixed delay after
// creation, whether or not it was ever displayed.
package notify

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const DefaultTTL = 3 * time.Second

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) port.Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock port.Clock = systemClock{}

// Queue is safe for concurrent use: expiry callbacks run on timer goroutines.
type Queue struct {
	mu     sync.Mutex
	clock  port.Clock
	ttl    time.Duration
	seq    uint64
	items  []domain.Notification
	timers map[uint64]port.Timer
}

// NewQueue returns a queue expiring entries ttl after creation.
// A non-positive ttl selects DefaultTTL; a nil clock selects SystemClock.
func NewQueue(clock port.Clock, ttl time.Duration) *Queue {
	if clock == nil {
		clock = SystemClock
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		clock:  clock,
		ttl:    ttl,
		timers: make(map[uint64]port.Timer),
	}
}

// Push appends a notification and schedules its removal.
func (q *Queue) Push(message string, severity domain.Severity) domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	n := domain.Notification{
		ID:        q.seq,
		Message:   message,
		Severity:  severity,
		CreatedAt: q.clock.Now(),
	}
	q.items = append(q.items, n)

	id := n.ID
	q.timers[id] = q.clock.AfterFunc(q.ttl, func() { q.expire(id) })
	return n
}

// expire removes id together with every older entry already due, so entries
// leave in creation order even when wall clock timers fire out of order.
func (q *Queue) expire(id uint64) {
	const op = "Queue.expire"

	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.timers, id)
	now := q.clock.Now()
	q.items = slices.DeleteFunc(q.items, func(n domain.Notification) bool {
		if n.ID != id && n.CreatedAt.Add(q.ttl).After(now) {
			return false
		}
		if t, ok := q.timers[n.ID]; ok {
			t.Stop()
			delete(q.timers, n.ID)
		}
		slog.Debug("notification expired", "op", op, "id", n.ID)
		return true
	})
}

// Dismiss removes a notification before it expires.
func (q *Queue) Dismiss(id uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	return q.drop(id)
}

func (q *Queue) drop(id uint64) bool {
	n := len(q.items)
	q.items = slices.DeleteFunc(q.items, func(v domain.Notification) bool {
		return v.ID == id
	})
	return len(q.items) != n
}

// List returns live notifications in creation order.
func (q *Queue) List() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items)
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close cancels pending expiry timers and empties the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
}
