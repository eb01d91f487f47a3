package state

import "sync"

// defaultBuffer is the per-subscriber channel capacity. When a subscriber
// falls this far behind, the oldest pending value is dropped so the newest
// is always deliverable.
const defaultBuffer = 16

// Cell is a current-value broadcast holder. Get returns the value now,
// Set replaces it and notifies every live subscriber in registration
// order, and Subscribe replays the latest value to the new subscriber
// before any subsequent change.
//
// All methods are safe for concurrent use. Publishers never block: a
// subscriber that stops draining its channel loses intermediate values
// but is guaranteed to observe the newest one.
type Cell[T any] struct {
	mu     sync.Mutex
	value  T
	subs   []*subscription[T]
	closed bool
}

type subscription[T any] struct {
	ch   chan T
	gone bool
}

// NewCell returns a cell seeded with initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value without blocking.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the current value and notifies all subscribers. The value
// replacement and the notification pass happen under one lock, so no
// reader can observe a half-applied update.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.value = v
	c.broadcast(v)
}

// Update applies fn to the current value and publishes the result as one
// atomic read-modify-write. It returns the published value.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.value
	}
	c.value = fn(c.value)
	c.broadcast(c.value)
	return c.value
}

// Subscribe registers a new subscriber and returns its delivery channel
// together with a cancel function. The channel already contains the
// current value at registration time. Cancel is idempotent and closes
// the channel.
func (c *Cell[T]) Subscribe() (<-chan T, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub := &subscription[T]{ch: make(chan T, defaultBuffer)}
	if c.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}

	sub.ch <- c.value
	c.subs = append(c.subs, sub)

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub.gone {
			return
		}
		sub.gone = true
		for i, s := range c.subs {
			if s == sub {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
		close(sub.ch)
	}
	return sub.ch, cancel
}

// Close tears the cell down: every subscriber channel is closed and
// further Set/Update calls become no-ops. The last value remains readable
// through Get.
func (c *Cell[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for _, sub := range c.subs {
		sub.gone = true
		close(sub.ch)
	}
	c.subs = nil
}

// broadcast delivers v to every subscriber, dropping the oldest pending
// value when a buffer is full. Caller holds c.mu.
func (c *Cell[T]) broadcast(v T) {
	for _, sub := range c.subs {
		for {
			select {
			case sub.ch <- v:
			default:
				// Buffer full: evict the oldest value and retry so the
				// newest is never lost.
				select {
				case <-sub.ch:
				default:
				}
				continue
			}
			break
		}
	}
}
