package pipeline

import (
	"sync"

	"logdeck/internal/domain"
)

const defaultCapacity = 2048

// Channel is the bounded conduit between arbitrarily many producers and
// the single display consumer. Send never blocks beyond a short critical
// section: when the buffer is full the oldest undelivered event is evicted
// to admit the new one, keeping the display biased toward recency. A full
// channel is a normal condition, not an error.
type Channel struct {
	mu      sync.Mutex
	buffer  []domain.Event
	size    int
	start   int // index of the oldest buffered event
	count   int
	closed  bool
	dropped uint64
}

// NewChannel creates a channel with the specified capacity.
func NewChannel(capacity int) *Channel {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Channel{
		buffer: make([]domain.Event, capacity),
		size:   capacity,
	}
}

// Send enqueues an event. At capacity the oldest undelivered event is
// evicted. After Close the event is accepted and silently discarded so a
// producer racing shutdown never observes a fault.
func (c *Channel) Send(e domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.count == c.size {
		c.start = (c.start + 1) % c.size
		c.count--
		c.dropped++
	}
	c.buffer[(c.start+c.count)%c.size] = e
	c.count++
}

// Receive returns the next event in arrival order, or false when nothing
// is buffered. Buffered events remain receivable after Close.
func (c *Channel) Receive() (domain.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.count == 0 {
		return domain.Event{}, false
	}
	e := c.buffer[c.start]
	c.buffer[c.start] = domain.Event{}
	c.start = (c.start + 1) % c.size
	c.count--
	return e, true
}

// Close marks the channel closed. Idempotent; subsequent sends are
// discarded and Receive drains whatever is still buffered.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Closed reports whether Close has been called.
func (c *Channel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Len returns the number of buffered, undelivered events.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Dropped returns how many events were evicted under overload.
func (c *Channel) Dropped() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}
