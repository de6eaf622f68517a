package display

import "sync"

const defaultScrollback = 1000

// Scrollback is the capacity-bounded history of rendered lines. The
// controller owns it exclusively for writes; readers (status bars, the
// TUI on resize) may snapshot it concurrently. Eviction is FIFO: the
// oldest line makes room for the newest.
type Scrollback struct {
	mu     sync.RWMutex
	buffer []Line
	size   int
	head   int
	count  int
}

// NewScrollback creates a scrollback with the specified capacity.
func NewScrollback(capacity int) *Scrollback {
	if capacity <= 0 {
		capacity = defaultScrollback
	}
	return &Scrollback{
		buffer: make([]Line, capacity),
		size:   capacity,
	}
}

// Append adds a line, evicting the oldest when full.
func (s *Scrollback) Append(line Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buffer[s.head] = line
	s.head = (s.head + 1) % s.size
	if s.count < s.size {
		s.count++
	}
}

// Lines returns all retained lines, oldest first.
func (s *Scrollback) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Line, s.count)
	if s.count < s.size {
		copy(result, s.buffer[:s.count])
	} else {
		copy(result, s.buffer[s.head:])
		copy(result[s.size-s.head:], s.buffer[:s.head])
	}
	return result
}

// Last returns the n most recent lines, oldest first.
func (s *Scrollback) Last(n int) []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > s.count {
		n = s.count
	}
	result := make([]Line, n)
	start := (s.head - n + s.size) % s.size
	for i := 0; i < n; i++ {
		result[i] = s.buffer[(start+i)%s.size]
	}
	return result
}

// Len returns the number of retained lines.
func (s *Scrollback) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Cap returns the configured maximum.
func (s *Scrollback) Cap() int {
	return s.size
}

// Clear empties the scrollback.
func (s *Scrollback) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.head = 0
	s.count = 0
}
