// Package clock supplies the timestamps stored on tasks, descriptions and comments.
package clock

import (
	"sync"
	"time"
)

// Resolution is the precision timestamps are stored and rendered with.
const Resolution = time.Microsecond

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Monotonic is a UTC clock truncated to Resolution whose readings are
// strictly increasing within a process. Two writes in the same microsecond
// still receive distinct, ordered timestamps.
type Monotonic struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewMonotonic returns a Monotonic clock backed by time.Now.
func NewMonotonic() *Monotonic {
	return &Monotonic{now: time.Now}
}

// Now returns a reading strictly after every previous reading.
func (m *Monotonic) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.now().UTC().Truncate(Resolution)
	if !t.After(m.last) {
		t = m.last.Add(Resolution)
	}
	m.last = t
	return t
}

// System is the process-wide clock used when no other clock is injected.
var System Clock = NewMonotonic()
