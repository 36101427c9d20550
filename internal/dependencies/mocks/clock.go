package mocks

import (
	"sync"
	"time"

	"github.com/quizdash/quizdash-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing. Scheduled
// functions never fire on their own; tests trigger them with Fire.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	scheduled   []*mockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.CurrentTime = c.CurrentTime.Add(d)
	c.mu.Unlock()
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.CurrentTime = t
	c.mu.Unlock()
}

// AfterFunc records the scheduled function without running it
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{fn: f, at: c.CurrentTime.Add(d)}
	c.scheduled = append(c.scheduled, t)
	return t
}

// Fire runs every scheduled function that has not been stopped, in
// scheduling order, and clears the queue
func (c *MockClock) Fire() {
	c.mu.Lock()
	timers := c.scheduled
	c.scheduled = nil
	c.mu.Unlock()

	for _, t := range timers {
		if !t.stopped() {
			t.fn()
		}
	}
}

// Pending returns the number of scheduled, unstopped functions
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.scheduled {
		if !t.stopped() {
			n++
		}
	}
	return n
}

type mockTimer struct {
	mu        sync.Mutex
	fn        func()
	at        time.Time
	cancelled bool
}

func (t *mockTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := t.cancelled
	t.cancelled = true
	return !was
}

func (t *mockTimer) stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}
