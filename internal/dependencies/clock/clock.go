package clock

import "time"

// Clock provides time operations that can be mocked for testing.
// AfterFunc backs the question-deadline timers; mocks fire it manually.
type Clock interface {
	Now() time.Time

	// AfterFunc schedules f to run after d and returns a handle that can
	// cancel it. The returned Stop reports whether the call was cancelled
	// before firing.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled call
type Timer interface {
	Stop() bool
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f on a real time.Timer
func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
