package testutil

import (
	"sync"
	"time"
)

// DeterministicClock provides a thread-safe stepping time source for tests.
//
// Each call to Now() returns the current time and advances it by a fixed
// step, so a test sees a strictly increasing, fully predictable sequence of
// timestamps regardless of wall time. The clock can be reset for test reuse.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu   sync.Mutex
	base time.Time
	now  time.Time
	step time.Duration
}

// NewDeterministicClock creates a clock starting at base, advancing by step
// on every Now() call.
func NewDeterministicClock(base time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{base: base, now: base, step: step}
}

// Now returns the current time and advances the clock by one step.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Current returns the current time without advancing.
func (c *DeterministicClock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to its base time.
//
// Used for test reuse. After Reset(), the next call to Now() returns the
// base time again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.base
}
