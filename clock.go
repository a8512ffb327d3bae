package tenon

import "time"

// Clock is a monotonic time source. All animation math reads time
// through a Clock rather than calling time.Now directly, so tests can
// substitute a deterministic source and replay a sequence of frames.
type Clock struct {
	now func() time.Time
}

// NewClock returns a Clock backed by the real system monotonic clock.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewFakeClock returns a Clock whose Now() always reports t until
// advanced with Set or Advance. Intended for tests.
func NewFakeClock(t time.Time) *FakeClock {
	fc := &FakeClock{t: t}
	fc.Clock = Clock{now: fc.Now}
	return fc
}

// Now returns the current time.
func (c *Clock) Now() time.Time {
	return c.now()
}

// FakeClock is a Clock with a manually advanced time, for deterministic
// animation tests.
type FakeClock struct {
	Clock
	t time.Time
}

// Now returns the fake clock's current time.
func (c *FakeClock) Now() time.Time {
	return c.t
}

// Set pins the fake clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.t = t
}

// Advance moves the fake clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}
