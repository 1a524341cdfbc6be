package clock

import "time"

var _ Clock = (*FakeClock)(nil)

// FakeClock is a manually advanced Clock for tests. Timestamps in the store
// are naive local time, so the given instant is kept as-is.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
