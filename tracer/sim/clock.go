package sim

import "time"

// Clock is a manually advanced time source. Frames presented through it are
// aligned to a fixed refresh period.
type Clock struct {
	now    time.Time
	period time.Duration
}

// Create a clock that presents frames at the given refresh period.
func NewClock(period time.Duration) *Clock {
	return &Clock{
		now:    time.Unix(0, 0),
		period: period,
	}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by dt.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now = c.now.Add(dt)
	}
}

// Present blocks (virtually) until the GPU work of the current frame has
// finished and the next refresh boundary is reached. It returns the time the
// frame took.
func (c *Clock) Present(gpuTime time.Duration) time.Duration {
	start := c.now
	c.Advance(gpuTime)

	if c.period > 0 {
		elapsed := c.now.Sub(time.Unix(0, 0))
		if rem := elapsed % c.period; rem != 0 {
			c.now = c.now.Add(c.period - rem)
		}
	}
	return c.now.Sub(start)
}
