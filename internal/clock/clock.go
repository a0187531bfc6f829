// Package clock provides the hybrid logical clock used to stamp table updates.
//
// Wall-clock milliseconds are coarsened by masking off the low bits, which absorbs small
// clock jitter, and then pushed past the last value handed out. The result is strictly
// increasing for a single Clock no matter what the wall clock does.
package clock

import (
	"sync"
	"time"
)

// jitterMask drops the lowest 4 bits of the wall-clock reading.
const jitterMask = ^int64((1 << 4) - 1)

// Func produces version timestamps. A Table is configured with one at construction.
type Func func() int64

// Clock is a hybrid logical clock. The zero value is not usable; call New.
type Clock struct {
	mu     sync.Mutex
	latest int64
	now    func() time.Time
}

// New returns a Clock reading wall time from now. A nil now uses time.Now.
func New(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Next returns the next timestamp. Every call returns a value greater than the previous one.
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	curr := c.now().UnixMilli() & jitterMask
	if curr > c.latest {
		c.latest = curr
	}
	c.latest++
	return c.latest
}

// Observe raises the high-water mark to a timestamp seen on a remote update, so stamps issued
// afterwards order after it.
func (c *Clock) Observe(ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ts > c.latest {
		c.latest = ts
	}
}

// Latest returns the last timestamp handed out or observed.
func (c *Clock) Latest() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}
