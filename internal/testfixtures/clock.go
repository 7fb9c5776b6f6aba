package testfixtures

import (
	"sync"
	"time"
)

// ReferenceTime is a Monday morning in Seoul, the default test instant.
func ReferenceTime() time.Time {
	return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.FixedZone("KST", 9*60*60))
}

// Clock is a controllable time source for use cases.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	return c.current
}
