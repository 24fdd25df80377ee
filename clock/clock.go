// Package clock implements a monotonic clock assembled from a free-running
// 8-bit hardware timer and an overflow counter maintained by its interrupt.
package clock

import (
	"sync/atomic"
	"time"

	"libdb.so/perimeter/critical"
)

// DefaultTick is the overflow period of an 8-bit timer clocked at 16MHz/64.
const DefaultTick = 1024 * time.Microsecond

// Timer is the free-running hardware timer.
type Timer interface {
	// Count returns the sub-tick register, the position within the current
	// period in 1/256ths.
	Count() uint8
}

// OverflowPender is optionally implemented by timers that can report an
// overflow that has happened but whose interrupt has not run yet.
type OverflowPender interface {
	PendingOverflow() bool
}

// Clock is a monotonic clock. The zero value is not usable; use New.
type Clock struct {
	timer     Timer
	tick      time.Duration
	overflows atomic.Uint32
}

// New creates a new clock reading the given timer, which overflows once per
// tick.
func New(timer Timer, tick time.Duration) *Clock {
	if tick <= 0 {
		panic("clock: non-positive tick")
	}
	return &Clock{
		timer: timer,
		tick:  tick,
	}
}

// Overflow is the body of the timer overflow interrupt handler.
func (c *Clock) Overflow() {
	c.overflows.Add(1)
}

// Read returns the time elapsed since the timer started. The overflow counter
// and the sub-tick register are sampled together with interrupts disabled, so
// a read never straddles an overflow.
func (c *Clock) Read() time.Duration {
	var n uint32
	var sub uint8

	critical.Section(func() {
		n = c.overflows.Load()
		sub = c.timer.Count()
		// The register has wrapped but the handler is still pending: count
		// the period it is about to add.
		if p, ok := c.timer.(OverflowPender); ok && p.PendingOverflow() && sub < 128 {
			n++
		}
	})

	return time.Duration(n)*c.tick + time.Duration(sub)*c.tick/256
}

// Tick returns the overflow period.
func (c *Clock) Tick() time.Duration {
	return c.tick
}
