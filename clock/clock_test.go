package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/perimeter/critical"
)

type fakeTimer struct {
	count   uint8
	pending bool
}

func (t *fakeTimer) Count() uint8          { return t.count }
func (t *fakeTimer) PendingOverflow() bool { return t.pending }

// advance moves the timer forward by one sub-tick, running the overflow
// handler when the register wraps. It must run as an interrupt.
func (t *fakeTimer) advance(c *Clock) {
	t.count++
	if t.count == 0 {
		c.Overflow()
	}
}

func TestReadAssemblesTicks(t *testing.T) {
	timer := &fakeTimer{}
	c := New(timer, DefaultTick)

	assert.Equal(t, time.Duration(0), c.Read())

	c.Overflow()
	c.Overflow()
	timer.count = 128

	assert.Equal(t, 2*DefaultTick+DefaultTick/2, c.Read())
}

func TestReadCountsPendingOverflow(t *testing.T) {
	timer := &fakeTimer{count: 3, pending: true}
	c := New(timer, DefaultTick)
	c.Overflow()

	assert.Equal(t, 2*DefaultTick+3*DefaultTick/256, c.Read())

	// A late-period sample was taken before the wrap.
	timer.count = 250
	assert.Equal(t, DefaultTick+250*DefaultTick/256, c.Read())
}

func TestNewRejectsZeroTick(t *testing.T) {
	assert.Panics(t, func() { New(&fakeTimer{}, 0) })
}

func TestReadMonotonicUnderInterrupts(t *testing.T) {
	timer := &fakeTimer{}
	c := New(timer, DefaultTick)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ctx.Err() == nil {
			critical.Deliver(func() { timer.advance(c) })
		}
	}()

	var last time.Duration
	for i := 0; i < 20000; i++ {
		now := c.Read()
		require.GreaterOrEqual(t, now, last, "read %d went backwards", i)
		last = now
	}

	cancel()
	<-done
}
