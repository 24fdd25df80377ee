package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/clock"
	"libdb.so/perimeter/ledwire"
)

func TestTimerCount(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	timer := &Timer{
		tick: clock.DefaultTick,
		last: start,
		now:  func() time.Time { return now },
	}

	assert.Equal(t, uint8(0), timer.Count())

	now = start.Add(clock.DefaultTick / 2)
	assert.Equal(t, uint8(128), timer.Count())

	// The interrupt is late: the count saturates.
	now = start.Add(3 * clock.DefaultTick)
	assert.Equal(t, uint8(0xFF), timer.Count())
}

func TestTimerRunDrivesClock(t *testing.T) {
	timer := NewTimer(time.Millisecond)
	c := clock.New(timer, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- timer.Run(ctx, c.Overflow) }()

	require.Eventually(t, func() bool {
		return c.Read() >= 5*time.Millisecond
	}, 5*time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

type fixedClock time.Duration

func (c *fixedClock) Read() time.Duration { return time.Duration(*c) }

func TestScript(t *testing.T) {
	var now fixedClock
	button := NewScript(&now, []Press{
		{At: 5 * time.Second, Hold: 3 * time.Second},
		{At: time.Second, Hold: 100 * time.Millisecond},
	})

	tests := []struct {
		at      time.Duration
		pressed bool
	}{
		{0, false},
		{time.Second, true},
		{time.Second + 99*time.Millisecond, true},
		{time.Second + 100*time.Millisecond, false},
		{4 * time.Second, false},
		{6 * time.Second, true},
		{8 * time.Second, false},
	}

	for _, test := range tests {
		now = fixedClock(test.at)
		assert.Equal(t, test.pressed, button.Pressed(), "at %v", test.at)
	}
}

func TestProbeDecodes(t *testing.T) {
	probe := NewProbe(ledwire.NewEncoder(ledwire.DefaultTiming))

	probe.Transmit(anim.NorthWest, []byte{1, 2, 3})
	probe.Transmit(anim.SouthEast, []byte{0xFF})

	decoded, err := probe.Take()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, decoded[anim.NorthWest])
	assert.Equal(t, []byte{0xFF}, decoded[anim.SouthEast])

	timing := ledwire.DefaultTiming
	assert.Equal(t, uint64(8*timing.Period+timing.Trailer), probe.Cycles(anim.SouthEast))

	decoded, err = probe.Take()
	require.NoError(t, err)
	assert.Nil(t, decoded[anim.NorthWest])
}
