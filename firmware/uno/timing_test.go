package uno

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"libdb.so/perimeter/ledwire"
	"libdb.so/perimeter/ledwire/scope"
)

func TestTimingMatchesEncoder(t *testing.T) {
	assert.NoError(t, Timing.Validate())
	assert.Equal(t, ledwire.DefaultTiming, Timing)

	// The byte loop counts on a 1 dropping 6 cycles after a 0 and on
	// both sharing the same 6-cycle tail before the next rise.
	assert.Equal(t, uint16(6), Timing.OneHigh-Timing.ZeroHigh)
	assert.Equal(t, uint16(6), Timing.Period-Timing.OneHigh)
}

func TestTimingDecodes(t *testing.T) {
	line := scope.NewByteRecorder(Timing)
	ledwire.NewEncoder(ledwire.DefaultTiming).Transmit(line, []byte{0x00, 0xFF, 0x5A})
	assert.Equal(t, []byte{0x00, 0xFF, 0x5A}, line.Decode(Timing.Threshold()))
}
