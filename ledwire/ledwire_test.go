package ledwire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/perimeter/ledwire"
	"libdb.so/perimeter/ledwire/scope"
)

func TestTransmitEmpty(t *testing.T) {
	var rec scope.Recorder
	ledwire.NewEncoder(ledwire.DefaultTiming).Transmit(&rec, nil)

	assert.Zero(t, rec.Toggles)
	assert.Zero(t, rec.Cycles())
}

func TestTransmitRoundTrip(t *testing.T) {
	enc := ledwire.NewEncoder(ledwire.DefaultTiming)

	long := make([]byte, ledwire.MaxLen)
	for i := range long {
		long[i] = byte(i*7 + i>>8)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"one byte", []byte{0xA5}},
		{"pixel", []byte{0x00, 0xFF, 0x81}},
		{"page boundary", make([]byte, 256)},
		{"max length", long},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var rec scope.Recorder
			enc.Transmit(&rec, test.data)

			assert.Equal(t, 16*len(test.data), rec.Toggles)
			assert.Zero(t, rec.Unmasked, "line toggled with interrupts enabled")
			assert.False(t, rec.IsHigh())

			got := rec.Decode(enc.Timing().Threshold())
			require.Len(t, got, len(test.data))
			assert.Equal(t, test.data, got)
		})
	}
}

func TestTransmitPulseWidths(t *testing.T) {
	timing := ledwire.DefaultTiming
	var rec scope.Recorder
	ledwire.NewEncoder(timing).Transmit(&rec, []byte{0xF0})

	pulses := rec.Pulses()
	require.Len(t, pulses, 8)

	for i, p := range pulses[:4] {
		assert.Equal(t, uint32(timing.OneHigh), p.High, "bit %d", i)
		assert.Equal(t, uint32(timing.Period-timing.OneHigh), p.Low, "bit %d", i)
	}
	for i, p := range pulses[4:7] {
		assert.Equal(t, uint32(timing.ZeroHigh), p.High, "bit %d", i+4)
		assert.Equal(t, uint32(timing.Period-timing.ZeroHigh), p.Low, "bit %d", i+4)
	}

	last := pulses[7]
	assert.Equal(t, uint32(timing.Period-timing.ZeroHigh+timing.Trailer), last.Low)
	assert.Equal(t, uint64(8*timing.Period+timing.Trailer), rec.Cycles())
}

func TestTransmitTooLong(t *testing.T) {
	var rec scope.Recorder
	enc := ledwire.NewEncoder(ledwire.DefaultTiming)
	assert.Panics(t, func() { enc.Transmit(&rec, make([]byte, ledwire.MaxLen+1)) })
	assert.Zero(t, rec.Toggles)
}

func TestTimingValidate(t *testing.T) {
	assert.NoError(t, ledwire.DefaultTiming.Validate())

	tests := []struct {
		name   string
		timing ledwire.Timing
	}{
		{"unordered", ledwire.Timing{ZeroHigh: 10, OneHigh: 4, Period: 16}},
		{"zero too long", ledwire.Timing{ZeroHigh: 6, OneHigh: 12, Period: 16}},
		{"zero too short", ledwire.Timing{ZeroHigh: 2, OneHigh: 14, Period: 20}},
		{"one low dominant", ledwire.Timing{ZeroHigh: 4, OneHigh: 7, Period: 16}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Error(t, test.timing.Validate())
			assert.Panics(t, func() { ledwire.NewEncoder(test.timing) })
		})
	}
}

func TestTransmitByteLine(t *testing.T) {
	timing := ledwire.DefaultTiming
	enc := ledwire.NewEncoder(timing)

	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 13)
	}

	line := scope.NewByteRecorder(timing)
	enc.Transmit(line, data)

	assert.Equal(t, len(data), line.Bytes, "one call per byte")
	assert.Zero(t, line.Unmasked, "byte sent with interrupts enabled")
	assert.False(t, line.IsHigh())
	assert.Equal(t, data, line.Decode(timing.Threshold()))

	// Same waveform as the bit loop, trailer included.
	var bits scope.Recorder
	enc.Transmit(&bits, data)
	assert.Equal(t, bits.Pulses(), line.Pulses())
	assert.Equal(t, bits.Cycles(), line.Cycles())
}

func TestTransmitByteLineTimingMismatch(t *testing.T) {
	other := ledwire.DefaultTiming
	other.Trailer++

	line := scope.NewByteRecorder(other)
	enc := ledwire.NewEncoder(ledwire.DefaultTiming)

	assert.Panics(t, func() { enc.Transmit(line, []byte{1}) })
	assert.Zero(t, line.Bytes)
}
