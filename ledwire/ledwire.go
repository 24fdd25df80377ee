// Package ledwire implements the single-wire, self-clocked protocol spoken by
// WS2812-class pixels.
//
// Every bit is one pulse. A 1 is a long high followed by a short low, a 0 is
// a short high followed by a long low. The encoder is written against Line,
// a minimal timing primitive that each target implements with cycle-exact
// instruction sequences.
package ledwire

import (
	"fmt"
	"time"

	"libdb.so/perimeter/critical"
)

// MaxLen is the largest buffer Transmit accepts: the byte count is kept as a
// low and a high byte.
const MaxLen = 0xFFFF

// Latch is the minimum time the line must stay low after a transmission
// before the pixels latch the data and a new transmission may start.
const Latch = 300 * time.Microsecond

// Line is a data line driven by the encoder.
type Line interface {
	// High drives the line high.
	High()
	// Low drives the line low.
	Low()
	// Stall busy-waits for exactly the given number of CPU cycles, on top of
	// the cost of the High or Low that preceded it. A ByteLine only gets
	// Stall for the trailer, with the line low, where it may wait longer.
	Stall(cycles uint16)
}

// ByteLine is a Line that sends whole bytes itself, with an instruction
// sequence counted for one fixed Timing. Targets where a call costs more
// than a bit phase implement it. The encoder still keeps the byte count, the
// critical section and the trailer.
type ByteLine interface {
	Line
	// Timing returns the timing the byte sequence is counted for.
	Timing() Timing
	// SendByte sends b most significant bit first and leaves the line low.
	SendByte(b byte)
}

// Timing is the cycle budget of a single bit. All values are CPU cycles
// measured from the rising edge.
type Timing struct {
	// ZeroHigh is when the line drops for a 0 bit.
	ZeroHigh uint16
	// OneHigh is when the line drops for a 1 bit.
	OneHigh uint16
	// Period is the full bit period.
	Period uint16
	// Trailer is how long the line is held low after the last bit.
	Trailer uint16
}

// DefaultTiming is the timing at a 16MHz instruction clock: 250ns high for a
// 0, 625ns high for a 1, 1µs per bit.
var DefaultTiming = Timing{
	ZeroHigh: 4,
	OneHigh:  10,
	Period:   16,
	Trailer:  6,
}

// Validate checks that the timing can be decoded by a pixel: the two drop
// points are ordered, and a 0 stays low between 2.5 and 4.5 times as long as
// it stays high.
func (t Timing) Validate() error {
	if t.ZeroHigh == 0 || t.ZeroHigh >= t.OneHigh || t.OneHigh >= t.Period {
		return fmt.Errorf("drop points %d/%d out of order in period %d", t.ZeroHigh, t.OneHigh, t.Period)
	}
	zeroLow := t.Period - t.ZeroHigh
	if 2*zeroLow < 5*t.ZeroHigh || 2*zeroLow > 9*t.ZeroHigh {
		return fmt.Errorf("0 bit high/low ratio %d:%d out of range", t.ZeroHigh, zeroLow)
	}
	oneLow := t.Period - t.OneHigh
	if oneLow >= t.OneHigh {
		return fmt.Errorf("1 bit is not high-dominant (%d:%d)", t.OneHigh, oneLow)
	}
	return nil
}

// Threshold returns the high duration separating a 0 from a 1.
func (t Timing) Threshold() uint16 {
	return (t.ZeroHigh + t.OneHigh) / 2
}

// Encoder transmits byte buffers on a Line.
type Encoder struct {
	timing Timing
}

// NewEncoder creates a new encoder. It panics if the timing is invalid; the
// timing is a build constant.
func NewEncoder(timing Timing) *Encoder {
	if err := timing.Validate(); err != nil {
		panic("ledwire: " + err.Error())
	}
	return &Encoder{timing: timing}
}

// Timing returns the encoder's timing.
func (e *Encoder) Timing() Timing {
	return e.timing
}

// Transmit sends data on the line, most significant bit first. Interrupts are
// disabled for the whole transmission. The caller must keep the line low for
// at least Latch before transmitting again.
func (e *Encoder) Transmit(line Line, data []byte) {
	// Pulse generation misbehaves on an empty buffer.
	if len(data) == 0 {
		return
	}
	if len(data) > MaxLen {
		panic("ledwire: buffer exceeds MaxLen")
	}

	if bl, ok := line.(ByteLine); ok && bl.Timing() != e.timing {
		panic("ledwire: line counted for a different timing")
	}

	nlow := uint8(len(data))
	nhigh := uint8(len(data) >> 8)

	state := critical.Disable()
	e.send(line, data, nlow, nhigh)
	critical.Restore(state)
}

func (e *Encoder) send(line Line, data []byte, nlow, nhigh uint8) {
	t := e.timing
	bl, _ := line.(ByteLine)
	i := 0

	for {
		val := data[i]
		i++

		if bl != nil {
			bl.SendByte(val)
		} else {
			e.sendBits(line, val)
		}

		// Two-level count: nlow runs down first, then borrows from nhigh.
		if nlow == 0 {
			nhigh--
			nlow = 0xFF
		} else {
			nlow--
		}
		if nlow == 0 && nhigh == 0 {
			break
		}
	}

	line.Stall(t.Trailer)
}

func (e *Encoder) sendBits(line Line, val byte) {
	t := e.timing
	for nbits := 8; nbits > 0; nbits-- {
		line.High()
		line.Stall(t.ZeroHigh)
		if val&0x80 == 0 {
			line.Low()
		}
		line.Stall(t.OneHigh - t.ZeroHigh)
		if val&0x80 != 0 {
			line.Low()
		}
		line.Stall(t.Period - t.OneHigh)
		val <<= 1
	}
}
