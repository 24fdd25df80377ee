// Package scope records the waveform an encoder puts on a line, the way a
// logic analyzer would, and decodes it back into bytes.
package scope

import (
	"libdb.so/perimeter/critical"
	"libdb.so/perimeter/ledwire"
)

// Pulse is one high period and the low period that follows it, in cycles.
type Pulse struct {
	High uint32
	Low  uint32
}

// Recorder is a simulated data line. It implements ledwire.Line.
type Recorder struct {
	now    uint64
	high   bool
	edge   uint64
	pulses []Pulse

	// Toggles counts level changes.
	Toggles int
	// Unmasked counts level changes made while interrupts were enabled.
	Unmasked int
}

// High drives the line high.
func (r *Recorder) High() {
	if r.high {
		return
	}
	r.toggle()
	if n := len(r.pulses); n > 0 {
		r.pulses[n-1].Low = uint32(r.now - r.edge)
	}
	r.high = true
	r.edge = r.now
}

// Low drives the line low.
func (r *Recorder) Low() {
	if !r.high {
		return
	}
	r.toggle()
	r.pulses = append(r.pulses, Pulse{High: uint32(r.now - r.edge)})
	r.high = false
	r.edge = r.now
}

// Stall advances simulated time.
func (r *Recorder) Stall(cycles uint16) {
	r.now += uint64(cycles)
}

func (r *Recorder) toggle() {
	r.Toggles++
	if !critical.Masked() {
		r.Unmasked++
	}
}

// Cycles returns the simulated time elapsed since the recorder was created or
// reset.
func (r *Recorder) Cycles() uint64 {
	return r.now
}

// IsHigh reports the current line level.
func (r *Recorder) IsHigh() bool {
	return r.high
}

// Pulses returns the recorded pulses. The low time of the last pulse is only
// known once the line goes high again, so it is the time since the falling
// edge instead.
func (r *Recorder) Pulses() []Pulse {
	pulses := append([]Pulse(nil), r.pulses...)
	if n := len(pulses); n > 0 && !r.high {
		pulses[n-1].Low = uint32(r.now - r.edge)
	}
	return pulses
}

// Decode returns the bytes carried by the recorded pulses, treating any high
// period longer than threshold as a 1. Trailing bits that don't make up a
// whole byte are dropped.
func (r *Recorder) Decode(threshold uint16) []byte {
	return AppendDecoded(nil, r.pulses, threshold)
}

// Reset clears the recording, keeping the allocated storage.
func (r *Recorder) Reset() {
	*r = Recorder{pulses: r.pulses[:0]}
}

// AppendDecoded decodes pulses into bytes and appends them to dst.
func AppendDecoded(dst []byte, pulses []Pulse, threshold uint16) []byte {
	var val byte
	for i, p := range pulses {
		val <<= 1
		if p.High > uint32(threshold) {
			val |= 1
		}
		if i%8 == 7 {
			dst = append(dst, val)
			val = 0
		}
	}
	return dst
}

// ByteRecorder is a Recorder that sends whole bytes the way a counted
// instruction sequence would. It implements ledwire.ByteLine.
type ByteRecorder struct {
	Recorder
	timing ledwire.Timing

	// Bytes counts SendByte calls.
	Bytes int
}

var _ ledwire.ByteLine = (*ByteRecorder)(nil)

// NewByteRecorder creates a recorder counted for the given timing.
func NewByteRecorder(timing ledwire.Timing) *ByteRecorder {
	return &ByteRecorder{timing: timing}
}

// Timing implements ledwire.ByteLine.
func (r *ByteRecorder) Timing() ledwire.Timing {
	return r.timing
}

// SendByte implements ledwire.ByteLine.
func (r *ByteRecorder) SendByte(b byte) {
	r.Bytes++
	t := r.timing
	for i := 0; i < 8; i++ {
		r.High()
		if b&0x80 != 0 {
			r.Stall(t.OneHigh)
		} else {
			r.Stall(t.ZeroHigh)
		}
		r.Low()
		if b&0x80 != 0 {
			r.Stall(t.Period - t.OneHigh)
		} else {
			r.Stall(t.Period - t.ZeroHigh)
		}
		b <<= 1
	}
}

// Reset clears the recording.
func (r *ByteRecorder) Reset() {
	r.Recorder.Reset()
	r.Bytes = 0
}
