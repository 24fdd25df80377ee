// Package sink provides the places the simulator sends finished frames to.
package sink

import (
	"time"

	"libdb.so/perimeter/anim"
)

// Frame is a single rendered frame.
type Frame struct {
	// Elapsed is the clock reading the frame was drawn for.
	Elapsed time.Duration
	// Mode is the active mode.
	Mode anim.Mode
	// Strips holds the bytes each strip's data line carried, in wire order.
	Strips [len(anim.Strips)][]byte
}

// Sink consumes frames.
type Sink interface {
	// WriteFrame outputs the frame. The frame's slices must not be kept
	// after WriteFrame returns.
	WriteFrame(Frame) error
	// Close releases the sink.
	Close() error
}

// eachColor calls f for every pixel of the wire-order data.
func eachColor(data []byte, f func(i int, c anim.Color)) {
	for i := 0; i+3 <= len(data); i += 3 {
		f(i/3, anim.ColorFromWire([3]byte{data[i], data[i+1], data[i+2]}))
	}
}
