// Package render runs the frame loop: it reads the clock, updates the mode
// from the button, draws both strips into a frame buffer and transmits it.
package render

import (
	"time"

	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/ledwire"
)

// Clock is a monotonic clock.
type Clock interface {
	Read() time.Duration
}

// Button is the mode button.
type Button interface {
	// Pressed reports whether the button is currently held down.
	Pressed() bool
}

// Transmitter sends the bytes of one strip.
type Transmitter interface {
	Transmit(strip anim.Strip, data []byte)
}

// Config is the configuration of a Loop.
type Config struct {
	Clock       Clock
	Button      Button // optional
	Transmitter Transmitter
	// Delay waits between frames. The line must stay low for ledwire.Latch
	// after a transmission.
	Delay func(time.Duration)
	// Mode is the mode at startup.
	Mode anim.Mode
}

// Loop is the render loop.
type Loop struct {
	cfg   Config
	state State
	frame FrameBuffer
	split int
}

// NewLoop creates a new render loop.
func NewLoop(cfg Config) *Loop {
	if cfg.Clock == nil || cfg.Transmitter == nil || cfg.Delay == nil {
		panic("render: incomplete loop config")
	}
	return &Loop{
		cfg:   cfg,
		state: NewState(cfg.Mode),
	}
}

// Run renders frames forever.
func (l *Loop) Run() {
	for {
		l.Frame()
	}
}

// Frame renders and transmits a single frame, then waits out the latch
// period. It returns the clock reading the frame was drawn for.
func (l *Loop) Frame() time.Duration {
	now := l.cfg.Clock.Read()

	pressed := l.cfg.Button != nil && l.cfg.Button.Pressed()
	l.state.Update(now, pressed)

	l.frame.Reset()
	PushAll(&l.frame, l.state.Colors(now, anim.NorthWest))
	l.split = PushAll(&l.frame, l.state.Colors(now, anim.SouthEast))

	data := l.frame.Bytes()
	l.cfg.Transmitter.Transmit(anim.NorthWest, data[:l.split])
	l.cfg.Transmitter.Transmit(anim.SouthEast, data[l.split:])

	l.cfg.Delay(ledwire.Latch)
	return now
}

// State returns a copy of the mode selection state.
func (l *Loop) State() State {
	return l.state
}

// FrameBytes returns the last frame in wire order, NorthWest first, and the
// offset SouthEast starts at. The slice aliases the loop's buffer.
func (l *Loop) FrameBytes() ([]byte, int) {
	return l.frame.Bytes(), l.split
}

// Lines transmits every strip on its own data line with a shared encoder.
type Lines struct {
	Encoder *ledwire.Encoder
	Lines   [len(anim.Strips)]ledwire.Line
}

// Transmit implements Transmitter.
func (l *Lines) Transmit(strip anim.Strip, data []byte) {
	l.Encoder.Transmit(l.Lines[strip], data)
}
