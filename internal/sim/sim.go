// Package sim simulates the hardware the firmware runs on: the timer and its
// overflow interrupt, the mode button and the LED data lines.
package sim

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/critical"
	"libdb.so/perimeter/ledwire"
	"libdb.so/perimeter/ledwire/scope"
	"libdb.so/perimeter/render"
)

// Timer is an 8-bit free-running timer that overflows every tick of wall
// time. Its count saturates until the overflow interrupt has run, so a late
// interrupt delays the clock instead of making it jump back.
type Timer struct {
	tick time.Duration
	last time.Time
	now  func() time.Time
}

// NewTimer creates a timer that starts counting now.
func NewTimer(tick time.Duration) *Timer {
	return &Timer{
		tick: tick,
		last: time.Now(),
		now:  time.Now,
	}
}

// Count implements clock.Timer. It must be called with interrupts disabled.
func (t *Timer) Count() uint8 {
	since := t.now().Sub(t.last)
	if since >= t.tick {
		return 0xFF
	}
	return uint8(since * 256 / t.tick)
}

// Run delivers the overflow interrupt isr once per tick until ctx is done.
func (t *Timer) Run(ctx context.Context, isr func()) error {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			critical.Deliver(func() {
				t.last = t.last.Add(t.tick)
				isr()
			})
		}
	}
}

// Press is a scripted button press.
type Press struct {
	At   time.Duration
	Hold time.Duration
}

// Script is a button that is pressed according to a fixed script.
type Script struct {
	clock   render.Clock
	presses []Press
}

// NewScript creates a scripted button timed by the given clock.
func NewScript(clock render.Clock, presses []Press) *Script {
	presses = append([]Press(nil), presses...)
	sort.Slice(presses, func(i, j int) bool { return presses[i].At < presses[j].At })
	return &Script{clock: clock, presses: presses}
}

// Pressed implements render.Button.
func (s *Script) Pressed() bool {
	now := s.clock.Read()
	i := sort.Search(len(s.presses), func(i int) bool { return s.presses[i].At > now })
	if i == 0 {
		return false
	}
	p := s.presses[i-1]
	return now < p.At+p.Hold
}

// Probe is a render.Transmitter that runs the real encoder against simulated
// data lines and decodes what each line carried.
type Probe struct {
	encoder *ledwire.Encoder
	lines   [len(anim.Strips)]scope.Recorder
	decoded [len(anim.Strips)][]byte
	err     error
}

var _ render.Transmitter = (*Probe)(nil)

// NewProbe creates a new probe.
func NewProbe(encoder *ledwire.Encoder) *Probe {
	return &Probe{encoder: encoder}
}

// Transmit implements render.Transmitter.
func (p *Probe) Transmit(strip anim.Strip, data []byte) {
	line := &p.lines[strip]
	line.Reset()
	p.encoder.Transmit(line, data)

	p.decoded[strip] = line.Decode(p.encoder.Timing().Threshold())

	switch {
	case p.err != nil:
	case line.Unmasked > 0:
		p.err = fmt.Errorf("%v: %d edges sent with interrupts enabled", strip, line.Unmasked)
	case !bytes.Equal(p.decoded[strip], data):
		p.err = fmt.Errorf("%v: line carried %d bytes that differ from the %d sent",
			strip, len(p.decoded[strip]), len(data))
	}
}

// Take returns the bytes decoded from each line since the last call, in
// strip order, along with the first error seen.
func (p *Probe) Take() ([len(anim.Strips)][]byte, error) {
	decoded, err := p.decoded, p.err
	p.decoded = [len(anim.Strips)][]byte{}
	p.err = nil
	return decoded, err
}

// Cycles returns how many CPU cycles the last transmission on the strip took.
func (p *Probe) Cycles(strip anim.Strip) uint64 {
	return p.lines[strip].Cycles()
}
