//go:build atmega328p

package uno

import (
	"device/avr"
	"machine"
	"runtime/interrupt"

	"libdb.so/perimeter/clock"
	"libdb.so/perimeter/ledwire"
)

// Clock counts timer 2 overflows. Call StartClock before reading it.
var Clock = clock.New(Timer2{}, clock.DefaultTick)

// StartClock runs timer 2 from the 16 MHz clock divided by 64, which
// overflows every 1024µs, and counts every overflow on Clock.
func StartClock() {
	avr.TCCR2A.Set(0)
	avr.TCNT2.Set(0)
	avr.TCCR2B.Set(avr.TCCR2B_CS22)
	avr.TIFR2.Set(avr.TIFR2_TOV2)

	interrupt.New(avr.IRQ_TIMER2_OVF, timer2Overflow)
	avr.TIMSK2.SetBits(avr.TIMSK2_TOIE2)
}

func timer2Overflow(interrupt.Interrupt) {
	Clock.Overflow()
}

// Timer2 is the 8-bit timer 2.
type Timer2 struct{}

var (
	_ clock.Timer          = Timer2{}
	_ clock.OverflowPender = Timer2{}
)

// Count implements clock.Timer.
func (Timer2) Count() uint8 {
	return avr.TCNT2.Get()
}

// PendingOverflow implements clock.OverflowPender.
func (Timer2) PendingOverflow() bool {
	return avr.TIFR2.HasBits(avr.TIFR2_TOV2)
}

// Pin is a data line on a port B pin. It writes the whole port register, so
// every other pin on the port must stay put while a transmission runs.
type Pin struct {
	mask uint8
}

var _ ledwire.ByteLine = (*Pin)(nil)

// NewPin configures p, which must be on port B, as an output driven low.
func NewPin(p machine.Pin) *Pin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()

	port, set := p.PortMaskSet()
	_, cleared := p.PortMaskClear()
	if port != avr.PORTB {
		panic("uno: data line not on port B")
	}

	return &Pin{mask: set &^ cleared}
}

// High implements ledwire.Line.
func (p *Pin) High() {
	avr.PORTB.SetBits(p.mask)
}

// Low implements ledwire.Line.
func (p *Pin) Low() {
	avr.PORTB.ClearBits(p.mask)
}

// Stall implements ledwire.Line. The encoder only stalls a Pin for the
// trailer, with the line low, so it rounds up to whole loop iterations.
func (p *Pin) Stall(cycles uint16) {
	for n := (cycles + StallLoopCycles - 1) / StallLoopCycles; n > 0; n-- {
		avr.Asm("nop")
	}
}

// Timing implements ledwire.ByteLine.
func (p *Pin) Timing() ledwire.Timing {
	return Timing
}

// SendByte implements ledwire.ByteLine. The cycle count of every
// instruction is noted at the cycle it starts on, counted from the rising
// edge. out takes 1 cycle, rjmp 2, brcs and brne 2 when taken.
//
// Between two bytes the last low phase stretches by the encoder's byte
// loop, which is a few µs at most and far below Latch.
func (p *Pin) SendByte(b byte) {
	hi := avr.PORTB.Get() | p.mask
	lo := hi &^ p.mask

	avr.AsmFull(`
		ldi  r17, 8
	1:
		out  0x05, {hi}   ; 0: rise
		lsl  {b}          ; 1
		brcs 2f           ; 2
		nop               ; 3
		out  0x05, {lo}   ; 4: drop for a 0
		nop               ; 5
		nop               ; 6
		nop               ; 7
		nop               ; 8
		rjmp 3f           ; 9
	2:
		nop               ; 4
		nop               ; 5
		nop               ; 6
		nop               ; 7
		nop               ; 8
		nop               ; 9
		out  0x05, {lo}   ; 10: drop for a 1
	3:
		nop               ; 11
		nop               ; 12
		dec  r17          ; 13
		brne 1b           ; 14, next rise at 16
	`, map[string]interface{}{
		"b":  b,
		"hi": hi,
		"lo": lo,
	})
}

// Button is a push button that pulls its pin to ground.
type Button struct {
	pin machine.Pin
}

// NewButton configures p as a pulled-up input.
func NewButton(p machine.Pin) Button {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return Button{pin: p}
}

// Pressed implements render.Button.
func (b Button) Pressed() bool {
	return !b.pin.Get()
}
