// Package uno wires the perimeter firmware to an ATmega328p at 16 MHz: data
// lines on port B, the clock on timer 2 and the mode button on a pulled-up
// pin.
package uno

import "libdb.so/perimeter/ledwire"

// Timing is the timing Pin.SendByte is counted for: at 16 MHz a 0 stays
// high for 4 cycles, a 1 for 10, and a bit takes 16.
var Timing = ledwire.Timing{
	ZeroHigh: 4,
	OneHigh:  10,
	Period:   16,
	Trailer:  6,
}

// StallLoopCycles is how many cycles one iteration of the Pin.Stall loop
// takes.
const StallLoopCycles = 4
