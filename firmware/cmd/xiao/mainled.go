//go:build rp2040

package main

import (
	"machine"
	"time"

	"libdb.so/perimeter/anim"
	"tinygo.org/x/drivers/ws2812"
)

// HeartbeatOn is how long the status LED is lit every second.
const HeartbeatOn = 100 * time.Millisecond

var mainLED ws2812.Device
var mainLEDPower = machine.GPIO11

func initMainLED() {
	// https://wiki.seeedstudio.com/XIAO-RP2040-with-Arduino/
	mainLEDPower.Configure(machine.PinConfig{Mode: machine.PinOutput})
	mainLEDPower.Low()

	machine.GPIO12.Configure(machine.PinConfig{Mode: machine.PinOutput})
	mainLED = ws2812.New(machine.GPIO12)
}

// heartbeat blinks the onboard LED once per second in a dim version of the
// mode's first pixel, so a dark perimeter can be told apart from a hung
// board.
func heartbeat(now time.Duration, mode anim.Mode) {
	if now%time.Second >= HeartbeatOn {
		mainLEDPower.Low()
		return
	}

	c := anim.Colors(mode, now, anim.NorthWest).At(0)
	if c == anim.Black {
		c = anim.Color{R: 255}
	}

	mainLEDPower.High()
	// The onboard LED takes G, R, B.
	mainLED.WriteByte(c.G / 16)
	mainLED.WriteByte(c.R / 16)
	mainLED.WriteByte(c.B / 16)
}
