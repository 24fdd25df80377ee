//go:build rp2040

package main

import (
	"machine"
	"time"

	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/clock"
	"libdb.so/perimeter/critical"
	"libdb.so/perimeter/render"
	"tinygo.org/x/drivers/ws2812"
)

var (
	northWestPin = machine.D0
	southEastPin = machine.D1
	buttonPin    = machine.D2
)

func main() {
	initMainLED()

	timer := newTickTimer(clock.DefaultTick)
	clk := clock.New(timer, clock.DefaultTick)
	go timer.run(clk.Overflow)

	buttonPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	loop := render.NewLoop(render.Config{
		Clock:       clk,
		Button:      pinButton(buttonPin),
		Transmitter: newStrips(northWestPin, southEastPin),
		Delay:       time.Sleep,
		Mode:        anim.Neutral,
	})

	for {
		now := loop.Frame()
		heartbeat(now, loop.State().Mode)
	}
}

// tickTimer is a software timer that overflows every tick. The RP2040 has
// no 8-bit timer, so the sub-tick count is derived from the monotonic time.
// The count saturates until the overflow has been delivered.
type tickTimer struct {
	tick time.Duration
	last time.Time
}

func newTickTimer(tick time.Duration) *tickTimer {
	return &tickTimer{tick: tick, last: time.Now()}
}

func (t *tickTimer) Count() uint8 {
	since := time.Since(t.last)
	if since >= t.tick {
		return 0xFF
	}
	return uint8(since * 256 / t.tick)
}

// run delivers overflows forever. It only runs while the render loop
// sleeps, which is why Count saturates.
func (t *tickTimer) run(overflow func()) {
	for {
		time.Sleep(time.Until(t.last.Add(t.tick)))
		critical.Section(func() {
			t.last = t.last.Add(t.tick)
			overflow()
		})
	}
}

type pinButton machine.Pin

func (b pinButton) Pressed() bool {
	return !machine.Pin(b).Get()
}

// strips transmits with the ws2812 driver, which carries its own cycle
// counts for the RP2040 clock.
type strips [len(anim.Strips)]ws2812.Device

func newStrips(pins ...machine.Pin) *strips {
	var s strips
	for i, pin := range pins {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		s[i] = ws2812.New(pin)
	}
	return &s
}

func (s *strips) Transmit(strip anim.Strip, data []byte) {
	critical.Section(func() {
		s[strip].Write(data)
	})
}
