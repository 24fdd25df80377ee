//go:build atmega328p

package main

import (
	"machine"
	"time"

	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/firmware/uno"
	"libdb.so/perimeter/ledwire"
	"libdb.so/perimeter/render"
)

var (
	northWestPin = machine.D8 // PB0
	southEastPin = machine.D9 // PB1
	buttonPin    = machine.D2
)

func main() {
	uno.StartClock()

	loop := render.NewLoop(render.Config{
		Clock:  uno.Clock,
		Button: uno.NewButton(buttonPin),
		Transmitter: &render.Lines{
			Encoder: ledwire.NewEncoder(uno.Timing),
			Lines: [len(anim.Strips)]ledwire.Line{
				anim.NorthWest: uno.NewPin(northWestPin),
				anim.SouthEast: uno.NewPin(southEastPin),
			},
		},
		Delay: time.Sleep,
		Mode:  anim.Neutral,
	})

	loop.Run()
}
