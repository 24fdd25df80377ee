package anim

import (
	"time"

	"libdb.so/perimeter/internal/lut"
)

// GradientFloor is the intensity, out of 256, of the darkest LEDs of a
// Gradient.
const GradientFloor = 16

// Gradient dims the inner sequence from west to east: the west side sits at
// GradientFloor, the north and south sides ramp up to full intensity and the
// east side is fully lit.
type Gradient[S Sequence] struct {
	Inner S
	Strip Strip
}

func (g Gradient[S]) Len() int { return g.Inner.Len() }

func (g Gradient[S]) At(i int) Color {
	return g.Inner.At(i).scale(westToEast(g.Strip, i))
}

func westToEast(strip Strip, i int) uint16 {
	const span = 256 - GradientFloor
	switch strip {
	case NorthWest:
		if i < WestLEDs {
			return GradientFloor
		}
		return GradientFloor + uint16(span*(i-WestLEDs)/NorthLEDs)
	default:
		if i < SouthLEDs {
			return GradientFloor + uint16(span*i/SouthLEDs)
		}
		return 256
	}
}

// Wave is one term of a Vibration.
type Wave struct {
	// Periods is how many times the wave repeats around the perimeter.
	Periods uint32
	// Step is how long the wave takes to travel 1/256th of its period.
	Step time.Duration
	// Backwards makes the wave travel towards lower positions.
	Backwards bool
}

// FlickerWaves are the waves of the fireplace flicker. Their spatial
// frequencies are coprime and their speeds distinct, so the pattern takes a
// long time to repeat.
var FlickerWaves = [4]Wave{
	{Periods: 5, Step: 60 * time.Millisecond},
	{Periods: 3, Step: 300 * time.Millisecond, Backwards: true},
	{Periods: 7, Step: 210 * time.Millisecond},
	{Periods: 11, Step: 220 * time.Millisecond, Backwards: true},
}

// Vibration is the superposition of four travelling sine waves, frozen at one
// point in time. It looks random without any state.
type Vibration struct {
	waves [4]Wave
	phase [4]uint8
}

// NewVibration freezes waves at the given time.
func NewVibration(waves [4]Wave, elapsed time.Duration) Vibration {
	v := Vibration{waves: waves}
	for i, w := range waves {
		v.phase[i] = uint8(elapsed / w.Step)
	}
	return v
}

// Sample returns the sum of all waves at the given perimeter position,
// clamped to [-lut.SinMax, lut.SinMax].
func (v Vibration) Sample(pos int) int16 {
	var sum int16
	for i, w := range v.waves {
		angle := w.Periods * 256 * uint32(pos) / TotalLEDs
		if w.Backwards {
			angle -= uint32(v.phase[i])
		} else {
			angle += uint32(v.phase[i])
		}
		sum += int16(lut.Sin[uint8(angle)])
	}
	switch {
	case sum > lut.SinMax:
		return lut.SinMax
	case sum < -lut.SinMax:
		return -lut.SinMax
	default:
		return sum
	}
}

// FlickerFloor is the intensity, out of 256, of a Flicker between flares.
const FlickerFloor = 48

// Flicker modulates the brightness of the inner sequence with a Vibration.
// The amplitude goes through the exponential table backwards, so the LEDs
// mostly glow near FlickerFloor and only flare up briefly at the peaks.
type Flicker[S Sequence] struct {
	Inner     S
	Strip     Strip
	Vibration Vibration
}

func (f Flicker[S]) Len() int { return f.Inner.Len() }

func (f Flicker[S]) At(i int) Color {
	s := f.Vibration.Sample(f.Strip.Position(i))
	x := uint16(s+lut.SinMax) * 255 / (2 * lut.SinMax)
	flare := 255 - uint16(lut.OneMinusExp[255-x])
	return f.Inner.At(i).scale(FlickerFloor + flare*(256-FlickerFloor)/255)
}

// CursorPeriod is how long the cursor stays on each LED.
const CursorPeriod = 500 * time.Millisecond

// CursorColor is the colour of the cursor.
var CursorColor = Color{255, 255, 255}

// Cursor replaces a single LED, which walks around the whole perimeter, with
// CursorColor.
type Cursor[S Sequence] struct {
	Inner S
	// Index is the cursor's index on this strip, or -1 if the cursor is on
	// the other strip.
	Index int
}

// NewCursor places the cursor for the given time.
func NewCursor[S Sequence](inner S, strip Strip, elapsed time.Duration) Cursor[S] {
	pos := int((elapsed / CursorPeriod) % TotalLEDs)
	i, ok := strip.Index(pos)
	if !ok {
		i = -1
	}
	return Cursor[S]{Inner: inner, Index: i}
}

func (c Cursor[S]) Len() int { return c.Inner.Len() }

func (c Cursor[S]) At(i int) Color {
	if i == c.Index {
		return CursorColor
	}
	return c.Inner.At(i)
}

// Flash timing.
const (
	FlashPeriod = 3 * time.Second
	FlashLength = 150 * time.Millisecond
)

// Flashing briefly pushes every channel halfway to saturation once every
// FlashPeriod.
type Flashing[S Sequence] struct {
	Inner S
	On    bool
}

// NewFlashing gates the flash for the given time.
func NewFlashing[S Sequence](inner S, elapsed time.Duration) Flashing[S] {
	return Flashing[S]{Inner: inner, On: elapsed%FlashPeriod < FlashLength}
}

func (f Flashing[S]) Len() int { return f.Inner.Len() }

func (f Flashing[S]) At(i int) Color {
	c := f.Inner.At(i)
	if f.On {
		c.R += (255 - c.R) / 2
		c.G += (255 - c.G) / 2
		c.B += (255 - c.B) / 2
	}
	return c
}

// Band layout.
const (
	BandWidth = 8
	BandStep  = 40 * time.Millisecond
)

// BandPalette is the palette Bands cycles through.
var BandPalette = [7]Color{
	{255, 0, 0},
	{255, 96, 0},
	{255, 200, 0},
	{0, 255, 0},
	{0, 200, 255},
	{0, 0, 255},
	{160, 0, 255},
}

// Bands splits the perimeter into bands of BandWidth LEDs, coloured from
// BandPalette. The bands slide forward by up to 128 LEDs and back again.
type Bands struct {
	Strip  Strip
	Offset int
}

// NewBands computes the band offset for the given time.
func NewBands(strip Strip, elapsed time.Duration) Bands {
	step := int(uint8(elapsed / BandStep))
	if step > 128 {
		step = 256 - step
	}
	return Bands{Strip: strip, Offset: step}
}

func (b Bands) Len() int { return b.Strip.Len() }

func (b Bands) At(i int) Color {
	pos := b.Strip.Position(i)
	return BandPalette[(pos+b.Offset)/BandWidth%len(BandPalette)]
}
