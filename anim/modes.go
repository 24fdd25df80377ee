package anim

import "time"

// Fixed colours of the animations.
var (
	WarmWhite = Color{255, 147, 41}
	Ember     = Color{255, 72, 8}
)

// AlternatingPeriod is how long WholeStripAlternatingColor takes to fade from
// one palette entry to the next.
const AlternatingPeriod = 2 * time.Second

// AlternatingPalette is the palette of WholeStripAlternatingColor.
var AlternatingPalette = [6]Color{
	{255, 0, 64},
	{255, 128, 0},
	{255, 255, 255},
	{0, 255, 96},
	{0, 128, 255},
	{160, 0, 255},
}

type pixelsKind uint8

const (
	solidPixels pixelsKind = iota
	firePixels
	bandPixels
)

// Pixels is the colour sequence of one strip in one mode at one point in
// time. It holds exactly one of the mode pipelines.
type Pixels struct {
	kind  pixelsKind
	solid Solid
	fire  Gradient[Flicker[Solid]]
	bands Cursor[Flashing[Bands]]
}

var _ Sequence = Pixels{}

// Colors returns the colours of the given strip in the given mode.
func Colors(mode Mode, elapsed time.Duration, strip Strip) Pixels {
	n := strip.Len()

	switch mode.Resolve(elapsed) {
	case Off:
		return Pixels{solid: Solid{N: n, Color: Black}}

	case Neutral:
		return Pixels{solid: Solid{N: n, Color: WarmWhite}}

	case Fireplace:
		flicker := Flicker[Solid]{
			Inner:     Solid{N: n, Color: Ember},
			Strip:     strip,
			Vibration: NewVibration(FlickerWaves, elapsed),
		}
		return Pixels{
			kind: firePixels,
			fire: Gradient[Flicker[Solid]]{Inner: flicker, Strip: strip},
		}

	case SegmentLights:
		bands := NewFlashing(NewBands(strip, elapsed), elapsed)
		return Pixels{
			kind:  bandPixels,
			bands: NewCursor(bands, strip, elapsed),
		}

	case WholeStripAlternatingColor:
		return Pixels{solid: Solid{N: n, Color: alternatingColor(elapsed)}}

	default:
		panic("anim: invalid mode")
	}
}

// alternatingColor fades linearly from one palette entry to the next over
// every AlternatingPeriod.
func alternatingColor(elapsed time.Duration) Color {
	k := int(elapsed/AlternatingPeriod) % len(AlternatingPalette)
	from := AlternatingPalette[k]
	to := AlternatingPalette[(k+1)%len(AlternatingPalette)]

	ms := uint32((elapsed % AlternatingPeriod).Milliseconds())
	return from.Lerp(to, ms, uint32(AlternatingPeriod.Milliseconds()))
}

// Len implements Sequence.
func (p Pixels) Len() int {
	switch p.kind {
	case firePixels:
		return p.fire.Len()
	case bandPixels:
		return p.bands.Len()
	default:
		return p.solid.Len()
	}
}

// At implements Sequence.
func (p Pixels) At(i int) Color {
	switch p.kind {
	case firePixels:
		return p.fire.At(i)
	case bandPixels:
		return p.bands.At(i)
	default:
		return p.solid.At(i)
	}
}
