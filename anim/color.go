package anim

import "image/color"

// Color is an RGB pixel colour.
type Color struct {
	R, G, B uint8
}

// Black is the colour of a pixel that's off.
var Black = Color{}

// Wire returns the colour in the order the pixels expect on the wire. The
// strips swap green and blue.
func (c Color) Wire() [3]byte {
	return [3]byte{c.R, c.B, c.G}
}

// ColorFromWire is the inverse of Color.Wire.
func ColorFromWire(w [3]byte) Color {
	return Color{R: w[0], G: w[2], B: w[1]}
}

// RGBA converts the colour to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 0xFF}
}

// scale multiplies every channel by intensity/256.
func (c Color) scale(intensity uint16) Color {
	return Color{
		R: uint8(uint32(c.R) * uint32(intensity) / 256),
		G: uint8(uint32(c.G) * uint32(intensity) / 256),
		B: uint8(uint32(c.B) * uint32(intensity) / 256),
	}
}

// Lerp blends c towards to by w/n.
func (c Color) Lerp(to Color, w, n uint32) Color {
	mix := func(a, b uint8) uint8 {
		return uint8((uint32(a)*(n-w) + uint32(b)*w) / n)
	}
	return Color{
		R: mix(c.R, to.R),
		G: mix(c.G, to.G),
		B: mix(c.B, to.B),
	}
}
