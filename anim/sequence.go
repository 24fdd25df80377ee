// Package anim computes the colours of the perimeter LEDs.
//
// Every animation is a pure function of the mode, the elapsed time and the
// strip. It returns a Sequence: a finite, restartable view that computes each
// pixel on demand. Effect layers wrap other sequences by value, so composing
// them allocates nothing.
package anim

// Sequence is a finite sequence of pixel colours in strip order.
type Sequence interface {
	// Len returns the number of pixels.
	Len() int
	// At returns the colour of the i-th pixel.
	At(i int) Color
}

// Each calls f for every pixel of s in order.
func Each[S Sequence](s S, f func(i int, c Color)) {
	n := s.Len()
	for i := 0; i < n; i++ {
		f(i, s.At(i))
	}
}

// AppendColors appends every pixel of s to dst.
func AppendColors[S Sequence](dst []Color, s S) []Color {
	Each(s, func(_ int, c Color) { dst = append(dst, c) })
	return dst
}

// Solid is a strip of a single colour.
type Solid struct {
	N     int
	Color Color
}

func (s Solid) Len() int     { return s.N }
func (s Solid) At(int) Color { return s.Color }
