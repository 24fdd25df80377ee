package anim

import "fmt"

// Side lengths of the perimeter, in LEDs.
const (
	WestLEDs  = 22
	NorthLEDs = 62
	SouthLEDs = 64 // the corner LED is cut in half
	EastLEDs  = 25

	TotalLEDs = WestLEDs + NorthLEDs + SouthLEDs + EastLEDs
)

// Strip is one of the two physically separate LED runs.
type Strip uint8

const (
	// NorthWest starts at the south-west corner and runs up the west side,
	// then east along the north side.
	NorthWest Strip = iota
	// SouthEast starts at the south-west corner as well and runs east along
	// the south side, then up the east side to meet NorthWest.
	SouthEast
)

// Strips lists all strips in transmission order.
var Strips = [...]Strip{NorthWest, SouthEast}

// Len returns the number of LEDs on the strip.
func (s Strip) Len() int {
	switch s {
	case NorthWest:
		return WestLEDs + NorthLEDs
	case SouthEast:
		return SouthLEDs + EastLEDs
	default:
		panic("anim: invalid strip")
	}
}

// Position maps the index of an LED on the strip to its position along the
// perimeter, counted clockwise from the south-west corner. NorthWest covers
// positions [0, 84) and SouthEast covers (84, 173] backwards. Both strips
// start at the south-west corner, so SouthEast's first LED sits at
// TotalLEDs, one full turn from NorthWest's first LED, and position 84 is
// the gap where the strips meet.
func (s Strip) Position(i int) int {
	if s == SouthEast {
		return TotalLEDs - i
	}
	return i
}

// Index is the inverse of Position. It returns false if the position is not
// on this strip.
func (s Strip) Index(pos int) (int, bool) {
	nw := NorthWest.Len()
	switch s {
	case NorthWest:
		return pos, pos >= 0 && pos < nw
	case SouthEast:
		return TotalLEDs - pos, pos > nw && pos <= TotalLEDs
	default:
		return 0, false
	}
}

func (s Strip) String() string {
	switch s {
	case NorthWest:
		return "north-west"
	case SouthEast:
		return "south-east"
	default:
		return fmt.Sprintf("Strip(%d)", s)
	}
}
