package anim

import (
	"fmt"
	"time"
)

// Mode is the user-selected animation.
type Mode uint8

const (
	Off Mode = iota
	Neutral
	Fireplace
	SegmentLights
	WholeStripAlternatingColor
	// PartyCycle alternates between SegmentLights and
	// WholeStripAlternatingColor. It never draws anything itself.
	PartyCycle

	numModes
)

// PartyPeriod is how long PartyCycle stays on each of its modes.
const PartyPeriod = 4780 * time.Millisecond

var modeNames = [numModes]string{
	Off:                        "off",
	Neutral:                    "neutral",
	Fireplace:                  "fireplace",
	SegmentLights:              "segments",
	WholeStripAlternatingColor: "alternating",
	PartyCycle:                 "party",
}

func (m Mode) String() string {
	if m < numModes {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode parses the name returned by Mode.String.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return Off, fmt.Errorf("unknown mode %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m >= numModes {
		return nil, fmt.Errorf("invalid mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Next returns the mode a button press switches to. Off is only reachable by
// holding the button, so the cycle skips it.
func (m Mode) Next() Mode {
	if m+1 >= numModes {
		return Neutral
	}
	return m + 1
}

// Resolve returns the mode that actually draws at the given time.
func (m Mode) Resolve(elapsed time.Duration) Mode {
	if m != PartyCycle {
		return m
	}
	if (elapsed/PartyPeriod)%2 == 0 {
		return SegmentLights
	}
	return WholeStripAlternatingColor
}
