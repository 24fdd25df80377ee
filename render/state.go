package render

import (
	"time"

	"libdb.so/perimeter/anim"
)

// Button timing.
const (
	// Debounce is how long the button must stay stable before an edge
	// counts.
	Debounce = 20 * time.Millisecond
	// HoldOff is how long the button must be held to switch the LEDs off.
	HoldOff = 2 * time.Second
)

// State is the mode selection state. It is only changed by Update.
type State struct {
	// Mode is the active mode.
	Mode anim.Mode
	// Prev is the mode that was active before the last change.
	Prev anim.Mode
	// ChangedAt is the time of the last mode change.
	ChangedAt time.Duration

	pressed   bool
	pressedAt time.Duration
	lastEdge  time.Duration
	heldOff   bool
}

// NewState returns a state starting in the given mode without a crossfade.
func NewState(mode anim.Mode) State {
	return State{Mode: mode, Prev: mode, lastEdge: -Debounce}
}

// Update feeds the button level sampled at now into the state machine. A
// short press advances to the next mode on release; holding the button for
// HoldOff switches off immediately. It reports whether the mode changed.
func (s *State) Update(now time.Duration, pressed bool) bool {
	if pressed != s.pressed {
		if now-s.lastEdge < Debounce {
			return false
		}
		s.lastEdge = now
		s.pressed = pressed

		if pressed {
			s.pressedAt = now
			s.heldOff = false
			return false
		}
		if s.heldOff {
			return false
		}
		return s.switchTo(s.Mode.Next(), now)
	}

	if s.pressed && !s.heldOff && now-s.pressedAt >= HoldOff {
		s.heldOff = true
		return s.switchTo(anim.Off, now)
	}

	return false
}

func (s *State) switchTo(mode anim.Mode, now time.Duration) bool {
	if mode == s.Mode {
		return false
	}
	s.Prev = s.Mode
	s.Mode = mode
	s.ChangedAt = now
	return true
}

// Colors returns the colours of the strip at now, crossfading from the
// previous mode.
func (s *State) Colors(now time.Duration, strip anim.Strip) anim.Blended {
	return anim.Blend(s.Prev, s.Mode, now-s.ChangedAt, now, strip)
}
