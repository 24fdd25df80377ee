package anim

import "time"

// FadeDuration is how long a crossfade between two modes lasts.
const FadeDuration = time.Second

// Blended crossfades between two sequences of the same strip.
type Blended struct {
	From, To Pixels
	// Weight is the weight of To, out of 255.
	Weight uint8
}

var _ Sequence = Blended{}

// Blend crossfades from mode1 to mode2, sinceChange after the switch.
func Blend(mode1, mode2 Mode, sinceChange, elapsed time.Duration, strip Strip) Blended {
	return Blended{
		From:   Colors(mode1, elapsed, strip),
		To:     Colors(mode2, elapsed, strip),
		Weight: FadeWeight(sinceChange),
	}
}

// FadeWeight returns the weight, out of 255, of the new mode sinceChange
// after a switch. It reaches 255 after FadeDuration.
func FadeWeight(sinceChange time.Duration) uint8 {
	if sinceChange <= 0 {
		return 0
	}
	if sinceChange >= FadeDuration {
		return 255
	}
	return uint8(sinceChange.Milliseconds() * 255 / FadeDuration.Milliseconds())
}

// Len implements Sequence.
func (b Blended) Len() int {
	return b.To.Len()
}

// At implements Sequence.
func (b Blended) At(i int) Color {
	switch b.Weight {
	case 0:
		return b.From.At(i)
	case 255:
		return b.To.At(i)
	default:
		return b.From.At(i).Lerp(b.To.At(i), uint32(b.Weight), 255)
	}
}
