// Package lut holds the constant lookup tables used by the animations.
// OneMinusExp is generated by gen.go; Sin is computed at package
// initialization, which TinyGo folds into read-only data.
package lut

//go:generate go run gen.go

// SinMax is the value Sin returns for a quarter turn.
const SinMax = 64

// Sin maps an 8-bit angle (256 is a full turn) to sin(angle)*SinMax.
var Sin = buildSin()

func buildSin() (t [256]int8) {
	for a := 0; a < 256; a++ {
		t[a] = bhaskara(uint8(a))
	}
	return t
}

// bhaskara evaluates Bhaskara I's rational approximation of the sine over a
// half turn and mirrors it for the second half.
func bhaskara(angle uint8) int8 {
	a := int32(angle)
	invert := a >= 128
	if invert {
		a -= 128
	}

	p := a * (128 - a)
	num := 4 * p
	den := (5*128*128)/4 - p
	v := SinMax * num / den

	if invert {
		v = -v
	}
	return int8(v)
}
