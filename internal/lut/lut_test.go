package lut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinHalfTurnSymmetry(t *testing.T) {
	for a := 0; a < 128; a++ {
		assert.Equal(t, -Sin[a], Sin[(a+128)&0xFF], "angle %d", a)
	}
}

func TestSinKeyAngles(t *testing.T) {
	assert.Equal(t, int8(0), Sin[0])
	assert.Equal(t, int8(SinMax), Sin[64])
	assert.Equal(t, int8(0), Sin[128])
	assert.Equal(t, int8(-SinMax), Sin[192])
}

func TestSinBounded(t *testing.T) {
	for a, v := range Sin {
		assert.LessOrEqual(t, v, int8(SinMax), "angle %d", a)
		assert.GreaterOrEqual(t, v, int8(-SinMax), "angle %d", a)
	}
}

func TestOneMinusExpMonotonic(t *testing.T) {
	assert.Equal(t, uint8(0), OneMinusExp[0])
	assert.Equal(t, uint8(254), OneMinusExp[255])
	for i := 1; i < len(OneMinusExp); i++ {
		assert.GreaterOrEqual(t, OneMinusExp[i], OneMinusExp[i-1], "index %d", i)
	}
}
