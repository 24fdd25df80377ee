package render

import "libdb.so/perimeter/anim"

// FrameBufferSize is the size of a frame covering both strips.
const FrameBufferSize = 3 * anim.TotalLEDs

// FrameBuffer holds one frame in wire order. It is filled once per frame and
// reused.
type FrameBuffer struct {
	buf [FrameBufferSize]byte
	n   int
}

// Reset empties the buffer.
func (f *FrameBuffer) Reset() {
	f.n = 0
}

// Push appends a pixel in wire order. Overflowing the buffer is a build
// defect and panics.
func (f *FrameBuffer) Push(c anim.Color) {
	if f.n+3 > len(f.buf) {
		panic("render: frame buffer overflow")
	}
	w := c.Wire()
	copy(f.buf[f.n:], w[:])
	f.n += 3
}

// PushAll appends every pixel of the sequence and returns the offset the
// sequence starts at.
func PushAll[S anim.Sequence](f *FrameBuffer, s S) int {
	start := f.n
	anim.Each(s, func(_ int, c anim.Color) { f.Push(c) })
	return start
}

// Len returns the number of bytes written.
func (f *FrameBuffer) Len() int {
	return f.n
}

// Bytes returns the bytes written so far. The slice aliases the buffer.
func (f *FrameBuffer) Bytes() []byte {
	return f.buf[:f.n]
}
