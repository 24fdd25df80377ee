package perimeter

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/internal/sink"
)

type recordingSink struct {
	frames []sink.Frame
	onMode func(anim.Mode)
}

func (r *recordingSink) WriteFrame(f sink.Frame) error {
	for i := range f.Strips {
		f.Strips[i] = append([]byte(nil), f.Strips[i]...)
	}
	r.frames = append(r.frames, f)
	r.onMode(f.Mode)
	return nil
}

func (r *recordingSink) Close() error { return nil }

func TestSimulatorPress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tick = TOMLDuration(time.Millisecond)
	cfg.FrameRate = 200
	cfg.Presses = []PressConfig{
		{At: TOMLDuration(30 * time.Millisecond), Hold: TOMLDuration(50 * time.Millisecond)},
	}

	s, err := NewSimulator(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out := &recordingSink{onMode: func(m anim.Mode) {
		if m == anim.Fireplace {
			cancel()
		}
	}}

	err = s.run(ctx, out)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotEmpty(t, out.frames)

	first := out.frames[0]
	assert.Equal(t, anim.Neutral, first.Mode)
	assert.Len(t, first.Strips[anim.NorthWest], 3*anim.NorthWest.Len())
	assert.Len(t, first.Strips[anim.SouthEast], 3*anim.SouthEast.Len())

	last := out.frames[len(out.frames)-1]
	assert.Equal(t, anim.Fireplace, last.Mode)

	for i := 1; i < len(out.frames); i++ {
		assert.GreaterOrEqual(t, out.frames[i].Elapsed, out.frames[i-1].Elapsed, "frame %d went back in time", i)
	}
}

func TestNewSimulatorInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 0

	_, err := NewSimulator(&cfg, slog.Default())
	assert.ErrorContains(t, err, "invalid configuration")
}
