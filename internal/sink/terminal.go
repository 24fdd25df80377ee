package sink

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"libdb.so/perimeter/anim"
)

// SummaryInterval is how often the terminal sink logs the average colour of
// each strip.
const SummaryInterval = time.Second

// Terminal draws every strip as a row of truecolor cells and redraws them in
// place on every frame.
type Terminal struct {
	w       *bufio.Writer
	logger  *slog.Logger
	drawn   bool
	summary time.Duration
}

var _ Sink = (*Terminal)(nil)

// NewTerminal creates a new terminal sink writing to w.
func NewTerminal(w io.Writer, logger *slog.Logger) *Terminal {
	return &Terminal{
		w:       bufio.NewWriter(w),
		logger:  logger,
		summary: -SummaryInterval,
	}
}

// WriteFrame implements Sink.
func (t *Terminal) WriteFrame(f Frame) error {
	if t.drawn {
		fmt.Fprintf(t.w, "\x1b[%dA", len(f.Strips))
	}

	for strip, data := range f.Strips {
		fmt.Fprintf(t.w, "\r%-10s ", anim.Strip(strip))
		eachColor(data, func(_ int, c anim.Color) {
			fmt.Fprintf(t.w, "\x1b[48;2;%d;%d;%dm ", c.R, c.G, c.B)
		})
		t.w.WriteString("\x1b[0m\x1b[K\n")
	}

	if err := t.w.Flush(); err != nil {
		return errors.Wrap(err, "failed to draw frame")
	}
	t.drawn = true

	if f.Elapsed-t.summary >= SummaryInterval {
		t.summary = f.Elapsed
		t.logger.Debug(
			"frame summary",
			"elapsed", f.Elapsed,
			"mode", f.Mode,
			"north_west", Average(f.Strips[anim.NorthWest]).Hex(),
			"south_east", Average(f.Strips[anim.SouthEast]).Hex())
	}

	return nil
}

// Close implements Sink. It leaves the last frame on screen.
func (t *Terminal) Close() error {
	return t.w.Flush()
}

// Average returns the mean colour of the wire-order data.
func Average(data []byte) colorful.Color {
	var sum colorful.Color
	var n float64

	eachColor(data, func(_ int, c anim.Color) {
		cf, _ := colorful.MakeColor(c.RGBA())
		sum.R += cf.R
		sum.G += cf.G
		sum.B += cf.B
		n++
	})

	if n == 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: sum.R / n, G: sum.G / n, B: sum.B / n}
}
