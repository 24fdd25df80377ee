package sink

import (
	"io"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/ledserial"
)

// Serial mirrors frames to a serial LED bridge.
type Serial struct {
	w io.WriteCloser
}

var _ Sink = (*Serial)(nil)

// OpenSerial opens the serial device and announces the strip sizes.
func OpenSerial(device string, baud int) (*Serial, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open serial port")
	}

	s, err := NewSerial(port)
	if err != nil {
		port.Close()
		return nil, err
	}

	return s, nil
}

// NewSerial creates a serial sink on w and announces the strip sizes. The
// sink owns w.
func NewSerial(w io.WriteCloser) (*Serial, error) {
	var init ledserial.InitializePacket
	for i, strip := range anim.Strips {
		init.LEDs[i] = uint16(strip.Len())
	}

	if err := ledserial.WritePacket(w, init); err != nil {
		return nil, errors.Wrap(err, "failed to initialize LEDs")
	}
	return &Serial{w: w}, nil
}

// WriteFrame implements Sink.
func (s *Serial) WriteFrame(f Frame) error {
	if err := ledserial.WritePacket(s.w, ledserial.FramePacket{
		Elapsed: f.Elapsed,
		Mode:    f.Mode,
		Strips:  f.Strips,
	}); err != nil {
		return errors.Wrap(err, "failed to write frame")
	}
	return nil
}

// Close implements Sink. It clears the LEDs before closing.
func (s *Serial) Close() error {
	clearErr := ledserial.WritePacket(s.w, ledserial.ClearPacket{})
	if err := s.w.Close(); err != nil {
		return errors.Wrap(err, "failed to close serial port")
	}
	return errors.Wrap(clearErr, "failed to clear LEDs")
}
