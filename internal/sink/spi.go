package sink

import (
	"github.com/pkg/errors"
	"libdb.so/perimeter/anim"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// DefaultSPIFreq is the SPI clock used when none is configured.
const DefaultSPIFreq = 2500 * physic.KiloHertz

// SPI drives the strips from SPI ports, one port per strip.
type SPI struct {
	devs  [len(anim.Strips)]*nrzled.Dev
	ports []spi.PortCloser
	pix   []byte
}

var _ Sink = (*SPI)(nil)

// OpenSPI initializes the host drivers and opens the named SPI ports,
// NorthWest first. A zero freq picks DefaultSPIFreq.
func OpenSPI(names []string, freq physic.Frequency) (*SPI, error) {
	if len(names) != len(anim.Strips) {
		return nil, errors.Errorf("need %d spi ports, got %d", len(anim.Strips), len(names))
	}

	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize host drivers")
	}

	var ports [len(anim.Strips)]spi.Port
	var closers []spi.PortCloser

	for i, name := range names {
		p, err := spireg.Open(name)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, errors.Wrapf(err, "failed to open spi port %q", name)
		}
		ports[i] = p
		closers = append(closers, p)
	}

	s, err := NewSPI(ports, freq)
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		return nil, err
	}

	s.ports = closers
	return s, nil
}

// NewSPI creates an SPI sink on already opened ports. The caller keeps
// ownership of the ports.
func NewSPI(ports [len(anim.Strips)]spi.Port, freq physic.Frequency) (*SPI, error) {
	if freq == 0 {
		freq = DefaultSPIFreq
	}

	s := &SPI{}
	for i, p := range ports {
		d, err := nrzled.NewSPI(p, &nrzled.Opts{
			NumPixels: anim.Strip(i).Len(),
			Channels:  3,
			Freq:      freq,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create %v driver", anim.Strip(i))
		}
		s.devs[i] = d
	}

	return s, nil
}

// WriteFrame implements Sink.
func (s *SPI) WriteFrame(f Frame) error {
	for i, d := range s.devs {
		s.pix = nrzPixels(s.pix[:0], f.Strips[i])
		if _, err := d.Write(s.pix); err != nil {
			return errors.Wrapf(err, "failed to write %v", anim.Strip(i))
		}
	}
	return nil
}

// Close implements Sink. It turns the strips off and closes the ports
// opened by OpenSPI.
func (s *SPI) Close() error {
	var firstErr error
	for i, d := range s.devs {
		if err := d.Halt(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "failed to halt %v", anim.Strip(i))
		}
	}
	for _, p := range s.ports {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "failed to close spi port")
		}
	}
	return firstErr
}

// nrzPixels appends the RGB pixels nrzled takes for the wire-order data.
// nrzled sends every pixel as G,R,B, so the channels are shuffled for the
// line to carry the frame bytes unchanged.
func nrzPixels(dst, data []byte) []byte {
	for i := 0; i+3 <= len(data); i += 3 {
		dst = append(dst, data[i+1], data[i], data[i+2])
	}
	return dst
}
