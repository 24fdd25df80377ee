package perimeter

import (
	"encoding"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/clock"
	"libdb.so/perimeter/ledwire"
)

// Config is the configuration for the perimeter simulator.
type Config struct {
	// Mode is the mode at startup.
	Mode anim.Mode `toml:"mode"`
	// Tick is the overflow period of the simulated hardware timer.
	Tick TOMLDuration `toml:"tick"`
	// FrameRate caps the number of frames rendered per second.
	FrameRate int `toml:"frame_rate"`
	// Presses is a script of button presses.
	Presses []PressConfig `toml:"press"`
	// Output configures where frames go.
	Output OutputConfig `toml:"output"`
}

// DefaultConfig returns the configuration used for keys missing from the
// configuration file.
func DefaultConfig() Config {
	return Config{
		Mode:      anim.Neutral,
		Tick:      TOMLDuration(clock.DefaultTick),
		FrameRate: 60,
		Output: OutputConfig{
			Kind: TerminalOutput,
			Baud: 115200,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Tick <= 0 {
		return errors.New("tick must be positive")
	}

	maxRate := int(time.Second / ledwire.Latch)
	if c.FrameRate < 1 || c.FrameRate > maxRate {
		return fmt.Errorf("frame rate %d out of range [1, %d]", c.FrameRate, maxRate)
	}

	if _, err := c.Mode.MarshalText(); err != nil {
		return errors.Wrap(err, "invalid mode")
	}

	presses := append([]PressConfig(nil), c.Presses...)
	sort.Slice(presses, func(i, j int) bool { return presses[i].At < presses[j].At })
	for i, p := range presses {
		if p.Hold <= 0 {
			return fmt.Errorf("press at %v has no hold duration", time.Duration(p.At))
		}
		if i > 0 {
			prev := presses[i-1]
			if prev.At+prev.Hold > p.At {
				return fmt.Errorf("press at %v overlaps with press at %v",
					time.Duration(p.At), time.Duration(prev.At))
			}
		}
	}

	return errors.Wrap(c.Output.Validate(), "invalid output")
}

// PressConfig is a scripted button press.
type PressConfig struct {
	// At is when the button goes down, measured on the simulated clock.
	At TOMLDuration `toml:"at"`
	// Hold is how long the button stays down.
	Hold TOMLDuration `toml:"hold"`
}

// OutputConfig is the configuration of the frame output.
type OutputConfig struct {
	Kind OutputKind `toml:"kind"`

	// Device is the serial device for SerialOutput.
	// This is usually /dev/ttyUSB0 or /dev/ttyACM0.
	Device string `toml:"device"`
	// Baud is the baud rate for SerialOutput.
	Baud int `toml:"baud"`

	// SPIPorts names the SPI port of each strip for SPIOutput, NorthWest
	// first. Empty names pick the first available port.
	SPIPorts []string `toml:"spi_ports"`
	// SPIFreq is the SPI clock in Hz. Zero picks the driver default.
	SPIFreq int64 `toml:"spi_hz"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	switch c.Kind {
	case TerminalOutput:
		return nil
	case SerialOutput:
		if c.Device == "" {
			return errors.New("serial output needs a device")
		}
		if c.Baud <= 0 {
			return fmt.Errorf("invalid baud rate %d", c.Baud)
		}
		return nil
	case SPIOutput:
		if len(c.SPIPorts) != len(anim.Strips) {
			return fmt.Errorf("spi output needs %d ports, got %d", len(anim.Strips), len(c.SPIPorts))
		}
		if c.SPIFreq < 0 {
			return fmt.Errorf("invalid spi frequency %d", c.SPIFreq)
		}
		return nil
	default:
		return fmt.Errorf("unknown output kind %q", c.Kind)
	}
}

// OutputKind is the kind of frame output.
type OutputKind string

const (
	// TerminalOutput draws the strips in the terminal.
	TerminalOutput OutputKind = "terminal"
	// SerialOutput mirrors frames to a serial LED bridge.
	SerialOutput OutputKind = "serial"
	// SPIOutput drives real strips from the SPI ports of a Linux board.
	SPIOutput OutputKind = "spi"
)

// TOMLDuration is a duration that can be parsed from TOML.
type TOMLDuration time.Duration

var (
	_ encoding.TextUnmarshaler = (*TOMLDuration)(nil)
	_ encoding.TextMarshaler   = (*TOMLDuration)(nil)
)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

func (d TOMLDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ParseConfig parses a configuration from a reader. Missing keys keep their
// DefaultConfig value.
func ParseConfig(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	if err := toml.NewDecoder(r).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
