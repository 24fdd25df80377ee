package perimeter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/clock"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
mode = "fireplace"
tick = "2ms"

[[press]]
at = "1s"
hold = "100ms"

[[press]]
at = "5s"
hold = "3s"

[output]
kind = "serial"
device = "/dev/ttyACM0"
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, anim.Fireplace, cfg.Mode)
	assert.Equal(t, TOMLDuration(2*time.Millisecond), cfg.Tick)
	assert.Equal(t, 60, cfg.FrameRate, "default kept")
	assert.Equal(t, []PressConfig{
		{At: TOMLDuration(time.Second), Hold: TOMLDuration(100 * time.Millisecond)},
		{At: TOMLDuration(5 * time.Second), Hold: TOMLDuration(3 * time.Second)},
	}, cfg.Presses)
	assert.Equal(t, SerialOutput, cfg.Output.Kind)
	assert.Equal(t, "/dev/ttyACM0", cfg.Output.Device)
	assert.Equal(t, 115200, cfg.Output.Baud, "default kept")
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
	assert.Equal(t, TOMLDuration(clock.DefaultTick), cfg.Tick)
}

func TestParseConfigBadMode(t *testing.T) {
	_, err := ParseConfig(strings.NewReader(`mode = "disco"`))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    string
	}{
		{"default", func(*Config) {}, ""},
		{"zero tick", func(c *Config) { c.Tick = 0 }, "tick"},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }, "frame rate"},
		{"frame rate beyond latch", func(c *Config) { c.FrameRate = 10000 }, "frame rate"},
		{"bad mode", func(c *Config) { c.Mode = anim.Mode(42) }, "invalid mode"},
		{"press without hold", func(c *Config) {
			c.Presses = []PressConfig{{At: TOMLDuration(time.Second)}}
		}, "no hold"},
		{"overlapping presses", func(c *Config) {
			c.Presses = []PressConfig{
				{At: TOMLDuration(2 * time.Second), Hold: TOMLDuration(time.Second)},
				{At: TOMLDuration(time.Second), Hold: TOMLDuration(1500 * time.Millisecond)},
			}
		}, "overlaps"},
		{"serial without device", func(c *Config) { c.Output.Kind = SerialOutput }, "device"},
		{"spi with one port", func(c *Config) {
			c.Output.Kind = SPIOutput
			c.Output.SPIPorts = []string{"0"}
		}, "2 ports"},
		{"spi", func(c *Config) {
			c.Output.Kind = SPIOutput
			c.Output.SPIPorts = []string{"0", "1"}
		}, ""},
		{"unknown output", func(c *Config) { c.Output.Kind = "hdmi" }, "unknown output"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.modify(&cfg)

			err := cfg.Validate()
			if test.err == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, test.err)
			}
		})
	}
}
