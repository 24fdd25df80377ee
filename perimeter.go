// Package perimeter runs the perimeter lighting firmware on a desktop
// machine. The render loop, clock and encoder are the same code the boards
// run; only the hardware underneath is simulated.
package perimeter

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"libdb.so/perimeter/anim"
	"libdb.so/perimeter/clock"
	"libdb.so/perimeter/internal/sim"
	"libdb.so/perimeter/internal/sink"
	"libdb.so/perimeter/ledwire"
	"libdb.so/perimeter/render"
	"periph.io/x/conn/v3/physic"
)

// Simulator is the perimeter simulator.
type Simulator struct {
	cfg    *Config
	logger *slog.Logger
}

// NewSimulator creates a new simulator.
func NewSimulator(cfg *Config, logger *slog.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &Simulator{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Run starts the simulator. It blocks until the given context is canceled.
func (s *Simulator) Run(ctx context.Context) error {
	out, err := s.openSink()
	if err != nil {
		return err
	}

	defer func() {
		s.logger.Debug("closing output", "kind", s.cfg.Output.Kind)
		if err := out.Close(); err != nil {
			s.logger.Warn("failed to close output", "error", err)
		}
	}()

	return s.run(ctx, out)
}

func (s *Simulator) openSink() (sink.Sink, error) {
	switch s.cfg.Output.Kind {
	case TerminalOutput:
		return sink.NewTerminal(os.Stdout, s.logger), nil
	case SerialOutput:
		return sink.OpenSerial(s.cfg.Output.Device, s.cfg.Output.Baud)
	case SPIOutput:
		freq := physic.Frequency(s.cfg.Output.SPIFreq) * physic.Hertz
		return sink.OpenSPI(s.cfg.Output.SPIPorts, freq)
	default:
		return nil, errors.Errorf("unknown output kind %q", s.cfg.Output.Kind)
	}
}

func (s *Simulator) run(ctx context.Context, out sink.Sink) error {
	tick := time.Duration(s.cfg.Tick)

	timer := sim.NewTimer(tick)
	clk := clock.New(timer, tick)
	probe := sim.NewProbe(ledwire.NewEncoder(ledwire.DefaultTiming))

	presses := make([]sim.Press, len(s.cfg.Presses))
	for i, p := range s.cfg.Presses {
		presses[i] = sim.Press{At: time.Duration(p.At), Hold: time.Duration(p.Hold)}
	}

	loop := render.NewLoop(render.Config{
		Clock:       clk,
		Button:      sim.NewScript(clk, presses),
		Transmitter: probe,
		Delay:       time.Sleep,
		Mode:        s.cfg.Mode,
	})

	s.logger.Info(
		"starting simulator",
		"mode", s.cfg.Mode,
		"tick", clk.Tick(),
		"frame_rate", s.cfg.FrameRate,
		"output", s.cfg.Output.Kind)

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return timer.Run(ctx, clk.Overflow)
	})
	errg.Go(func() error {
		return s.renderLoop(ctx, loop, probe, out)
	})

	return errg.Wait()
}

func (s *Simulator) renderLoop(ctx context.Context, loop *render.Loop, probe *sim.Probe, out sink.Sink) error {
	frameTicker := time.NewTicker(time.Second / time.Duration(s.cfg.FrameRate))
	defer frameTicker.Stop()

	mode := loop.State().Mode

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frameTicker.C:
		}

		now := loop.Frame()

		strips, err := probe.Take()
		if err != nil {
			return errors.Wrap(err, "data line check failed")
		}

		state := loop.State()
		if state.Mode != mode {
			s.logger.Info(
				"mode changed",
				"from", mode,
				"to", state.Mode,
				"at", state.ChangedAt)
			mode = state.Mode
		}

		s.logger.Debug(
			"frame sent",
			"elapsed", now,
			"north_west_cycles", probe.Cycles(anim.NorthWest),
			"south_east_cycles", probe.Cycles(anim.SouthEast))

		if err := out.WriteFrame(sink.Frame{
			Elapsed: now,
			Mode:    state.Mode,
			Strips:  strips,
		}); err != nil {
			return err
		}
	}
}
