package sim

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/hwsoc/socsim/serial"
)

// Runner advances a model one full clock period per tick until its
// cycle budget is spent or an interrupt is observed. Configure the
// exported fields before the first tick.
type Runner struct {
	// Model is the circuit under simulation.
	Model Model
	// Edges are the handshake machines to advance once per rising
	// edge, in registration order.
	Edges []serial.EdgeHandler
	// Budget bounds the number of rising edges. Zero runs nothing.
	Budget uint64
	// Tracer, when set, samples the design after every evaluation
	// phase.
	Tracer Sampler
	// Interrupt, when set, is polled at tick boundaries only, so an
	// in-progress tick always completes before shutdown.
	Interrupt <-chan os.Signal

	clk   bool
	now   uint64
	ticks uint64
}

// Run executes ticks until the budget is exhausted or an interrupt is
// pending. It never blocks on the interrupt channel.
func (r *Runner) Run() error {
	for i := uint64(0); i < r.Budget; i++ {
		if r.interrupted() {
			logrus.WithField("ticks", r.ticks).Info("interrupted")
			return nil
		}
		if err := r.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Tick drives exactly one clock period: low-phase evaluation, then the
// rising edge with every serial hook, then high-phase evaluation, each
// phase followed by a trace sample. A reactor-style scheduler can call
// Tick directly from an idle or periodic callback instead of Run.
func (r *Runner) Tick() error {
	r.clk = false
	if err := r.Model.Step(false); err != nil {
		return err
	}
	if err := r.sample(); err != nil {
		return err
	}

	r.clk = true
	for _, edge := range r.Edges {
		if err := edge.RisingEdge(); err != nil {
			return err
		}
	}
	if err := r.Model.Step(true); err != nil {
		return err
	}
	if err := r.sample(); err != nil {
		return err
	}

	r.ticks++
	return nil
}

// Ticks returns the number of completed clock periods.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

// ClockHigh returns the clock level driven by the last phase.
func (r *Runner) ClockHigh() bool {
	return r.clk
}

func (r *Runner) sample() error {
	t := r.now
	r.now++
	if r.Tracer == nil {
		return nil
	}
	return r.Tracer.Sample(t)
}

func (r *Runner) interrupted() bool {
	if r.Interrupt == nil {
		return false
	}
	select {
	case <-r.Interrupt:
		return true
	default:
		return false
	}
}
