// Package sim drives a clocked circuit model against its serial
// bridges: one full clock period per tick, a bounded number of ticks,
// and a clean stop on interrupt without ever blocking the clock on
// I/O.
package sim

import "math"

// MaxCycles is the largest admissible cycle budget, and the default
// when no budget is given.
const MaxCycles = math.MaxUint64 >> 1

// A Model is the circuit under simulation. Step evaluates the design
// at the given clock level and commits every pending signal value;
// sequential logic advances when Step observes the level rise.
type Model interface {
	Step(clk bool) error
}

// A Sampler records the design state after each evaluation phase. Time
// units increase monotonically, two per tick, one per clock phase.
type Sampler interface {
	Sample(t uint64) error
}
