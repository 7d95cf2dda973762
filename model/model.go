// Package model provides circuit models that terminate one full-duplex
// serial port: a built-in echo design and a Starlark-scripted design.
// The generated-circuit case is the same shape, just with more wires;
// anything implementing sim.Model and exposing its port lines can take
// their place.
package model

import (
	"github.com/hwsoc/socsim/serial"
	"github.com/hwsoc/socsim/trace"
)

// A Port is a circuit model terminating one serial port. Lines returns
// the handshake bundles the bridges attach to; Probes returns the
// traceable variables.
type Port interface {
	Step(clk bool) error
	Lines() (rx, tx *serial.Line)
	Probes() []trace.Probe
}

// lineProbes exposes the six port wires for tracing.
func lineProbes(rx, tx *serial.Line) []trace.Probe {
	return []trace.Probe{
		trace.Bit("rx_rdy", rx.Ready.Get),
		trace.Bit("rx_ack", rx.Ack.Get),
		trace.Bus("rx_data", 8, func() uint64 { return uint64(rx.Data.Get()) }),
		trace.Bit("tx_rdy", tx.Ready.Get),
		trace.Bit("tx_ack", tx.Ack.Get),
		trace.Bus("tx_data", 8, func() uint64 { return uint64(tx.Data.Get()) }),
	}
}
