// Package serial bridges a simulated ready/acknowledge handshake to an
// external byte-stream endpoint. Each direction is an independent state
// machine advanced exactly once per rising clock edge, and no operation
// in either machine may block the tick: device I/O is always gated on a
// zero-timeout readiness check taken on the same edge.
//
// Both directions share one wire naming. The producer asserts ready
// when a byte is available or acceptable, the consumer asserts ack to
// accept it, and a byte moves on every edge where both are settled
// high. On the receive side the bridge produces and the circuit
// consumes; on the transmit side the roles reverse but the machine
// shape stays the same.
package serial

import (
	"github.com/hwsoc/socsim/signal"
)

// Line is the three-wire bundle a circuit exposes per direction:
// ready and ack control wires plus an 8-bit data wire. The bridge
// reads settled values and schedules next values; the circuit model
// commits them during evaluation. The bridge never mutates a settled
// value directly.
type Line struct {
	Ready *signal.Bit
	Ack   *signal.Bit
	Data  *signal.Byte
}

// NewLine allocates a detached handshake line for a model that owns
// its own port wiring.
func NewLine() *Line {
	return &Line{
		Ready: &signal.Bit{},
		Ack:   &signal.Bit{},
		Data:  &signal.Byte{},
	}
}

// Commit settles the pending values on all three wires.
func (l *Line) Commit() {
	l.Ready.Commit()
	l.Ack.Commit()
	l.Data.Commit()
}

// An EdgeHandler advances a handshake state machine on the rising
// clock edge. The tick driver invokes it exactly once per tick,
// between raising the clock and the high-phase model evaluation, and
// never on the falling edge.
type EdgeHandler interface {
	RisingEdge() error
}
