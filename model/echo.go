package model

import (
	"fmt"

	"github.com/hwsoc/socsim/serial"
	"github.com/hwsoc/socsim/trace"
)

// DefaultEchoDepth is the echo FIFO capacity when none is given.
const DefaultEchoDepth = 16

// Echo is a full-duplex loopback circuit: every byte accepted on the
// receive port is sent back on the transmit port through a bounded
// FIFO. When the FIFO fills, the receive accept line deasserts and
// inbound bytes wait in the bridge.
type Echo struct {
	rx *serial.Line
	tx *serial.Line

	fifo    []byte
	depth   int
	lastClk bool
}

// NewEcho builds an echo circuit with the given FIFO depth; depth <= 0
// selects DefaultEchoDepth.
func NewEcho(depth int) *Echo {
	if depth <= 0 {
		depth = DefaultEchoDepth
	}
	return &Echo{
		rx:    serial.NewLine(),
		tx:    serial.NewLine(),
		depth: depth,
	}
}

// Lines returns the receive and transmit handshake bundles.
func (m *Echo) Lines() (rx, tx *serial.Line) {
	return m.rx, m.tx
}

// Probes returns the port wires plus the FIFO words; the words are
// memory contents and only traced on request.
func (m *Echo) Probes() []trace.Probe {
	probes := lineProbes(m.rx, m.tx)
	for i := 0; i < m.depth; i++ {
		probes = append(probes, trace.Probe{
			Name:   fmt.Sprintf("fifo_%d", i),
			Width:  8,
			Memory: true,
			Get: func() uint64 {
				if i < len(m.fifo) {
					return uint64(m.fifo[i])
				}
				return 0
			},
		})
	}
	return probes
}

// Step evaluates the circuit at the given clock level and commits the
// pending wire values.
func (m *Echo) Step(clk bool) error {
	var err error
	if clk && !m.lastClk {
		err = m.risingEdge()
	}
	m.lastClk = clk
	m.rx.Commit()
	m.tx.Commit()
	return err
}

func (m *Echo) risingEdge() error {
	// A byte the bridge presented last cycle is accepted now.
	if m.rx.Ready.Get() && m.rx.Ack.Get() {
		m.fifo = append(m.fifo, m.rx.Data.Get())
	}
	// A byte the endpoint took last cycle retires now.
	if m.tx.Ready.Get() && m.tx.Ack.Get() {
		if len(m.fifo) == 0 {
			return ErrFifoUnder
		}
		m.fifo = m.fifo[1:]
	}
	m.rx.Ack.Set(len(m.fifo) < m.depth)
	if len(m.fifo) > 0 {
		m.tx.Ack.Set(true)
		m.tx.Data.Set(m.fifo[0])
	} else {
		m.tx.Ack.Set(false)
	}
	return nil
}
