package model

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/hwsoc/socsim/serial"
	"github.com/hwsoc/socsim/trace"
)

// Script is a circuit model whose rising-edge logic lives in a
// Starlark file. The script defines
//
//	def tick(port, mem):
//	    ...
//	    return {"rx_ack": ..., "tx_valid": ..., "tx_data": ...}
//
// where port carries the settled wire values ("rx_ready", "rx_data",
// "tx_ready") and mem is a dict persisting across edges. Omitted
// result keys deassert their wire. A script failure is fatal to the
// run, like any other protocol defect.
type Script struct {
	rx *serial.Line
	tx *serial.Line

	path    string
	thread  *starlark.Thread
	tick    starlark.Callable
	mem     *starlark.Dict
	lastClk bool
}

// LoadScript parses and executes the script file, resolving its tick
// function.
func LoadScript(path string) (*Script, error) {
	thread := &starlark.Thread{Name: "model"}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, path, nil, nil)
	if err != nil {
		return nil, &ErrScript{Path: path, Err: err}
	}
	tick, ok := globals["tick"].(starlark.Callable)
	if !ok {
		return nil, &ErrScript{Path: path, Err: ErrNoTick}
	}
	return &Script{
		rx:     serial.NewLine(),
		tx:     serial.NewLine(),
		path:   path,
		thread: thread,
		tick:   tick,
		mem:    starlark.NewDict(8),
	}, nil
}

// Lines returns the receive and transmit handshake bundles.
func (m *Script) Lines() (rx, tx *serial.Line) {
	return m.rx, m.tx
}

// Probes returns the port wires. Script memory is an opaque dict and
// is not traced.
func (m *Script) Probes() []trace.Probe {
	return lineProbes(m.rx, m.tx)
}

// Step evaluates the scripted circuit at the given clock level and
// commits the pending wire values.
func (m *Script) Step(clk bool) error {
	var err error
	if clk && !m.lastClk {
		err = m.risingEdge()
	}
	m.lastClk = clk
	m.rx.Commit()
	m.tx.Commit()
	return err
}

func (m *Script) risingEdge() error {
	port := starlark.NewDict(3)
	_ = port.SetKey(starlark.String("rx_ready"), starlark.Bool(m.rx.Ready.Get()))
	_ = port.SetKey(starlark.String("rx_data"), starlark.MakeInt(int(m.rx.Data.Get())))
	_ = port.SetKey(starlark.String("tx_ready"), starlark.Bool(m.tx.Ready.Get()))

	result, err := starlark.Call(m.thread, m.tick, starlark.Tuple{port, m.mem}, nil)
	if err != nil {
		return &ErrScript{Path: m.path, Err: err}
	}
	out, ok := result.(starlark.IterableMapping)
	if !ok {
		return &ErrScript{Path: m.path, Err: ErrBadResult}
	}

	m.rx.Ack.Set(truth(out, "rx_ack"))
	m.tx.Ack.Set(truth(out, "tx_valid"))

	value, found, _ := out.Get(starlark.String("tx_data"))
	if found {
		n, err := starlark.AsInt32(value)
		if err != nil || n < 0 || n > 255 {
			return &ErrScript{Path: m.path, Err: ErrBadTxData}
		}
		m.tx.Data.Set(byte(n))
	}
	return nil
}

func truth(out starlark.IterableMapping, key string) bool {
	value, found, _ := out.Get(starlark.String(key))
	return found && bool(value.Truth())
}
