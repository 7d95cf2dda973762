package serial

import (
	"github.com/hwsoc/socsim/device"
)

// TX moves bytes from the circuit to the endpoint. There is no queue
// on this side: the endpoint's writability is polled fresh every edge
// and propagated to the circuit through ready, so an unwritable device
// makes the circuit hold its byte.
type TX struct {
	line *Line
	ep   *device.Handle
}

// NewTX binds the transmit direction of the endpoint named id and
// attaches it to line.
func NewTX(reg *device.Registry, id string, line *Line) (*TX, error) {
	ep, err := reg.Bind(id, device.TX)
	if err != nil {
		return nil, err
	}
	return &TX{line: line, ep: ep}, nil
}

// RisingEdge advances the transmit machine: a byte moves only on an
// edge where the circuit held data valid and the device had accepted
// readiness on the previous cycle.
func (tx *TX) RisingEdge() error {
	if tx.line.Ack.Get() && tx.line.Ready.Get() {
		if err := tx.ep.Device().WriteByte(tx.line.Data.Get()); err != nil {
			return &ErrEdge{Port: tx.ep.ID(), Dir: "tx", Err: err}
		}
	}
	tx.line.Ready.Set(tx.ep.Device().Writable())
	return nil
}

// Release drops the endpoint binding.
func (tx *TX) Release() error {
	return tx.ep.Release()
}
