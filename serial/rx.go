package serial

import (
	"github.com/hwsoc/socsim/device"
)

// RX moves bytes from the endpoint into the circuit. Bytes read from
// the device queue up until the circuit acknowledges them; whenever
// ready is asserted, data carries the queue head. The queue is
// unbounded: the endpoint's own input buffering is the actual
// back-pressure point, so capping it here would only trade an accepted
// simplification for a drop policy the handshake cannot express.
type RX struct {
	line  *Line
	ep    *device.Handle
	queue []byte
}

// NewRX binds the receive direction of the endpoint named id and
// attaches it to line.
func NewRX(reg *device.Registry, id string, line *Line) (*RX, error) {
	ep, err := reg.Bind(id, device.RX)
	if err != nil {
		return nil, err
	}
	return &RX{line: line, ep: ep}, nil
}

// RisingEdge advances the receive machine. Step order is load-bearing:
// retiring an acknowledged byte, then draining the device, then
// presenting the new head lets a freshly-read byte be presented on the
// same edge it arrived.
func (rx *RX) RisingEdge() error {
	if rx.line.Ack.Get() && rx.line.Ready.Get() {
		if len(rx.queue) == 0 {
			return &ErrEdge{Port: rx.ep.ID(), Dir: "rx", Err: ErrUnderflow}
		}
		rx.queue = rx.queue[1:]
		rx.line.Ready.Set(false)
	}
	if rx.ep.Device().Readable() {
		value, err := rx.ep.Device().ReadByte()
		if err != nil {
			return &ErrEdge{Port: rx.ep.ID(), Dir: "rx", Err: err}
		}
		rx.queue = append(rx.queue, value)
	}
	if len(rx.queue) > 0 {
		rx.line.Ready.Set(true)
		rx.line.Data.Set(rx.queue[0])
	}
	return nil
}

// Pending returns the number of queued, unacknowledged bytes.
func (rx *RX) Pending() int {
	return len(rx.queue)
}

// Release drops the endpoint binding.
func (rx *RX) Release() error {
	return rx.ep.Release()
}
