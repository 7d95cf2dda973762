package device

import (
	"github.com/sirupsen/logrus"
)

// Direction is one half of a full-duplex port.
type Direction int

const (
	// RX receives bytes from the endpoint into the circuit.
	RX Direction = iota
	// TX sends bytes from the circuit to the endpoint.
	TX
)

func (d Direction) String() string {
	if d == RX {
		return "rx"
	}
	return "tx"
}

// An Opener allocates the device behind an endpoint identifier on its
// first binding.
type Opener func(id string) (Device, error)

type entry struct {
	dev  Device
	refs int
	rx   bool
	tx   bool
}

// Registry maps endpoint identifiers to shared devices. One RX and one
// TX binding may share an identifier to form a full-duplex port;
// binding the same direction twice is a configuration error. Binding
// happens once at model construction, before the tick loop starts, so
// the registry needs no locking.
type Registry struct {
	open    Opener
	entries map[string]*entry
}

// NewRegistry returns a registry allocating devices through open. A
// nil open allocates pseudo terminals.
func NewRegistry(open Opener) *Registry {
	if open == nil {
		open = func(string) (Device, error) {
			return OpenPty()
		}
	}
	return &Registry{
		open:    open,
		entries: make(map[string]*entry),
	}
}

// Bind claims one direction of the endpoint named id, allocating the
// device on first reference.
func (r *Registry) Bind(id string, dir Direction) (*Handle, error) {
	e := r.entries[id]
	if e == nil {
		dev, err := r.open(id)
		if err != nil {
			return nil, &ErrEndpoint{ID: id, Op: "open", Err: err}
		}
		e = &entry{dev: dev}
		r.entries[id] = e
	}
	switch dir {
	case RX:
		if e.rx {
			return nil, &ErrEndpoint{ID: id, Op: "bind", Err: ErrRxBound}
		}
		e.rx = true
	case TX:
		if e.tx {
			return nil, &ErrEndpoint{ID: id, Op: "bind", Err: ErrTxBound}
		}
		e.tx = true
	}
	e.refs++
	logrus.WithFields(logrus.Fields{
		"id":   id,
		"dir":  dir.String(),
		"path": e.dev.Name(),
	}).Info("endpoint assigned")
	return &Handle{registry: r, id: id}, nil
}

// Handle is a non-owning reference to a bound endpoint.
type Handle struct {
	registry *Registry
	id       string
	released bool
}

// ID returns the endpoint identifier the handle was bound with.
func (h *Handle) ID() string {
	return h.id
}

// Device returns the shared device. Valid until Release.
func (h *Handle) Device() Device {
	return h.registry.entries[h.id].dev
}

// Release drops the binding; releasing the last direction closes the
// device and forgets the identifier.
func (h *Handle) Release() error {
	if h.released {
		return nil
	}
	h.released = true
	e := h.registry.entries[h.id]
	e.refs--
	if e.refs > 0 {
		return nil
	}
	delete(h.registry.entries, h.id)
	return e.dev.Close()
}
