// Package device presents external byte-stream endpoints to a clocked
// simulation as non-blocking single-byte devices. The simulation steps
// at its own pace; an endpoint may be unreadable or unwritable at any
// instant, so every transfer is gated on a zero-timeout readiness check
// taken inside the same clock edge.
package device

// A Device is one external byte-stream endpoint. No call may block:
// ReadByte and WriteByte are only valid after the matching readiness
// check returned true on the same edge. Readiness observed true
// followed by a failing transfer indicates endpoint teardown and is
// not retried.
type Device interface {
	// Name identifies the endpoint for diagnostics, e.g. the pty
	// slave path.
	Name() string
	// Readable reports whether one byte can be read without blocking.
	Readable() bool
	// Writable reports whether one byte can be written without blocking.
	Writable() bool
	// ReadByte transfers exactly one byte from the endpoint.
	ReadByte() (byte, error)
	// WriteByte transfers exactly one byte to the endpoint.
	WriteByte(value byte) error
	// Close releases the endpoint.
	Close() error
}
