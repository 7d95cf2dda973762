// Package signal provides the double-buffered wires a simulated circuit
// shares with its environment. Each signal holds a settled current value
// and a pending next value. The circuit model applies next to current
// during evaluation; the environment only reads current and schedules
// next, never the other way around. Collapsing the two slots into one
// value introduces same-edge read-after-write hazards.
package signal

// Bit is a single-wire signal.
type Bit struct {
	current bool
	next    bool
}

// Get returns the settled value.
func (b *Bit) Get() bool {
	return b.current
}

// Set schedules value to become current on the next Commit.
func (b *Bit) Set(value bool) {
	b.next = value
}

// Commit applies the pending value.
func (b *Bit) Commit() {
	b.current = b.next
}

// Byte is an 8-bit data signal.
type Byte struct {
	current byte
	next    byte
}

// Get returns the settled value.
func (b *Byte) Get() byte {
	return b.current
}

// Set schedules value to become current on the next Commit.
func (b *Byte) Set(value byte) {
	b.next = value
}

// Commit applies the pending value.
func (b *Byte) Commit() {
	b.current = b.next
}
