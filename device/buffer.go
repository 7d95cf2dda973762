package device

// Buffer is an in-memory endpoint for exercising a circuit without a
// terminal. Fed bytes queue up for the simulation to read; bytes the
// simulation writes accumulate for inspection. Writability can be
// withheld to exercise back-pressure.
type Buffer struct {
	name       string
	in         []byte
	out        []byte
	closed     bool
	unwritable bool
}

// NewBuffer returns an open, writable in-memory endpoint.
func NewBuffer(name string) *Buffer {
	return &Buffer{name: name}
}

// Feed queues bytes for the simulation to read.
func (b *Buffer) Feed(data ...byte) {
	b.in = append(b.in, data...)
}

// Output returns the bytes written by the simulation so far.
func (b *Buffer) Output() []byte {
	return b.out
}

// SetWritable controls whether WriteByte readiness is reported.
func (b *Buffer) SetWritable(ok bool) {
	b.unwritable = !ok
}

// Name returns the endpoint name.
func (b *Buffer) Name() string {
	return b.name
}

// Readable reports whether a fed byte is pending.
func (b *Buffer) Readable() bool {
	return !b.closed && len(b.in) > 0
}

// Writable reports write readiness.
func (b *Buffer) Writable() bool {
	return !b.closed && !b.unwritable
}

// ReadByte pops the next fed byte.
func (b *Buffer) ReadByte() (byte, error) {
	if b.closed {
		return 0, &ErrEndpoint{ID: b.name, Op: "read", Err: ErrClosed}
	}
	if len(b.in) == 0 {
		return 0, &ErrEndpoint{ID: b.name, Op: "read", Err: ErrNotReady}
	}
	value := b.in[0]
	b.in = b.in[1:]
	return value, nil
}

// WriteByte appends one byte to the output.
func (b *Buffer) WriteByte(value byte) error {
	if b.closed {
		return &ErrEndpoint{ID: b.name, Op: "write", Err: ErrClosed}
	}
	if b.unwritable {
		return &ErrEndpoint{ID: b.name, Op: "write", Err: ErrNotReady}
	}
	b.out = append(b.out, value)
	return nil
}

// Close marks the endpoint torn down.
func (b *Buffer) Close() error {
	b.closed = true
	return nil
}
