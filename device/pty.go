package device

import (
	"os"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Pty is a pseudo-terminal endpoint. The simulation holds the master
// side; whatever opens the slave path talks to the simulated serial
// port. The slave stays open in-process so the master never observes
// a hangup while nothing is attached.
type Pty struct {
	master *os.File
	slave  *os.File
}

// OpenPty allocates a pseudo terminal and configures the master side
// raw: 8-bit characters, no echo, no canonical line buffering.
func OpenPty() (*Pty, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, &ErrEndpoint{ID: "pty", Op: "open", Err: err}
	}
	if _, err := term.MakeRaw(int(master.Fd())); err != nil {
		master.Close()
		slave.Close()
		return nil, &ErrEndpoint{ID: slave.Name(), Op: "raw", Err: err}
	}
	return &Pty{master: master, slave: slave}, nil
}

// Name returns the slave path of the pseudo terminal.
func (p *Pty) Name() string {
	return p.slave.Name()
}

// Readable reports whether a byte is pending on the master side.
func (p *Pty) Readable() bool {
	return poll(p.master.Fd(), unix.POLLIN)
}

// Writable reports whether the master side accepts a byte.
func (p *Pty) Writable() bool {
	return poll(p.master.Fd(), unix.POLLOUT)
}

// ReadByte transfers one byte from the master side.
func (p *Pty) ReadByte() (value byte, err error) {
	var one [1]byte
	n, err := p.master.Read(one[:])
	if err != nil {
		return 0, &ErrEndpoint{ID: p.Name(), Op: "read", Err: err}
	}
	if n != 1 {
		return 0, &ErrEndpoint{ID: p.Name(), Op: "read", Err: ErrShortTransfer}
	}
	return one[0], nil
}

// WriteByte transfers one byte to the master side.
func (p *Pty) WriteByte(value byte) error {
	n, err := p.master.Write([]byte{value})
	if err != nil {
		return &ErrEndpoint{ID: p.Name(), Op: "write", Err: err}
	}
	if n != 1 {
		return &ErrEndpoint{ID: p.Name(), Op: "write", Err: ErrShortTransfer}
	}
	return nil
}

// Close releases both sides of the pseudo terminal.
func (p *Pty) Close() error {
	err := p.master.Close()
	if serr := p.slave.Close(); err == nil {
		err = serr
	}
	return err
}

// poll performs a zero-timeout readiness check on fd. An interrupted
// or failing poll reports not ready; the next edge checks again.
func poll(fd uintptr, events int16) bool {
	pfd := []unix.PollFd{{Fd: int32(fd), Events: events}}
	n, err := unix.Poll(pfd, 0)
	if err != nil || n == 0 {
		return false
	}
	return pfd[0].Revents&events != 0
}
