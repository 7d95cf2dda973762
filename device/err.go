package device

import (
	"errors"

	"github.com/hwsoc/socsim/translate"
)

var f = translate.From

var (
	// Device errors
	ErrRxBound       = errors.New(f("rx port collision"))
	ErrTxBound       = errors.New(f("tx port collision"))
	ErrClosed        = errors.New(f("endpoint closed"))
	ErrNotReady      = errors.New(f("endpoint not ready"))
	ErrShortTransfer = errors.New(f("short transfer"))
)

// ErrEndpoint wraps a failing endpoint operation with the endpoint
// identifier and the operation name.
type ErrEndpoint struct {
	ID  string
	Op  string
	Err error
}

func (err *ErrEndpoint) Error() string {
	return f("endpoint %v: %v: %v", err.ID, err.Op, err.Err)
}

func (err *ErrEndpoint) Unwrap() error {
	return err.Err
}
