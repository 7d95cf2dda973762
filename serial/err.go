package serial

import (
	"errors"

	"github.com/hwsoc/socsim/translate"
)

var f = translate.From

var (
	// ErrUnderflow reports an acknowledge on an edge where no byte
	// was pending: a protocol defect in the circuit, never a device
	// condition.
	ErrUnderflow = errors.New(f("acknowledge with empty queue"))
)

// ErrEdge locates a fatal condition on one direction's edge handler.
type ErrEdge struct {
	Port string
	Dir  string
	Err  error
}

func (err *ErrEdge) Error() string {
	return f("serial %v %v: %v", err.Port, err.Dir, err.Err)
}

func (err *ErrEdge) Unwrap() error {
	return err.Err
}
