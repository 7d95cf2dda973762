package model

import (
	"errors"

	"github.com/hwsoc/socsim/translate"
)

var f = translate.From

var (
	// Script errors
	ErrNoTick    = errors.New(f("script does not define tick(port, mem)"))
	ErrBadResult = errors.New(f("tick() must return a dict"))
	ErrBadTxData = errors.New(f("tx_data must be an integer 0..255"))
	ErrFifoUnder = errors.New(f("echo fifo underflow"))
)

// ErrScript wraps a failure inside a scripted circuit model.
type ErrScript struct {
	Path string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("model %v: %v", err.Path, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
