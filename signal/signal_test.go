package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBit_SetDoesNotLeak(t *testing.T) {
	assert := assert.New(t)

	bit := &Bit{}
	bit.Set(true)
	assert.False(bit.Get())

	bit.Commit()
	assert.True(bit.Get())

	// A commit with no intervening Set holds the value.
	bit.Commit()
	assert.True(bit.Get())
}

func TestBit_ReadAfterWriteSameEdge(t *testing.T) {
	assert := assert.New(t)

	bit := &Bit{}
	bit.Set(true)
	bit.Set(false)
	bit.Commit()
	assert.False(bit.Get())
}

func TestByte_Commit(t *testing.T) {
	assert := assert.New(t)

	data := &Byte{}
	data.Set(0x41)
	assert.Equal(byte(0), data.Get())

	data.Commit()
	assert.Equal(byte(0x41), data.Get())
}
