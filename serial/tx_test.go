package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hwsoc/socsim/device"
)

func bindTX(t *testing.T) (*TX, *Line, *device.Buffer) {
	t.Helper()

	buf := device.NewBuffer("uart")
	reg := device.NewRegistry(func(string) (device.Device, error) {
		return buf, nil
	})
	line := NewLine()
	tx, err := NewTX(reg, "uart", line)
	if err != nil {
		t.Fatal(err)
	}
	return tx, line, buf
}

func TestTX_GatedOnBothWires(t *testing.T) {
	assert := assert.New(t)
	tx, line, buf := bindTX(t)

	// Valid data, but ready has not been observed yet.
	line.Ack.Set(true)
	line.Data.Set(0x58)
	line.Commit()

	assert.NoError(tx.RisingEdge())
	line.Commit()
	assert.Empty(buf.Output())
	assert.True(line.Ready.Get())

	// Both settled high: exactly one write.
	assert.NoError(tx.RisingEdge())
	line.Commit()
	assert.Equal([]byte{0x58}, buf.Output())
}

func TestTX_BackPressure(t *testing.T) {
	assert := assert.New(t)
	tx, line, buf := bindTX(t)

	line.Ack.Set(true)
	line.Data.Set(0x58)
	line.Commit()

	buf.SetWritable(false)
	for i := 0; i < 4; i++ {
		assert.NoError(tx.RisingEdge())
		line.Commit()
		assert.False(line.Ready.Get(), "ready must stay low while unwritable")
		assert.Empty(buf.Output())
	}

	// Device recovers: this edge still sees ready low from the last
	// poll, so nothing moves yet.
	buf.SetWritable(true)
	assert.NoError(tx.RisingEdge())
	line.Commit()
	assert.Empty(buf.Output())
	assert.True(line.Ready.Get())

	// One edge later the byte moves, exactly once.
	assert.NoError(tx.RisingEdge())
	line.Commit()
	assert.Equal([]byte{0x58}, buf.Output())
}

func TestTX_NoWriteWithoutValid(t *testing.T) {
	assert := assert.New(t)
	tx, line, buf := bindTX(t)

	for i := 0; i < 3; i++ {
		assert.NoError(tx.RisingEdge())
		line.Commit()
	}
	assert.Empty(buf.Output())
	assert.True(line.Ready.Get())
}

func TestTX_WriteFailureIsFatal(t *testing.T) {
	assert := assert.New(t)
	tx, line, buf := bindTX(t)

	line.Ack.Set(true)
	line.Data.Set(0x58)
	line.Commit()

	assert.NoError(tx.RisingEdge())
	line.Commit()

	// Readiness was observed, then the device tears down.
	buf.SetWritable(false)
	err := tx.RisingEdge()
	assert.ErrorIs(err, device.ErrNotReady)

	var edge *ErrEdge
	assert.ErrorAs(err, &edge)
	assert.Equal("tx", edge.Dir)
}

func TestTX_StreamsWhileBothHeld(t *testing.T) {
	assert := assert.New(t)
	tx, line, buf := bindTX(t)

	// Prime ready.
	assert.NoError(tx.RisingEdge())
	line.Commit()

	payload := []byte{0x61, 0x62, 0x63}
	for _, value := range payload {
		line.Ack.Set(true)
		line.Data.Set(value)
		line.Commit()

		assert.NoError(tx.RisingEdge())
		line.Commit()
	}
	assert.Equal(payload, buf.Output())
}
