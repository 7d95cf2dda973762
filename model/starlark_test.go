package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hwsoc/socsim/device"
	"github.com/hwsoc/socsim/serial"
	"github.com/hwsoc/socsim/sim"
)

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.star")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const echoScript = `
def tick(port, mem):
    fifo = mem.get("fifo", [])
    if mem.get("ack", False) and port["rx_ready"]:
        fifo.append(port["rx_data"])
    if mem.get("valid", False) and port["tx_ready"]:
        fifo = fifo[1:]
    ack = len(fifo) < 4
    valid = len(fifo) > 0
    mem["fifo"] = fifo
    mem["ack"] = ack
    mem["valid"] = valid
    out = {"rx_ack": ack, "tx_valid": valid}
    if valid:
        out["tx_data"] = fifo[0]
    return out
`

func TestScript_EchoLoop(t *testing.T) {
	assert := assert.New(t)

	script, err := LoadScript(writeScript(t, echoScript))
	assert.NoError(err)

	buf := device.NewBuffer("uart")
	reg := device.NewRegistry(func(string) (device.Device, error) {
		return buf, nil
	})
	rxLine, txLine := script.Lines()
	rx, err := serial.NewRX(reg, "uart", rxLine)
	assert.NoError(err)
	tx, err := serial.NewTX(reg, "uart", txLine)
	assert.NoError(err)

	payload := []byte{0x41, 0x42, 0x43}
	buf.Feed(payload...)

	runner := &sim.Runner{
		Model:  script,
		Edges:  []serial.EdgeHandler{rx, tx},
		Budget: 64,
	}
	assert.NoError(runner.Run())
	assert.Equal(payload, buf.Output())
}

func TestLoadScript_MissingTick(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadScript(writeScript(t, "x = 1\n"))
	assert.ErrorIs(err, ErrNoTick)
}

func TestLoadScript_SyntaxError(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadScript(writeScript(t, "def tick(\n"))
	assert.Error(err)

	var serr *ErrScript
	assert.ErrorAs(err, &serr)
}

func TestScript_BadResultIsFatal(t *testing.T) {
	assert := assert.New(t)

	script, err := LoadScript(writeScript(t, "def tick(port, mem):\n    return 7\n"))
	assert.NoError(err)

	assert.NoError(script.Step(false))
	assert.ErrorIs(script.Step(true), ErrBadResult)
}

func TestScript_BadTxDataIsFatal(t *testing.T) {
	assert := assert.New(t)

	source := "def tick(port, mem):\n    return {\"tx_valid\": True, \"tx_data\": 999}\n"
	script, err := LoadScript(writeScript(t, source))
	assert.NoError(err)

	assert.NoError(script.Step(false))
	assert.ErrorIs(script.Step(true), ErrBadTxData)
}

func TestScript_RuntimeErrorIsFatal(t *testing.T) {
	assert := assert.New(t)

	script, err := LoadScript(writeScript(t, "def tick(port, mem):\n    fail(\"boom\")\n"))
	assert.NoError(err)

	assert.NoError(script.Step(false))
	err = script.Step(true)
	assert.Error(err)

	var serr *ErrScript
	assert.ErrorAs(err, &serr)
}
