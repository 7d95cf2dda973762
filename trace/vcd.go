// Package trace records simulation activity as a Value Change Dump.
// The tick driver requests one sample per evaluation phase, two per
// clock period; only variables whose value changed since the previous
// sample are dumped.
package trace

import (
	"fmt"
	"io"
)

// A Probe exposes one traced variable. Get is read at sample time and
// must not block. Memory probes cover stored contents and are only
// included when memory tracing is requested, since they dominate file
// size.
type Probe struct {
	Name   string
	Width  int
	Get    func() uint64
	Memory bool
}

// Bit builds a single-wire probe.
func Bit(name string, get func() bool) Probe {
	return Probe{
		Name:  name,
		Width: 1,
		Get: func() uint64 {
			if get() {
				return 1
			}
			return 0
		},
	}
}

// Bus builds a multi-wire probe of the given width.
func Bus(name string, width int, get func() uint64) Probe {
	return Probe{Name: name, Width: width, Get: get}
}

type vcdVar struct {
	probe Probe
	code  string
	last  uint64
}

// VCD writes samples in Value Change Dump format. The header and the
// initial variable dump go out with the first sample.
type VCD struct {
	w       io.Writer
	vars    []vcdVar
	started bool
}

// NewVCD builds a writer over the given probes. Memory probes are
// skipped unless withMemories is set.
func NewVCD(w io.Writer, probes []Probe, withMemories bool) *VCD {
	vcd := &VCD{w: w}
	for _, p := range probes {
		if p.Memory && !withMemories {
			continue
		}
		vcd.vars = append(vcd.vars, vcdVar{
			probe: p,
			code:  idCode(len(vcd.vars)),
		})
	}
	return vcd
}

// Sample dumps the variables that changed since the previous sample,
// stamped with time unit t. The first sample emits the declaration
// header and every variable.
func (v *VCD) Sample(t uint64) error {
	if !v.started {
		if err := v.header(); err != nil {
			return err
		}
	}
	var body string
	for i := range v.vars {
		value := v.vars[i].probe.Get()
		if v.started && value == v.vars[i].last {
			continue
		}
		v.vars[i].last = value
		body += formatValue(value, v.vars[i].probe.Width, v.vars[i].code)
	}
	if v.started && body == "" {
		return nil
	}
	if _, err := fmt.Fprintf(v.w, "#%d\n", t); err != nil {
		return err
	}
	if !v.started {
		v.started = true
		body = "$dumpvars\n" + body + "$end\n"
	}
	_, err := io.WriteString(v.w, body)
	return err
}

func (v *VCD) header() error {
	if _, err := io.WriteString(v.w, "$timescale 1 us $end\n"); err != nil {
		return err
	}
	for _, vv := range v.vars {
		_, err := fmt.Fprintf(v.w, "$var wire %d %s %s $end\n",
			vv.probe.Width, vv.code, vv.probe.Name)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(v.w, "$enddefinitions $end\n")
	return err
}

func formatValue(value uint64, width int, code string) string {
	if width == 1 {
		return fmt.Sprintf("%d%s\n", value&1, code)
	}
	return fmt.Sprintf("b%b %s\n", value, code)
}

// idCode assigns the shortest identifier for variable index i, built
// from the printable characters VCD allows.
func idCode(i int) string {
	const base = 94 // '!' through '~'
	code := string(rune('!' + i%base))
	for i /= base; i > 0; i /= base {
		code = string(rune('!'+(i-1)%base)) + code
	}
	return code
}
