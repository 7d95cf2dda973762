// Copyright 2026, The socsim authors

// socsim runs a clocked circuit model against virtual serial ports.
// Each serial port of the model is backed by a pseudo terminal whose
// slave path is announced at startup; attach any terminal program to
// it and talk to the simulated design.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hwsoc/socsim/device"
	"github.com/hwsoc/socsim/model"
	"github.com/hwsoc/socsim/serial"
	"github.com/hwsoc/socsim/sim"
	"github.com/hwsoc/socsim/trace"
)

type options struct {
	cycles        uint64
	tracePath     string
	traceMemories bool
	modelPath     string
	port          string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "socsim",
		Short:         "Run a clocked circuit against virtual serial ports",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag errors keep the usage dump; failures past this
			// point get the single diagnostic line only.
			cmd.SilenceUsage = true
			if opts.cycles > sim.MaxCycles {
				return fmt.Errorf("cycles must be a positive integer lesser than or equal to %d", uint64(sim.MaxCycles))
			}
			return run(opts)
		},
	}

	cmd.Flags().Uint64VarP(&opts.cycles, "cycles", "c", sim.MaxCycles, "number of clock cycles")
	cmd.Flags().StringVarP(&opts.tracePath, "trace", "t", "", "enable tracing to a VCD file")
	cmd.Flags().BoolVarP(&opts.traceMemories, "trace-memories", "m", false, "also trace memories, at the cost of performance and disk usage")
	cmd.Flags().StringVar(&opts.modelPath, "model", "", "Starlark circuit model (default: built-in echo)")
	cmd.Flags().StringVar(&opts.port, "port", "uart", "serial endpoint identifier")

	return cmd
}

func loadModel(opts *options) (model.Port, error) {
	if opts.modelPath != "" {
		return model.LoadScript(opts.modelPath)
	}
	return model.NewEcho(0), nil
}

func run(opts *options) error {
	m, err := loadModel(opts)
	if err != nil {
		return err
	}

	registry := device.NewRegistry(nil)
	rxLine, txLine := m.Lines()

	rx, err := serial.NewRX(registry, opts.port, rxLine)
	if err != nil {
		return err
	}
	defer rx.Release()

	tx, err := serial.NewTX(registry, opts.port, txLine)
	if err != nil {
		return err
	}
	defer tx.Release()

	runner := &sim.Runner{
		Model:  m,
		Edges:  []serial.EdgeHandler{rx, tx},
		Budget: opts.cycles,
	}

	if opts.tracePath != "" {
		file, err := os.Create(opts.tracePath)
		if err != nil {
			return err
		}
		defer file.Close()
		out := bufio.NewWriter(file)
		defer out.Flush()

		probes := append([]trace.Probe{
			trace.Bit("clk", runner.ClockHigh),
		}, m.Probes()...)
		runner.Tracer = trace.NewVCD(out, probes, opts.traceMemories)
	}

	fmt.Print("Press Enter to start simulation...")
	bufio.NewReader(os.Stdin).ReadString('\n')

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	defer signal.Stop(intr)
	runner.Interrupt = intr

	logrus.Info("running, press Ctrl-C to exit simulation")

	err = runner.Run()
	fmt.Println("\rExiting.")
	return err
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
