// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/db47h/intcode/disasm"
	"github.com/db47h/intcode/internal/config"
	"github.com/db47h/intcode/internal/logs"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/sched"
	"github.com/db47h/intcode/vm"
)

type app struct {
	cfgFile  string
	logLevel string
	logFile  string
	debug    bool

	cfg      *config.Config
	log      *slog.Logger
	closeLog func() error
}

// setup loads the configuration file, applies command line overrides and
// creates the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		var err error
		if cfg, err = config.Load(a.cfgFile); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	l, closeFn, err := logs.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.closeLog = cfg, l, closeFn
	return nil
}

func (a *app) close() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

// vmOptions returns the instance options common to all commands.
func (a *app) vmOptions(cmd *cobra.Command) ([]vm.Option, error) {
	flags := cmd.Flags()
	if flags.Changed("default-input") {
		v, err := flags.GetInt64("default-input")
		if err != nil {
			return nil, err
		}
		a.cfg.VM.DefaultInput = v
	}
	if flags.Changed("max-steps") {
		v, err := flags.GetInt64("max-steps")
		if err != nil {
			return nil, err
		}
		a.cfg.VM.MaxSteps = v
	}
	return []vm.Option{
		vm.DefaultInput(vm.Cell(a.cfg.VM.DefaultInput)),
		vm.MaxSteps(a.cfg.VM.MaxSteps),
		vm.Logger(a.log),
	}, nil
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "intcode",
		Short: "Intcode virtual machine",
		Long: `intcode runs, inspects and connects Intcode programs.

A program file holds comma separated integers. Settings can be read from a
TOML configuration file and overridden on the command line.`,
		PersistentPreRunE: a.setup,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "load settings from TOML `file`")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFile, "log-file", "", "also write JSON logs to `file`")
	pf.BoolVar(&a.debug, "debug", false, "print errors with stack traces")

	root.AddCommand(a.runCmd(), a.asciiCmd(), a.disasmCmd(), a.chainCmd(), a.netCmd())
	return root
}

func (a *app) runCmd() *cobra.Command {
	var (
		input    string
		asText   bool
		dumpMem  bool
		defInput int64
		maxSteps int64
	)
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a program until it halts and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			opts, err := a.vmOptions(cmd)
			if err != nil {
				return err
			}
			if input != "" {
				in, err := vm.Parse(input)
				if err != nil {
					return errors.Wrap(err, "invalid --input")
				}
				opts = append(opts, vm.Input(in...))
			}
			i, err := vm.New(img, opts...)
			if err != nil {
				return err
			}
			out, _, runErr := i.Run()
			w := cmd.OutOrStdout()
			if err = printOutput(w, out, asText); err != nil {
				return err
			}
			if dumpMem {
				if err = dumpVM(i, w); err != nil {
					return err
				}
			}
			a.log.Info("done", "steps", i.Steps(), "pc", int64(i.PC))
			return runErr
		},
	}
	f := cmd.Flags()
	f.StringVar(&input, "input", "", "comma separated input `values`")
	f.BoolVar(&asText, "ascii", false, "print output as ASCII text")
	f.BoolVar(&dumpMem, "dump", false, "dump registers and memory upon exit")
	f.Int64Var(&defInput, "default-input", 0, "value read when the input queue is empty")
	f.Int64Var(&maxSteps, "max-steps", 0, "maximum number of instructions to execute (0 for no limit)")
	return cmd
}

func printOutput(w io.Writer, out []vm.Cell, asText bool) error {
	var err error
	if asText {
		text, extra := ascii.Decode(out)
		if _, err = io.WriteString(w, text); err != nil {
			return err
		}
		out = extra
	}
	for _, v := range out {
		if _, err = io.WriteString(w, strconv.FormatInt(int64(v), 10)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) asciiCmd() *cobra.Command {
	var (
		lines    []string
		maxSteps int64
	)
	cmd := &cobra.Command{
		Use:   "ascii FILE",
		Short: "Run a text program interactively",
		Long: `Run a line oriented text program. Program output is copied to stdout and
input lines are read from stdin whenever the program waits for input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			opts, err := a.vmOptions(cmd)
			if err != nil {
				return err
			}
			s, err := ascii.NewSession(img, opts...)
			if err != nil {
				return err
			}
			s.Send(lines...)
			err = s.Interact(cmd.InOrStdin(), cmd.OutOrStdout())
			if err == io.EOF {
				a.log.Info("end of input", "steps", s.Instance().Steps())
				return nil
			}
			return err
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&lines, "send", nil, "queue input `line` before reading stdin (can be repeated)")
	f.Int64Var(&maxSteps, "max-steps", 0, "maximum number of instructions to execute (0 for no limit)")
	return cmd
}

func (a *app) disasmCmd() *cobra.Command {
	var base int
	cmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Print a program listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			if base < 0 || base > len(img) {
				return errors.Errorf("start address %d out of range", base)
			}
			return disasm.DisassembleAll(img[base:], base, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&base, "start", 0, "start listing at `address`")
	return cmd
}

func (a *app) chainCmd() *cobra.Command {
	var (
		phases   string
		seed     int64
		maxSteps int64
	)
	cmd := &cobra.Command{
		Use:   "chain FILE",
		Short: "Run copies of a program in a feedback loop",
		Long: `Start one instance of the program per phase value, each receiving its phase
as first input, and connect them in a loop: each instance output is the next
instance input. The seed value is sent to the first instance. The last value
produced before an instance halts is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			ps, err := vm.Parse(phases)
			if err != nil {
				return errors.Wrap(err, "invalid --phases")
			}
			if len(ps) == 0 {
				return errors.New("no phases")
			}
			opts, err := a.vmOptions(cmd)
			if err != nil {
				return err
			}
			vms := make([]*vm.Instance, len(ps))
			for n, p := range ps {
				l := a.log.With("instance", n)
				if vms[n], err = vm.New(img, append(opts, vm.YieldOnEmpty(true), vm.Logger(l), vm.Input(p))...); err != nil {
					return err
				}
			}
			v, err := sched.Feedback(vms, vm.Cell(seed))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&phases, "phases", "", "comma separated phase `values`, one per instance")
	f.Int64Var(&seed, "seed", 0, "first input `value` of the first instance")
	f.Int64Var(&maxSteps, "max-steps", 0, "maximum number of instructions to execute per instance (0 for no limit)")
	return cmd
}

func (a *app) netCmd() *cobra.Command {
	var (
		nodes    int
		arity    int
		poll     int64
		maxMsg   int
		maxSteps int64
	)
	cmd := &cobra.Command{
		Use:   "net FILE",
		Short: "Run copies of a program as nodes of a network",
		Long: `Start one instance of the program per node, each receiving its node address
as first input. Nodes send messages by outputting a destination address
followed by a payload. Messages to other nodes are routed to their input
queue, messages to any other address are printed. A node with no pending
input reads the poll value.

The network runs until all nodes halt, until --max-messages messages have been
printed, or until all nodes are idle.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			if nodes < 1 {
				return errors.Errorf("invalid node count %d", nodes)
			}
			opts, err := a.vmOptions(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			var sent int
			n := &sched.Network{
				Nodes: make([]*vm.Instance, nodes),
				Arity: arity,
				Poll:  vm.Cell(poll),
				Log:   a.log,
				External: func(m sched.Message) (bool, error) {
					sent++
					if _, err := fmt.Fprintf(w, "%d -> %d: %v\n", m.Src, m.Dest, m.Payload); err != nil {
						return true, err
					}
					return maxMsg > 0 && sent >= maxMsg, nil
				},
			}
			for k := range n.Nodes {
				l := a.log.With("node", k)
				if n.Nodes[k], err = vm.New(img, append(opts, vm.YieldOnEmpty(true), vm.Logger(l), vm.Input(vm.Cell(k)))...); err != nil {
					return err
				}
			}
			err = n.Run()
			if errors.Is(err, sched.ErrIdle) {
				a.log.Info("network idle", "messages", sent)
				return nil
			}
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&nodes, "nodes", 1, "number of nodes")
	f.IntVar(&arity, "arity", 3, "number of values per message, destination included")
	f.Int64Var(&poll, "poll", -1, "value read by nodes with no pending input")
	f.IntVar(&maxMsg, "max-messages", 0, "stop after printing `n` messages (0 for no limit)")
	f.Int64Var(&maxSteps, "max-steps", 0, "maximum number of instructions to execute per node (0 for no limit)")
	return cmd
}

func (a *app) exit(err error) {
	if a.debug {
		fmt.Fprintf(os.Stderr, "intcode: %+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "intcode: %v\n", err)
	}
	os.Exit(1)
}

func main() {
	a := new(app)
	err := a.command().Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		a.exit(err)
	}
}
