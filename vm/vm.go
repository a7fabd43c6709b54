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

package vm

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       Cell // Program Counter (aka. Instruction Pointer)
	RelBase  Cell // Relative base
	mem      *Memory
	image    Image
	input    []Cell
	defInput Cell
	yield    bool
	halted   bool
	err      error
	steps    int64
	maxSteps int64
	log      *slog.Logger
}

// Option interface
type Option func(*Instance) error

// Input appends the given values to the input queue.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.PushInput(v...); return nil }
}

// DefaultInput sets the value read by an IN instruction when the input queue
// is empty and the instance is not configured to yield. The default is 0.
func DefaultInput(v Cell) Option {
	return func(i *Instance) error { i.defInput = v; return nil }
}

// YieldOnEmpty configures the behavior of IN instructions on an empty input
// queue. If yield is true, Next returns EventStall instead of reading the
// default input value. The instruction is retried on the next call to Next.
func YieldOnEmpty(yield bool) Option {
	return func(i *Instance) error { i.yield = yield; return nil }
}

// MaxSteps limits the number of instructions executed by the instance before
// it fails with a StepLimitError. 0 means no limit.
func MaxSteps(n int64) Option {
	return func(i *Instance) error {
		if n < 0 {
			return errors.Errorf("invalid step limit %d", n)
		}
		i.maxSteps = n
		return nil
	}
}

// Logger sets the logger used to report halts, stalls, resets and errors.
// Nothing is logged by default.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		if l == nil {
			return errors.New("nil logger")
		}
		i.log = l
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// New creates a new Intcode Virtual Machine instance.
//
// The image is copied into the instance memory at addresses 0 to len(img)-1,
// so the same image can be used to create any number of independent
// instances.
//
// Options will be set by calling SetOptions.
func New(img Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		image: img.Clone(),
		mem:   NewMemory(img),
		log:   discard,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Memory returns the instance memory.
func (i *Instance) Memory() *Memory {
	return i.mem
}

// Halted returns true if the instance executed a HALT instruction.
func (i *Instance) Halted() bool {
	return i.halted
}

// Err returns the fatal error that stopped the instance, if any.
func (i *Instance) Err() error {
	return i.err
}

// Steps returns the number of instructions executed since the instance was
// created or last reset.
func (i *Instance) Steps() int64 {
	return i.steps
}

// Reset restores the instance to its initial state: PC and relative base are
// set to 0, memory is restored to the loaded program image and the input
// queue is cleared. Options are left unchanged.
func (i *Instance) Reset() {
	i.PC, i.RelBase = 0, 0
	i.mem = NewMemory(i.image)
	i.input = i.input[:0]
	i.halted = false
	i.err = nil
	i.steps = 0
	i.log.Debug("reset")
}
