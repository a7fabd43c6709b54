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

import "github.com/pkg/errors"

// Event is the reason why Next returned control to the caller.
type Event uint8

// Events returned by Next.
const (
	// EventOutput: an OUT instruction produced a value.
	EventOutput Event = iota
	// EventHalt: the program executed a HALT instruction. This is final.
	EventHalt
	// EventStall: an IN instruction found the input queue empty and the
	// instance is configured to yield. Push more input and call Next again.
	EventStall
)

func (e Event) String() string {
	switch e {
	case EventOutput:
		return "output"
	case EventHalt:
		return "halt"
	case EventStall:
		return "stall"
	}
	return "unknown"
}

// load returns the value of operand n (1 based) of the instruction at PC.
func (i *Instance) load(ins Instruction, n int) Cell {
	p := i.mem.Get(i.PC + Cell(n))
	switch ins.Modes[n-1] {
	case Immediate:
		return p
	case Relative:
		return i.mem.Get(i.RelBase + p)
	default:
		return i.mem.Get(p)
	}
}

// addr returns the address operand n (1 based) of the instruction at PC
// refers to.
func (i *Instance) addr(ins Instruction, n int) (Cell, error) {
	p := i.mem.Get(i.PC + Cell(n))
	switch ins.Modes[n-1] {
	case Position:
		return p, nil
	case Relative:
		return i.RelBase + p, nil
	default:
		return 0, &WriteModeError{PC: i.PC, Op: ins.Op, Operand: n}
	}
}

func (i *Instance) fail(err error) (Cell, Event, error) {
	i.err = errors.WithStack(err)
	i.log.Debug("fatal", "pc", i.PC, "rb", i.RelBase, "steps", i.steps, "error", err)
	return 0, EventHalt, i.err
}

// Next runs the program until it outputs a value, halts, or, if the instance
// yields on empty input, until it needs more input.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error. Errors are final: any further call to Next returns the same error.
// Once the program has halted, Next returns EventHalt without running any
// further instructions.
func (i *Instance) Next() (Cell, Event, error) {
	if i.err != nil {
		return 0, EventHalt, i.err
	}
	if i.halted {
		return 0, EventHalt, nil
	}
	for {
		if i.maxSteps > 0 && i.steps >= i.maxSteps {
			return i.fail(&StepLimitError{PC: i.PC, Limit: i.maxSteps})
		}
		ins, err := Decode(i.mem.Get(i.PC))
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.PC = i.PC
			}
			return i.fail(err)
		}
		switch ins.Op {
		case OpAdd:
			dst, err := i.addr(ins, 3)
			if err != nil {
				return i.fail(err)
			}
			i.mem.Set(dst, i.load(ins, 1)+i.load(ins, 2))
			i.PC += 4
		case OpMul:
			dst, err := i.addr(ins, 3)
			if err != nil {
				return i.fail(err)
			}
			i.mem.Set(dst, i.load(ins, 1)*i.load(ins, 2))
			i.PC += 4
		case OpIn:
			dst, err := i.addr(ins, 1)
			if err != nil {
				return i.fail(err)
			}
			v, ok := i.readInput()
			if !ok {
				i.log.Debug("stall", "pc", i.PC, "steps", i.steps)
				return 0, EventStall, nil
			}
			i.mem.Set(dst, v)
			i.PC += 2
		case OpOut:
			v := i.load(ins, 1)
			i.PC += 2
			i.steps++
			return v, EventOutput, nil
		case OpJumpIfTrue:
			if i.load(ins, 1) != 0 {
				i.PC = i.load(ins, 2)
			} else {
				i.PC += 3
			}
		case OpJumpIfFalse:
			if i.load(ins, 1) == 0 {
				i.PC = i.load(ins, 2)
			} else {
				i.PC += 3
			}
		case OpLessThan:
			dst, err := i.addr(ins, 3)
			if err != nil {
				return i.fail(err)
			}
			var v Cell
			if i.load(ins, 1) < i.load(ins, 2) {
				v = 1
			}
			i.mem.Set(dst, v)
			i.PC += 4
		case OpEquals:
			dst, err := i.addr(ins, 3)
			if err != nil {
				return i.fail(err)
			}
			var v Cell
			if i.load(ins, 1) == i.load(ins, 2) {
				v = 1
			}
			i.mem.Set(dst, v)
			i.PC += 4
		case OpAdjustRelBase:
			i.RelBase += i.load(ins, 1)
			i.PC += 2
		case OpHalt:
			i.halted = true
			i.steps++
			i.log.Debug("halt", "pc", i.PC, "steps", i.steps)
			return 0, EventHalt, nil
		}
		i.steps++
	}
}

// Run calls Next until the program halts or stalls and returns the values
// output in the meantime along with the last event.
func (i *Instance) Run() ([]Cell, Event, error) {
	var out []Cell
	for {
		v, ev, err := i.Next()
		if err != nil || ev != EventOutput {
			return out, ev, err
		}
		out = append(out, v)
	}
}
