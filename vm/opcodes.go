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

import "strconv"

// Opcode selects the operation of an instruction. It is stored in the two
// least significant decimal digits of an instruction word.
type Opcode uint8

// Intcode Virtual Machine Opcodes.
const (
	OpAdd Opcode = iota + 1
	OpMul
	OpIn
	OpOut
	OpJumpIfTrue
	OpJumpIfFalse
	OpLessThan
	OpEquals
	OpAdjustRelBase
	OpHalt Opcode = 99
)

var opcodes = [...]struct {
	name  string
	arity int
}{
	OpAdd:           {"add", 3},
	OpMul:           {"mul", 3},
	OpIn:            {"in", 1},
	OpOut:           {"out", 1},
	OpJumpIfTrue:    {"jnz", 2},
	OpJumpIfFalse:   {"jz", 2},
	OpLessThan:      {"lt", 3},
	OpEquals:        {"eq", 3},
	OpAdjustRelBase: {"arb", 1},
	OpHalt:          {"halt", 0},
}

// Valid reports whether op is one of the known opcodes.
func (op Opcode) Valid() bool {
	return int(op) < len(opcodes) && opcodes[op].name != ""
}

// String returns the opcode mnemonic.
func (op Opcode) String() string {
	if op.Valid() {
		return opcodes[op].name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Arity returns the number of operands taken by op.
func (op Opcode) Arity() int {
	if op.Valid() {
		return opcodes[op].arity
	}
	return 0
}

// Mode is a parameter addressing mode.
type Mode uint8

// Parameter modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [3]Mode // operands 1, 2 and 3
}

// Decode decodes the instruction word v.
//
// The two least significant decimal digits select the opcode, the next three
// digits, from least to most significant, select the parameter modes of
// operands 1 to 3. Missing mode digits default to Position.
func Decode(v Cell) (Instruction, error) {
	var ins Instruction
	if v < 0 || v > 99999 {
		return ins, &DecodeError{Word: v, Reason: "instruction word out of range"}
	}
	ins.Op = Opcode(v % 100)
	if !ins.Op.Valid() {
		return ins, &DecodeError{Word: v, Reason: "unknown opcode " + strconv.Itoa(int(v%100))}
	}
	for n, d := 0, v/100; n < len(ins.Modes); n, d = n+1, d/10 {
		m := Mode(d % 10)
		if m > Relative {
			return ins, &DecodeError{Word: v, Reason: "unknown mode " + strconv.Itoa(int(m)) + " for operand " + strconv.Itoa(n+1)}
		}
		ins.Modes[n] = m
	}
	return ins, nil
}
