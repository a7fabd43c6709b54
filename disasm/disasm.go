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

// Package disasm produces human readable listings of Intcode memory images.
//
// Each instruction is written as its mnemonic followed by its operands.
// Operands are rendered according to their parameter mode:
//
//	[42]     position mode, the cell at address 42
//	42       immediate mode, the value 42
//	[rb+42]  relative mode, the cell at address relative base + 42
//
// Words that do not decode to a valid instruction are listed as "data n".
// Since Intcode programs freely mix code and data, a listing is only a hint:
// data words that happen to decode as instructions are listed as such.
package disasm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/db47h/intcode/internal/errw"
	"github.com/db47h/intcode/vm"
)

func writeOperand(w *errw.Writer, m vm.Mode, v vm.Cell) {
	switch m {
	case vm.Immediate:
		w.WriteString(strconv.FormatInt(int64(v), 10))
	case vm.Relative:
		if v < 0 {
			w.WriteString("[rb")
		} else {
			w.WriteString("[rb+")
		}
		w.WriteString(strconv.FormatInt(int64(v), 10))
		w.WriteString("]")
	default:
		w.WriteString("[")
		w.WriteString(strconv.FormatInt(int64(v), 10))
		w.WriteString("]")
	}
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error. It fails without writing anything if pc is
// out of the bounds of mem.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	if pc < 0 || pc >= len(mem) {
		return pc, errors.Errorf("address %d out of range [0, %d)", pc, len(mem))
	}
	ew := errw.New(w)

	ins, derr := vm.Decode(mem[pc])
	if derr != nil {
		ew.WriteString("data ")
		ew.WriteString(strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	ew.WriteString(ins.Op.String())
	pc++
	for n := 0; n < ins.Op.Arity(); n++ {
		ew.WriteString(" ")
		if pc >= len(mem) {
			ew.WriteString("???")
			continue
		}
		writeOperand(ew, ins.Modes[n], mem[pc])
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := errw.New(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
