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

import "fmt"

// DecodeError is returned when an instruction word holds an unknown opcode or
// parameter mode.
type DecodeError struct {
	PC     Cell
	Word   Cell
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %d @pc=%d: %s", e.Word, e.PC, e.Reason)
}

// WriteModeError is returned when an instruction uses Immediate mode for an
// operand it writes to.
type WriteModeError struct {
	PC      Cell
	Op      Opcode
	Operand int
}

func (e *WriteModeError) Error() string {
	return fmt.Sprintf("%v @pc=%d: immediate mode write target for operand %d", e.Op, e.PC, e.Operand)
}

// ParseError reports a malformed token in program text. Index is the 0-based
// position of the token in the program.
type ParseError struct {
	Index int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("token %d %q: %v", e.Index, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StepLimitError is returned when an instance exceeds the number of steps
// configured with MaxSteps.
type StepLimitError struct {
	PC    Cell
	Limit int64
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit %d exceeded @pc=%d", e.Limit, e.PC)
}
