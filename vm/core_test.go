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

package vm_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/intcode/vm"
)

type C []vm.Cell

func setup(t *testing.T, code C, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(vm.Image(code), opts...)
	require.NoError(t, err)
	return i
}

func run(t *testing.T, i *vm.Instance) C {
	t.Helper()
	out, ev, err := i.Run()
	require.NoError(t, err, "%+v", err)
	require.Equal(t, vm.EventHalt, ev)
	return C(out)
}

var memTests = [...]struct {
	name  string
	code  C
	mem   C
	steps int64
}{
	{"add", C{1, 0, 0, 0, 99}, C{2, 0, 0, 0, 99}, 2},
	{"mul", C{2, 3, 0, 3, 99}, C{2, 3, 0, 6, 99}, 2},
	{"mul after code", C{2, 4, 4, 5, 99, 0}, C{2, 4, 4, 5, 99, 9801}, 2},
	{"self modifying", C{1, 1, 1, 4, 99, 5, 6, 0, 99}, C{30, 1, 1, 4, 2, 5, 6, 0, 99}, 3},
	{"add mul", C{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, C{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}, 3},
	{"immediate", C{1002, 4, 3, 4, 33}, C{1002, 4, 3, 4, 99}, 2},
	{"negative", C{1101, 100, -1, 4, 0}, C{1101, 100, -1, 4, 99}, 2},
}

func TestMemory(t *testing.T) {
	for _, test := range memTests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.code)
			assert.Empty(t, run(t, i))
			assert.Equal(t, vm.Image(test.mem), i.Memory().Snapshot())
			assert.Equal(t, test.steps, i.Steps())
			assert.True(t, i.Halted())
		})
	}
}

var (
	equal8 = C{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}
	cmp8   = C{3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31, 1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104, 999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99}
	quine  = C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
)

var ioTests = [...]struct {
	name string
	code C
	in   C
	out  C
}{
	{"equal 8 true", equal8, C{8}, C{1}},
	{"equal 8 false", equal8, C{2}, C{0}},
	{"less than 8 true", C{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, C{4}, C{1}},
	{"less than 8 false", C{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, C{9}, C{0}},
	{"equal 8 immediate", C{3, 3, 1108, -1, 8, 3, 4, 3, 99}, C{8}, C{1}},
	{"less than 8 immediate", C{3, 3, 1107, -1, 8, 3, 4, 3, 99}, C{8}, C{0}},
	{"jump position zero", C{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, C{0}, C{0}},
	{"jump position nonzero", C{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, C{5}, C{1}},
	{"jump immediate zero", C{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, C{0}, C{0}},
	{"jump immediate nonzero", C{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, C{5}, C{1}},
	{"compare below 8", cmp8, C{7}, C{999}},
	{"compare 8", cmp8, C{8}, C{1000}},
	{"compare above 8", cmp8, C{9}, C{1001}},
	{"quine", quine, nil, quine},
	{"large multiply", C{1102, 34915192, 34915192, 7, 4, 7, 99, 0}, nil, C{1219070632396864}},
	{"large value", C{104, 1125899906842624, 99}, nil, C{1125899906842624}},
	{"relative write past image", C{109, 1000, 21101, 3, 4, 0, 204, 0, 99}, nil, C{7}},
	{"negative address", C{1101, 5, 6, -5, 4, -5, 99}, nil, C{11}},
}

func TestIO(t *testing.T) {
	for _, test := range ioTests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.code, vm.Input(test.in...))
			assert.Equal(t, test.out, run(t, i))
		})
	}
}

func TestMemoryGrowth(t *testing.T) {
	i := setup(t, C{109, 1000, 21101, 3, 4, 0, 204, 0, 99})
	run(t, i)
	mem := i.Memory()
	assert.Equal(t, 1001, mem.Len())
	assert.Equal(t, vm.Cell(7), mem.Get(1000))
	assert.Equal(t, vm.Cell(0), mem.Get(999))
	assert.Equal(t, vm.Cell(1000), i.RelBase)

	i = setup(t, quine)
	run(t, i)
	assert.Equal(t, 102, i.Memory().Len())
	assert.Equal(t, vm.Cell(16), i.Memory().Get(100))
}

func TestErrors(t *testing.T) {
	var tests = [...]struct {
		name  string
		code  C
		pc    vm.Cell
		check func(t *testing.T, err error)
	}{
		{"bad opcode", C{1101, 0, 0, 6, 98, 99, 0}, 4, func(t *testing.T, err error) {
			var e *vm.DecodeError
			require.True(t, errors.As(err, &e))
			assert.Equal(t, vm.Cell(4), e.PC)
			assert.Equal(t, vm.Cell(98), e.Word)
		}},
		{"bad mode", C{30004, 0, 99}, 0, func(t *testing.T, err error) {
			var e *vm.DecodeError
			require.True(t, errors.As(err, &e))
			assert.Equal(t, vm.Cell(30004), e.Word)
		}},
		{"bad mode after jump", C{1105, 1, 4, 0, 30004, 99}, 4, func(t *testing.T, err error) {
			var e *vm.DecodeError
			require.True(t, errors.As(err, &e))
			assert.Equal(t, vm.Cell(4), e.PC)
			assert.Equal(t, vm.Cell(30004), e.Word)
		}},
		{"immediate write add", C{11101, 1, 1, 5, 99}, 0, func(t *testing.T, err error) {
			var e *vm.WriteModeError
			require.True(t, errors.As(err, &e))
			assert.Equal(t, vm.OpAdd, e.Op)
			assert.Equal(t, 3, e.Operand)
		}},
		{"immediate write input", C{104, 1, 103, 0, 99}, 2, func(t *testing.T, err error) {
			var e *vm.WriteModeError
			require.True(t, errors.As(err, &e))
			assert.Equal(t, vm.OpIn, e.Op)
			assert.Equal(t, 1, e.Operand)
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.code)
			_, _, err := i.Run()
			require.Error(t, err)
			test.check(t, err)
			assert.Equal(t, test.pc, i.PC)
			assert.False(t, i.Halted())
			// errors are sticky
			_, _, again := i.Next()
			assert.Equal(t, err, again)
			assert.Equal(t, err, i.Err())
		})
	}
}

func TestErrorKeepsMemory(t *testing.T) {
	i := setup(t, C{1101, 2, 3, 7, 11101, 1, 1, 0})
	_, _, err := i.Next()
	require.Error(t, err)
	assert.Equal(t, vm.Cell(5), i.Memory().Get(7))
}

func TestStepLimit(t *testing.T) {
	i := setup(t, C{1105, 1, 0}, vm.MaxSteps(10))
	_, _, err := i.Next()
	var e *vm.StepLimitError
	require.True(t, errors.As(err, &e), "%+v", err)
	assert.Equal(t, int64(10), e.Limit)
	assert.Equal(t, int64(10), i.Steps())

	_, err = vm.New(vm.Image{99}, vm.MaxSteps(-1))
	assert.Error(t, err)
}

func TestHalted(t *testing.T) {
	i := setup(t, C{104, 7, 99})
	v, ev, err := i.Next()
	require.NoError(t, err)
	assert.Equal(t, vm.EventOutput, ev)
	assert.Equal(t, vm.Cell(7), v)
	for n := 0; n < 3; n++ {
		_, ev, err = i.Next()
		require.NoError(t, err)
		assert.Equal(t, vm.EventHalt, ev)
	}
	assert.Equal(t, int64(2), i.Steps())
}
