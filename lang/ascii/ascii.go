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

// Package ascii bridges Intcode programs that talk in ASCII text and Go code.
//
// Each character is exchanged as one cell holding its ordinal value. Programs
// using this convention may still output values outside of the ASCII range,
// typically to report a final result; Decode returns them separately.
package ascii

import (
	"strings"

	"github.com/db47h/intcode/vm"
)

// MaxChar is the largest cell value decoded as a character.
const MaxChar = 127

// Encode returns the input cells for the given lines. Each line is followed by
// a newline character.
func Encode(lines ...string) []vm.Cell {
	n := 0
	for _, l := range lines {
		n += len(l) + 1
	}
	cells := make([]vm.Cell, 0, n)
	for _, l := range lines {
		for i := 0; i < len(l); i++ {
			cells = append(cells, vm.Cell(l[i]))
		}
		cells = append(cells, '\n')
	}
	return cells
}

// Decode converts cells to text. Cells outside the range [0, MaxChar] are not
// part of the text, they are returned in extra, in order.
func Decode(cells []vm.Cell) (text string, extra []vm.Cell) {
	var b strings.Builder
	b.Grow(len(cells))
	for _, c := range cells {
		if c < 0 || c > MaxChar {
			extra = append(extra, c)
			continue
		}
		b.WriteByte(byte(c))
	}
	return b.String(), extra
}
