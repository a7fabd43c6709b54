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

	"github.com/db47h/intcode/internal/errw"
	"github.com/db47h/intcode/vm"
)

// dumpVM dumps the instance registers and memory to the specified io.Writer.
// Memory is written in program file format, followed by cells outside of it,
// one "[addr]=value" per line.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := errw.New(w)
	fmt.Fprintf(ew, "pc=%d rb=%d steps=%d halted=%t\n", i.PC, i.RelBase, i.Steps(), i.Halted())
	if ew.Err != nil {
		return ew.Err
	}
	mem := i.Memory()
	img := mem.Snapshot()
	if _, err := img.WriteTo(ew); err != nil {
		return err
	}
	mem.Range(func(addr, v vm.Cell) bool {
		if addr < 0 || addr >= vm.Cell(len(img)) {
			fmt.Fprintf(ew, "[%d]=%d\n", addr, v)
		}
		return ew.Err == nil
	})
	return ew.Err
}
