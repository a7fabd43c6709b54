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

// PushInput appends the given values to the back of the input queue. It can
// be called at any time, including after Next returned EventStall.
func (i *Instance) PushInput(v ...Cell) {
	i.input = append(i.input, v...)
}

// Input returns a copy of the pending input values.
func (i *Instance) Input() []Cell {
	in := make([]Cell, len(i.input))
	copy(in, i.input)
	return in
}

// Pending returns the number of values in the input queue.
func (i *Instance) Pending() int {
	return len(i.input)
}

// SetDefaultInput sets the value read by IN instructions when the input queue
// is empty and the instance does not yield. See DefaultInput.
func (i *Instance) SetDefaultInput(v Cell) {
	i.defInput = v
}

// readInput pops the next input value. ok is false if the instance must
// yield.
func (i *Instance) readInput() (v Cell, ok bool) {
	if len(i.input) == 0 {
		if i.yield {
			return 0, false
		}
		return i.defInput, true
	}
	v = i.input[0]
	i.input = i.input[1:]
	return v, true
}
