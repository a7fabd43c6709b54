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

package sched

import (
	"github.com/pkg/errors"

	"github.com/db47h/intcode/vm"
)

// ErrStalled is returned by Feedback when an instance waits for more input
// than the loop provides.
var ErrStalled = errors.New("instance stalled")

// Feedback connects the given instances in a loop: the output of each
// instance is the input of the next one, and the output of the last instance
// goes back to the first one. The seed value is the first input of the first
// instance.
//
// Each instance receives one value and must produce one value in turn. The
// loop ends when an instance halts instead, and Feedback returns the last
// value produced. Instances expected to halt after a single pass, like a chain
// of amplifiers, can be run this way too.
//
// Any initial input, like a phase setting, must be queued before calling
// Feedback.
func Feedback(vms []*vm.Instance, seed vm.Cell) (vm.Cell, error) {
	if len(vms) == 0 {
		return 0, errors.New("no instances")
	}
	last := seed
	for {
		for n, i := range vms {
			i.PushInput(last)
			v, ev, err := i.Next()
			if err != nil {
				return last, errors.Wrapf(err, "instance %d", n)
			}
			switch ev {
			case vm.EventOutput:
				last = v
			case vm.EventHalt:
				return last, nil
			case vm.EventStall:
				return last, errors.Wrapf(ErrStalled, "instance %d", n)
			}
		}
	}
}
