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

package sched_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/intcode/sched"
	"github.com/db47h/intcode/vm"
)

func instances(t *testing.T, img vm.Image, phases []vm.Cell, opts ...vm.Option) []*vm.Instance {
	t.Helper()
	vms := make([]*vm.Instance, len(phases))
	for n, p := range phases {
		i, err := vm.New(img, append(opts, vm.Input(p))...)
		require.NoError(t, err)
		vms[n] = i
	}
	return vms
}

func TestFeedback(t *testing.T) {
	var tests = [...]struct {
		name   string
		img    vm.Image
		phases []vm.Cell
		want   vm.Cell
	}{
		{"chain", vm.Image{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}, []vm.Cell{4, 3, 2, 1, 0}, 43210},
		{"loop", vm.Image{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5},
			[]vm.Cell{9, 8, 7, 6, 5}, 139629729},
		{"loop 2", vm.Image{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54,
			-5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4,
			53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10},
			[]vm.Cell{9, 7, 8, 5, 6}, 18216},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := sched.Feedback(instances(t, test.img, test.phases), 0)
			require.NoError(t, err, "%+v", err)
			assert.Equal(t, test.want, v)
		})
	}
}

func TestFeedbackErrors(t *testing.T) {
	_, err := sched.Feedback(nil, 0)
	assert.Error(t, err)

	// wants two values per output
	img := vm.Image{3, 100, 3, 101, 1, 100, 101, 102, 4, 102, 1105, 1, 0}
	i, err := vm.New(img, vm.YieldOnEmpty(true))
	require.NoError(t, err)
	_, err = sched.Feedback([]*vm.Instance{i}, 1)
	assert.Equal(t, sched.ErrStalled, errors.Cause(err))

	i, err = vm.New(vm.Image{3, 0, 4, 0, 98})
	require.NoError(t, err)
	v, err := sched.Feedback([]*vm.Instance{i}, 42)
	var e *vm.DecodeError
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, vm.Cell(42), v)
}

// reads its address, sends (255, addr, addr*2) then polls forever
var reporter = vm.Image{3, 100, 104, 255, 4, 100, 1002, 100, 2, 101, 4, 101, 3, 102, 1105, 1, 12}

func network(t *testing.T, imgs ...vm.Image) *sched.Network {
	t.Helper()
	n := &sched.Network{Poll: -1}
	for k, img := range imgs {
		i, err := vm.New(img, vm.YieldOnEmpty(true), vm.Input(vm.Cell(k)))
		require.NoError(t, err)
		n.Nodes = append(n.Nodes, i)
	}
	return n
}

func TestNetworkIdle(t *testing.T) {
	n := network(t, reporter, reporter, reporter)
	n.Arity = 3
	var msgs []sched.Message
	n.External = func(m sched.Message) (bool, error) {
		msgs = append(msgs, m)
		return false, nil
	}
	idle := 0
	n.Idle = func(*sched.Network) (bool, error) {
		idle++
		return true, nil
	}
	require.NoError(t, n.Run())
	assert.Equal(t, 1, idle)
	assert.Equal(t, []sched.Message{
		{Src: 0, Dest: 255, Payload: []vm.Cell{0, 0}},
		{Src: 1, Dest: 255, Payload: []vm.Cell{1, 2}},
		{Src: 2, Dest: 255, Payload: []vm.Cell{2, 4}},
	}, msgs)

	n = network(t, reporter)
	n.Arity = 3
	n.External = func(sched.Message) (bool, error) { return false, nil }
	assert.Equal(t, sched.ErrIdle, n.Run())
}

var (
	// reads its address, sends 7 to node 1 then polls forever
	sender = vm.Image{3, 100, 104, 1, 104, 7, 3, 101, 1105, 1, 6}
	// reads its address, then for each value x other than -1, sends
	// (255, x*10)
	scaler = vm.Image{3, 100, 3, 101, 1008, 101, -1, 102, 1005, 102, 2, 1002, 101, 10, 103, 104, 255, 4, 103, 1105, 1, 2}
)

func TestNetworkRouting(t *testing.T) {
	n := network(t, sender, scaler)
	n.Arity = 2
	var got []vm.Cell
	n.External = func(m sched.Message) (bool, error) {
		assert.Equal(t, 1, m.Src)
		assert.Equal(t, vm.Cell(255), m.Dest)
		got = append(got, m.Payload...)
		return m.Payload[0] == 50, nil
	}
	idle := 0
	n.Idle = func(n *sched.Network) (bool, error) {
		idle++
		n.Send(1, 5)
		return false, nil
	}
	require.NoError(t, n.Run())
	assert.Equal(t, []vm.Cell{70, 50}, got)
	assert.Equal(t, 1, idle)
}

func TestNetworkErrors(t *testing.T) {
	assert.Error(t, (&sched.Network{}).Run())

	n := network(t, reporter)
	assert.Error(t, n.Run(), "arity")

	// no route to 255
	n = network(t, reporter)
	n.Arity = 3
	assert.Error(t, n.Run())

	// halts in the middle of a message
	n = network(t, vm.Image{104, 255, 99})
	n.Arity = 2
	n.External = func(sched.Message) (bool, error) { return false, nil }
	assert.Error(t, n.Run())

	// failing node
	n = network(t, vm.Image{3, 100, 98})
	n.Arity = 2
	var e *vm.DecodeError
	assert.True(t, errors.As(n.Run(), &e))

	// all nodes halt
	n = network(t, vm.Image{3, 100, 99}, vm.Image{3, 100, 99})
	n.Arity = 2
	assert.NoError(t, n.Run())
}
