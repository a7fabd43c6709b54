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
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/db47h/intcode/vm"
)

// Message is a group of output values sent by a network node.
type Message struct {
	Src     int     // index of the sending node
	Dest    vm.Cell // destination address, the first value of the group
	Payload []vm.Cell
}

// Network steps a set of nodes in a round robin fashion and routes the
// messages they send.
//
// Each node is an instance created with the vm.YieldOnEmpty option, with its
// own address as first input value. Nodes send messages by outputting Arity
// values: the destination address followed by the payload. Messages sent to
// the address of a node (its index in Nodes) are appended to its input queue,
// all others are passed to External.
//
// A node with no pending input reads the Poll value. A node that reads the
// Poll value and stalls without sending anything is considered idle. When all
// nodes are idle, Run calls Idle.
type Network struct {
	Nodes []*vm.Instance
	Arity int
	Poll  vm.Cell

	// External handles messages to addresses outside the network. Run
	// returns when it returns true or an error. If nil, such messages are an
	// error.
	External func(m Message) (stop bool, err error)

	// Idle is called when all nodes are idle. It can use Send to wake up
	// nodes. Run returns when it returns true or an error. If nil, an idle
	// network is an error.
	Idle func(n *Network) (stop bool, err error)

	// Log receives routing events at debug level. If nil, nothing is logged.
	Log *slog.Logger

	idle []bool
}

// ErrIdle is returned by Run when all nodes are idle and no Idle handler is
// set.
var ErrIdle = errors.New("network idle")

// Send appends payload to the input queue of node dest.
func (n *Network) Send(dest int, payload ...vm.Cell) {
	n.Nodes[dest].PushInput(payload...)
	if dest < len(n.idle) {
		n.idle[dest] = false
	}
}

func (n *Network) allIdle() bool {
	for _, idle := range n.idle {
		if !idle {
			return false
		}
	}
	return true
}

func (n *Network) allHalted() bool {
	for _, i := range n.Nodes {
		if !i.Halted() {
			return false
		}
	}
	return true
}

// recv reads the remaining values of a message from node k.
func (n *Network) recv(k int, dest vm.Cell) (Message, error) {
	m := Message{Src: k, Dest: dest, Payload: make([]vm.Cell, 0, n.Arity-1)}
	for len(m.Payload) < n.Arity-1 {
		v, ev, err := n.Nodes[k].Next()
		if err != nil {
			return m, errors.Wrapf(err, "node %d", k)
		}
		if ev != vm.EventOutput {
			return m, errors.Errorf("node %d: message to %d cut short by %v", k, dest, ev)
		}
		m.Payload = append(m.Payload, v)
	}
	return m, nil
}

func (n *Network) route(m Message) (bool, error) {
	if m.Dest >= 0 && m.Dest < vm.Cell(len(n.Nodes)) {
		n.Log.Debug("deliver", "src", m.Src, "dest", m.Dest, "payload", m.Payload)
		n.Send(int(m.Dest), m.Payload...)
		return false, nil
	}
	if n.External == nil {
		return false, errors.Errorf("node %d: no route to %d", m.Src, m.Dest)
	}
	n.Log.Debug("external", "src", m.Src, "dest", m.Dest, "payload", m.Payload)
	return n.External(m)
}

// Run steps the network until a handler stops it, a node fails, or all nodes
// have halted.
func (n *Network) Run() error {
	if len(n.Nodes) == 0 {
		return errors.New("empty network")
	}
	if n.Arity < 1 {
		return errors.Errorf("invalid message arity %d", n.Arity)
	}
	if n.Log == nil {
		n.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	n.idle = make([]bool, len(n.Nodes))
	for {
		if n.allHalted() {
			return nil
		}
		if n.allIdle() {
			if n.Idle == nil {
				return ErrIdle
			}
			for k := range n.idle {
				n.idle[k] = false
			}
			n.Log.Debug("idle")
			if stop, err := n.Idle(n); stop || err != nil {
				return err
			}
		}
		for k, i := range n.Nodes {
			if i.Halted() {
				n.idle[k] = true
				continue
			}
			empty := i.Pending() == 0
			if empty {
				i.PushInput(n.Poll)
			}
			v, ev, err := i.Next()
			if err != nil {
				return errors.Wrapf(err, "node %d", k)
			}
			switch ev {
			case vm.EventOutput:
				n.idle[k] = false
				m, err := n.recv(k, v)
				if err != nil {
					return err
				}
				if stop, err := n.route(m); stop || err != nil {
					return err
				}
			case vm.EventStall:
				if empty {
					n.idle[k] = true
				}
			case vm.EventHalt:
				n.idle[k] = true
			}
		}
	}
}
