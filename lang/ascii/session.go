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

package ascii

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/db47h/intcode/internal/errw"
	"github.com/db47h/intcode/vm"
)

// Session runs a line oriented text program. The underlying instance always
// yields on empty input, so that the program output can be read before
// answering its prompts.
type Session struct {
	i *vm.Instance
}

// NewSession creates a new instance for img with the given options and
// wraps it into a Session.
func NewSession(img vm.Image, opts ...vm.Option) (*Session, error) {
	i, err := vm.New(img, append(opts[:len(opts):len(opts)], vm.YieldOnEmpty(true))...)
	if err != nil {
		return nil, err
	}
	return &Session{i}, nil
}

// Instance returns the underlying instance.
func (s *Session) Instance() *vm.Instance {
	return s.i
}

// Send queues the given lines as program input.
func (s *Session) Send(lines ...string) {
	s.i.PushInput(Encode(lines...)...)
}

// Read runs the program until it halts or waits for input and returns its
// output. Output values outside the ASCII range are returned in extra.
func (s *Session) Read() (text string, extra []vm.Cell, halted bool, err error) {
	out, ev, err := s.i.Run()
	text, extra = Decode(out)
	return text, extra, ev == vm.EventHalt && err == nil, err
}

// Interact runs the session, copying program output to w and feeding it
// lines read from r whenever it waits for input. Output values outside the
// ASCII range are written to w in decimal, one per line.
//
// Interact returns nil once the program halts. If r reaches EOF while the
// program still waits for input, it returns io.EOF. This is a normal exit
// condition in most use cases.
func (s *Session) Interact(r io.Reader, w io.Writer) error {
	ew := errw.New(w)
	br := bufio.NewReader(r)
	for {
		text, extra, halted, err := s.Read()
		ew.WriteString(text)
		for _, v := range extra {
			fmt.Fprintf(ew, "%d\n", v)
		}
		if err != nil {
			return err
		}
		if ew.Err != nil {
			return ew.Err
		}
		if halted {
			return nil
		}
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
			}
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			s.Send(line)
			continue
		}
		if err == io.EOF {
			return io.EOF
		}
		if err != nil {
			return errors.Wrap(err, "read failed")
		}
	}
}
