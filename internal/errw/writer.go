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

// Package errw provides a writer that remembers the first write error.
package errw

import (
	"io"

	"github.com/pkg/errors"
)

// Writer is a simple wrapper to track io errors. The first error returned by
// the underlying writer is wrapped with a "write failed" message and stored in
// Err. From then on, Write does not touch the underlying writer and keeps
// returning that error over and over. This allows writing a sequence of values
// and checking Err once at the end.
type Writer struct {
	w   io.Writer
	Err error
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteString writes s.
func (w *Writer) WriteString(s string) (n int, err error) {
	return w.Write([]byte(s))
}

// New returns a new Writer. If w already is a *Writer, it is returned as is,
// so that nested helpers share the same error state.
func New(w io.Writer) *Writer {
	if ew, ok := w.(*Writer); ok {
		return ew
	}
	return &Writer{w, nil}
}
