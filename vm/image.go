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

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Image is a finite program image: the values of memory cells 0 to len-1.
type Image []Cell

// ParseImage reads a comma separated list of signed decimal integers from r.
// Whitespace around tokens, including newlines, is ignored. An empty input
// yields an empty image.
func ParseImage(r io.Reader) (Image, error) {
	br := bufio.NewReader(r)
	var (
		img Image
		tok strings.Builder
	)
	emit := func() error {
		t := strings.TrimSpace(tok.String())
		tok.Reset()
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return &ParseError{Index: len(img), Token: t, Err: err}
		}
		img = append(img, Cell(v))
		return nil
	}
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read failed")
		}
		if c == ',' {
			if err = emit(); err != nil {
				return nil, err
			}
			continue
		}
		tok.WriteByte(c)
	}
	if len(img) == 0 && strings.TrimSpace(tok.String()) == "" {
		return Image{}, nil
	}
	if err := emit(); err != nil {
		return nil, err
	}
	return img, nil
}

// Parse parses program text. See ParseImage.
func Parse(s string) (Image, error) {
	return ParseImage(strings.NewReader(s))
}

// Load loads a program from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := ParseImage(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo writes img to w in program text format, followed by a newline. It
// returns the number of bytes written to w.
func (img Image) WriteTo(w io.Writer) (n int64, err error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	var b []byte
	for i, v := range img {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if len(b) >= 4096 {
			if _, err = bw.Write(b); err != nil {
				return cw.n, errors.Wrap(err, "write failed")
			}
			b = b[:0]
		}
	}
	b = append(b, '\n')
	if _, err = bw.Write(b); err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return cw.n, errors.Wrap(err, "write failed")
	}
	return cw.n, nil
}

// Clone returns a copy of img.
func (img Image) Clone() Image {
	if img == nil {
		return nil
	}
	c := make(Image, len(img))
	copy(c, img)
	return c
}
