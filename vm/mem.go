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

import "sort"

// SnapshotMargin is the number of cells past the end of the loaded image that
// Snapshot includes in its dense copy.
const SnapshotMargin = 1 << 20

// Memory is the sparse memory of an Intcode VM. Any address that was never
// written to reads as 0. The zero value is an empty, ready to use memory.
type Memory struct {
	cells map[Cell]Cell
	size  Cell // length of the loaded image
	top   Cell // highest address written to, -1 if none
}

// NewMemory returns a new Memory initialized with a copy of img at addresses
// 0 to len(img)-1.
func NewMemory(img Image) *Memory {
	m := &Memory{cells: make(map[Cell]Cell, len(img)), size: Cell(len(img)), top: -1}
	for addr, v := range img {
		m.Set(Cell(addr), v)
	}
	return m
}

// Get returns the value at address addr.
func (m *Memory) Get(addr Cell) Cell {
	return m.cells[addr]
}

// Set stores v at address addr.
func (m *Memory) Set(addr, v Cell) {
	if m.cells == nil {
		m.cells = make(map[Cell]Cell)
		m.top = -1
	}
	m.cells[addr] = v
	if addr > m.top {
		m.top = addr
	}
}

// Len returns the highest address written to plus one, or 0 if no address
// was written to. Cells at negative addresses are not counted.
func (m *Memory) Len() int {
	if m.cells == nil {
		return 0
	}
	return int(m.top + 1)
}

// Snapshot returns a dense copy of the memory contents from address 0 up to
// the highest address written to below the end of the loaded image plus
// SnapshotMargin. Cells at negative addresses or past that limit are not
// included; use Range to list all cells.
func (m *Memory) Snapshot() Image {
	limit := m.size + SnapshotMargin
	hi := Cell(-1)
	for addr := range m.cells {
		if addr > hi && addr < limit {
			hi = addr
		}
	}
	img := make(Image, hi+1)
	for addr, v := range m.cells {
		if addr >= 0 && addr <= hi {
			img[addr] = v
		}
	}
	return img
}

// Range calls f for every cell written to, in increasing address order,
// negative addresses included. It stops if f returns false.
func (m *Memory) Range(f func(addr, v Cell) bool) {
	addrs := make([]Cell, 0, len(m.cells))
	for addr := range m.cells {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, addr := range addrs {
		if !f(addr, m.cells[addr]) {
			return
		}
	}
}

// Clone returns a deep copy of m.
func (m *Memory) Clone() *Memory {
	c := &Memory{cells: make(map[Cell]Cell, len(m.cells)), size: m.size, top: m.top}
	for addr, v := range m.cells {
		c.cells[addr] = v
	}
	if m.cells == nil {
		c.top = -1
	}
	return c
}
