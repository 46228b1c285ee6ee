// This file is part of tapevm - https://github.com/db47h/tapevm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

// Tape is a fixed size circular array of byte cells with a cursor.
type Tape struct {
	cells []byte
	ptr   int
}

// NewTape returns a zeroed tape of size cells. size must be positive.
func NewTape(size int) *Tape {
	return &Tape{cells: make([]byte, size)}
}

// Len returns the number of cells.
func (t *Tape) Len() int { return len(t.cells) }

// Pointer returns the cursor position, in [0, Len()).
func (t *Tape) Pointer() int { return t.ptr }

// Cells returns the tape cells. Changes to the returned slice are reflected
// in the tape.
func (t *Tape) Cells() []byte { return t.cells }

// Read returns the value of the current cell.
func (t *Tape) Read() byte { return t.cells[t.ptr] }

// Write sets the value of the current cell.
func (t *Tape) Write(v byte) { t.cells[t.ptr] = v }

// Increment adds 1 to the current cell. 255 wraps to 0.
func (t *Tape) Increment() { t.cells[t.ptr]++ }

// Decrement subtracts 1 from the current cell. 0 wraps to 255.
func (t *Tape) Decrement() { t.cells[t.ptr]-- }

// MoveRight moves the cursor one cell right, wrapping to 0 past the end.
func (t *Tape) MoveRight() {
	t.ptr = (t.ptr + 1) % len(t.cells)
}

// MoveLeft moves the cursor one cell left, wrapping to the last cell past 0.
func (t *Tape) MoveLeft() {
	t.ptr = (t.ptr - 1 + len(t.cells)) % len(t.cells)
}

// Reset zeroes all cells and moves the cursor to cell 0.
func (t *Tape) Reset() {
	for i := range t.cells {
		t.cells[i] = 0
	}
	t.ptr = 0
}

// seek moves the cursor to p, which must be in range.
func (t *Tape) seek(p int) { t.ptr = p }
