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

import (
	"io"

	"github.com/pkg/errors"
)

// Buffer is a fixed capacity byte queue used for VM input and output. It has a
// write cursor and a read cursor; bytes are read in the order they were
// appended and are never read twice.
//
// When the write cursor reaches the end of the buffer, unread bytes are moved
// back to the start of the buffer to make room. A Buffer never grows.
type Buffer struct {
	data []byte
	r, w int
}

// NewBuffer returns an empty buffer with the given capacity.
func NewBuffer(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return b.w - b.r }

// HasUnread returns true if there is at least one unread byte.
func (b *Buffer) HasUnread() bool { return b.r < b.w }

// Unread returns the unread bytes without consuming them. The returned slice
// is only valid until the next write.
func (b *Buffer) Unread() []byte { return b.data[b.r:b.w] }

// Reset discards all data.
func (b *Buffer) Reset() { b.r, b.w = 0, 0 }

func (b *Buffer) compact() {
	if b.r == 0 {
		return
	}
	b.w = copy(b.data, b.data[b.r:b.w])
	b.r = 0
}

func (b *Buffer) errFull(n int) error {
	return errors.Wrapf(ErrCapacity, "%d bytes buffer full, %d bytes unread, cannot append %d", len(b.data), b.Len(), n)
}

// Append appends c to the buffer.
func (b *Buffer) Append(c byte) error {
	if b.w == len(b.data) {
		b.compact()
		if b.w == len(b.data) {
			return b.errFull(1)
		}
	}
	b.data[b.w] = c
	b.w++
	return nil
}

// AppendAll appends all bytes in p, or none if they do not all fit.
func (b *Buffer) AppendAll(p []byte) error {
	if len(p) > len(b.data)-b.Len() {
		return b.errFull(len(p))
	}
	if len(p) > len(b.data)-b.w {
		b.compact()
	}
	b.w += copy(b.data[b.w:], p)
	return nil
}

// Write implements io.Writer. It appends as many bytes from p as the buffer
// can hold. If not all of p could be written, the error's cause is
// ErrCapacity.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p) > len(b.data)-b.w {
		b.compact()
	}
	n = copy(b.data[b.w:], p)
	b.w += n
	if n < len(p) {
		return n, b.errFull(len(p) - n)
	}
	return n, nil
}

// Next returns the next unread byte. ok is false if there is none.
func (b *Buffer) Next() (c byte, ok bool) {
	if b.r == b.w {
		return 0, false
	}
	c = b.data[b.r]
	b.r++
	return c, true
}

// ReadByte implements io.ByteReader. It returns io.EOF if there are no unread
// bytes.
func (b *Buffer) ReadByte() (byte, error) {
	if c, ok := b.Next(); ok {
		return c, nil
	}
	return 0, io.EOF
}

// Read implements io.Reader. It returns io.EOF if there are no unread bytes.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.r == b.w {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n = copy(p, b.data[b.r:b.w])
	b.r += n
	return n, nil
}

// Drain returns a copy of all unread bytes and marks them as read. The
// returned slice is empty if there was nothing to read.
func (b *Buffer) Drain() []byte {
	p := make([]byte, b.Len())
	copy(p, b.data[b.r:b.w])
	b.r = b.w
	return p
}
