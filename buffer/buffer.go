/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package buffer implements the growable byte buffer that accumulates
// encoded rows between flushes. A Buffer tracks three cursors: the write
// position, the end of the last fully-committed row, and a count of
// committed rows; only bytes before the row boundary are ever handed to a
// transport.
package buffer

import (
	"time"

	liberr "github.com/nabbar/ilpclient/errors"
)

// Buffer is not safe for concurrent use; callers serialize access to one
// Buffer per client (see the concurrency model in SPEC_FULL.md §5).
type Buffer struct {
	data         []byte
	pos          int
	endOfLastRow int
	pendingRows  int
	maxSize      int64
	lastFlush    time.Time
}

// New allocates a Buffer with the given initial capacity. maxSize bounds
// growth; zero means unbounded.
func New(initSize, maxSize int64) (*Buffer, liberr.Error) {
	if initSize <= 0 {
		return nil, ErrorInvalidCapacity.Error(nil)
	}

	return &Buffer{
		data:      make([]byte, initSize),
		maxSize:   maxSize,
		lastFlush: time.Now(),
	}, nil
}

func (b *Buffer) Capacity() int { return len(b.data) }

func (b *Buffer) Position() int { return b.pos }

func (b *Buffer) EndOfLastRow() int { return b.endOfLastRow }

func (b *Buffer) PendingRowCount() int { return b.pendingRows }

func (b *Buffer) LastFlushTime() time.Time { return b.lastFlush }

// Reserve grows the buffer, doubling capacity until the n additional bytes
// fit at the current position. Growth is capped at maxSize; a request that
// cannot be satisfied within the cap fails with ErrorMaxSizeExceeded.
func (b *Buffer) Reserve(n int) liberr.Error {
	required := int64(b.pos) + int64(n)

	if required <= int64(len(b.data)) {
		return nil
	}

	if b.maxSize > 0 && required > b.maxSize {
		return ErrorMaxSizeExceeded.Errorf(b.maxSize, required)
	}

	newCap := int64(len(b.data))
	if newCap <= 0 {
		newCap = 1
	}
	for newCap < required {
		newCap *= 2
	}
	if b.maxSize > 0 && newCap > b.maxSize {
		newCap = b.maxSize
	}

	grown := make([]byte, newCap)
	copy(grown, b.data[:b.pos])
	b.data = grown

	return nil
}

// Write appends p at the current position, growing the buffer as needed.
func (b *Buffer) Write(p []byte) liberr.Error {
	if len(p) == 0 {
		return nil
	}
	if e := b.Reserve(len(p)); e != nil {
		return e
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return nil
}

// WriteByte appends a single byte at the current position.
func (b *Buffer) WriteByte(c byte) liberr.Error {
	if e := b.Reserve(1); e != nil {
		return e
	}
	b.data[b.pos] = c
	b.pos++
	return nil
}

// CommitRow marks every byte written since the previous commit as belonging
// to one complete row.
func (b *Buffer) CommitRow() {
	b.endOfLastRow = b.pos
	b.pendingRows++
}

// TakeForSend returns a copy of the committed prefix [0, EndOfLastRow) and
// compacts the buffer, moving any bytes of a row still under construction
// to the front. ok is false when there is nothing committed to send.
func (b *Buffer) TakeForSend() (view []byte, ok bool) {
	if b.endOfLastRow == 0 {
		return nil, false
	}

	view = make([]byte, b.endOfLastRow)
	copy(view, b.data[:b.endOfLastRow])

	remaining := b.pos - b.endOfLastRow
	copy(b.data, b.data[b.endOfLastRow:b.pos])
	b.pos = remaining
	b.endOfLastRow = 0
	b.pendingRows = 0
	b.lastFlush = time.Now()

	return view, true
}

// Reset discards all buffered bytes, committed or not.
func (b *Buffer) Reset() {
	b.pos = 0
	b.endOfLastRow = 0
	b.pendingRows = 0
	b.lastFlush = time.Now()
}
