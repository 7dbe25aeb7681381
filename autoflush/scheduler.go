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

// Package autoflush decides, after each row closes, whether a client should
// call flush() before returning to its caller. It never spawns a timer: the
// client is single-goroutine-owned, so elapsed time is sampled synchronously
// against the buffer's own last-flush marker at the moment a row commits.
package autoflush

import (
	"time"

	"github.com/nabbar/ilpclient/buffer"
)

const (
	DefaultHTTPRows  = 75_000
	DefaultTCPRows   = 600
	DefaultInterval  = time.Second
)

// Scheduler holds the row-count and elapsed-time thresholds for one client.
type Scheduler struct {
	Enabled  bool
	Rows     int
	Interval time.Duration
}

// New builds a Scheduler. intervalMs of zero disables the time-based
// trigger; rows of zero disables the count-based trigger.
func New(enabled bool, rows int, intervalMs int64) *Scheduler {
	return &Scheduler{
		Enabled:  enabled,
		Rows:     rows,
		Interval: time.Duration(intervalMs) * time.Millisecond,
	}
}

// ShouldFlush reports whether buf has crossed a configured threshold. It
// performs no I/O and mutates nothing; the caller remains responsible for
// invoking flush() when this returns true.
func (s *Scheduler) ShouldFlush(buf *buffer.Buffer) bool {
	if !s.Enabled {
		return false
	}

	pending := buf.PendingRowCount()
	if pending == 0 {
		return false
	}

	if s.Rows > 0 && pending >= s.Rows {
		return true
	}

	if s.Interval > 0 && time.Since(buf.LastFlushTime()) >= s.Interval {
		return true
	}

	return false
}
