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

package ilpclient

import (
	"math/big"

	"github.com/nabbar/ilpclient/rowbuilder"
)

// Table starts a new row, clearing any error recorded against the previous
// one. Table and Reset are the only calls that clear Err.
func (c *Client) Table(name string) *Client {
	c.err = nil
	if e := c.rb.Table(name); e != nil {
		c.err = e
	}
	return c
}

// Symbol appends a symbol (indexed, string-only) column. No-op once Err is set.
func (c *Client) Symbol(name, value string) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.Symbol(name, value); e != nil {
		c.err = e
	}
	return c
}

func (c *Client) BoolColumn(name string, value bool) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.BooleanColumn(name, &value); e != nil {
		c.err = e
	}
	return c
}

func (c *Client) IntColumn(name string, value int64) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.IntColumn(name, &value); e != nil {
		c.err = e
	}
	return c
}

func (c *Client) FloatColumn(name string, value float64) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.FloatColumn(name, &value); e != nil {
		c.err = e
	}
	return c
}

func (c *Client) StringColumn(name string, value string) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.StringColumn(name, &value); e != nil {
		c.err = e
	}
	return c
}

// TimestampColumn writes a non-designated timestamp column. Under protocol
// v1/v2 unit must not be rowbuilder.Nanosecond; use TimestampColumnNanos
// there for nanosecond precision. Protocol v3 accepts Nanosecond here.
func (c *Client) TimestampColumn(name string, value int64, unit rowbuilder.TimeUnit) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.TimestampColumn(name, &value, unit); e != nil {
		c.err = e
	}
	return c
}

func (c *Client) TimestampColumnNanos(name string, ns int64) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.TimestampColumnNanos(name, &ns); e != nil {
		c.err = e
	}
	return c
}

// ArrayColumn accepts []float64 or [][]float64; see rowbuilder.ArrayColumn.
func (c *Client) ArrayColumn(name string, value interface{}) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.ArrayColumn(name, value); e != nil {
		c.err = e
	}
	return c
}

func (c *Client) DecimalColumnText(name string, literal string) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.DecimalColumnText(name, literal); e != nil {
		c.err = e
	}
	return c
}

func (c *Client) DecimalColumnUnscaled(name string, unscaled *big.Int, scale int) *Client {
	if c.err != nil {
		return c
	}
	if e := c.rb.DecimalColumnUnscaled(name, unscaled, scale); e != nil {
		c.err = e
	}
	return c
}

// At closes the current row with an explicit designated timestamp, and
// triggers a synchronous flush if the auto-flush scheduler says so. It
// returns the chain error recorded by an earlier call, if any, ahead of
// the row-close error.
func (c *Client) At(ts int64, unit rowbuilder.TimeUnit) error {
	if c.err != nil {
		return c.err
	}
	if e := c.rb.At(ts, unit); e != nil {
		return e
	}
	return c.maybeFlush()
}

// AtNow closes the current row without a designated timestamp, letting the
// server assign ingestion time, and triggers a synchronous flush if the
// auto-flush scheduler says so.
func (c *Client) AtNow() error {
	if c.err != nil {
		return c.err
	}
	if e := c.rb.AtNow(); e != nil {
		return e
	}
	return c.maybeFlush()
}

func (c *Client) maybeFlush() error {
	if !c.af.ShouldFlush(c.bf) {
		return nil
	}
	_, e := c.Flush()
	return e
}

// Reset discards any buffered, un-flushed rows and clears the chain error.
func (c *Client) Reset() *Client {
	c.bf.Reset()
	c.err = nil
	return c
}
