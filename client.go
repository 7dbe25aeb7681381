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

// Package ilpclient assembles the config parser, buffer, row builder,
// transport and auto-flush scheduler packages into a single fluent client
// for submitting Influx Line Protocol rows over HTTP(S) or TCP(S).
package ilpclient

import (
	"context"
	"time"

	"github.com/nabbar/ilpclient/autoflush"
	"github.com/nabbar/ilpclient/buffer"
	"github.com/nabbar/ilpclient/conf"
	liberr "github.com/nabbar/ilpclient/errors"
	"github.com/nabbar/ilpclient/rowbuilder"
	"github.com/nabbar/ilpclient/tlsconf"
	transhttp "github.com/nabbar/ilpclient/transport/http"
	transtcp "github.com/nabbar/ilpclient/transport/tcp"
)

// sender is the minimal surface both transports expose to Client. http and
// tcp each already own retry/connection concerns internally.
type sender interface {
	flush(ctx context.Context, payload []byte) liberr.Error
}

type httpSender struct{ t *transhttp.Transport }

func (s *httpSender) flush(ctx context.Context, payload []byte) liberr.Error {
	return s.t.Write(ctx, payload, "n")
}

type tcpSender struct{ s *transtcp.Sender }

func (s *tcpSender) flush(_ context.Context, payload []byte) liberr.Error {
	return s.s.Write(payload)
}

// Client owns one buffer, one row builder and one transport connection for
// its entire lifetime. It is not safe for concurrent use by multiple
// goroutines; callers needing concurrency should own one Client per
// goroutine, matching the single-writer assumption documented on Sender.
type Client struct {
	o  *conf.Options
	rb *rowbuilder.Builder
	bf *buffer.Buffer
	af *autoflush.Scheduler

	tx  sender
	tcp *transtcp.Sender // non-nil only for the TCP(S) transports, for Close

	closed bool
	err    liberr.Error
}

// New builds a Client from already-validated Options. For the TCP(S)
// transports it also opens and, if configured, authenticates the socket;
// for HTTP(S) with ProtocolVersion left at zero it negotiates the protocol
// version against the server before returning.
func New(o *conf.Options) (*Client, error) {
	if o == nil {
		return nil, ErrorNilOptions.Error(nil)
	}
	if e := o.Validate(); e != nil {
		return nil, e
	}

	bf, e := buffer.New(o.InitBufSize, o.MaxBufSize)
	if e != nil {
		return nil, e
	}

	tlsCfg := buildTLS(o)
	if tlsCfg != nil {
		if e := tlsCfg.Validate(); e != nil {
			return nil, e
		}
	}

	version := o.ProtocolVersion

	c := &Client{o: o, bf: bf}

	if o.IsTCP() {
		to := &transtcp.Options{
			Host:     o.Host,
			Port:     o.Port,
			TLS:      tlsCfg,
			Username: o.Username,
			Token:    o.Token,
			Log:      o.Log,
		}

		s, e := transtcp.New(to)
		if e != nil {
			return nil, e
		}
		if e = s.Connect(); e != nil {
			return nil, e
		}

		if version == 0 {
			version = 1
		}

		c.tx = &tcpSender{s: s}
		c.tcp = s
	} else {
		ho := &transhttp.Options{
			Scheme:               o.Protocol,
			Host:                 o.Host,
			Port:                 o.Port,
			Username:             o.Username,
			Password:             o.Password,
			Token:                o.Token,
			TLS:                  tlsCfg,
			RequestMinThroughput: o.RequestMinThroughput,
			RequestTimeout:       millis(o.RequestTimeout),
			RetryTimeout:         millis(o.RetryTimeout),
			Log:                  o.Log,
		}

		t, e := transhttp.New(ho)
		if e != nil {
			return nil, e
		}

		if version == 0 {
			v, e := t.Negotiate(context.Background())
			if e != nil {
				return nil, e
			}
			version = v
		}

		c.tx = &httpSender{t: t}
	}

	c.rb = rowbuilder.New(bf, rowbuilder.ProtocolVersion(version), o.MaxNameLen)
	c.af = autoflush.New(!o.AutoFlushDisabled, o.AutoFlushRows, o.AutoFlushInterval)

	return c, nil
}

// FromConf parses s with conf.Parse and builds a Client from the result.
func FromConf(s string) (*Client, error) {
	o, e := conf.Parse(s)
	if e != nil {
		return nil, e
	}
	return New(o)
}

// FromEnv reads the configuration string from conf.EnvVar and builds a
// Client from it.
func FromEnv() (*Client, error) {
	o, e := conf.FromEnv()
	if e != nil {
		return nil, e
	}
	return New(o)
}

// FromFile loads a YAML or TOML configuration file with conf.FromFile and
// builds a Client from the result.
func FromFile(path string) (*Client, error) {
	o, e := conf.FromFile(path)
	if e != nil {
		return nil, e
	}
	return New(o)
}

// buildTLS returns nil for a plain (non-TLS) protocol, else a Config built
// from the TLS-related keys of Options.
func buildTLS(o *conf.Options) *tlsconf.Config {
	if !o.IsTLS() {
		return nil
	}

	return &tlsconf.Config{
		VerifyInsecure: o.TLSInsecureSkipVerify,
		CAFile:         o.TLSCA,
		ServerName:     o.Host,
	}
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Err reports the first error raised by a chained Table/Symbol/column call
// since the last Table call started a fresh row.
func (c *Client) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// Flush takes whatever rows are currently committed in the buffer and
// submits them over the transport. It reports false, nil if there was
// nothing to send.
func (c *Client) Flush() (bool, error) {
	view, ok := c.bf.TakeForSend()
	if !ok {
		return false, nil
	}

	if e := c.tx.flush(context.Background(), view); e != nil {
		return false, e
	}
	return true, nil
}

// Close flushes any committed rows, then releases the transport connection.
// For TCP(S) it closes the underlying socket; for HTTP(S) it is a no-op
// beyond the final flush, since the transport owns no persistent connection.
func (c *Client) Close() error {
	if c.closed {
		return ErrorClosed.Error(nil)
	}
	c.closed = true

	_, e := c.Flush()

	if c.tcp != nil {
		if ce := c.tcp.Close(c.bf.Position()); ce != nil && e == nil {
			return ce
		}
	}

	return e
}
