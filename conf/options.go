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

// Package conf parses and validates the "protocol::key=value;key=value;..."
// configuration string recognized by this client, and assembles it into the
// Options consumed by the buffer, transport and auto-flush packages.
package conf

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/nabbar/ilpclient/errors"
	"github.com/nabbar/ilpclient/logger"
)

const (
	ProtoHTTP  = "http"
	ProtoHTTPS = "https"
	ProtoTCP   = "tcp"
	ProtoTCPS  = "tcps"
)

// Options is the fully parsed, validated configuration for one client. It is
// built once, either from a configuration string (Parse) or programmatically,
// and never mutated afterward.
type Options struct {
	Protocol string `validate:"required,oneof=http https tcp tcps"`
	Host     string `validate:"required"`
	Port     int    `validate:"required,gt=0,lte=65535"`

	// ProtocolVersion pins the line protocol version (1, 2 or 3). Zero
	// means auto-negotiate against the server (HTTP(S) only).
	ProtocolVersion int `validate:"omitempty,oneof=1 2 3"`

	Username string
	Password string
	Token    string

	// TLSInsecureSkipVerify disables peer certificate verification. The zero
	// value keeps verification on, matching "tls_verify=on" being the
	// default; set by "tls_verify=unsafe_off".
	TLSInsecureSkipVerify bool
	TLSCA                 string

	InitBufSize int64 `validate:"gte=0"`
	MaxBufSize  int64 `validate:"gte=0"`
	MaxNameLen  int   `validate:"gte=0"`

	RequestMinThroughput int64 `validate:"gte=0"`
	RequestTimeout       int64 `validate:"gte=0"` // milliseconds
	RetryTimeout         int64 `validate:"gte=0"` // milliseconds

	// AutoFlushDisabled turns the scheduler off entirely. The zero value
	// keeps auto-flush enabled, matching "auto_flush=on" being the default.
	AutoFlushDisabled bool
	AutoFlushRows     int   `validate:"gte=0"`
	AutoFlushInterval int64 `validate:"gte=0"` // milliseconds

	// StdlibHTTP records the "stdlib_http" key. It is parsed and stored
	// only: no transport reads it, and HTTP(S) always uses the retry-aware
	// transport.
	StdlibHTTP bool

	Log logger.Logger
}

// IsTCP reports whether Protocol selects the streaming TCP(S) transport.
func (o *Options) IsTCP() bool {
	return o.Protocol == ProtoTCP || o.Protocol == ProtoTCPS
}

// IsTLS reports whether Protocol selects a TLS-wrapped transport.
func (o *Options) IsTLS() bool {
	return o.Protocol == ProtoHTTPS || o.Protocol == ProtoTCPS
}

func (o *Options) applyDefaults() {
	if o.InitBufSize == 0 {
		o.InitBufSize = 64 * 1024
	}
	if o.MaxBufSize == 0 {
		o.MaxBufSize = 100 * 1024 * 1024
	}
	if o.MaxNameLen == 0 {
		o.MaxNameLen = 127
	}
	if o.RequestTimeout == 0 {
		o.RequestTimeout = 10_000
	}
	if o.RetryTimeout == 0 {
		o.RetryTimeout = 10_000
	}
	if o.RequestMinThroughput == 0 {
		o.RequestMinThroughput = 100 * 1024
	}

	if o.AutoFlushInterval == 0 {
		o.AutoFlushInterval = 1_000
	}
	if o.AutoFlushRows == 0 {
		if o.IsTCP() {
			o.AutoFlushRows = 600
		} else {
			o.AutoFlushRows = 75_000
		}
	}
}

// Validate checks field-level constraints and the cross-field rules that
// validator tags alone cannot express.
func (o *Options) Validate() liberr.Error {
	err := ErrorValidation.Error(nil)

	if er := libval.New().Struct(o); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		} else if ve, ok := er.(libval.ValidationErrors); ok {
			for _, e := range ve {
				//nolint goerr113
				err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
			}
		}
	}

	if o.MaxBufSize > 0 && o.InitBufSize > o.MaxBufSize {
		//nolint goerr113
		err.Add(fmt.Errorf("init_buf_size (%d) must not exceed max_buf_size (%d)", o.InitBufSize, o.MaxBufSize))
	}

	if (o.Username != "") != (o.Token != "") && o.IsTCP() {
		//nolint goerr113
		err.Add(fmt.Errorf("username and token must be set together for a TCP(S) auth handshake"))
	}

	if err.HasParent() {
		return err
	}

	return nil
}
