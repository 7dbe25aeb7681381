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

// Package http implements the request/response transport: POST /write for
// row delivery and GET /settings for protocol-version negotiation, with
// hashicorp/go-retryablehttp-backed retry on a fixed server-status set.
package http

import (
	"strconv"
	"time"

	"github.com/nabbar/ilpclient/logger"
	"github.com/nabbar/ilpclient/tlsconf"
)

// retryableStatus is the exact set of HTTP statuses this client retries on.
var retryableStatus = map[int]bool{
	500: true, 503: true, 504: true, 507: true,
	509: true, 523: true, 524: true, 529: true, 599: true,
}

// Options configures one Transport instance. It is built once by the
// config parser / options layer and never mutated afterward.
type Options struct {
	Scheme string // "http" or "https"
	Host   string
	Port   int

	Username string
	Password string
	Token    string

	TLS *tlsconf.Config

	RequestMinThroughput int64 // bytes/sec, must be > 0
	RequestTimeout       time.Duration
	RetryTimeout         time.Duration

	Log logger.Logger
}

func (o *Options) baseURL() string {
	return o.Scheme + "://" + o.Host + ":" + strconv.Itoa(o.Port)
}
