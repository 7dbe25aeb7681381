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

// Package tcp implements the persistent streaming transport: a raw TCP or
// TLS-over-TCP socket with an optional JWK/ECDSA challenge-response
// authentication handshake, and no per-row server acknowledgement.
package tcp

import (
	"github.com/nabbar/ilpclient/logger"
	"github.com/nabbar/ilpclient/tlsconf"
)

// Options configures one Sender. Username and Token must both be set or
// both be empty; conf.Options.Validate enforces this for TCP(S).
type Options struct {
	Host string
	Port int

	TLS *tlsconf.Config // nil selects plain TCP

	Username string // JWK key-id
	Token    string // JWK "d" component, base64url encoded

	Log logger.Logger
}

func (o *Options) authenticated() bool {
	return o.Username != "" && o.Token != ""
}
