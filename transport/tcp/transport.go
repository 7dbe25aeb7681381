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

package tcp

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"

	liberr "github.com/nabbar/ilpclient/errors"
	"github.com/nabbar/ilpclient/logger"
)

// Sender owns exactly one TCP(S) socket for the lifetime of a client. It
// MUST NOT be connected more than once.
type Sender struct {
	o         *Options
	connected atomic.Bool
	conn      net.Conn
}

// New builds an unconnected Sender bound to the given Options.
func New(o *Options) (*Sender, liberr.Error) {
	if o == nil || o.Host == "" {
		return nil, ErrorNotConnected.Error(nil)
	}

	return &Sender{o: o}, nil
}

// Connect opens the socket, performs the optional TLS handshake, and the
// optional JWK/ECDSA challenge-response authentication. It may be called
// at most once per Sender.
func (s *Sender) Connect() liberr.Error {
	if !s.connected.CompareAndSwap(false, true) {
		return ErrorAlreadyConnected.Error(nil)
	}

	addr := net.JoinHostPort(s.o.Host, strconv.Itoa(s.o.Port))

	conn, e := net.Dial("tcp", addr)
	if e != nil {
		s.connected.Store(false)
		return ErrorDial.Error(e)
	}

	if s.o.TLS != nil {
		tlsCfg, er := s.o.TLS.New()
		if er != nil {
			_ = conn.Close()
			s.connected.Store(false)
			return er
		}
		tlsCfg.ServerName = s.o.Host

		tc := tls.Client(conn, tlsCfg)
		if e = tc.Handshake(); e != nil {
			_ = conn.Close()
			s.connected.Store(false)
			return ErrorTLSHandshake.Error(e)
		}
		conn = tc
	}

	s.conn = conn

	if s.o.authenticated() {
		if er := s.authenticate(); er != nil {
			_ = conn.Close()
			s.connected.Store(false)
			return er
		}
	}

	return nil
}

func (s *Sender) authenticate() liberr.Error {
	priv, e := jwkPrivateKey(s.o.Token)
	if e != nil {
		return ErrorAuthSign.Error(e)
	}

	if _, e = s.conn.Write([]byte(s.o.Username + "\n")); e != nil {
		return ErrorWrite.Error(e)
	}

	r := bufio.NewReader(s.conn)
	challenge, e := r.ReadBytes('\n')
	if e != nil {
		return ErrorAuthChallenge.Error(e)
	}
	challenge = challenge[:len(challenge)-1] // strip trailing \n

	sig, e := signChallenge(priv, challenge)
	if e != nil {
		return ErrorAuthSign.Error(e)
	}

	if _, e = s.conn.Write(sig); e != nil {
		return ErrorWrite.Error(e)
	}

	return nil
}

// Write streams the given ILP payload to the socket. There is no
// server-acknowledged success per row; a nil return means the bytes were
// handed to the OS socket layer, not that the server applied them.
func (s *Sender) Write(payload []byte) liberr.Error {
	if !s.connected.Load() {
		return ErrorNotConnected.Error(nil)
	}
	if len(payload) == 0 {
		return nil
	}

	if _, e := s.conn.Write(payload); e != nil {
		return ErrorWrite.Error(e)
	}

	return nil
}

// Close destroys the socket. pendingBytes, when > 0, logs the
// close-with-unflushed-data warning at the position given.
func (s *Sender) Close(pendingBytes int) error {
	if !s.connected.Load() {
		return nil
	}

	if pendingBytes > 0 && s.o.Log != nil {
		s.o.Log.Entry(logger.WarnLevel, fmt.Sprintf(
			"Buffer contains data which has not been flushed before closing the sender, and it will be lost [position=%d]",
			pendingBytes,
		)).Log()
	}

	s.connected.Store(false)

	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
