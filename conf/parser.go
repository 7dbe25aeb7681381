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

package conf

import (
	"strconv"
	"strings"

	liberr "github.com/nabbar/ilpclient/errors"
)

// legacyKeys maps unsupported configuration keys to the key that replaced
// them. An empty replacement means the key has no replacement and is simply
// rejected.
var legacyKeys = map[string]string{
	"tls_roots":          "tls_ca",
	"tls_roots_password": "",
	"bufferSize":         "init_buf_size",
	"copy_buffer":        "",
	"copyBuffer":         "",
}

// recognizedKeys is the full set of keys the grammar accepts.
var recognizedKeys = map[string]bool{
	"addr": true, "username": true, "password": true, "token": true,
	"protocol_version": true, "auto_flush": true, "auto_flush_rows": true,
	"auto_flush_interval": true, "tls_verify": true, "tls_ca": true,
	"init_buf_size": true, "max_buf_size": true, "request_min_throughput": true,
	"request_timeout": true, "retry_timeout": true, "max_name_len": true,
	"stdlib_http": true,
}

// Parse builds an Options from a "protocol::key=value;key=value;..." string.
// A literal semicolon inside a value is written as two consecutive
// semicolons. Parsing failures and Validate failures both surface as
// liberr.Error values namespaced under errors.MinPkgConf.
func Parse(s string) (*Options, liberr.Error) {
	if s == "" {
		return nil, ErrorEmptyString.Error(nil)
	}

	proto, body, ok := strings.Cut(s, "::")
	if !ok {
		return nil, ErrorInvalidProtocol.Errorf(proto)
	}

	switch proto {
	case ProtoHTTP, ProtoHTTPS, ProtoTCP, ProtoTCPS:
	default:
		return nil, ErrorInvalidProtocol.Errorf(proto)
	}

	o := &Options{Protocol: proto}

	pairs, e := splitPairs(body)
	if e != nil {
		return nil, e
	}

	seen := make(map[string]bool, len(pairs))

	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, ErrorUnterminatedPair.Errorf(kv)
		}

		if e = validateValueChars(k, v); e != nil {
			return nil, e
		}

		if repl, deprecated := legacyKeys[k]; deprecated {
			if repl == "" {
				return nil, ErrorDeprecatedKey.Errorf(k, "(no replacement, remove it)")
			}
			return nil, ErrorDeprecatedKey.Errorf(k, repl)
		}

		if !recognizedKeys[k] {
			return nil, ErrorUnknownKey.Errorf(k)
		}

		if seen[k] {
			return nil, ErrorDuplicateKey.Errorf(k)
		}
		seen[k] = true

		if e = applyKey(o, k, v); e != nil {
			return nil, e
		}
	}

	if o.Host == "" {
		return nil, ErrorMissingHost.Error(nil)
	}
	if o.Port == 0 {
		if o.Protocol == ProtoHTTP || o.Protocol == ProtoHTTPS {
			o.Port = 9000
		} else {
			o.Port = 9009
		}
	}

	// An explicit zero is meaningful for these keys (it turns the trigger or
	// the retries off), so it is kept rather than replaced by the default.
	rows, interval, retry := o.AutoFlushRows, o.AutoFlushInterval, o.RetryTimeout
	o.applyDefaults()
	if seen["auto_flush_rows"] {
		o.AutoFlushRows = rows
	}
	if seen["auto_flush_interval"] {
		o.AutoFlushInterval = interval
	}
	if seen["retry_timeout"] {
		o.RetryTimeout = retry
	}

	return o, nil
}

// splitPairs splits body on single semicolons, treating ";;" (two consecutive
// semicolons) as an escaped literal semicolon within a value, and tolerating
// one optional trailing semicolon.
func splitPairs(body string) ([]string, liberr.Error) {
	body = strings.TrimSuffix(body, ";")
	if body == "" {
		return nil, nil
	}

	var (
		pairs   []string
		current strings.Builder
	)

	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		if runes[i] == ';' {
			if i+1 < len(runes) && runes[i+1] == ';' {
				current.WriteRune(';')
				i++
				continue
			}
			pairs = append(pairs, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(runes[i])
	}
	pairs = append(pairs, current.String())

	return pairs, nil
}

func validateValueChars(k, v string) liberr.Error {
	for _, r := range v {
		if (r <= 0x1F) || (r == 0x7F) || (r >= 0x80 && r <= 0x9F) {
			return ErrorControlChar.Errorf(k)
		}
	}
	return nil
}

func applyKey(o *Options, k, v string) liberr.Error {
	switch k {
	case "addr":
		host, port, hasPort := strings.Cut(v, ":")
		if host == "" {
			return ErrorMissingHost.Error(nil)
		}
		o.Host = host
		if hasPort {
			p, e := strconv.Atoi(port)
			if e != nil || p <= 0 {
				return ErrorInvalidPort.Errorf(port)
			}
			o.Port = p
		}
	case "username":
		o.Username = v
	case "password":
		o.Password = v
	case "token":
		o.Token = v
	case "protocol_version":
		if v == "auto" {
			o.ProtocolVersion = 0
			break
		}
		n, e := strconv.Atoi(v)
		if e != nil || n < 1 || n > 3 {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.ProtocolVersion = n
	case "auto_flush":
		if v != "on" && v != "off" {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.AutoFlushDisabled = v == "off"
	case "auto_flush_rows":
		n, e := parseNonNegInt(v)
		if e != nil {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.AutoFlushRows = n
	case "auto_flush_interval":
		n, e := parseNonNegInt64(v)
		if e != nil {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.AutoFlushInterval = n
	case "tls_verify":
		switch v {
		case "on":
			o.TLSInsecureSkipVerify = false
		case "unsafe_off":
			o.TLSInsecureSkipVerify = true
		default:
			return ErrorInvalidValue.Errorf(v, k)
		}
	case "tls_ca":
		o.TLSCA = v
	case "init_buf_size":
		n, e := parsePosInt64(v)
		if e != nil {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.InitBufSize = n
	case "max_buf_size":
		n, e := parsePosInt64(v)
		if e != nil {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.MaxBufSize = n
	case "request_min_throughput":
		n, e := parsePosInt64(v)
		if e != nil {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.RequestMinThroughput = n
	case "request_timeout":
		n, e := parsePosInt64(v)
		if e != nil {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.RequestTimeout = n
	case "retry_timeout":
		n, e := parseNonNegInt64(v)
		if e != nil {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.RetryTimeout = n
	case "max_name_len":
		n, e := parsePosInt64(v)
		if e != nil {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.MaxNameLen = int(n)
	case "stdlib_http":
		if v != "on" && v != "off" {
			return ErrorInvalidValue.Errorf(v, k)
		}
		o.StdlibHTTP = v == "on"
	}

	return nil
}

func parseNonNegInt(v string) (int, error) {
	n, e := strconv.Atoi(v)
	if e != nil || n < 0 {
		if e == nil {
			return 0, strconv.ErrSyntax
		}
		return 0, e
	}
	return n, nil
}

func parseNonNegInt64(v string) (int64, error) {
	n, e := strconv.ParseInt(v, 10, 64)
	if e != nil || n < 0 {
		if e == nil {
			return 0, strconv.ErrSyntax
		}
		return 0, e
	}
	return n, nil
}

func parsePosInt64(v string) (int64, error) {
	n, e := strconv.ParseInt(v, 10, 64)
	if e != nil || n <= 0 {
		if e == nil {
			return 0, strconv.ErrSyntax
		}
		return 0, e
	}
	return n, nil
}
