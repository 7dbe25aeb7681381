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

// Package tlsconf builds a *tls.Config for the HTTP(S) and TCP(S) transports
// from the two TLS-related configuration keys this client recognizes:
// tls_verify and tls_ca.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	liberr "github.com/nabbar/ilpclient/errors"
)

// Config is the validated, immutable description of the TLS behavior
// requested for one client. It is built once at client construction and
// never mutated afterward.
type Config struct {
	// VerifyInsecure disables peer certificate verification when true.
	// Set by tls_verify=unsafe_off.
	VerifyInsecure bool

	// CAFile is an optional filesystem path to a PEM CA bundle, set by
	// tls_ca. Loading this file is the caller's collaborator responsibility
	// at the OS boundary; this package only reads and parses it.
	CAFile string

	// ServerName overrides the SNI/verification hostname; defaults to the
	// host portion of addr when empty.
	ServerName string
}

// Validate checks the combination is usable: a CAFile, if given, must exist
// and contain at least one parseable certificate.
func (c *Config) Validate() liberr.Error {
	if c.CAFile == "" {
		return nil
	}

	if _, e := loadRootCA(c.CAFile); e != nil {
		return e
	}

	return nil
}

// New builds a *tls.Config from the receiver. A nil receiver yields the
// Go default TLS behavior (verification on, system root pool).
func (c *Config) New() (*tls.Config, liberr.Error) {
	if c == nil {
		return &tls.Config{MinVersion: tls.VersionTLS12}, nil
	}

	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.VerifyInsecure,
		ServerName:         c.ServerName,
	}

	if c.CAFile != "" {
		pool, err := loadRootCA(c.CAFile)
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

func loadRootCA(pemFile string) (*x509.CertPool, liberr.Error) {
	if pemFile == "" {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if _, e := os.Stat(pemFile); e != nil {
		return nil, ErrorCAFileStat.Error(e)
	}

	/* #nosec */
	b, e := os.ReadFile(pemFile)
	if e != nil {
		return nil, ErrorCAFileRead.Error(e)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(b) {
		return nil, ErrorCAFileInvalid.Error(nil)
	}

	return pool, nil
}
