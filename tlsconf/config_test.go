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

package tlsconf_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ilpclient/tlsconf"
)

const samplePEM = `-----BEGIN CERTIFICATE-----
MIIBhTCCASugAwIBAgIQIaCzo/SsY1ypvuM3oBquVjAKBggqhkjOPQQDAjASMRAw
DgYDVQQKEwdBY21lIENvMB4XDTIzMDEwMTAwMDAwMFoXDTMzMDEwMTAwMDAwMFow
EjEQMA4GA1UEChMHQWNtZSBDbzBZMBMGByqGSM49AgEGCCqGSM49AwEHA0IABBfT
enwH6ji4MZvS6ZqMYXh1fqz1IZLV6MU4j0lYQZhPTQxZTjv1KeU8TtpO7sRZcFAH
4fFZ9Z0K0T3sWz6AYs2jNTAzMA4GA1UdDwEB/wQEAwICpDATBgNVHSUEDDAKBggr
BgEFBQcDATAMBgNVHRMBAf8EAjAAMAoGCCqGSM49BAMCA0gAMEUCIQDEXAMPLE=
-----END CERTIFICATE-----
`

var _ = Describe("Config", func() {
	Context("New", func() {
		It("returns default verification enabled when tls_ca is unset", func() {
			c := &tlsconf.Config{}
			cfg, err := c.New()
			Expect(err).To(BeNil())
			Expect(cfg.InsecureSkipVerify).To(BeFalse())
			Expect(cfg.RootCAs).To(BeNil())
		})

		It("disables verification when VerifyInsecure is set", func() {
			c := &tlsconf.Config{VerifyInsecure: true}
			cfg, err := c.New()
			Expect(err).To(BeNil())
			Expect(cfg.InsecureSkipVerify).To(BeTrue())
		})

		It("fails validation when tls_ca points at a missing file", func() {
			c := &tlsconf.Config{CAFile: "/nonexistent/ca.pem"}
			Expect(c.Validate()).ToNot(BeNil())
		})

		It("fails when tls_ca file does not contain a PEM certificate", func() {
			dir := GinkgoT().TempDir()
			p := filepath.Join(dir, "bad.pem")
			Expect(os.WriteFile(p, []byte("not a pem file"), 0o600)).To(Succeed())

			c := &tlsconf.Config{CAFile: p}
			Expect(c.Validate()).ToNot(BeNil())
		})
	})
})
