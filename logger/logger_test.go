/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	liblog "github.com/nabbar/ilpclient/logger"
)

var _ = Describe("Logger", func() {
	var (
		buf *bytes.Buffer
		log liblog.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log = liblog.New()
		log.SetOutput(buf)

		e := logrus.New()
		e.SetFormatter(&logrus.JSONFormatter{})
		e.SetOutput(buf)
		log.SetLogrus(e)
	})

	Context("level filtering", func() {
		It("drops debug entries below the configured level", func() {
			log.SetLevel(liblog.InfoLevel)
			log.Debug("hidden", liblog.NewFields())
			Expect(buf.Len()).To(Equal(0))
		})

		It("emits entries at or above the configured level", func() {
			log.SetLevel(liblog.DebugLevel)
			log.Debug("visible", liblog.NewFields())
			Expect(buf.Len()).To(BeNumerically(">", 0))
		})
	})

	Context("fluent entry", func() {
		It("carries fields and an attached error into the emitted record", func() {
			log.SetLevel(liblog.DebugLevel)
			log.Entry(liblog.ErrorLevel, "row rejected").
				FieldAdd("table", "trades").
				ErrorAdd(errString("bad column name")).
				Log()

			var decoded map[string]interface{}
			Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
			Expect(decoded["table"]).To(Equal("trades"))
			Expect(decoded["error"]).To(Equal("bad column name"))
			Expect(strings.Contains(decoded["msg"].(string), "row rejected")).To(BeTrue())
		})
	})
})

type errString string

func (e errString) Error() string { return string(e) }
