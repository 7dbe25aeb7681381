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

package rowbuilder_test

import (
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/ilpclient/buffer"
	"github.com/nabbar/ilpclient/rowbuilder"
)

func newBuilder(version rowbuilder.ProtocolVersion) (*buffer.Buffer, *rowbuilder.Builder) {
	buf, e := buffer.New(256, 0)
	Expect(e).To(BeNil())
	return buf, rowbuilder.New(buf, version, 127)
}

func ptrF(v float64) *float64 { return &v }
func ptrB(v bool) *bool       { return &v }
func ptrI(v int64) *int64     { return &v }
func ptrS(v string) *string   { return &v }

var _ = Describe("Builder", func() {
	It("encodes a v1 basic row", func() {
		buf, b := newBuilder(rowbuilder.V1)
		Expect(b.Table("prices")).To(BeNil())
		Expect(b.Symbol("instrument", "EURUSD")).To(BeNil())
		Expect(b.FloatColumn("bid", ptrF(1.0195))).To(BeNil())
		Expect(b.FloatColumn("ask", ptrF(1.0221))).To(BeNil())
		Expect(b.AtNow()).To(BeNil())

		view, ok := buf.TakeForSend()
		Expect(ok).To(BeTrue())
		Expect(string(view)).To(Equal("prices,instrument=EURUSD bid=1.0195,ask=1.0221\n"))
	})

	It("encodes a v1 row with a designated nanosecond timestamp", func() {
		buf, b := newBuilder(rowbuilder.V1)
		Expect(b.Table("tableName")).To(BeNil())
		Expect(b.BooleanColumn("boolCol", ptrB(true))).To(BeNil())
		Expect(b.TimestampColumn("timestampCol", ptrI(1658484765000000), rowbuilder.Microsecond)).To(BeNil())
		Expect(b.At(1658484769000000123, rowbuilder.Nanosecond)).To(BeNil())

		view, ok := buf.TakeForSend()
		Expect(ok).To(BeTrue())
		Expect(string(view)).To(Equal("tableName boolCol=t,timestampCol=1658484765000000t 1658484769000000123\n"))
	})

	It("encodes a v2 binary float column alongside a string column", func() {
		buf, b := newBuilder(rowbuilder.V2)
		Expect(b.Table("tableName")).To(BeNil())
		Expect(b.FloatColumn("floatField", ptrF(123.456))).To(BeNil())
		Expect(b.StringColumn("strField", ptrS("hoho"))).To(BeNil())
		Expect(b.AtNow()).To(BeNil())

		view, ok := buf.TakeForSend()
		Expect(ok).To(BeTrue())

		expect := append([]byte("tableName floatField="), 0x3d, 0x10, 0x77, 0xbe, 0x9f, 0x1a, 0x2f, 0xdd, 0x5e, 0x40)
		expect = append(expect, []byte(`,strField="hoho"`+"\n")...)
		Expect(view).To(Equal(expect))
	})

	It("encodes a v2 2-D array column", func() {
		buf, b := newBuilder(rowbuilder.V2)
		Expect(b.Table("tableName")).To(BeNil())
		Expect(b.ArrayColumn("arrayCol", [][]float64{{12.3}, {23.4}})).To(BeNil())
		Expect(b.AtNow()).To(BeNil())

		view, ok := buf.TakeForSend()
		Expect(ok).To(BeTrue())

		expect := append([]byte("tableName arrayCol=="),
			0x0e, 0x0a, 0x02,
			0x02, 0x00, 0x00, 0x00,
			0x01, 0x00, 0x00, 0x00,
			0x9a, 0x99, 0x99, 0x99, 0x99, 0x99, 0x28, 0x40,
			0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x37, 0x40,
		)
		expect = append(expect, '\n')
		Expect(view).To(Equal(expect))
	})

	It("encodes a v3 negative decimal binary column", func() {
		buf, b := newBuilder(rowbuilder.V3)
		Expect(b.Table("fx")).To(BeNil())
		Expect(b.DecimalColumnUnscaled("mid", big.NewInt(-10), 2)).To(BeNil())
		Expect(b.AtNow()).To(BeNil())

		view, ok := buf.TakeForSend()
		Expect(ok).To(BeTrue())

		expect := append([]byte("fx mid=="), 0x17, 0x02, 0x02, 0xff, 0xf6, '\n')
		Expect(view).To(Equal(expect))
	})

	Context("state machine violations", func() {
		It("rejects a second table() call", func() {
			_, b := newBuilder(rowbuilder.V1)
			Expect(b.Table("a")).To(BeNil())
			Expect(b.Table("b")).ToNot(BeNil())
		})

		It("rejects a symbol before a table", func() {
			_, b := newBuilder(rowbuilder.V1)
			Expect(b.Symbol("k", "v")).ToNot(BeNil())
		})

		It("rejects a symbol after a column", func() {
			_, b := newBuilder(rowbuilder.V1)
			Expect(b.Table("a")).To(BeNil())
			Expect(b.FloatColumn("f", ptrF(1))).To(BeNil())
			Expect(b.Symbol("k", "v")).ToNot(BeNil())
		})

		It("rejects a column before a table", func() {
			_, b := newBuilder(rowbuilder.V1)
			Expect(b.FloatColumn("f", ptrF(1))).ToNot(BeNil())
		})

		It("rejects closing a row with no symbol or column", func() {
			_, b := newBuilder(rowbuilder.V1)
			Expect(b.Table("a")).To(BeNil())
			Expect(b.AtNow()).ToNot(BeNil())
		})

		It("rejects an array column in v1", func() {
			_, b := newBuilder(rowbuilder.V1)
			Expect(b.Table("a")).To(BeNil())
			Expect(b.ArrayColumn("arr", []float64{1, 2})).ToNot(BeNil())
		})

		It("rejects a ragged 2-D array", func() {
			_, b := newBuilder(rowbuilder.V2)
			Expect(b.Table("a")).To(BeNil())
			Expect(b.ArrayColumn("arr", [][]float64{{1}, {1, 2}})).ToNot(BeNil())
		})

		It("rejects a nanosecond TimestampColumn call", func() {
			_, b := newBuilder(rowbuilder.V1)
			Expect(b.Table("a")).To(BeNil())
			Expect(b.TimestampColumn("ts", ptrI(1), rowbuilder.Nanosecond)).ToNot(BeNil())
		})

		It("rejects a decimal column before v3", func() {
			_, b := newBuilder(rowbuilder.V2)
			Expect(b.Table("a")).To(BeNil())
			Expect(b.DecimalColumnUnscaled("mid", big.NewInt(1), 2)).ToNot(BeNil())
		})

		It("treats a nil column value as a no-op", func() {
			buf, b := newBuilder(rowbuilder.V1)
			Expect(b.Table("a")).To(BeNil())
			Expect(b.Symbol("k", "v")).To(BeNil())
			Expect(b.FloatColumn("f", nil)).To(BeNil())
			Expect(b.AtNow()).To(BeNil())

			view, ok := buf.TakeForSend()
			Expect(ok).To(BeTrue())
			Expect(string(view)).To(Equal("a,k=v\n"))
		})
	})

	Context("name validation", func() {
		It("rejects a table name exceeding max_name_len", func() {
			buf, e := buffer.New(64, 0)
			Expect(e).To(BeNil())
			short := rowbuilder.New(buf, rowbuilder.V1, 4)
			Expect(short.Table("toolong")).ToNot(BeNil())
		})

		It("rejects a table name starting with a dash", func() {
			_, b := newBuilder(rowbuilder.V1)
			Expect(b.Table("-bad")).ToNot(BeNil())
		})
	})
})
