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

// Package rowbuilder implements the table()/symbol()/column()/at() state
// machine that encodes one Influx Line Protocol row at a time into a
// buffer.Buffer, in the text (v1), typed-binary (v2) or decimal (v3) wire
// forms.
package rowbuilder

import (
	"math/big"
	"strconv"

	"github.com/nabbar/ilpclient/buffer"
	liberr "github.com/nabbar/ilpclient/errors"
)

// ProtocolVersion selects the wire encoding used for column values.
type ProtocolVersion int

const (
	V1 ProtocolVersion = 1
	V2 ProtocolVersion = 2
	V3 ProtocolVersion = 3
)

// TimeUnit is the resolution of a timestamp value supplied by the caller.
type TimeUnit int

const (
	Microsecond TimeUnit = iota
	Millisecond
	Nanosecond
)

type state int

const (
	stateStart state = iota
	stateHasTable
	stateHasSymbols
	stateHasColumns
)

// Builder encodes exactly one row at a time onto a shared Buffer. It is not
// safe for concurrent use.
type Builder struct {
	buf        *buffer.Buffer
	version    ProtocolVersion
	maxNameLen int
	st         state
}

// New returns a Builder that writes into buf using the given protocol
// version and per-name length limit.
func New(buf *buffer.Buffer, version ProtocolVersion, maxNameLen int) *Builder {
	return &Builder{buf: buf, version: version, maxNameLen: maxNameLen}
}

// SetVersion updates the wire encoding used for subsequent rows, used after
// protocol-version negotiation completes.
func (b *Builder) SetVersion(version ProtocolVersion) {
	b.version = version
}

// Table opens a new row. It is only valid in the START state.
func (b *Builder) Table(name string) liberr.Error {
	if b.st != stateStart {
		return ErrorTableAlreadySet.Error(nil)
	}
	if e := validateTableName(name, b.maxNameLen); e != nil {
		return e
	}
	if e := b.buf.Write([]byte(escapeUnquoted(name))); e != nil {
		return e
	}
	b.st = stateHasTable
	return nil
}

// Symbol appends a tag (symbol) column. Only valid before any column has
// been added.
func (b *Builder) Symbol(name, value string) liberr.Error {
	if b.st != stateHasTable && b.st != stateHasSymbols {
		return ErrorSymbolOrder.Error(nil)
	}
	if e := validateSymbolName(name, b.maxNameLen); e != nil {
		return e
	}

	if e := b.buf.Write([]byte("," + escapeUnquoted(name) + "=" + escapeUnquoted(value))); e != nil {
		return e
	}

	b.st = stateHasSymbols
	return nil
}

func (b *Builder) beginColumn(name string) liberr.Error {
	if b.st != stateHasTable && b.st != stateHasSymbols && b.st != stateHasColumns {
		return ErrorColumnOrder.Error(nil)
	}
	if e := validateColumnName(name, b.maxNameLen); e != nil {
		return e
	}

	sep := byte(',')
	if b.st != stateHasColumns {
		sep = ' '
	}

	if e := b.buf.WriteByte(sep); e != nil {
		return e
	}
	if e := b.buf.Write([]byte(escapeUnquoted(name) + "=")); e != nil {
		return e
	}

	b.st = stateHasColumns
	return nil
}

// BooleanColumn appends a boolean column. A nil value is a no-op.
func (b *Builder) BooleanColumn(name string, value *bool) liberr.Error {
	if value == nil {
		return nil
	}
	if e := b.beginColumn(name); e != nil {
		return e
	}
	if *value {
		return b.buf.WriteByte('t')
	}
	return b.buf.WriteByte('f')
}

// IntColumn appends an integer column. A nil value is a no-op.
func (b *Builder) IntColumn(name string, value *int64) liberr.Error {
	if value == nil {
		return nil
	}
	if e := b.beginColumn(name); e != nil {
		return e
	}
	return b.buf.Write([]byte(strconv.FormatInt(*value, 10) + "i"))
}

// FloatColumn appends a floating-point column: shortest decimal text in
// v1, an 0x10-tagged little-endian double in v2/v3. A nil value is a no-op.
func (b *Builder) FloatColumn(name string, value *float64) liberr.Error {
	if value == nil {
		return nil
	}
	if e := b.beginColumn(name); e != nil {
		return e
	}

	if b.version == V1 {
		return b.buf.Write([]byte(strconv.FormatFloat(*value, 'g', -1, 64)))
	}

	if e := b.buf.WriteByte('='); e != nil {
		return e
	}
	blob := encodeFloat64LE(*value)
	if e := b.buf.WriteByte(tagFloat64); e != nil {
		return e
	}
	return b.buf.Write(blob[:])
}

// StringColumn appends a quoted, escaped string column. A nil value is a
// no-op.
func (b *Builder) StringColumn(name string, value *string) liberr.Error {
	if value == nil {
		return nil
	}
	if e := b.beginColumn(name); e != nil {
		return e
	}
	return b.buf.Write([]byte(`"` + escapeQuoted(*value) + `"`))
}

// TimestampColumn appends a non-designated timestamp column. In v1/v2 a
// nanosecond-resolution value must go through TimestampColumnNanos instead
// (the source protocol requires a BigInt for that case); v3 accepts
// Nanosecond here directly and emits it with the "n" suffix. Microsecond
// and Millisecond values are written in microseconds with the "t" suffix in
// every version. A nil value is a no-op.
func (b *Builder) TimestampColumn(name string, value *int64, unit TimeUnit) liberr.Error {
	if value == nil {
		return nil
	}
	if unit == Nanosecond && b.version != V3 {
		return ErrorTimestampRequiresBigInt.Error(nil)
	}
	if e := b.beginColumn(name); e != nil {
		return e
	}

	if unit == Nanosecond {
		return b.buf.Write([]byte(strconv.FormatInt(*value, 10) + "n"))
	}

	us := *value
	if unit == Millisecond {
		us *= 1000
	}
	return b.buf.Write([]byte(strconv.FormatInt(us, 10) + "t"))
}

// TimestampColumnNanos appends a nanosecond-resolution timestamp column,
// standing in for the BigInt input the source protocol requires for this
// case (see SPEC_FULL.md §9). A nil value is a no-op.
func (b *Builder) TimestampColumnNanos(name string, ns *int64) liberr.Error {
	if ns == nil {
		return nil
	}
	if e := b.beginColumn(name); e != nil {
		return e
	}
	return b.buf.Write([]byte(strconv.FormatInt(*ns, 10) + "n"))
}

// ArrayColumn appends a rectangular array column of float64 values (1-D or
// 2-D). Requires protocol v2 or later. A nil value is a no-op.
func (b *Builder) ArrayColumn(name string, value interface{}) liberr.Error {
	if value == nil {
		return nil
	}
	if b.version == V1 {
		return ErrorArrayUnsupportedInV1.Error(nil)
	}

	shape, flat, e := flattenArray(value)
	if e != nil {
		return e
	}

	if e := b.beginColumn(name); e != nil {
		return e
	}
	if e := b.buf.WriteByte('='); e != nil {
		return e
	}
	if e := b.buf.WriteByte(tagArray); e != nil {
		return e
	}

	if flat == nil {
		return b.buf.WriteByte(tagArrayNull)
	}

	if e := b.buf.WriteByte(tagArrayF64); e != nil {
		return e
	}
	if e := b.buf.WriteByte(byte(len(shape))); e != nil {
		return e
	}
	for _, d := range shape {
		dim := encodeUint32LE(uint32(d))
		if e := b.buf.Write(dim[:]); e != nil {
			return e
		}
	}
	for _, v := range flat {
		blob := encodeFloat64LE(v)
		if e := b.buf.Write(blob[:]); e != nil {
			return e
		}
	}
	return nil
}

// flattenArray accepts []float64 or [][]float64 and returns its shape and
// row-major flattened payload. A nil []float64 yields shape [0] and a nil
// payload, which ArrayColumn writes as a null array; any other type,
// including an untyped nil, is rejected with ErrorArrayUnsupportedType.
func flattenArray(value interface{}) ([]int, []float64, liberr.Error) {
	switch v := value.(type) {
	case []float64:
		return []int{len(v)}, v, nil
	case [][]float64:
		if len(v) == 0 {
			return []int{0}, []float64{}, nil
		}
		inner := len(v[0])
		flat := make([]float64, 0, len(v)*inner)
		for _, row := range v {
			if len(row) != inner {
				return nil, nil, ErrorArrayRagged.Error(nil)
			}
			flat = append(flat, row...)
		}
		return []int{len(v), inner}, flat, nil
	default:
		return nil, nil, ErrorArrayUnsupportedType.Errorf("unknown")
	}
}

// DecimalColumnText appends a decimal column in its textual form: an
// unquoted literal matching -?\d+(\.\d+)? followed by 'd'. Requires
// protocol v3.
func (b *Builder) DecimalColumnText(name string, literal string) liberr.Error {
	if b.version != V3 {
		return ErrorDecimalUnsupportedBeforeV3.Error(nil)
	}
	if !isDecimalLiteral(literal) {
		return ErrorDecimalLiteralInvalid.Errorf(literal)
	}
	if e := b.beginColumn(name); e != nil {
		return e
	}
	return b.buf.Write([]byte(literal + "d"))
}

func isDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	seenDigit, seenDot := false, false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot && seenDigit:
			// the fraction needs digits of its own
			seenDot = true
			seenDigit = false
		default:
			return false
		}
	}
	return seenDigit
}

// DecimalColumnUnscaled appends a decimal column in its binary form: tag
// 0x17, a one-byte scale, a one-byte payload length, then the minimal
// two's-complement big-endian encoding of unscaled, padded to at least two
// bytes (see encodeTwosComplement). Requires protocol v3.
func (b *Builder) DecimalColumnUnscaled(name string, unscaled *big.Int, scale int) liberr.Error {
	if b.version != V3 {
		return ErrorDecimalUnsupportedBeforeV3.Error(nil)
	}
	if scale < 0 || scale > 76 {
		return ErrorDecimalScaleRange.Errorf(scale)
	}

	payload := encodeTwosComplement(unscaled)
	if len(payload) > 127 {
		return ErrorDecimalPayloadTooLarge.Error(nil)
	}

	if e := b.beginColumn(name); e != nil {
		return e
	}
	if e := b.buf.WriteByte('='); e != nil {
		return e
	}
	if e := b.buf.WriteByte(tagDecimal); e != nil {
		return e
	}
	if e := b.buf.WriteByte(byte(scale)); e != nil {
		return e
	}
	if e := b.buf.WriteByte(byte(len(payload))); e != nil {
		return e
	}
	return b.buf.Write(payload)
}

// At closes the row with an explicit designated timestamp, always emitted
// in nanoseconds with no trailing unit letter.
func (b *Builder) At(ts int64, unit TimeUnit) liberr.Error {
	if b.st != stateHasSymbols && b.st != stateHasColumns {
		return ErrorRowNotClosable.Error(nil)
	}

	ns := ts
	switch unit {
	case Microsecond:
		ns = ts * 1000
	case Millisecond:
		ns = ts * 1_000_000
	}

	if e := b.buf.Write([]byte(" " + strconv.FormatInt(ns, 10) + "\n")); e != nil {
		return e
	}

	b.buf.CommitRow()
	b.st = stateStart
	return nil
}

// AtNow closes the row without a designated timestamp, letting the server
// assign the ingestion time.
func (b *Builder) AtNow() liberr.Error {
	if b.st != stateHasSymbols && b.st != stateHasColumns {
		return ErrorRowNotClosable.Error(nil)
	}

	if e := b.buf.WriteByte('\n'); e != nil {
		return e
	}

	b.buf.CommitRow()
	b.st = stateStart
	return nil
}
