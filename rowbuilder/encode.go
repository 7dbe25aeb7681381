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

package rowbuilder

import (
	"math"
	"math/big"
	"strings"
)

const (
	tagFloat64    = 0x10
	tagArray      = 0x0e
	tagArrayF64   = 0x0a
	tagArrayNull  = 0x21
	tagDecimal    = 0x17
)

func escapeUnquoted(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', ',', '=', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeQuoted(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func encodeFloat64LE(v float64) [8]byte {
	bits := math.Float64bits(v)
	var out [8]byte
	for i := 0; i < 8; i++ {
		out[i] = byte(bits >> (8 * i))
	}
	return out
}

func encodeUint32LE(v uint32) [4]byte {
	var out [4]byte
	for i := 0; i < 4; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}

// minDecimalPayloadLen is the floor applied to the two's complement payload:
// the smallest on-wire unscaled representation is a 16-bit word, matching
// the shortest integer width the server's decimal column accepts.
const minDecimalPayloadLen = 2

// encodeTwosComplement renders v as the minimal big-endian two's complement
// byte sequence, floored at minDecimalPayloadLen bytes: a positive value
// whose top bit would otherwise be set gets a leading 0x00 byte, a negative
// value gets one extra byte only when its magnitude is larger than the
// most negative value its magnitude's byte width can hold (-200 needs
// ff 38, while -32768 fits in 80 00).
func encodeTwosComplement(v *big.Int) []byte {
	var out []byte

	switch {
	case v.Sign() == 0:
		out = []byte{0x00}
	case v.Sign() > 0:
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			out = append([]byte{0x00}, b...)
		} else {
			out = b
		}
	default:
		mag := new(big.Int).Abs(v)
		magBytes := mag.Bytes()
		width := len(magBytes)
		if mag.Cmp(new(big.Int).Lsh(big.NewInt(1), uint(width*8-1))) > 0 {
			width++
		}

		mod := new(big.Int).Lsh(big.NewInt(1), uint(width*8))
		twos := new(big.Int).Add(mod, v)
		out = twos.Bytes()
		for len(out) < width {
			out = append([]byte{0xff}, out...)
		}
	}

	if len(out) >= minDecimalPayloadLen {
		return out
	}

	pad := byte(0x00)
	if v.Sign() < 0 {
		pad = 0xff
	}
	extended := make([]byte, minDecimalPayloadLen)
	for i := range extended {
		extended[i] = pad
	}
	copy(extended[minDecimalPayloadLen-len(out):], out)
	return extended
}

// decodeTwosComplement is the inverse of encodeTwosComplement, used by tests
// to assert the roundtrip property.
func decodeTwosComplement(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		v.Sub(v, mod)
	}
	return v
}
