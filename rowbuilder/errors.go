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
	"fmt"

	liberr "github.com/nabbar/ilpclient/errors"
)

const (
	ErrorTableAlreadySet liberr.CodeError = iota + liberr.MinPkgRowBuilder
	ErrorTableNameTooLong
	ErrorTableNameEmpty
	ErrorTableNameInvalid
	ErrorSymbolOrder
	ErrorSymbolNameTooLong
	ErrorSymbolNameInvalid
	ErrorColumnOrder
	ErrorColumnNameTooLong
	ErrorColumnNameInvalid
	ErrorRowNotClosable
	ErrorTimestampRequiresBigInt
	ErrorArrayUnsupportedInV1
	ErrorArrayRagged
	ErrorArrayUnsupportedType
	ErrorDecimalUnsupportedBeforeV3
	ErrorDecimalLiteralInvalid
	ErrorDecimalScaleRange
	ErrorDecimalPayloadTooLarge
)

func init() {
	if liberr.ExistInMapMessage(ErrorTableAlreadySet) {
		panic(fmt.Errorf("error code collision with package ilpclient/rowbuilder"))
	}
	liberr.RegisterIdFctMessage(ErrorTableAlreadySet, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorTableAlreadySet:
		return "Table name has already been set"
	case ErrorTableNameTooLong:
		return "Table name is too long, max length is %d"
	case ErrorTableNameEmpty:
		return "Table name cannot be empty"
	case ErrorTableNameInvalid:
		return "Table name contains an illegal character: '%s'"
	case ErrorSymbolOrder:
		return "Symbol can be added only after table name is set and before any column added"
	case ErrorSymbolNameTooLong:
		return "Symbol name is too long, max length is %d"
	case ErrorSymbolNameInvalid:
		return "Symbol name contains an illegal character: '%s'"
	case ErrorColumnOrder:
		return "Column can be set only after table name is set"
	case ErrorColumnNameTooLong:
		return "Column name is too long, max length is %d"
	case ErrorColumnNameInvalid:
		return "Column name contains an illegal character: '%s'"
	case ErrorRowNotClosable:
		return "The row must have a symbol or column set before it is closed"
	case ErrorTimestampRequiresBigInt:
		return "Timestamp value must be a BigInt if it is set in nanoseconds"
	case ErrorArrayUnsupportedInV1:
		return "Arrays are not supported in protocol v1"
	case ErrorArrayRagged:
		return "Lengths of sub-arrays do not match"
	case ErrorArrayUnsupportedType:
		return "Unsupported array type [type=%s]"
	case ErrorDecimalUnsupportedBeforeV3:
		return "Decimal columns are not supported before protocol v3"
	case ErrorDecimalLiteralInvalid:
		return "Decimal literal is not a valid number: '%s'"
	case ErrorDecimalScaleRange:
		return "Decimal scale must be between 0 and 76, received %d"
	case ErrorDecimalPayloadTooLarge:
		return "Decimal unscaled value does not fit in 127 encoded bytes"
	}

	return liberr.NullMessage
}
