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
	"fmt"

	liberr "github.com/nabbar/ilpclient/errors"
)

const (
	ErrorEmptyString liberr.CodeError = iota + liberr.MinPkgConf
	ErrorInvalidProtocol
	ErrorMissingHost
	ErrorInvalidPort
	ErrorControlChar
	ErrorUnterminatedPair
	ErrorDuplicateKey
	ErrorUnknownKey
	ErrorDeprecatedKey
	ErrorInvalidValue
	ErrorValidation
	ErrorEnvNotSet
	ErrorFileRead
	ErrorFileDecode
	ErrorFileUnsupportedExt
)

func init() {
	if liberr.ExistInMapMessage(ErrorEmptyString) {
		panic(fmt.Errorf("error code collision with package ilpclient/conf"))
	}
	liberr.RegisterIdFctMessage(ErrorEmptyString, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorEmptyString:
		return "configuration string is empty"
	case ErrorInvalidProtocol:
		return "Invalid protocol: '%s', accepted protocols: 'http', 'https', 'tcp', 'tcps'"
	case ErrorMissingHost:
		return "addr is missing a host"
	case ErrorInvalidPort:
		return "addr port must be a positive integer, received '%s'"
	case ErrorControlChar:
		return "value for key '%s' contains a forbidden control character"
	case ErrorUnterminatedPair:
		return "configuration string contains a key without a value: '%s'"
	case ErrorDuplicateKey:
		return "duplicate key '%s' in configuration string"
	case ErrorUnknownKey:
		return "unknown key '%s' in configuration string"
	case ErrorDeprecatedKey:
		return "key '%s' is no longer supported, use '%s' instead"
	case ErrorInvalidValue:
		return "invalid value '%s' for key '%s' in configuration string"
	case ErrorValidation:
		return "configuration failed validation"
	case ErrorEnvNotSet:
		return "QDB_CLIENT_CONF environment variable is not set"
	case ErrorFileRead:
		return "cannot read configuration file"
	case ErrorFileDecode:
		return "cannot decode configuration file"
	case ErrorFileUnsupportedExt:
		return "unsupported configuration file extension: '%s', expected .yaml, .yml or .toml"
	}

	return liberr.NullMessage
}
