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
	"strings"

	liberr "github.com/nabbar/ilpclient/errors"
)

// tableIllegal is the fixed blacklist of characters a table name must not
// contain, plus '-' at the first position only.
const tableIllegal = ".?,:\\/\x00)(+*%~\n\r'\"\xfe\xff"

// columnIllegal additionally forbids '-' anywhere, not only at the start.
const columnIllegal = tableIllegal + "-"

func validateTableName(name string, maxLen int) liberr.Error {
	if name == "" {
		return ErrorTableNameEmpty.Error(nil)
	}
	if len(name) > maxLen {
		return ErrorTableNameTooLong.Errorf(maxLen)
	}
	if strings.HasPrefix(name, "-") {
		return ErrorTableNameInvalid.Errorf("-")
	}
	if e := containsControlOrIllegal(name, tableIllegal); e != "" {
		return ErrorTableNameInvalid.Errorf(e)
	}
	return nil
}

func validateSymbolName(name string, maxLen int) liberr.Error {
	if name == "" {
		return ErrorSymbolNameInvalid.Errorf("")
	}
	if len(name) > maxLen {
		return ErrorSymbolNameTooLong.Errorf(maxLen)
	}
	if e := containsControlOrIllegal(name, columnIllegal); e != "" {
		return ErrorSymbolNameInvalid.Errorf(e)
	}
	return nil
}

func validateColumnName(name string, maxLen int) liberr.Error {
	if name == "" {
		return ErrorColumnNameInvalid.Errorf("")
	}
	if len(name) > maxLen {
		return ErrorColumnNameTooLong.Errorf(maxLen)
	}
	if e := containsControlOrIllegal(name, columnIllegal); e != "" {
		return ErrorColumnNameInvalid.Errorf(e)
	}
	return nil
}

// containsControlOrIllegal returns the offending character, or "" if name
// is clean.
func containsControlOrIllegal(name, blacklist string) string {
	for _, r := range name {
		if r <= 0x1F || r == 0x7F {
			return string(r)
		}
		if strings.ContainsRune(blacklist, r) {
			return string(r)
		}
	}
	return ""
}
