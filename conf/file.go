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
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/nabbar/ilpclient/duration"
	liberr "github.com/nabbar/ilpclient/errors"
)

// fileConfig is the on-disk representation accepted by FromFile. Unlike the
// "protocol::key=value;..." grammar parsed by Parse, durations here are
// written in human-readable form ("10s", "1500ms") rather than a bare
// millisecond integer.
type fileConfig struct {
	Protocol string `yaml:"protocol" toml:"protocol"`
	Host     string `yaml:"host" toml:"host"`
	Port     int    `yaml:"port" toml:"port"`

	ProtocolVersion int `yaml:"protocol_version" toml:"protocol_version"`

	Username string `yaml:"username" toml:"username"`
	Password string `yaml:"password" toml:"password"`
	Token    string `yaml:"token" toml:"token"`

	TLSInsecureSkipVerify bool   `yaml:"tls_insecure_skip_verify" toml:"tls_insecure_skip_verify"`
	TLSCA                 string `yaml:"tls_ca" toml:"tls_ca"`

	InitBufSize int64 `yaml:"init_buf_size" toml:"init_buf_size"`
	MaxBufSize  int64 `yaml:"max_buf_size" toml:"max_buf_size"`
	MaxNameLen  int   `yaml:"max_name_len" toml:"max_name_len"`

	RequestMinThroughput int64             `yaml:"request_min_throughput" toml:"request_min_throughput"`
	RequestTimeout       duration.Duration `yaml:"request_timeout" toml:"request_timeout"`
	RetryTimeout         duration.Duration `yaml:"retry_timeout" toml:"retry_timeout"`

	AutoFlushDisabled bool              `yaml:"auto_flush_disabled" toml:"auto_flush_disabled"`
	AutoFlushRows     int               `yaml:"auto_flush_rows" toml:"auto_flush_rows"`
	AutoFlushInterval duration.Duration `yaml:"auto_flush_interval" toml:"auto_flush_interval"`

	StdlibHTTP bool `yaml:"stdlib_http" toml:"stdlib_http"`
}

// FromFile loads an Options from a YAML (.yaml/.yml) or TOML (.toml) file.
// It mirrors Parse's contract: the returned Options carries applied
// defaults but is not yet validated; call Validate (or New, which calls it)
// before using it.
func FromFile(path string) (*Options, liberr.Error) {
	/* #nosec */
	b, e := os.ReadFile(path)
	if e != nil {
		return nil, ErrorFileRead.Error(e)
	}

	var fc fileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if e = yaml.Unmarshal(b, &fc); e != nil {
			return nil, ErrorFileDecode.Error(e)
		}
	case ".toml":
		if e = toml.Unmarshal(b, &fc); e != nil {
			return nil, ErrorFileDecode.Error(e)
		}
	default:
		return nil, ErrorFileUnsupportedExt.Errorf(path)
	}

	o := fc.toOptions()

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

	o.applyDefaults()

	return o, nil
}

func (fc *fileConfig) toOptions() *Options {
	return &Options{
		Protocol:              fc.Protocol,
		Host:                  fc.Host,
		Port:                  fc.Port,
		ProtocolVersion:       fc.ProtocolVersion,
		Username:              fc.Username,
		Password:              fc.Password,
		Token:                 fc.Token,
		TLSInsecureSkipVerify: fc.TLSInsecureSkipVerify,
		TLSCA:                 fc.TLSCA,
		InitBufSize:           fc.InitBufSize,
		MaxBufSize:            fc.MaxBufSize,
		MaxNameLen:            fc.MaxNameLen,
		RequestMinThroughput:  fc.RequestMinThroughput,
		RequestTimeout:        fc.RequestTimeout.Time().Milliseconds(),
		RetryTimeout:          fc.RetryTimeout.Time().Milliseconds(),
		AutoFlushDisabled:     fc.AutoFlushDisabled,
		AutoFlushRows:         fc.AutoFlushRows,
		AutoFlushInterval:     fc.AutoFlushInterval.Time().Milliseconds(),
		StdlibHTTP:            fc.StdlibHTTP,
	}
}
