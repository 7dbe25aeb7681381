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

package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal logging collaborator used by this module. Callers
// supply their own sink (file, syslog, remote collector, ...) through
// SetOutput/SetLogrus; the default construction only writes to stderr.
type Logger interface {
	SetLevel(lvl Level)
	GetLevel() Level
	SetOutput(w io.Writer)
	SetLogrus(entry *logrus.Logger)

	Debug(message string, fields Fields)
	Info(message string, fields Fields)
	Warning(message string, fields Fields)
	Error(message string, fields Fields)
	Fatal(message string, fields Fields)

	Entry(lvl Level, message string) Entry
}

// Entry is a single, fluent log record built incrementally before being
// emitted. Its methods update the entry in place and return it, so calls
// can be chained.
type Entry interface {
	FieldAdd(key string, val interface{}) Entry
	FieldMerge(f Fields) Entry
	ErrorAdd(err error) Entry
	Log()
}

type logger struct {
	m sync.Mutex
	l Level
	e *logrus.Logger
}

// New returns a Logger backed by logrus, writing to os.Stderr at InfoLevel
// until reconfigured with SetLevel/SetOutput.
func New() Logger {
	e := logrus.New()
	e.SetOutput(os.Stderr)
	e.SetLevel(InfoLevel.Logrus())

	return &logger{
		l: InfoLevel,
		e: e,
	}
}

func (o *logger) SetLevel(lvl Level) {
	o.m.Lock()
	defer o.m.Unlock()

	o.l = lvl
	o.e.SetLevel(lvl.Logrus())
}

func (o *logger) GetLevel() Level {
	o.m.Lock()
	defer o.m.Unlock()

	return o.l
}

func (o *logger) SetOutput(w io.Writer) {
	o.m.Lock()
	defer o.m.Unlock()

	o.e.SetOutput(w)
}

func (o *logger) SetLogrus(entry *logrus.Logger) {
	if entry == nil {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()

	o.e = entry
}

func (o *logger) entry() *logrus.Logger {
	o.m.Lock()
	defer o.m.Unlock()

	return o.e
}

func (o *logger) Debug(message string, fields Fields) {
	o.entry().WithFields(fields.Logrus()).Debug(message)
}

func (o *logger) Info(message string, fields Fields) {
	o.entry().WithFields(fields.Logrus()).Info(message)
}

func (o *logger) Warning(message string, fields Fields) {
	o.entry().WithFields(fields.Logrus()).Warn(message)
}

func (o *logger) Error(message string, fields Fields) {
	o.entry().WithFields(fields.Logrus()).Error(message)
}

func (o *logger) Fatal(message string, fields Fields) {
	o.entry().WithFields(fields.Logrus()).Fatal(message)
}

func (o *logger) Entry(lvl Level, message string) Entry {
	return &entry{
		l:   lvl,
		log: o,
		msg: message,
		fld: NewFields(),
	}
}

type entry struct {
	l   Level
	log *logger
	msg string
	fld Fields
	err error
}

func (e *entry) FieldAdd(key string, val interface{}) Entry {
	e.fld = e.fld.Add(key, val)
	return e
}

func (e *entry) FieldMerge(f Fields) Entry {
	e.fld = e.fld.Merge(f)
	return e
}

func (e *entry) ErrorAdd(err error) Entry {
	e.err = err
	return e
}

func (e *entry) Log() {
	f := e.fld
	if e.err != nil {
		f = f.Add("error", e.err.Error())
	}

	switch e.l {
	case DebugLevel:
		e.log.Debug(e.msg, f)
	case InfoLevel:
		e.log.Info(e.msg, f)
	case WarnLevel:
		e.log.Warning(e.msg, f)
	case ErrorLevel:
		e.log.Error(e.msg, f)
	case FatalLevel, PanicLevel:
		e.log.Fatal(e.msg, f)
	case NilLevel:
		// intentionally discarded
	}
}
