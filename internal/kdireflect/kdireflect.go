// Copyright (c) 2017 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package kdireflect holds the reflection helpers shared by kdi packages.
package kdireflect

import (
	"bytes"
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

const modulePath = "github.com/kdi-go/kdi"

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// TypeOf returns the static type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// IsErr reports whether t implements error.
func IsErr(t reflect.Type) bool {
	return t.Implements(_errType)
}

// ReturnTypes returns the string'd non-error result types of a func.
func ReturnTypes(fn interface{}) []string {
	rtypes := []string{}
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return rtypes
	}

	for i := 0; i < ft.NumOut(); i++ {
		if !IsErr(ft.Out(i)) {
			rtypes = append(rtypes, ft.Out(i).String())
		}
	}
	return rtypes
}

// FuncName returns a funcs formatted name
func FuncName(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func {
		return "n/a"
	}

	fnName := runtime.FuncForPC(fnV.Pointer()).Name()
	return fmt.Sprintf("%s()", fnName)
}

// Caller returns the formatted calling func name, skipping kdi frames.
func Caller() string {
	f, ok := callerFrame()
	if !ok {
		return "n/a"
	}
	return f.Function
}

// Location returns "function (file:line)" for the first frame outside kdi.
func Location() string {
	f, ok := callerFrame()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

func callerFrame() (runtime.Frame, bool) {
	// Ascend at most 16 frames looking for a caller outside kdi.
	pcs := make([]uintptr, 16)

	// Skip runtime.Callers and this frame.
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return runtime.Frame{}, false
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !shouldIgnoreFrame(f) {
			return f, true
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}

// Ascend the call stack until we leave kdi production code. This avoids a
// hard-coded frame skip, so wrappers keep working.
func shouldIgnoreFrame(f runtime.Frame) bool {
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	if strings.HasPrefix(f.Function, modulePath+"/cmd/") {
		return false
	}
	return strings.HasPrefix(f.Function, modulePath)
}

var _goroutinePrefix = []byte("goroutine ")

// GoroutineID returns the runtime's id for the calling goroutine, or 0 if
// it can't be determined. It parses the header of the goroutine's stack
// trace, "goroutine 42 [running]:", so it is too slow for hot paths.
func GoroutineID() int64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]

	b = bytes.TrimPrefix(b, _goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
