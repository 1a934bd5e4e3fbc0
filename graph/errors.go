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

package graph

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

var (
	errParamType       = errors.New("graph resolution must be done through a non-nil pointer")
	errConstructorType = errors.New("constructor must be a function")
	errReturnCount     = errors.New("constructor function must return exactly one value, optionally followed by an error")
	errVariadic        = errors.New("constructor function must not be variadic")
	errNilFactory      = errors.New("factory must not be nil")
	errNilValue        = errors.New("value factory must not hold an untyped nil")
	errNotLinked       = errors.New("factory was used before it was linked")
)

// MissingFactoryError is returned when nothing is registered for a type.
type MissingFactoryError struct {
	Type reflect.Type
}

func (e *MissingFactoryError) Error() string {
	return fmt.Sprintf("there is no factory registered for %v", e.Type)
}

// CycleError is returned when linking a type requires the type itself.
// Path starts and ends with the same type.
type CycleError struct {
	Path []reflect.Type
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Path))
	for i, t := range e.Path {
		names[i] = t.String()
	}
	return "dependency cycle detected: " + strings.Join(names, " -> ")
}

// InjectionError is returned when a constructor fails to build its type,
// either by returning an error or by panicking.
type InjectionError struct {
	Type reflect.Type
	Err  error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("failed to inject %v: %v", e.Type, e.Err)
}

// Unwrap returns the underlying failure.
func (e *InjectionError) Unwrap() error { return e.Err }

// Cause implements the causer interface of github.com/pkg/errors.
func (e *InjectionError) Cause() error { return e.Err }
