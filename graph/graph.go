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

	"github.com/kdi-go/kdi/internal/kdireflect"
	"github.com/pkg/errors"
)

// ObjectGraph hands out instances built by a Linker's factories.
type ObjectGraph struct {
	linker *Linker
}

// New returns an ObjectGraph backed by l.
func New(l *Linker) *ObjectGraph {
	return &ObjectGraph{linker: l}
}

// Get returns an instance of t. Factories handing out something that isn't
// a t fail with an error.
func (g *ObjectGraph) Get(t reflect.Type) (reflect.Value, error) {
	f, err := g.linker.FactoryFor(t)
	if err != nil {
		return reflect.Value{}, err
	}

	v, err := f.Get()
	if err != nil {
		return reflect.Value{}, err
	}
	if !v.IsValid() {
		return reflect.Value{}, &InjectionError{Type: t, Err: errNilValue}
	}
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, &InjectionError{
			Type: t,
			Err:  errors.Errorf("factory produced a %v", v.Type()),
		}
	}
	return v, nil
}

// Resolve sets the value pointed to by ptr to an instance of its element
// type.
//
//	var log *Logger
//	err := g.Resolve(&log)
func (g *ObjectGraph) Resolve(ptr interface{}) error {
	pv := reflect.ValueOf(ptr)
	if pv.Kind() != reflect.Ptr || pv.IsNil() {
		return errors.Wrapf(errParamType, "can not resolve %T", ptr)
	}

	t := pv.Type().Elem()
	v, err := g.Get(t)
	if err != nil {
		return errors.Wrapf(err, "unable to resolve %v", t)
	}

	pv.Elem().Set(v)
	return nil
}

// ResolveAll resolves each pointer in order, stopping at the first error.
func (g *ObjectGraph) ResolveAll(ptrs ...interface{}) error {
	for _, p := range ptrs {
		if err := g.Resolve(p); err != nil {
			return err
		}
	}
	return nil
}

// Get returns an instance of T from g.
func Get[T any](g *ObjectGraph) (T, error) {
	var zero T

	v, err := g.Get(kdireflect.TypeOf[T]())
	if err != nil {
		return zero, err
	}
	if isNil(v) {
		return zero, nil
	}

	t, ok := v.Interface().(T)
	if !ok {
		return zero, errors.Errorf("graph: %v does not implement %v", v.Type(), kdireflect.TypeOf[T]())
	}
	return t, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](g *ObjectGraph) T {
	v, err := Get[T](g)
	if err != nil {
		panic(fmt.Sprintf("graph: %v", err))
	}
	return v
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
