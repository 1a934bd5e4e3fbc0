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
	"sync"
	"sync/atomic"

	"github.com/kdi-go/kdi/internal/kdireflect"
	"github.com/pkg/errors"
)

// Factory builds instances of a single type.
type Factory interface {
	Get() (reflect.Value, error)
}

// Linkable is implemented by factories that depend on other types. Link is
// called once by the Linker before the factory is first handed out.
type Linkable interface {
	Link(r Resolver) error
}

// Resolver finds the linked factory for a type.
type Resolver interface {
	FactoryFor(t reflect.Type) (Factory, error)
}

type valueFactory struct {
	value reflect.Value
}

// Value returns a factory that always hands out v.
func Value(v interface{}) Factory {
	return &valueFactory{value: reflect.ValueOf(v)}
}

func (f *valueFactory) Get() (reflect.Value, error) {
	if !f.value.IsValid() {
		return reflect.Value{}, errNilValue
	}
	return f.value, nil
}

func (f *valueFactory) String() string {
	if !f.value.IsValid() {
		return "(value) nil"
	}
	return fmt.Sprintf("(value) %v", f.value.Type())
}

type singletonFactory struct {
	factory Factory

	mu    sync.Mutex
	done  uint32
	value reflect.Value
}

// Singleton wraps f so that it is called at most once successfully. Failed
// calls are not remembered; the next Get tries again.
func Singleton(f Factory) Factory {
	if s, ok := f.(*singletonFactory); ok {
		return s
	}
	return &singletonFactory{factory: f}
}

// Unwrap returns the factory the singleton memoizes.
func (f *singletonFactory) Unwrap() Factory { return f.factory }

func (f *singletonFactory) Link(r Resolver) error {
	if l, ok := f.factory.(Linkable); ok {
		return l.Link(r)
	}
	return nil
}

func (f *singletonFactory) Get() (reflect.Value, error) {
	if atomic.LoadUint32(&f.done) == 1 {
		return f.value, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done == 0 {
		v, err := f.factory.Get()
		if err != nil {
			return reflect.Value{}, err
		}
		f.value = v
		atomic.StoreUint32(&f.done, 1)
	}
	return f.value, nil
}

func (f *singletonFactory) String() string {
	return fmt.Sprintf("(singleton) %v", f.factory)
}

type reflectiveFactory struct {
	ctor    reflect.Value
	ctype   reflect.Type
	objType reflect.Type

	deps   []Factory
	linked bool
}

// Constructor returns a factory calling fn. fn must return exactly one
// value, optionally followed by an error. Each parameter of fn is looked up
// through the Resolver when the factory is linked.
func Constructor(fn interface{}) (Factory, error) {
	ctype := reflect.TypeOf(fn)
	if ctype == nil || ctype.Kind() != reflect.Func {
		return nil, errConstructorType
	}
	if ctype.IsVariadic() {
		return nil, errVariadic
	}

	switch ctype.NumOut() {
	case 1:
		if kdireflect.IsErr(ctype.Out(0)) {
			return nil, errReturnCount
		}
	case 2:
		if ctype.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
			return nil, errReturnCount
		}
	default:
		return nil, errReturnCount
	}

	return &reflectiveFactory{
		ctor:    reflect.ValueOf(fn),
		ctype:   ctype,
		objType: ctype.Out(0),
	}, nil
}

func (f *reflectiveFactory) Link(r Resolver) error {
	deps := make([]Factory, f.ctype.NumIn())
	for i := range deps {
		dep, err := r.FactoryFor(f.ctype.In(i))
		if err != nil {
			return err
		}
		deps[i] = dep
	}
	f.deps = deps
	f.linked = true
	return nil
}

func (f *reflectiveFactory) Get() (reflect.Value, error) {
	if !f.linked {
		return reflect.Value{}, &InjectionError{Type: f.objType, Err: errNotLinked}
	}

	args := make([]reflect.Value, len(f.deps))
	for i, dep := range f.deps {
		v, err := dep.Get()
		if err != nil {
			return reflect.Value{}, errors.Wrap(err, "dependency resolution failed")
		}
		args[i] = v
	}

	out, err := f.call(args)
	if err != nil {
		return reflect.Value{}, &InjectionError{Type: f.objType, Err: err}
	}
	return out, nil
}

func (f *reflectiveFactory) call(args []reflect.Value) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("constructor %v panicked: %v", kdireflect.FuncName(f.ctor.Interface()), r)
		}
	}()

	results := f.ctor.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	return results[0], nil
}

// producedType reports the type f builds, if it can be known without
// calling it.
func producedType(f Factory) (reflect.Type, bool) {
	for {
		switch ff := f.(type) {
		case *valueFactory:
			if !ff.value.IsValid() {
				return nil, false
			}
			return ff.value.Type(), true
		case *reflectiveFactory:
			return ff.objType, true
		case interface{ Unwrap() Factory }:
			f = ff.Unwrap()
		default:
			return nil, false
		}
	}
}

func (f *reflectiveFactory) String() string {
	return fmt.Sprintf("(function) %v, deps: %d, linked: %v",
		kdireflect.FuncName(f.ctor.Interface()), f.ctype.NumIn(), f.linked)
}
