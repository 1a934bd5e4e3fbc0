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

// Package kdidig bridges kdi containers and go.uber.org/dig containers.
//
// Export makes a kdi registration available to dig constructors, and
// Import registers a value built by dig in a kdi container. In both
// directions the value is only built when first requested. Names given
// with kdi.Named map to dig's named values.
package kdidig

import (
	"reflect"
	"strconv"

	"github.com/kdi-go/kdi"
	"github.com/pkg/errors"
	"go.uber.org/dig"
)

var _inType = reflect.TypeOf(dig.In{})

// Export provides T to dc. Each time dig needs T, it is resolved from r.
func Export[T any](dc *dig.Container, r kdi.Resolver, opts ...kdi.KeyOption) error {
	k := kdi.KeyOf[T](opts...)

	var provideOpts []dig.ProvideOption
	if k.Name != "" {
		provideOpts = append(provideOpts, dig.Name(k.Name))
	}

	err := dc.Provide(func() (T, error) {
		return kdi.Get[T](r, opts...)
	}, provideOpts...)
	return errors.Wrapf(err, "can't export %v to dig", k)
}

// Import registers T in c as a singleton built by dc on first use.
func Import[T any](c *kdi.Container, dc *dig.Container, opts ...kdi.KeyOption) {
	k := kdi.KeyOf[T](opts...)
	kdi.AddSingletonFactory(c, func(kdi.Resolver) (T, error) {
		var v T
		err := dc.Invoke(receiver(k, func(got reflect.Value) {
			if x, ok := got.Interface().(T); ok {
				v = x
			}
		}))
		return v, errors.Wrapf(err, "can't import %v from dig", k)
	}, opts...)
}

// receiver builds a function dig can invoke that hands the value for k to
// set. Named keys are requested through a dig.In parameter object:
//
//	func(struct {
//	    dig.In
//	    V T `name:"..."`
//	})
func receiver(k kdi.Key, set func(reflect.Value)) interface{} {
	if k.Name == "" {
		fnType := reflect.FuncOf([]reflect.Type{k.Type}, nil, false)
		return reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
			set(args[0])
			return nil
		}).Interface()
	}

	paramType := reflect.StructOf([]reflect.StructField{
		{Name: "In", Type: _inType, Anonymous: true},
		{Name: "V", Type: k.Type, Tag: reflect.StructTag(`name:` + strconv.Quote(k.Name))},
	})
	fnType := reflect.FuncOf([]reflect.Type{paramType}, nil, false)
	return reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		set(args[0].Field(1))
		return nil
	}).Interface()
}
