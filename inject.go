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

package kdi

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/kdi-go/kdi/internal/kdireflect"
)

// AddFactory registers fn as a factory for T. fn runs on every request.
func AddFactory[T any](c *Container, fn func(Resolver) (T, error), opts ...KeyOption) {
	k := KeyOf[T](opts...)
	if fn == nil {
		panic(fmt.Sprintf("kdi: nil factory for %v", k))
	}
	location := kdireflect.Location()
	c.register(k, &transientFactory{
		build:    erase(fn),
		location: location,
	}, location)
}

// AddSingletonFactory registers fn as the factory of a shared T. fn runs
// once, on the first successful request. The container owns the result.
//
// fn should resolve its dependencies through the Resolver it is given.
// Requests made directly to the container from fn's goroutine are treated
// the same way, but a goroutine started by fn must not request a key that
// is still being built: it would wait for fn, which waits for it.
func AddSingletonFactory[T any](c *Container, fn func(Resolver) (T, error), opts ...KeyOption) {
	k := KeyOf[T](opts...)
	if fn == nil {
		panic(fmt.Sprintf("kdi: nil factory for %v", k))
	}
	location := kdireflect.Location()
	c.register(k, &singletonFactory{
		build:    erase(fn),
		location: location,
	}, location)
}

// AddSingleton registers an existing value as the shared T. The container
// does not close values it did not build.
func AddSingleton[T any](c *Container, v T, opts ...KeyOption) {
	c.register(KeyOf[T](opts...), &valueFactory{value: v}, kdireflect.Location())
}

// WithSingleton is like AddSingleton but returns v, which is convenient
// when the caller keeps a reference:
//
//	counter := kdi.WithSingleton(c, &Counter{})
func WithSingleton[T any](c *Container, v T, opts ...KeyOption) T {
	c.register(KeyOf[T](opts...), &valueFactory{value: v}, kdireflect.Location())
	return v
}

// Get resolves T from r.
func Get[T any](r Resolver, opts ...KeyOption) (T, error) {
	var zero T

	k := KeyOf[T](opts...)
	v, err := r.resolve(k)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("kdi: %v resolved to a %T", k, v)
	}
	return t, nil
}

// MustGet is like Get but panics if T cannot be resolved.
func MustGet[T any](r Resolver, opts ...KeyOption) T {
	v, err := Get[T](r, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether T is registered in c.
func Has[T any](c *Container, opts ...KeyOption) bool {
	return c.Contains(KeyOf[T](opts...))
}

// Populate fills the exported fields of the struct pointed to by target
// with values resolved from r. Field tags adjust the lookup:
//
//	type Handlers struct {
//	    Log     *zap.Logger
//	    Primary *sql.DB `name:"primary"`
//	    Cache   *Cache  `optional:"true"`
//	    Local   string  `kdi:"-"`
//	}
//
// Optional fields are left untouched when their key is not registered.
func Populate(r Resolver, target interface{}) error {
	if target == nil {
		return errors.New("kdi: Populate expected a pointer to a struct, got nil")
	}

	v := reflect.ValueOf(target)
	if t := v.Type(); t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct || v.IsNil() {
		return fmt.Errorf("kdi: Populate expected a pointer to a struct, got a %v", t)
	}

	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		// Skip private fields.
		if f.PkgPath != "" || f.Tag.Get("kdi") == "-" {
			continue
		}

		optional, _ := strconv.ParseBool(f.Tag.Get("optional"))
		k := Key{Type: f.Type, Name: f.Tag.Get("name")}

		val, err := r.resolve(k)
		if err != nil {
			if optional && errors.Is(err, ErrInvalidDependency) && isMissing(err, k) {
				continue
			}
			return fmt.Errorf("kdi: populating field %v.%v: %w", t, f.Name, err)
		}
		if val != nil {
			v.Field(i).Set(reflect.ValueOf(val))
		}
	}
	return nil
}

// isMissing reports whether err is about k itself rather than one of its
// dependencies.
func isMissing(err error, k Key) bool {
	var invalid *InvalidDependencyError
	return errors.As(err, &invalid) && invalid.Key == k
}

func erase[T any](fn func(Resolver) (T, error)) buildFunc {
	return func(r Resolver) (interface{}, error) {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
