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
	"fmt"
	"reflect"

	"github.com/kdi-go/kdi/internal/kdireflect"
)

// Key identifies a registration in a Container.
type Key struct {
	Type reflect.Type
	Name string
}

// String returns the type, followed by the name if there is one.
func (k Key) String() string {
	if k.Name == "" {
		return fmt.Sprint(k.Type)
	}
	return fmt.Sprintf("%v[name=%q]", k.Type, k.Name)
}

// KeyOption qualifies the key a value is registered or looked up under.
type KeyOption interface {
	applyKey(*Key)
}

type keyOptionFunc func(*Key)

func (f keyOptionFunc) applyKey(k *Key) { f(k) }

// Named qualifies a key with a name, allowing multiple values of the same
// type to live in one container.
func Named(name string) KeyOption {
	return keyOptionFunc(func(k *Key) {
		k.Name = name
	})
}

// KeyOf returns the key for T with the given options applied.
func KeyOf[T any](opts ...KeyOption) Key {
	k := Key{Type: kdireflect.TypeOf[T]()}
	for _, opt := range opts {
		opt.applyKey(&k)
	}
	return k
}
