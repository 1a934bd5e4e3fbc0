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

package kdiconfig

import (
	"fmt"

	"github.com/kdi-go/kdi"
)

// Supply registers a singleton T in c, populated from key the first time
// it is resolved. Resolving fails if key is missing or T fails validation.
func Supply[T any](c *kdi.Container, p Provider, key string, opts ...kdi.KeyOption) {
	var zero T
	supply(c, p, key, zero, true, opts)
}

// SupplyDefault is like Supply, but starts from def and tolerates a missing
// key. T should be a value type; a pointer default would be shared with and
// modified by the decoder.
func SupplyDefault[T any](c *kdi.Container, p Provider, key string, def T, opts ...kdi.KeyOption) {
	supply(c, p, key, def, false, opts)
}

func supply[T any](c *kdi.Container, p Provider, key string, def T, required bool, opts []kdi.KeyOption) {
	kdi.AddSingletonFactory(c, func(kdi.Resolver) (T, error) {
		v := def
		val := p.Get(key)
		if !val.HasValue() && required {
			return v, fmt.Errorf("%v has no value for %q", p.Name(), key)
		}
		if err := val.Populate(&v); err != nil {
			return v, err
		}
		return v, nil
	}, opts...)
}

// Register adds p to c as the Provider, so factories can read arbitrary
// keys.
func Register(c *kdi.Container, p Provider) {
	kdi.AddSingleton(c, p)
}
