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

import "os"

type expandProvider struct {
	p       Provider
	mapping func(string) string
}

// NewExpandProvider returns a config provider that uses a mapping function
// to expand ${var} or $var in the string values returned by p. Strings
// nested in mappings and sequences are expanded too.
//
//	kdiconfig.NewExpandProvider(p, os.Getenv)
func NewExpandProvider(p Provider, mapping func(string) string) Provider {
	return &expandProvider{p: p, mapping: mapping}
}

// Name returns expand.
func (e *expandProvider) Name() string {
	return "expand"
}

// Get returns the value with variables replaced by the mapping function.
func (e *expandProvider) Get(key string) Value {
	v := e.p.Get(key)
	if !v.HasValue() {
		return NewValue(e, key, nil, false)
	}
	return NewValue(e, key, e.expand(v.Value()), true)
}

// expand returns a copy of v so the wrapped provider's tree stays intact.
func (e *expandProvider) expand(v interface{}) interface{} {
	switch n := v.(type) {
	case string:
		return os.Expand(n, e.mapping)
	case map[string]interface{}:
		m := make(map[string]interface{}, len(n))
		for k, child := range n {
			m[k] = e.expand(child)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(n))
		for i, child := range n {
			s[i] = e.expand(child)
		}
		return s
	default:
		return v
	}
}
