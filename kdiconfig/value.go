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
	"reflect"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v3"
)

// A Value holds the value of a configuration key.
type Value struct {
	provider Provider
	key      string
	value    interface{}
	found    bool
}

// NewValue creates a configuration value from a provider and a key.
func NewValue(provider Provider, key string, value interface{}, found bool) Value {
	return Value{
		provider: provider,
		key:      key,
		value:    value,
		found:    found,
	}
}

// Source returns the name of the provider the value came from.
func (cv Value) Source() string {
	if cv.provider == nil {
		return ""
	}
	return cv.provider.Name()
}

// Key returns the key that was looked up.
func (cv Value) Key() string { return cv.key }

// HasValue reports whether the key was found.
func (cv Value) HasValue() bool { return cv.found }

// Value returns the raw decoded YAML.
func (cv Value) Value() interface{} { return cv.value }

// String returns the value formatted with fmt, or the empty string if the
// key was not found.
func (cv Value) String() string {
	if !cv.found || cv.value == nil {
		return ""
	}
	return fmt.Sprint(cv.value)
}

// ChildKeys returns the sorted keys of a mapping, or nil for anything else.
func (cv Value) ChildKeys() []string {
	m, ok := cv.value.(map[string]interface{})
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Populate decodes the value into target, which must be a non-nil pointer.
// Fields not present in the configuration keep their current contents, so
// target may be pre-filled with defaults. Structs are validated afterwards.
//
// A value that was not found leaves target untouched.
func (cv Value) Populate(target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("can't populate %v into %T: target must be a non-nil pointer", cv.key, target)
	}

	if cv.found && cv.value != nil {
		b, err := yaml.Marshal(cv.value)
		if err != nil {
			return errors.Wrapf(err, "can't encode %q", cv.key)
		}
		if err := yaml.Unmarshal(b, target); err != nil {
			return errors.Wrapf(err, "can't decode %q into %T", cv.key, target)
		}
	}

	if isStruct(rv.Elem()) {
		if err := validator.Validate(target); err != nil {
			return errors.Wrapf(err, "invalid %q", cv.key)
		}
	}
	return nil
}

func isStruct(v reflect.Value) bool {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	return v.Kind() == reflect.Struct
}
