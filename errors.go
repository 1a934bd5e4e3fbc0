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
	"strings"
)

var (
	// ErrInvalidDependency matches errors for keys that are not registered.
	ErrInvalidDependency = errors.New("kdi: invalid dependency")

	// ErrCircularDependency matches errors for keys that depend on themselves.
	ErrCircularDependency = errors.New("kdi: circular dependency")
)

// InvalidDependencyError is returned when a key is not registered.
type InvalidDependencyError struct {
	Key Key
}

func (e *InvalidDependencyError) Error() string {
	return fmt.Sprintf("no '%v' registered", e.Key)
}

// Is reports whether target is ErrInvalidDependency.
func (e *InvalidDependencyError) Is(target error) bool {
	return target == ErrInvalidDependency
}

// CircularDependencyError is returned when resolving a key requires the key
// itself. Path starts and ends with the same key.
type CircularDependencyError struct {
	Path []Key
}

func (e *CircularDependencyError) Error() string {
	keys := make([]string, len(e.Path))
	for i, k := range e.Path {
		keys[i] = k.String()
	}
	return "circular dependency detected: " + strings.Join(keys, " -> ")
}

// Is reports whether target is ErrCircularDependency.
func (e *CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}

// ProviderError is returned when a factory fails to build its value.
type ProviderError struct {
	Key Key
	// Location is where the factory was registered.
	Location string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("failed to build %v: %v", e.Key, e.Err)
}

// Unwrap returns the error reported by the factory.
func (e *ProviderError) Unwrap() error { return e.Err }
