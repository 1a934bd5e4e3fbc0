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

// Package kdi is a small, thread-safe dependency injection container.
//
// A Container maps keys to factories. A key is a Go type, optionally
// qualified by a name, so Box[int] and Box[string] are different keys and
// so are two *sql.DB registered under different names.
//
// # Registering
//
// Factories are plain functions that receive a Resolver and return the
// value they build:
//
//	c := kdi.NewContainer()
//
//	kdi.AddSingleton[io.Writer](c, os.Stdout)
//	kdi.AddSingletonFactory(c, func(r kdi.Resolver) (*Counter, error) {
//	    return &Counter{}, nil
//	})
//	kdi.AddFactory(c, func(r kdi.Resolver) (*Logger, error) {
//	    out, err := kdi.Get[io.Writer](r)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &Logger{out: out}, nil
//	})
//
// AddFactory builds a new value on every request. AddSingletonFactory
// builds the value once, on first request, and shares it. AddSingleton
// shares a value that already exists.
//
// # Resolving
//
//	log, err := kdi.Get[*Logger](c)
//	counter := kdi.MustGet[*Counter](c)
//
// Unregistered keys fail with an InvalidDependencyError. A factory that
// (directly or indirectly) asks for its own key fails with a
// CircularDependencyError instead of recursing forever. Two values that
// need each other can break the cycle with Lazy, which defers resolution
// until the value is first used.
//
// # Lifecycle
//
// Singletons built by the container are owned by it. Close closes every
// owned singleton implementing io.Closer, or Close(context.Context) error,
// in reverse order of construction.
//
// Every method and function in this package is safe for concurrent use.
package kdi
