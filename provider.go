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
	"sync"
	"sync/atomic"

	"github.com/kdi-go/kdi/internal/kdireflect"
)

// Provider builds values of type T.
type Provider[T any] interface {
	Provide(r Resolver) (T, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc[T any] func(r Resolver) (T, error)

// Provide calls f.
func (f ProviderFunc[T]) Provide(r Resolver) (T, error) { return f(r) }

// AddProvider registers p as a factory for T, called on every request.
func AddProvider[T any](c *Container, p Provider[T], opts ...KeyOption) {
	k := KeyOf[T](opts...)
	if p == nil {
		panic(fmt.Sprintf("kdi: nil provider for %v", k))
	}
	location := kdireflect.Location()
	c.register(k, &transientFactory{build: erase(p.Provide), location: location}, location)
}

// AddSingletonProvider registers p as the provider of a shared T.
func AddSingletonProvider[T any](c *Container, p Provider[T], opts ...KeyOption) {
	k := KeyOf[T](opts...)
	if p == nil {
		panic(fmt.Sprintf("kdi: nil provider for %v", k))
	}
	location := kdireflect.Location()
	c.register(k, &singletonFactory{build: erase(p.Provide), location: location}, location)
}

// LazyValue defers resolving a T until Get is first called.
type LazyValue[T any] struct {
	c      *Container
	origin *scope
	opts   []KeyOption
	init   func(T)

	mu    sync.Mutex
	done  uint32
	value T
}

// Lazy returns a LazyValue for T. Once the factory that created it has
// returned, the value is resolved from the root of r's container, so two
// singletons may hold lazy references to each other. Using it while that
// factory is still running continues the factory's resolution, and a
// request for a key being built fails with a CircularDependencyError.
//
//	type A struct{ b *kdi.LazyValue[*B] }
//	type B struct{ a *kdi.LazyValue[*A] }
func Lazy[T any](r Resolver, opts ...KeyOption) *LazyValue[T] {
	return LazyWith[T](r, nil, opts...)
}

// LazyWith is like Lazy, calling init once with the value after it was
// first resolved.
func LazyWith[T any](r Resolver, init func(T), opts ...KeyOption) *LazyValue[T] {
	origin, _ := r.(*scope)
	return &LazyValue[T]{c: r.root(), origin: origin, opts: opts, init: init}
}

// Get resolves the value on first use and returns the same value from then
// on. Failed resolutions are retried on the next call.
func (l *LazyValue[T]) Get() (T, error) {
	if atomic.LoadUint32(&l.done) == 1 {
		return l.value, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done == 0 {
		var r Resolver = l.c
		if l.origin != nil && !l.origin.finished() {
			r = l.origin
		}
		v, err := Get[T](r, l.opts...)
		if err != nil {
			return v, err
		}
		if l.init != nil {
			l.init(v)
		}
		l.value = v
		atomic.StoreUint32(&l.done, 1)
	}
	return l.value, nil
}

// MustGet is like Get but panics if the value cannot be resolved.
func (l *LazyValue[T]) MustGet() T {
	v, err := l.Get()
	if err != nil {
		panic(err)
	}
	return v
}
