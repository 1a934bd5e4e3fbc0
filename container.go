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
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/kdi-go/kdi/internal/kdireflect"
	"github.com/kdi-go/kdi/internal/lifecycle"
	"github.com/kdi-go/kdi/kdievent"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	"github.com/uber-go/tally/v4"
)

// Resolver looks up registered keys. A Container is a Resolver, and every
// factory receives one that remembers which keys are being built, so that
// cycles are reported instead of recursing.
type Resolver interface {
	resolve(k Key) (interface{}, error)
	root() *Container
}

// Container holds registrations and the singletons built from them.
type Container struct {
	log     kdievent.Logger
	metrics *metrics
	tracer  opentracing.Tracer
	clock   clock.Clock

	mu        sync.RWMutex
	factories map[Key]factory

	// Constructions in progress, innermost last, per goroutine. Requests
	// made straight to the container from inside a factory continue the
	// resolution path of that factory.
	building int32
	activeMu sync.Mutex
	active   map[int64][]*scope

	owned lifecycle.Stack
}

var _ Resolver = (*Container)(nil)

// NewContainer returns an empty Container.
func NewContainer(opts ...Option) *Container {
	c := &Container{
		log:       kdievent.NopLogger,
		metrics:   newMetrics(tally.NoopScope),
		tracer:    opentracing.NoopTracer{},
		clock:     clock.New(),
		factories: make(map[Key]factory),
		active:    make(map[int64][]*scope),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

// Contains reports whether k is registered.
func (c *Container) Contains(k Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.factories[k]
	return ok
}

// Keys returns every registered key, sorted by their string form.
func (c *Container) Keys() []Key {
	c.mu.RLock()
	keys := make([]Key, 0, len(c.factories))
	for k := range c.factories {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Reset drops every registration. Singletons that were already built are
// still owned by the container and closed by Close.
func (c *Container) Reset() {
	c.mu.Lock()
	n := len(c.factories)
	c.factories = make(map[Key]factory)
	c.mu.Unlock()

	c.metrics.registered.Update(0)
	c.log.LogEvent(&kdievent.Reset{Count: n})
}

// Close closes the singletons built by the container, most recently built
// first. Every closer runs even if an earlier one fails; failures are
// combined into the returned error.
func (c *Container) Close(ctx context.Context) error {
	return c.owned.Close(ctx, c.clock, func(r lifecycle.HookRecord) {
		c.log.LogEvent(&kdievent.Closed{
			Key:     r.Name,
			Runtime: r.Runtime,
			Err:     r.Err,
		})
	})
}

func (c *Container) root() *Container { return c }

func (c *Container) resolve(k Key) (interface{}, error) {
	return c.resolveFrom(c.current(), k)
}

// current returns the innermost construction running on the calling
// goroutine, or a fresh scope if there is none.
func (c *Container) current() *scope {
	if atomic.LoadInt32(&c.building) == 0 {
		return &scope{c: c}
	}

	gid := kdireflect.GoroutineID()
	c.activeMu.Lock()
	defer c.activeMu.Unlock()

	if stack := c.active[gid]; len(stack) > 0 {
		return stack[len(stack)-1]
	}
	return &scope{c: c}
}

func (c *Container) enter(s *scope) (exit func()) {
	gid := kdireflect.GoroutineID()
	atomic.AddInt32(&c.building, 1)

	c.activeMu.Lock()
	c.active[gid] = append(c.active[gid], s)
	c.activeMu.Unlock()

	return func() {
		c.activeMu.Lock()
		stack := c.active[gid]
		if len(stack) <= 1 {
			delete(c.active, gid)
		} else {
			c.active[gid] = stack[:len(stack)-1]
		}
		c.activeMu.Unlock()

		atomic.AddInt32(&c.building, -1)
		atomic.StoreUint32(&s.done, 1)
	}
}

func (c *Container) register(k Key, f factory, location string) {
	c.mu.Lock()
	_, replaced := c.factories[k]
	c.factories[k] = f
	n := len(c.factories)
	c.mu.Unlock()

	c.metrics.registered.Update(float64(n))
	c.log.LogEvent(&kdievent.Registered{
		Key:      k.String(),
		Kind:     f.kind(),
		Location: location,
		Replaced: replaced,
	})
}

func (c *Container) resolveFrom(parent *scope, k Key) (interface{}, error) {
	c.metrics.resolves.Inc(1)

	for i, pending := range parent.path {
		if pending == k {
			path := make([]Key, 0, len(parent.path)-i+1)
			path = append(path, parent.path[i:]...)
			return nil, c.resolveFailed(k, &CircularDependencyError{Path: append(path, k)})
		}
	}

	c.mu.RLock()
	f, ok := c.factories[k]
	c.mu.RUnlock()
	if !ok {
		return nil, c.resolveFailed(k, &InvalidDependencyError{Key: k})
	}

	return f.produce(parent.child(k), k)
}

func (c *Container) resolveFailed(k Key, err error) error {
	c.metrics.resolveErrors.Inc(1)
	c.log.LogEvent(&kdievent.ResolveFailed{Key: k.String(), Err: err})
	return err
}

// construct runs build inside s, recording its runtime, metrics, trace span
// and event.
func (c *Container) construct(s *scope, k Key, build buildFunc, location string) (interface{}, error) {
	var opts []opentracing.StartSpanOption
	if s.span != nil {
		opts = append(opts, opentracing.ChildOf(s.span.Context()))
	}
	span := c.tracer.StartSpan("kdi.construct", opts...)
	span.SetTag("kdi.key", k.String())
	s.span = span

	exit := c.enter(s)
	start := c.clock.Now()
	v, err := call(s, build)
	runtime := c.clock.Since(start)
	exit()

	c.metrics.constructions.Inc(1)
	c.metrics.latency.Record(runtime)
	if err != nil {
		err = &ProviderError{Key: k, Location: location, Err: err}
		c.metrics.constructionErrors.Inc(1)
		ext.Error.Set(span, true)
		span.LogFields(otlog.Error(err))
	}
	span.Finish()

	c.log.LogEvent(&kdievent.Constructed{
		Key:     k.String(),
		Runtime: runtime,
		Err:     err,
	})
	return v, err
}

func call(r Resolver, build buildFunc) (v interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = fmt.Errorf("factory panicked: %v", rec)
		}
	}()
	return build(r)
}

// own hands the container responsibility for closing v.
func (c *Container) own(k Key, v interface{}) {
	var onClose func(context.Context) error
	switch closer := v.(type) {
	case interface{ Close(context.Context) error }:
		onClose = closer.Close
	case io.Closer:
		onClose = func(context.Context) error { return closer.Close() }
	default:
		return
	}
	c.owned.Push(lifecycle.Hook{Name: k.String(), OnClose: onClose})
}

// scope is the Resolver handed to factories. path holds the keys being
// built, outermost first. done is set once the factory owning the scope
// has returned.
type scope struct {
	c    *Container
	path []Key
	span opentracing.Span
	done uint32
}

var _ Resolver = (*scope)(nil)

func (s *scope) resolve(k Key) (interface{}, error) {
	return s.c.resolveFrom(s, k)
}

func (s *scope) root() *Container { return s.c }

func (s *scope) finished() bool { return atomic.LoadUint32(&s.done) == 1 }

func (s *scope) child(k Key) *scope {
	path := make([]Key, len(s.path), len(s.path)+1)
	copy(path, s.path)
	return &scope{
		c:    s.c,
		path: append(path, k),
		span: s.span,
	}
}

type buildFunc func(Resolver) (interface{}, error)

type factory interface {
	kind() string
	produce(s *scope, k Key) (interface{}, error)
}

type valueFactory struct {
	value interface{}
}

func (f *valueFactory) kind() string { return kdievent.KindValue }

func (f *valueFactory) produce(*scope, Key) (interface{}, error) {
	return f.value, nil
}

type transientFactory struct {
	build    buildFunc
	location string
}

func (f *transientFactory) kind() string { return kdievent.KindFactory }

func (f *transientFactory) produce(s *scope, k Key) (interface{}, error) {
	return s.c.construct(s, k, f.build, f.location)
}

type singletonFactory struct {
	build    buildFunc
	location string

	mu    sync.Mutex
	done  uint32
	value interface{}
}

func (f *singletonFactory) kind() string { return kdievent.KindSingleton }

func (f *singletonFactory) produce(s *scope, k Key) (interface{}, error) {
	if atomic.LoadUint32(&f.done) == 1 {
		return f.value, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done == 0 {
		v, err := s.c.construct(s, k, f.build, f.location)
		if err != nil {
			return nil, err
		}
		f.value = v
		atomic.StoreUint32(&f.done, 1)
		s.c.own(k, v)
	}
	return f.value, nil
}
