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

package graph

import (
	"reflect"
	"sync"

	"github.com/kdi-go/kdi/internal/kdireflect"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LinkerOption configures a Linker.
type LinkerOption interface {
	apply(*Linker)
}

type linkerOptionFunc func(*Linker)

func (f linkerOptionFunc) apply(l *Linker) { f(l) }

// ThreadSafe controls whether the Linker guards its state with a lock.
// Linkers are thread safe by default; turn it off only when a single
// goroutine owns the linker and every graph built on it.
func ThreadSafe(enabled bool) LinkerOption {
	return linkerOptionFunc(func(l *Linker) {
		l.threadSafe = enabled
	})
}

// WithLogger sets the logger used for debug output while linking.
func WithLogger(log *zap.Logger) LinkerOption {
	return linkerOptionFunc(func(l *Linker) {
		if log != nil {
			l.log = log
		}
	})
}

// ProvideOption configures a constructor passed to Provide.
type ProvideOption interface {
	applyProvide(*provideOptions)
}

type provideOptions struct {
	singleton bool
}

type provideOptionFunc func(*provideOptions)

func (f provideOptionFunc) applyProvide(o *provideOptions) { f(o) }

// AsSingleton builds the constructor's type once and shares it.
func AsSingleton() ProvideOption {
	return provideOptionFunc(func(o *provideOptions) {
		o.singleton = true
	})
}

// Linker maps types to factories and links them on first use.
type Linker struct {
	threadSafe bool
	log        *zap.Logger

	mu        sync.RWMutex
	installed map[reflect.Type]Factory
	provided  map[reflect.Type]Factory
	linked    map[reflect.Type]Factory

	// types currently being linked, outermost first
	linking []reflect.Type
}

// NewLinker returns an empty, thread-safe Linker.
func NewLinker(opts ...LinkerOption) *Linker {
	l := &Linker{
		threadSafe: true,
		log:        zap.NewNop(),
		installed:  make(map[reflect.Type]Factory),
		provided:   make(map[reflect.Type]Factory),
		linked:     make(map[reflect.Type]Factory),
	}
	for _, opt := range opts {
		opt.apply(l)
	}
	return l
}

// Install registers f as the factory for t. Installed factories win over
// constructors added through Provide. Installing over an already linked
// type affects later lookups of t only; factories that were linked
// against the previous factory keep using it.
func (l *Linker) Install(t reflect.Type, f Factory) error {
	if f == nil {
		return errNilFactory
	}
	if vf, ok := f.(*valueFactory); ok && !vf.value.IsValid() {
		return errNilValue
	}
	if ft, ok := producedType(f); ok && !ft.AssignableTo(t) {
		return errors.Errorf("value of type %v is not assignable to %v", ft, t)
	}

	l.lock()
	defer l.unlock()

	l.installed[t] = f
	delete(l.linked, t)
	return nil
}

// Provide registers a constructor for the first type it returns.
func (l *Linker) Provide(ctor interface{}, opts ...ProvideOption) error {
	var options provideOptions
	for _, opt := range opts {
		opt.applyProvide(&options)
	}

	f, err := Constructor(ctor)
	if err != nil {
		return errors.Wrapf(err, "cannot provide %v from %v", kdireflect.FuncName(ctor), kdireflect.Caller())
	}
	l.log.Debug("provide",
		zap.String("constructor", kdireflect.FuncName(ctor)),
		zap.Strings("types", kdireflect.ReturnTypes(ctor)),
		zap.Bool("singleton", options.singleton),
		zap.String("caller", kdireflect.Caller()))
	if options.singleton {
		f = Singleton(f)
	}

	t := reflect.TypeOf(ctor).Out(0)

	l.lock()
	defer l.unlock()

	l.provided[t] = f
	delete(l.linked, t)
	return nil
}

// FactoryFor returns the linked factory for t, linking it first if needed.
func (l *Linker) FactoryFor(t reflect.Type) (Factory, error) {
	l.log.Debug("get factory", zap.Stringer("type", t))

	if !l.threadSafe {
		return l.link(t)
	}

	l.mu.RLock()
	f, ok := l.linked[t]
	l.mu.RUnlock()
	if ok {
		return f, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another goroutine may have linked t while we waited for the lock.
	return l.link(t)
}

// link must be called with the write lock held in thread-safe mode.
func (l *Linker) link(t reflect.Type) (Factory, error) {
	if f, ok := l.linked[t]; ok {
		return f, nil
	}

	for i, pending := range l.linking {
		if pending == t {
			path := make([]reflect.Type, 0, len(l.linking)-i+1)
			path = append(path, l.linking[i:]...)
			return nil, &CycleError{Path: append(path, t)}
		}
	}

	l.log.Debug("link factory", zap.Stringer("type", t))

	f, err := l.load(t)
	if err != nil {
		return nil, err
	}

	if lf, ok := f.(Linkable); ok {
		l.linking = append(l.linking, t)
		err := lf.Link(linkSession{l})
		l.linking = l.linking[:len(l.linking)-1]
		if err != nil {
			return nil, errors.Wrapf(err, "failed to link %v", t)
		}
	}

	l.linked[t] = f
	return f, nil
}

func (l *Linker) load(t reflect.Type) (Factory, error) {
	if f, ok := l.installed[t]; ok {
		return f, nil
	}
	if f, ok := l.provided[t]; ok {
		return f, nil
	}
	return nil, &MissingFactoryError{Type: t}
}

func (l *Linker) lock() {
	if l.threadSafe {
		l.mu.Lock()
	}
}

func (l *Linker) unlock() {
	if l.threadSafe {
		l.mu.Unlock()
	}
}

// linkSession resolves dependencies while the linker lock is already held.
type linkSession struct {
	l *Linker
}

func (s linkSession) FactoryFor(t reflect.Type) (Factory, error) {
	return s.l.link(t)
}

// Install registers f as the factory for T.
func Install[T any](l *Linker, f Factory) error {
	return l.Install(kdireflect.TypeOf[T](), f)
}

// InstallValue registers v as the shared instance of T.
func InstallValue[T any](l *Linker, v T) error {
	return Install[T](l, Value(v))
}
