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
	"bytes"
	"errors"
	"io"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// factoryFunc adapts a function to Factory.
type factoryFunc func() (reflect.Value, error)

func (f factoryFunc) Get() (reflect.Value, error) { return f() }

type mapResolver map[reflect.Type]Factory

func (m mapResolver) FactoryFor(t reflect.Type) (Factory, error) {
	if f, ok := m[t]; ok {
		return f, nil
	}
	return nil, &MissingFactoryError{Type: t}
}

var _writerType = reflect.TypeOf((*io.Writer)(nil)).Elem()

func TestSingletonRetriesFailures(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	tests := []struct {
		name     string
		failures int
	}{
		{"never fails", 0},
		{"fails once", 1},
		{"fails three times", 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls int
			f := Singleton(factoryFunc(func() (reflect.Value, error) {
				calls++
				if calls <= tt.failures {
					return reflect.Value{}, boom
				}
				return reflect.ValueOf(&Counter{number: int64(calls)}), nil
			}))

			for i := 0; i < tt.failures; i++ {
				_, err := f.Get()
				assert.True(t, errors.Is(err, boom), "attempt %d: got %v", i, err)
			}

			first, err := f.Get()
			require.NoError(t, err)
			second, err := f.Get()
			require.NoError(t, err)

			assert.True(t, first.Interface() == second.Interface(), "instance must be shared")
			assert.Equal(t, int64(tt.failures+1), first.Interface().(*Counter).Number())
			assert.Equal(t, tt.failures+1, calls, "successful result must be remembered")
		})
	}
}

func TestSingletonConcurrentGet(t *testing.T) {
	t.Parallel()

	var calls int32
	f := Singleton(factoryFunc(func() (reflect.Value, error) {
		atomic.AddInt32(&calls, 1)
		return reflect.ValueOf(NewCounter()), nil
	}))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[*Counter]struct{})
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.Get()
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[v.Interface().(*Counter)] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSingletonOfSingleton(t *testing.T) {
	t.Parallel()

	f, err := Constructor(NewCounter)
	require.NoError(t, err)

	s := Singleton(f)
	assert.True(t, Singleton(s) == s, "wrapping a singleton again must be a no-op")
	assert.Equal(t, "(singleton) (function) github.com/kdi-go/kdi/graph.NewCounter(), deps: 0, linked: false",
		s.(interface{ String() string }).String())
}

func TestConstructorLinking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		singleton bool
		resolver  Resolver // nil skips Link
		linkErr   string
		getErr    error
	}{
		{
			name:   "get before link",
			getErr: errNotLinked,
		},
		{
			name:      "singleton get before link",
			singleton: true,
			getErr:    errNotLinked,
		},
		{
			name:     "missing dependency",
			resolver: mapResolver{},
			linkErr:  "there is no factory registered for io.Writer",
		},
		{
			name:     "linked",
			resolver: mapResolver{_writerType: Value(io.Discard)},
		},
		{
			name:      "singleton linked",
			singleton: true,
			resolver:  mapResolver{_writerType: Value(io.Discard)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := Constructor(NewLogger)
			require.NoError(t, err)
			if tt.singleton {
				f = Singleton(f)
			}

			if tt.resolver != nil {
				err := f.(Linkable).Link(tt.resolver)
				if tt.linkErr != "" {
					require.Error(t, err)
					assert.Contains(t, err.Error(), tt.linkErr)
					return
				}
				require.NoError(t, err)
			}

			v, err := f.Get()
			if tt.getErr != nil {
				assert.True(t, errors.Is(err, tt.getErr), "got %v", err)
				var ierr *InjectionError
				require.True(t, errors.As(err, &ierr))
				assert.Equal(t, "*graph.Logger", ierr.Type.String())
				return
			}
			require.NoError(t, err)
			logger := v.Interface().(*Logger)
			assert.Equal(t, io.Discard, logger.out)

			again, err := f.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.singleton, again.Interface().(*Logger) == logger)
		})
	}
}

func TestInstallOverLinkedType(t *testing.T) {
	t.Parallel()

	var before, after bytes.Buffer
	l := NewLinker()
	require.NoError(t, l.Provide(NewLogger))
	require.NoError(t, InstallValue[io.Writer](l, &before))
	g := New(l)

	MustGet[*Logger](g).Log("one")
	require.NoError(t, InstallValue[io.Writer](l, &after))

	// *Logger was linked against the first writer and keeps it.
	MustGet[*Logger](g).Log("two")
	assert.Equal(t, "one\ntwo\n", before.String())
	assert.Empty(t, after.String())

	// Direct lookups see the new factory.
	assert.True(t, MustGet[io.Writer](g) == io.Writer(&after))

	// A re-provided dependent links against the current writer.
	require.NoError(t, l.Provide(NewLogger))
	MustGet[*Logger](g).Log("three")
	assert.Equal(t, "three\n", after.String())
}
