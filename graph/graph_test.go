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
	"io"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitGraph(t *testing.T, opts ...LinkerOption) *ObjectGraph {
	l := NewLinker(opts...)
	require.NoError(t, InstallValue[io.Writer](l, io.Discard))
	require.NoError(t, l.Provide(NewLogger))
	require.NoError(t, l.Provide(NewCounter, AsSingleton()))
	require.NoError(t, l.Provide(NewVisitHandler))
	return New(l)
}

func TestDependencyGraph(t *testing.T) {
	t.Parallel()
	g := visitGraph(t)

	hOne := MustGet[*VisitHandler](g)
	hTwo := MustGet[*VisitHandler](g)
	hOne.Visit()

	assert.False(t, hOne == hTwo, "handlers are not singletons")
	assert.True(t, hOne.counter == hTwo.counter, "Counter must be a singleton")
	assert.Equal(t, int64(1), hTwo.counter.Number())
}

func TestThreadSafeGraph(t *testing.T) {
	t.Parallel()
	g := visitGraph(t)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler, err := Get[*VisitHandler](g)
			if !assert.NoError(t, err) {
				return
			}
			for j := 0; j < 100; j++ {
				handler.Visit()
			}
		}()
	}
	wg.Wait()

	counter, err := Get[*Counter](g)
	require.NoError(t, err)
	assert.Equal(t, int64(200), counter.Number(), "Linker must be thread safe")
}

func TestUnsynchronizedGraph(t *testing.T) {
	t.Parallel()
	g := visitGraph(t, ThreadSafe(false))

	for i := 0; i < 3; i++ {
		MustGet[*VisitHandler](g).Visit()
	}
	assert.Equal(t, int64(3), MustGet[*Counter](g).Number())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resolve func(g *ObjectGraph) error
		wantErr string
	}{
		{
			name:    "non pointer",
			resolve: func(g *ObjectGraph) error { return g.Resolve(VisitHandler{}) },
			wantErr: "can not resolve graph.VisitHandler",
		},
		{
			name: "nil pointer",
			resolve: func(g *ObjectGraph) error {
				var h **VisitHandler
				return g.Resolve(h)
			},
			wantErr: "non-nil pointer",
		},
		{
			name: "missing dependency",
			resolve: func(g *ObjectGraph) error {
				var a *EagerA
				return g.Resolve(&a)
			},
			wantErr: "there is no factory registered for *graph.EagerA",
		},
		{
			name: "registered",
			resolve: func(g *ObjectGraph) error {
				var h *VisitHandler
				return g.Resolve(&h)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.resolve(visitGraph(t))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveAll(t *testing.T) {
	t.Parallel()
	g := visitGraph(t)

	var (
		h1, h2 *VisitHandler
		c      *Counter
		w      io.Writer
	)
	require.NoError(t, g.ResolveAll(&h1, &h2, &c, &w))
	assert.True(t, h1.counter == c && h2.counter == c, "All counters must be equal")
	assert.Equal(t, io.Discard, w)

	var a *EagerA
	assert.Error(t, g.ResolveAll(&h1, &a))
}

func TestGetByType(t *testing.T) {
	t.Parallel()
	g := visitGraph(t)

	v, err := g.Get(reflect.TypeOf(&Counter{}))
	require.NoError(t, err)
	assert.IsType(t, &Counter{}, v.Interface())
}

func TestMustGetPanics(t *testing.T) {
	t.Parallel()
	g := New(NewLinker())

	assert.PanicsWithValue(t,
		"graph: there is no factory registered for *graph.Counter",
		func() { MustGet[*Counter](g) })
}
