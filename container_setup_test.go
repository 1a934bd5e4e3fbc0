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

package kdi_test

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/kdi-go/kdi"
)

// VisitHandler (singleton) ->
//     Counter (factory)
//     Logger (factory) ->
//         io.Writer (value)

type Counter struct {
	number int64
}

func (c *Counter) Inc() int64 { return atomic.AddInt64(&c.number, 1) }

func (c *Counter) Number() int64 { return atomic.LoadInt64(&c.number) }

type Logger struct {
	out io.Writer
}

func (l *Logger) Log(msg string) { fmt.Fprintln(l.out, msg) }

type VisitHandler struct {
	Counter *Counter
	logger  *Logger
}

func (h *VisitHandler) Visit() {
	n := h.Counter.Inc()
	h.logger.Log(fmt.Sprintf("Hello no. %d", n))
}

func newCounter(kdi.Resolver) (*Counter, error) { return &Counter{}, nil }

func newLogger(r kdi.Resolver) (*Logger, error) {
	out, err := kdi.Get[io.Writer](r)
	if err != nil {
		return nil, err
	}
	return &Logger{out: out}, nil
}

func newVisitHandler(r kdi.Resolver) (*VisitHandler, error) {
	counter, err := kdi.Get[*Counter](r)
	if err != nil {
		return nil, err
	}
	logger, err := kdi.Get[*Logger](r)
	if err != nil {
		return nil, err
	}
	return &VisitHandler{Counter: counter, logger: logger}, nil
}

func visitContainer(opts ...kdi.Option) *kdi.Container {
	c := kdi.NewContainer(opts...)
	kdi.AddSingleton[io.Writer](c, io.Discard)
	kdi.AddFactory(c, newLogger)
	kdi.AddSingletonFactory(c, newVisitHandler)
	kdi.AddFactory(c, newCounter)
	return c
}

type Box[T any] struct {
	Name string
}

type IntBox struct {
	Box[int]
}

// EagerA and EagerB need each other while being built.
type EagerA struct{ B *EagerB }

type EagerB struct{ A *EagerA }

// LazyA and LazyB need each other, but only once used.
type LazyA struct{ B *kdi.LazyValue[*LazyB] }

type LazyB struct{ A *kdi.LazyValue[*LazyA] }

type LazyWithInitBox struct {
	Counter *kdi.LazyValue[*Counter]
}
