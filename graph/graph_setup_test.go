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
	"fmt"
	"io"
	"sync/atomic"
)

// VisitHandler ->
//     Counter (singleton)
//     Logger ->
//         io.Writer (installed value)

type Counter struct {
	number int64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Inc() int64 { return atomic.AddInt64(&c.number, 1) }

func (c *Counter) Number() int64 { return atomic.LoadInt64(&c.number) }

type Logger struct {
	out io.Writer
}

func NewLogger(out io.Writer) *Logger {
	return &Logger{out: out}
}

func (l *Logger) Log(msg string) {
	fmt.Fprintln(l.out, msg)
}

type VisitHandler struct {
	counter *Counter
	logger  *Logger
}

func NewVisitHandler(counter *Counter, logger *Logger) *VisitHandler {
	return &VisitHandler{counter: counter, logger: logger}
}

func (h *VisitHandler) Visit() {
	n := h.counter.Inc()
	h.logger.Log(fmt.Sprintf("Hello no. %d", n))
}

// EagerA and EagerB require each other.
type EagerA struct{ b *EagerB }

type EagerB struct{ a *EagerA }

func NewEagerA(b *EagerB) *EagerA { return &EagerA{b: b} }

func NewEagerB(a *EagerA) *EagerB { return &EagerB{a: a} }
