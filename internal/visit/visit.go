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

// Package visit is the sample domain wired by kdi-demo: a handler that
// counts visits on a shared counter and logs a greeting for each one.
package visit

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// DefaultGreeting prefixes every logged visit unless configured otherwise.
const DefaultGreeting = "Hello no."

// Config tunes the demo.
type Config struct {
	Greeting string `yaml:"greeting" validate:"nonzero"`
	Workers  int    `yaml:"workers" validate:"min=1"`
	Visits   int    `yaml:"visits" validate:"min=0"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Greeting: DefaultGreeting, Workers: 2, Visits: 100}
}

// Counter is a concurrency-safe visit counter.
type Counter struct {
	number int64
}

// NewCounter returns a zeroed counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Inc increments the counter and returns the new value.
func (c *Counter) Inc() int64 { return atomic.AddInt64(&c.number, 1) }

// Number returns the current value.
func (c *Counter) Number() int64 { return atomic.LoadInt64(&c.number) }

// Logger writes one line per message. Writes from concurrent goroutines are
// serialized.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	greeting string
}

// NewLogger returns a Logger writing to out.
func NewLogger(out io.Writer, cfg Config) *Logger {
	greeting := cfg.Greeting
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return &Logger{out: out, greeting: greeting}
}

// Visited logs the n-th visit.
func (l *Logger) Visited(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "%s %d\n", l.greeting, n)
}

// Handler counts and logs visits.
type Handler struct {
	Counter *Counter
	Logger  *Logger
}

// NewHandler returns a Handler.
func NewHandler(counter *Counter, logger *Logger) *Handler {
	return &Handler{Counter: counter, Logger: logger}
}

// Visit records one visit.
func (h *Handler) Visit() {
	h.Logger.Visited(h.Counter.Inc())
}
