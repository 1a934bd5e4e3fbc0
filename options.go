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
	"github.com/benbjohnson/clock"
	"github.com/kdi-go/kdi/kdievent"
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally/v4"
)

// An Option configures a Container.
type Option interface {
	apply(*Container)
}

type optionFunc func(*Container)

func (f optionFunc) apply(c *Container) { f(c) }

// WithLogger sends container events to l. Events are discarded by default.
func WithLogger(l kdievent.Logger) Option {
	return optionFunc(func(c *Container) {
		if l != nil {
			c.log = l
		}
	})
}

// WithMetrics reports resolution and construction metrics to scope.
func WithMetrics(scope tally.Scope) Option {
	return optionFunc(func(c *Container) {
		if scope != nil {
			c.metrics = newMetrics(scope)
		}
	})
}

// WithTracer records one span per constructed value. Values built while
// building another value get child spans.
func WithTracer(t opentracing.Tracer) Option {
	return optionFunc(func(c *Container) {
		if t != nil {
			c.tracer = t
		}
	})
}

// WithClock sets the clock used to time constructions.
func WithClock(clk clock.Clock) Option {
	return optionFunc(func(c *Container) {
		if clk != nil {
			c.clock = clk
		}
	})
}
