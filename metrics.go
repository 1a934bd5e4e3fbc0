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
	"github.com/uber-go/tally/v4"
)

type metrics struct {
	resolves           tally.Counter
	resolveErrors      tally.Counter
	constructions      tally.Counter
	constructionErrors tally.Counter
	latency            tally.Timer
	registered         tally.Gauge
}

func newMetrics(scope tally.Scope) *metrics {
	return &metrics{
		resolves:           scope.Counter("resolves"),
		resolveErrors:      scope.Counter("resolve_errors"),
		constructions:      scope.Counter("constructions"),
		constructionErrors: scope.Counter("construction_errors"),
		latency:            scope.Timer("construction_latency"),
		registered:         scope.Gauge("registered"),
	}
}
