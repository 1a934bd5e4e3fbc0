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

package visit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerVisit(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(NewCounter(), NewLogger(&buf, Config{}))

	h.Visit()
	h.Visit()

	assert.Equal(t, int64(2), h.Counter.Number())
	assert.Equal(t, "Hello no. 1\nHello no. 2\n", buf.String())
}

func TestLoggerGreeting(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, Config{Greeting: "Hi"}).Visited(7)
	assert.Equal(t, "Hi 7\n", buf.String())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultGreeting, cfg.Greeting)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 100, cfg.Visits)
}
