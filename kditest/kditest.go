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

// Package kditest provides utilities for testing code wired with kdi.
package kditest

import (
	"context"
	"reflect"
	"sync"

	"github.com/kdi-go/kdi"
	"github.com/kdi-go/kdi/kdievent"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	zaptest.TestingT

	Cleanup(func())
}

// New returns a container logging its events to t. The container is
// closed when the test finishes; a failed close fails the test.
func New(t TB, opts ...kdi.Option) *kdi.Container {
	log := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))
	opts = append([]kdi.Option{
		kdi.WithLogger(&kdievent.ZapLogger{Logger: log}),
	}, opts...)

	c := kdi.NewContainer(opts...)
	t.Cleanup(func() {
		if err := c.Close(context.Background()); err != nil {
			t.Errorf("container didn't close cleanly: %v", err)
		}
	})
	return c
}

// RequireGet resolves T from r, failing the test immediately if it cannot.
func RequireGet[T any](t TB, r kdi.Resolver, opts ...kdi.KeyOption) T {
	v, err := kdi.Get[T](r, opts...)
	if err != nil {
		t.Errorf("couldn't resolve %v: %v", kdi.KeyOf[T](opts...), err)
		t.FailNow()
	}
	return v
}

// Spy is a kdievent.Logger that captures events. It is safe for concurrent
// use.
type Spy struct {
	mu     sync.Mutex
	events []kdievent.Event
}

var _ kdievent.Logger = (*Spy)(nil)

// LogEvent appends an Event.
func (s *Spy) LogEvent(event kdievent.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
}

// Events returns all captured events.
func (s *Spy) Events() []kdievent.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]kdievent.Event, len(s.events))
	copy(events, s.events)
	return events
}

// EventTypes returns all captured event types.
func (s *Spy) EventTypes() []string {
	events := s.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = reflect.TypeOf(e).Elem().Name()
	}
	return types
}

// Reset clears all captured events.
func (s *Spy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = s.events[:0]
}
