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

// Package lifecycle tracks teardown hooks for values a container built.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
)

// A Hook closes one built value. Name identifies the value in records.
type Hook struct {
	Name    string
	OnClose func(context.Context) error
}

// HookRecord describes one executed Hook.
type HookRecord struct {
	Name    string
	Runtime time.Duration
	Err     error
}

// Stack runs hooks in reverse order of registration.
type Stack struct {
	mu    sync.Mutex
	hooks []Hook
}

// Push adds a hook to the top of the stack.
func (s *Stack) Push(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = append(s.hooks, h)
}

// Close pops and runs every hook, most recent first. For best-effort
// cleanup it keeps going after errors, combining them into one error.
// record, if non-nil, is called after each hook with its runtime measured
// on clk.
func (s *Stack) Close(ctx context.Context, clk clock.Clock, record func(HookRecord)) error {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		if hook.OnClose == nil {
			continue
		}

		begin := clk.Now()
		err := hook.OnClose(ctx)
		if err != nil {
			errs = append(errs, err)
		}
		if record != nil {
			record(HookRecord{
				Name:    hook.Name,
				Runtime: clk.Since(begin),
				Err:     err,
			})
		}
	}
	return multierr.Combine(errs...)
}
