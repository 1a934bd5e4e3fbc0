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

package kdievent

import "time"

// Event defines an event emitted by a kdi container.
type Event interface {
	event() // Only kdievent can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*Registered) event()    {}
func (*Constructed) event()   {}
func (*ResolveFailed) event() {}
func (*Closed) event()        {}
func (*Reset) event()         {}

// Registration kinds reported by Registered.
const (
	KindFactory   = "factory"
	KindSingleton = "singleton"
	KindValue     = "value"
)

// Registered is emitted when a key is added to a container.
type Registered struct {
	// Key is the string form of the registered key.
	Key string
	// Kind is one of KindFactory, KindSingleton or KindValue.
	Kind string
	// Location is the function and file that registered the key.
	Location string
	// Replaced is true if the key was registered before.
	Replaced bool
}

// Constructed is emitted after a factory ran, successfully or not.
type Constructed struct {
	Key     string
	Runtime time.Duration
	Err     error
}

// ResolveFailed is emitted when a key cannot be resolved at all, because it
// is not registered or it depends on itself.
type ResolveFailed struct {
	Key string
	Err error
}

// Closed is emitted after a built singleton was closed.
type Closed struct {
	Key     string
	Runtime time.Duration
	Err     error
}

// Reset is emitted when all registrations are dropped.
type Reset struct {
	// Count is the number of registrations removed.
	Count int
}
