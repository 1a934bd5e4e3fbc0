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

// Package kdievent defines a means of changing how a kdi container logs
// internal events.
//
// # Changing the Logger
//
// By default containers discard their events. Use kdi.WithLogger to pick
// one of the implementations of the [Logger] interface in this package, or
// your own.
//
//	c := kdi.NewContainer(
//		kdi.WithLogger(&kdievent.ZapLogger{Logger: log}),
//	)
//
// [ConsoleLogger] writes readable lines and is handy during development.
//
// # Implementing a Custom Logger
//
// [Event] is a union type that represents all the different events a
// container can emit. Use a type switch to handle each event type.
//
//	func (l *MyLogger) LogEvent(e kdievent.Event) {
//		switch e := e.(type) {
//		case *kdievent.Constructed:
//			// ...
//		}
//	}
package kdievent
