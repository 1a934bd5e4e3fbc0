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

// Package graph is a small, thread-safe object graph.
//
// A Linker knows how to build each type through a Factory. Factories are
// installed up front, either pre-built or derived from constructor
// functions, and are linked lazily: the first time a type is requested its
// factory resolves the factories of its own dependencies, and the linked
// factory is cached for every later request.
//
// # Register
//
// Install adds a pre-built factory for a type:
//
//	l := graph.NewLinker()
//	err := graph.InstallValue[io.Writer](l, os.Stdout)
//
// Provide adds a constructor. Every parameter of the constructor is a
// dependency that must itself be known to the linker. Constructors return
// exactly one value, optionally followed by an error.
//
//	type Logger struct{ out io.Writer }
//
//	func NewLogger(out io.Writer) *Logger { return &Logger{out: out} }
//
//	err := l.Provide(NewLogger)
//	err = l.Provide(NewCounter, graph.AsSingleton())
//
// # Resolve
//
// An ObjectGraph hands out instances by type:
//
//	g := graph.New(l)
//
//	var log *Logger
//	err := g.Resolve(&log) // notice the pointer to a pointer
//
//	counter, err := graph.Get[*Counter](g)
//
// Instances of a singleton factory are built once, no matter how many
// goroutines ask for them concurrently. All other factories build a new
// instance per request.
//
// The design follows Pierre-Yves Ricau's talk on building your own
// dependency injection, made safe for concurrent use.
package graph
