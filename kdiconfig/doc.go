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

// Package kdiconfig loads configuration from YAML documents and supplies
// it to a kdi container.
//
// Providers expose a tree of values addressed by dotted keys. Lookups are
// case-insensitive:
//
//	p, err := kdiconfig.NewYAMLProviderFromBytes([]byte(`
//	visit:
//	  greeting: Hello no.
//	  workers: 4
//	`))
//	p.Get("visit.workers").String() // "4"
//
// A Value decodes into a struct with Populate, which honours yaml tags and
// then validates the struct with validate tags:
//
//	type Config struct {
//	    Greeting string `yaml:"greeting" validate:"nonzero"`
//	    Workers  int    `yaml:"workers" validate:"min=1"`
//	}
//
// Supply registers a singleton in a container that is populated from a key
// the first time it is resolved.
//
//	kdiconfig.Supply[Config](c, p, "visit")
package kdiconfig
