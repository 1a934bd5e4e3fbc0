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

package kdiconfig

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type yamlConfigProvider struct {
	root map[string]interface{}
}

var _ Provider = (*yamlConfigProvider)(nil)

// NewYAMLProvider creates a configuration provider from YAML streams. Every
// document of every stream is merged in order: mappings are merged key by
// key, and for any other node later documents win.
func NewYAMLProvider(readers ...io.Reader) (Provider, error) {
	root := make(map[string]interface{})
	for i, r := range readers {
		dec := yaml.NewDecoder(r)
		for n := 0; ; n++ {
			var doc interface{}
			err := dec.Decode(&doc)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, errors.Wrapf(err, "can't decode YAML stream %d, document %d", i, n)
			}
			if doc == nil {
				continue
			}

			m, ok := doc.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("YAML stream %d, document %d must be a mapping, got %T", i, n, doc)
			}
			root = mergeMaps(root, m).(map[string]interface{})
		}
	}

	return &yamlConfigProvider{root: root}, nil
}

// NewYAMLProviderFromBytes creates a configuration provider from byte-backed
// YAML documents, merged like NewYAMLProvider.
func NewYAMLProviderFromBytes(yamls ...[]byte) (Provider, error) {
	readers := make([]io.Reader, len(yamls))
	for i, b := range yamls {
		readers[i] = bytes.NewReader(b)
	}
	return NewYAMLProvider(readers...)
}

// NewYAMLProviderFromFiles creates a configuration provider from a set of
// YAML files, merged in the order given.
func NewYAMLProviderFromFiles(files ...string) (Provider, error) {
	readers := make([]io.Reader, 0, len(files))
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrap(err, "couldn't open config file")
		}
		defer f.Close()
		readers = append(readers, f)
	}
	return NewYAMLProvider(readers...)
}

func mergeMaps(dst, src interface{}) interface{} {
	s, ok := src.(map[string]interface{})
	if !ok {
		return src
	}
	d, ok := dst.(map[string]interface{})
	if !ok {
		return src
	}

	for k, v := range s {
		if existing, ok := d[k]; ok && existing != nil {
			d[k] = mergeMaps(existing, v)
		} else {
			d[k] = v
		}
	}
	return d
}

// Name returns the config provider name.
func (y *yamlConfigProvider) Name() string {
	return "yaml"
}

// Get returns a configuration value by its dotted key.
func (y *yamlConfigProvider) Get(key string) Value {
	if key == Root {
		return NewValue(y, key, y.root, true)
	}

	v, ok := find(y.root, strings.Split(key, _separator))
	return NewValue(y, key, v, ok)
}

// find walks path through mappings and sequences. Mapping keys match
// case-insensitively; sequence elements are addressed by index.
func find(node interface{}, path []string) (interface{}, bool) {
	for _, part := range path {
		switch n := node.(type) {
		case map[string]interface{}:
			child, ok := n[part]
			if !ok {
				found := false
				for k, v := range n {
					if strings.EqualFold(k, part) {
						child, found = v, true
						break
					}
				}
				if !found {
					return nil, false
				}
			}
			node = child
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			node = n[i]
		default:
			return nil, false
		}
	}
	return node, true
}
