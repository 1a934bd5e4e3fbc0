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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverConfig struct {
	Name    string `yaml:"name" validate:"nonzero"`
	Port    int    `yaml:"port" validate:"min=1,max=65535"`
	Verbose bool   `yaml:"verbose"`
}

func TestPopulate(t *testing.T) {
	t.Parallel()

	p := NewStaticProvider(map[string]interface{}{
		"server":  map[string]interface{}{"name": "api", "port": 8080},
		"invalid": map[string]interface{}{"name": "api", "port": 0},
		"wrong":   map[string]interface{}{"port": "eighty"},
		"list":    []int{1, 2, 3},
	})

	t.Run("Struct", func(t *testing.T) {
		cfg := serverConfig{Verbose: true}
		require.NoError(t, p.Get("server").Populate(&cfg))
		assert.Equal(t, serverConfig{Name: "api", Port: 8080, Verbose: true}, cfg,
			"fields missing from the config keep their values")
	})

	t.Run("PointerToPointer", func(t *testing.T) {
		var cfg *serverConfig
		require.NoError(t, p.Get("server").Populate(&cfg))
		require.NotNil(t, cfg)
		assert.Equal(t, "api", cfg.Name)
	})

	t.Run("Scalars", func(t *testing.T) {
		var port int
		require.NoError(t, p.Get("server.port").Populate(&port))
		assert.Equal(t, 8080, port)

		var list []int
		require.NoError(t, p.Get("list").Populate(&list))
		assert.Equal(t, []int{1, 2, 3}, list)
	})

	t.Run("Validation", func(t *testing.T) {
		var cfg serverConfig
		err := p.Get("invalid").Populate(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid "invalid"`)
		assert.Contains(t, err.Error(), "Port")
	})

	t.Run("Decoding", func(t *testing.T) {
		var cfg serverConfig
		err := p.Get("wrong").Populate(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `can't decode "wrong"`)
	})

	t.Run("Missing", func(t *testing.T) {
		port := 42
		require.NoError(t, p.Get("missing").Populate(&port))
		assert.Equal(t, 42, port)

		cfg := serverConfig{}
		assert.Error(t, p.Get("missing").Populate(&cfg),
			"zero-valued structs still fail validation")
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		var cfg serverConfig
		assert.Error(t, p.Get("server").Populate(cfg))
		assert.Error(t, p.Get("server").Populate((*serverConfig)(nil)))
	})
}
