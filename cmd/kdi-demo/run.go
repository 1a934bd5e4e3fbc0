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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/kdi-go/kdi"
	"github.com/kdi-go/kdi/graph"
	"github.com/kdi-go/kdi/internal/visit"
	"github.com/kdi-go/kdi/kdiconfig"
	"github.com/kdi-go/kdi/kdievent"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	engineGraph     = "graph"
	engineContainer = "container"
)

// RunCmd visits a shared handler from several goroutines.
type RunCmd struct {
	Engine  string `kong:"short='e',enum='graph,container',default='container',help='Injection engine (graph or container)'"`
	Workers int    `kong:"short='w',default='0',help='Concurrent visitors, overrides the config'"`
	Visits  int    `kong:"short='n',default='-1',help='Visits per worker, overrides the config'"`
	Config  string `kong:"short='c',type='existingfile',help='YAML configuration file'"`
	Events  string `kong:"enum='console,zap,none',default='none',help='Where container events go (console, zap or none)'"`
	Quiet   bool   `kong:"short='q',help='Do not print each visit'"`
}

// Run executes the run command.
func (r *RunCmd) Run(cli *CLI) (err error) {
	log, err := cli.logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := r.config()
	if err != nil {
		return err
	}

	out := cli.stdout
	if r.Quiet {
		out = io.Discard
	}

	log.Info("wiring visit handler",
		zap.String("engine", r.Engine),
		zap.Int("workers", cfg.Workers),
		zap.Int("visits", cfg.Visits))

	var handler func() (*visit.Handler, error)
	switch r.Engine {
	case engineGraph:
		g, err := newGraph(log, cfg, out)
		if err != nil {
			return err
		}
		handler = func() (*visit.Handler, error) { return graph.Get[*visit.Handler](g) }
	default:
		c := newContainer(r.eventLogger(cli.stderr, log), cfg, out)
		defer func() {
			err = multierr.Append(err, c.Close(context.Background()))
		}()
		handler = func() (*visit.Handler, error) { return kdi.Get[*visit.Handler](c) }
	}

	total, err := visitConcurrently(handler, cfg.Workers, cfg.Visits)
	if err != nil {
		return err
	}

	want := int64(cfg.Workers * cfg.Visits)
	if total != want {
		return fmt.Errorf("counted %d visits, want %d", total, want)
	}
	fmt.Fprintf(cli.stdout, "total visits: %d\n", total)
	return nil
}

// config layers the config file and flags over the defaults.
func (r *RunCmd) config() (visit.Config, error) {
	cfg := visit.DefaultConfig()
	if r.Config != "" {
		p, err := kdiconfig.NewYAMLProviderFromFiles(r.Config)
		if err != nil {
			return cfg, err
		}
		p = kdiconfig.NewExpandProvider(p, os.Getenv)
		if err := p.Get(kdiconfig.Root).Populate(&cfg); err != nil {
			return cfg, errors.Wrapf(err, "can't load %v", r.Config)
		}
	}

	if r.Workers > 0 {
		cfg.Workers = r.Workers
	}
	if r.Visits >= 0 {
		cfg.Visits = r.Visits
	}
	return cfg, nil
}

func (r *RunCmd) eventLogger(stderr io.Writer, log *zap.Logger) kdievent.Logger {
	switch r.Events {
	case "console":
		return &kdievent.ConsoleLogger{W: stderr}
	case "zap":
		return &kdievent.ZapLogger{Logger: log}
	default:
		return kdievent.NopLogger
	}
}

func newContainer(events kdievent.Logger, cfg visit.Config, out io.Writer) *kdi.Container {
	c := kdi.NewContainer(kdi.WithLogger(events))
	kdiconfig.SupplyDefault(c, kdiconfig.NewStaticProvider(cfg), kdiconfig.Root, visit.DefaultConfig())
	kdi.AddSingleton(c, out)
	kdi.AddSingletonFactory(c, func(kdi.Resolver) (*visit.Counter, error) {
		return visit.NewCounter(), nil
	})
	kdi.AddFactory(c, func(r kdi.Resolver) (*visit.Logger, error) {
		w, err := kdi.Get[io.Writer](r)
		if err != nil {
			return nil, err
		}
		cfg, err := kdi.Get[visit.Config](r)
		if err != nil {
			return nil, err
		}
		return visit.NewLogger(w, cfg), nil
	})
	kdi.AddSingletonFactory(c, func(r kdi.Resolver) (*visit.Handler, error) {
		counter, err := kdi.Get[*visit.Counter](r)
		if err != nil {
			return nil, err
		}
		logger, err := kdi.Get[*visit.Logger](r)
		if err != nil {
			return nil, err
		}
		return visit.NewHandler(counter, logger), nil
	})
	return c
}

func newGraph(log *zap.Logger, cfg visit.Config, out io.Writer) (*graph.ObjectGraph, error) {
	l := graph.NewLinker(graph.WithLogger(log))
	err := multierr.Combine(
		graph.InstallValue(l, cfg),
		graph.InstallValue(l, out),
		l.Provide(visit.NewCounter, graph.AsSingleton()),
		l.Provide(visit.NewLogger),
		l.Provide(visit.NewHandler, graph.AsSingleton()),
	)
	if err != nil {
		return nil, err
	}
	return graph.New(l), nil
}

// visitConcurrently resolves the handler in each worker and visits it. It
// returns the final count of the handler's counter.
func visitConcurrently(handler func() (*visit.Handler, error), workers, visits int) (int64, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := handler()
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
				return
			}
			for j := 0; j < visits; j++ {
				h.Visit()
			}
		}()
	}
	wg.Wait()
	if errs != nil {
		return 0, errs
	}

	h, err := handler()
	if err != nil {
		return 0, err
	}
	return h.Counter.Number(), nil
}

// KeysCmd lists the registrations of the demo container.
type KeysCmd struct{}

// Run executes the keys command.
func (k *KeysCmd) Run(cli *CLI) error {
	c := newContainer(kdievent.NopLogger, visit.DefaultConfig(), io.Discard)
	for _, key := range c.Keys() {
		fmt.Fprintln(cli.stdout, key)
	}
	return c.Close(context.Background())
}
