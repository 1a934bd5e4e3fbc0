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
	"io"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI is the root command configuration.
type CLI struct {
	LogLevel string  `kong:"short='l',help='Log level',enum='debug,info,warn,error',default='info'"`
	Run      RunCmd  `kong:"cmd,default='withargs',help='Visit a shared handler concurrently (default)'"`
	Keys     KeysCmd `kong:"cmd,help='List the container registrations'"`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

func run(args []string, stdout, stderr io.Writer, exit func(int)) error {
	cli := CLI{stdout: stdout, stderr: stderr}
	parser, err := kong.New(&cli,
		kong.Name("kdi-demo"),
		kong.Description("Exercise kdi's dependency graph and container"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
	)
	if err != nil {
		return err
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kongCtx.Run(&cli)
}

func (cli *CLI) logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cli.LogLevel)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(cli.stderr)),
		level,
	)
	return zap.New(core), nil
}
