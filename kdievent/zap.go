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

import (
	"go.uber.org/zap"
)

// ZapLogger is a kdi event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		l.Logger.Debug("registered",
			zap.String("key", e.Key),
			zap.String("kind", e.Kind),
			zap.String("location", e.Location),
			zap.Bool("replaced", e.Replaced),
		)
	case *Constructed:
		if e.Err != nil {
			l.Logger.Error("construction failed",
				zap.String("key", e.Key),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Debug("constructed",
				zap.String("key", e.Key),
				zap.String("runtime", e.Runtime.String()),
			)
		}
	case *ResolveFailed:
		l.Logger.Error("resolve failed",
			zap.String("key", e.Key),
			zap.Error(e.Err),
		)
	case *Closed:
		if e.Err != nil {
			l.Logger.Error("close failed",
				zap.String("key", e.Key),
				zap.Error(e.Err),
			)
		} else {
			l.Logger.Debug("closed",
				zap.String("key", e.Key),
				zap.String("runtime", e.Runtime.String()),
			)
		}
	case *Reset:
		l.Logger.Info("reset", zap.Int("removed", e.Count))
	}
}
