// Copyright (c) 2026 Uber Technologies, Inc.
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

package restevent

import (
	"go.uber.org/digrest/internal/digreflect"
	"go.uber.org/zap"
)

// ZapLogger is a digrest event logger that logs events to Zap.
//
// Per-request events are logged at debug level unless they failed.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Configured:
		l.Logger.Info("container configured", zap.Bool("replaced", e.Replaced))
	case *NotConfigured:
		l.Logger.Error("container not configured")
	case *Provided:
		if e.Err != nil {
			l.Logger.Error("error encountered while providing",
				zap.String("constructor", digreflect.FuncName(e.Constructor)),
				zap.Error(e.Err))
			return
		}
		for _, rtype := range e.OutputTypeNames {
			l.Logger.Info("provided",
				zap.String("constructor", digreflect.FuncName(e.Constructor)),
				zap.String("type", rtype),
				zap.Bool("requestScoped", e.RequestScoped),
			)
		}
	case *Supplied:
		if e.Err != nil {
			l.Logger.Error("error encountered while supplying",
				zap.String("type", e.TypeName),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("supplied", zap.String("type", e.TypeName))
		}
	case *Resolved:
		if e.Err != nil {
			l.Logger.Error("resolve failed",
				zap.String("type", e.TypeName),
				zap.Bool("requestScoped", e.RequestScoped),
				zap.Error(e.Err))
		} else {
			l.Logger.Debug("resolved",
				zap.String("type", e.TypeName),
				zap.Bool("requestScoped", e.RequestScoped))
		}
	case *MembersInjected:
		if e.Err != nil {
			l.Logger.Error("member injection failed",
				zap.String("type", e.TypeName),
				zap.Bool("requestScoped", e.RequestScoped),
				zap.Error(e.Err))
		} else {
			l.Logger.Debug("members injected",
				zap.String("type", e.TypeName),
				zap.Bool("requestScoped", e.RequestScoped))
		}
	case *ConstructorSynthesized:
		l.Logger.Info("synthesized placeholder constructor",
			zap.String("type", e.TypeName),
			zap.String("constructor", e.Constructor))
	}
}
