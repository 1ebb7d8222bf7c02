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

package digrest

import (
	"fmt"

	"go.uber.org/digrest/restevent"
)

// Option configures a Registry, Container, InjectorFactory or
// ResourceClassProcessor.
type Option interface {
	fmt.Stringer

	apply(*options)
}

type options struct {
	log restevent.Logger
}

func newOptions(opts []Option) options {
	o := options{log: restevent.NopLogger}
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}

// WithLogger specifies how digrest should log events. Events are dropped
// by default.
func WithLogger(l restevent.Logger) Option {
	return withLoggerOption{l}
}

type withLoggerOption struct{ log restevent.Logger }

func (o withLoggerOption) apply(opts *options) {
	if o.log != nil {
		opts.log = o.log
	}
}

func (o withLoggerOption) String() string {
	return fmt.Sprintf("digrest.WithLogger(%v)", o.log)
}
