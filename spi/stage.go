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

package spi

// Stage is the result of an operation that a caller may consume
// asynchronously.
type Stage interface {
	// Done is closed once the result is available.
	Done() <-chan struct{}

	// Result blocks until the stage is done and returns its outcome.
	Result() (interface{}, error)
}

var _closed = make(chan struct{})

func init() { close(_closed) }

type completedStage struct {
	value interface{}
}

// Completed returns a Stage that is already done with the given value.
func Completed(value interface{}) Stage {
	return completedStage{value: value}
}

func (s completedStage) Done() <-chan struct{} { return _closed }

func (s completedStage) Result() (interface{}, error) { return s.value, nil }

// IsDone reports whether s has completed without blocking.
func IsDone(s Stage) bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}

// Unwrap returns the result of v if it is a Stage, and v otherwise.
func Unwrap(v interface{}) (interface{}, error) {
	if s, ok := v.(Stage); ok {
		return s.Result()
	}
	return v, nil
}
