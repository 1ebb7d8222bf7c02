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

package spi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/digrest/spi"
)

func TestCompleted(t *testing.T) {
	t.Parallel()

	s := spi.Completed("hello")
	assert.True(t, spi.IsDone(s), "completed stage must be done")

	got, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	nilStage := spi.Completed(nil)
	assert.True(t, spi.IsDone(nilStage))
	got, err = nilStage.Result()
	require.NoError(t, err)
	assert.Nil(t, got)
}

type pendingStage struct{ done chan struct{} }

func (s pendingStage) Done() <-chan struct{} { return s.done }

func (s pendingStage) Result() (interface{}, error) {
	<-s.done
	return nil, nil
}

func TestIsDone(t *testing.T) {
	t.Parallel()

	s := pendingStage{done: make(chan struct{})}
	assert.False(t, spi.IsDone(s))

	close(s.done)
	assert.True(t, spi.IsDone(s))
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	got, err := spi.Unwrap(spi.Completed(42))
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = spi.Unwrap(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}
