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

package digresttest

import (
	"bytes"
	"errors"
	"fmt"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/digrest/restevent"
	"go.uber.org/digrest/spi"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Verify that TB always matches testing.T.
var _ TB = (*testing.T)(nil)

type tb struct {
	failures int
	errors   *bytes.Buffer
}

func newTB() *tb {
	return &tb{0, &bytes.Buffer{}}
}

func (t *tb) FailNow() {
	t.failures++
}

func (t *tb) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(t.errors, format, args...)
	t.errors.WriteRune('\n')
}

type handler struct{}

func newHandler() *handler { return &handler{} }

func TestNewContainer(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		spy := newTB()
		c := NewContainer(spy, newHandler)

		v, err := c.Resolve(reflect.TypeOf(&handler{}))
		require.NoError(t, err)
		assert.IsType(t, &handler{}, v)
		assert.Zero(t, spy.failures)

		r := NewRegistry(c)
		got, ok := r.Get()
		assert.True(t, ok)
		assert.Same(t, c, got)
	})

	t.Run("failure", func(t *testing.T) {
		spy := newTB()
		NewContainer(spy, "not a function")

		assert.Equal(t, 1, spy.failures)
		assert.Contains(t, spy.errors.String(), "container didn't accept constructors")
	})
}

func TestSpy(t *testing.T) {
	t.Parallel()

	var s Spy
	s.LogEvent(&restevent.Configured{})
	s.LogEvent(&restevent.Resolved{TypeName: "int"})

	assert.Equal(t, []string{"Configured", "Resolved"}, s.EventTypes())
	assert.Len(t, s.Events(), 2)

	s.Reset()
	assert.Empty(t, s.Events())
}

func TestStrategy(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)

	t.Run("constructor", func(t *testing.T) {
		s := NewStrategy()
		ci := s.CreateConstructor(spi.MustConstructor(newHandler))

		v, err := ci.Construct(false)
		require.NoError(t, err)
		assert.Equal(t, Sentinel, v)

		v, err = ci.InjectableArgumentsRequest(req, nil, true)
		require.NoError(t, err)
		got, err := spi.Unwrap(v)
		require.NoError(t, err)
		assert.Equal(t, Sentinel, got)

		assert.Equal(t, []string{
			"CreateConstructor(func() *digresttest.handler)",
			"Construct",
			"InjectableArgumentsRequest",
		}, s.Calls())
	})

	t.Run("properties", func(t *testing.T) {
		s := NewStrategy()
		stage, err := s.CreatePropertyInjector(reflect.TypeOf(&handler{})).Inject(&handler{}, false)
		require.NoError(t, err)
		assert.True(t, spi.IsDone(stage))
	})

	t.Run("error", func(t *testing.T) {
		s := NewStrategy()
		s.Err = errors.New("great sadness")

		ve, err := s.CreateParameterExtractor(spi.Parameter{Source: spi.QueryParam, Name: "q"})
		require.NoError(t, err)
		_, err = ve.InjectRequest(req, nil, false)
		assert.EqualError(t, err, "great sadness")
	})
}
