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

package digrest_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/digrest"
	"go.uber.org/digrest/digresttest"
	"go.uber.org/digrest/restevent"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("not configured", func(t *testing.T) {
		var spy digresttest.Spy
		r := digrest.NewRegistry(digrest.WithLogger(&spy))

		c, ok := r.Get()
		assert.False(t, ok)
		assert.Nil(t, c)

		_, err := r.GetOrFail()
		assert.ErrorIs(t, err, digrest.ErrNotConfigured)
		assert.Equal(t, []string{"NotConfigured"}, spy.EventTypes())
	})

	t.Run("last write wins", func(t *testing.T) {
		var spy digresttest.Spy
		r := digrest.NewRegistry(digrest.WithLogger(&spy))
		first, second := digrest.NewContainer(), digrest.NewContainer()

		r.Configure(first)
		got, err := r.GetOrFail()
		require.NoError(t, err)
		assert.Same(t, first, got)

		r.Configure(second)
		got, ok := r.Get()
		require.True(t, ok)
		assert.Same(t, second, got)

		events := spy.Events()
		require.Len(t, events, 2)
		assert.False(t, events[0].(*restevent.Configured).Replaced)
		assert.True(t, events[1].(*restevent.Configured).Replaced)
	})

	t.Run("derive request scope", func(t *testing.T) {
		c := digresttest.NewContainer(t, newUserStore)
		require.NoError(t, c.ProvideRequest(newSession))
		r := digresttest.NewRegistry(c)

		req, w := newRequest("/")
		s1, err := r.DeriveRequestScope(c, req, w)
		require.NoError(t, err)
		s2, err := r.DeriveRequestScope(c, req, w)
		require.NoError(t, err)
		assert.NotSame(t, s1, s2, "scopes are never reused")

		v1, err := s1.Resolve(_sessionType)
		require.NoError(t, err)
		v2, err := s2.Resolve(_sessionType)
		require.NoError(t, err)
		assert.NotSame(t, v1, v2)
		assert.Same(t, req, v1.(*session).req)
	})

	t.Run("invalid handle", func(t *testing.T) {
		req, w := newRequest("/")
		_, err := digrest.NewRegistry().DeriveRequestScope(nil, req, w)
		assert.ErrorIs(t, err, digrest.ErrInvalidHandle)
	})

	t.Run("concurrent reads", func(t *testing.T) {
		r := digrest.NewRegistry()
		first, second := digrest.NewContainer(), digrest.NewContainer()
		r.Configure(first)

		var wg sync.WaitGroup
		seen := make([]*digrest.Container, 64)
		for i := range seen {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				seen[i], _ = r.Get()
			}()
		}
		r.Configure(second)
		wg.Wait()

		for _, c := range seen {
			assert.True(t, c == first || c == second, "unexpected container %p", c)
		}
		got, _ := r.Get()
		assert.Same(t, second, got)
	})
}

func TestDefaultRegistry(t *testing.T) {
	c := digrest.NewContainer()
	digrest.SetContainer(c)
	defer digrest.SetContainer(nil)

	got, ok := digrest.GetContainer()
	require.True(t, ok)
	assert.Same(t, c, got)

	got, err := digrest.DefaultRegistry().GetOrFail()
	require.NoError(t, err)
	assert.Same(t, c, got)
}
