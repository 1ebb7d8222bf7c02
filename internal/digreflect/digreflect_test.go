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

package digreflect

import (
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
)

func someFunc() {}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "go.uber.org/digrest/internal/digreflect.someFunc()", FuncName(someFunc))
	assert.Equal(t, "n/a", FuncName(struct{}{}))
}

func TestIsInOut(t *testing.T) {
	type params struct {
		dig.In

		R io.Reader
	}
	type results struct {
		dig.Out

		W io.Writer
	}

	assert.True(t, IsIn(reflect.TypeOf(params{})))
	assert.False(t, IsOut(reflect.TypeOf(params{})))
	assert.True(t, IsOut(reflect.TypeOf(results{})))
	assert.False(t, IsOut(reflect.TypeOf(&results{})), "pointers are not result objects")
	assert.False(t, IsIn(nil))
}

func TestResultKeys(t *testing.T) {
	readerType := reflect.TypeOf((*io.Reader)(nil)).Elem()
	writerType := reflect.TypeOf((*io.Writer)(nil)).Elem()

	t.Run("not a function", func(t *testing.T) {
		_, err := ResultKeys(42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must provide constructor function")
	})

	t.Run("plain results", func(t *testing.T) {
		keys, err := ResultKeys(func() (io.Reader, io.Writer, error) { return nil, nil, nil })
		require.NoError(t, err)
		assert.Equal(t, []Key{{Type: readerType}, {Type: writerType}}, keys)
	})

	t.Run("result object", func(t *testing.T) {
		type Nested struct {
			dig.Out

			Flat []io.Writer `group:"writers,flatten"`
		}
		type results struct {
			dig.Out
			Nested

			Named  io.Reader `name:"primary"`
			Member io.Writer `group:"writers"`
			hidden io.Reader
		}

		keys, err := ResultKeys(func() results { return results{} })
		require.NoError(t, err)
		assert.Equal(t, []Key{
			{Type: writerType, Group: "writers"},
			{Type: readerType, Name: "primary"},
			{Type: writerType, Group: "writers"},
		}, keys)
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "io.Reader", Key{Type: readerType}.String())
		assert.Equal(t, `io.Reader[name="a"]`, Key{Type: readerType, Name: "a"}.String())
		assert.Equal(t, `io.Reader[group="g"]`, Key{Type: readerType, Group: "g"}.String())
	})
}
