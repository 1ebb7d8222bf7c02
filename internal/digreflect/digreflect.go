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

// Package digreflect holds the reflection helpers shared by digrest and its
// default strategy.
package digreflect

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"go.uber.org/dig"
)

var (
	_errType    = reflect.TypeOf((*error)(nil)).Elem()
	_digInType  = reflect.TypeOf(dig.In{})
	_digOutType = reflect.TypeOf(dig.Out{})
)

// ErrorType is the reflect.Type of the error interface.
func ErrorType() reflect.Type { return _errType }

// InField is the embedded dig.In field of a generated parameter object.
func InField() reflect.StructField {
	return reflect.StructField{Name: "In", Type: _digInType, Anonymous: true}
}

// OutField is the embedded dig.Out field of a generated result object.
func OutField() reflect.StructField {
	return reflect.StructField{Name: "Out", Type: _digOutType, Anonymous: true}
}

// IsIn reports whether t is a struct embedding dig.In.
func IsIn(t reflect.Type) bool { return embeds(t, _digInType) }

// IsOut reports whether t is a struct embedding dig.Out.
func IsOut(t reflect.Type) bool { return embeds(t, _digOutType) }

func embeds(t, embedded reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == embedded {
			return true
		}
	}
	return false
}

// FuncName returns a funcs formatted name
func FuncName(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func {
		return "n/a"
	}

	fnName := runtime.FuncForPC(fnV.Pointer()).Name()
	return fmt.Sprintf("%s()", fnName)
}

// IsErr reports whether t implements error.
func IsErr(t reflect.Type) bool {
	return t.Implements(_errType)
}

// Key identifies one value a dig constructor produces.
//
// For value groups, Type is the element type of the group.
type Key struct {
	Type  reflect.Type
	Name  string
	Group string
}

func (k Key) String() string {
	switch {
	case k.Group != "":
		return fmt.Sprintf("%v[group=%q]", k.Type, k.Group)
	case k.Name != "":
		return fmt.Sprintf("%v[name=%q]", k.Type, k.Name)
	default:
		return k.Type.String()
	}
}

// ResultKeys lists the keys a constructor adds to a dig container,
// expanding dig.Out result objects.
func ResultKeys(ctor interface{}) ([]Key, error) {
	ft := reflect.TypeOf(ctor)
	if ft == nil || ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("must provide constructor function, got %v (type %T)", ctor, ctor)
	}

	var keys []Key
	for i := 0; i < ft.NumOut(); i++ {
		out := ft.Out(i)
		if IsErr(out) {
			continue
		}
		if IsOut(out) {
			keys = appendOutKeys(keys, out)
			continue
		}
		keys = append(keys, Key{Type: out})
	}
	return keys, nil
}

func appendOutKeys(keys []Key, t reflect.Type) []Key {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type == _digOutType || f.PkgPath != "" {
			continue
		}
		if IsOut(f.Type) {
			keys = appendOutKeys(keys, f.Type)
			continue
		}

		group, opts := splitTag(f.Tag.Get("group"))
		if group == "" {
			keys = append(keys, Key{Type: f.Type, Name: f.Tag.Get("name")})
			continue
		}

		elem := f.Type
		if hasOption(opts, "flatten") {
			elem = f.Type.Elem()
		}
		keys = append(keys, Key{Type: elem, Group: group})
	}
	return keys
}

func splitTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}

func hasOption(opts []string, opt string) bool {
	for _, o := range opts {
		if o == opt {
			return true
		}
	}
	return false
}
