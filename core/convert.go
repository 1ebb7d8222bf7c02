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

package core

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

var (
	_textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	_bytesType           = reflect.TypeOf([]byte(nil))
)

// convertible reports whether strings can be converted to t.
func convertible(t reflect.Type) bool {
	if isTextUnmarshaler(t) || t == _bytesType {
		return true
	}
	if t.Kind() == reflect.Slice {
		return convertibleScalar(t.Elem())
	}
	return convertibleScalar(t)
}

func convertibleScalar(t reflect.Type) bool {
	if isTextUnmarshaler(t) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isTextUnmarshaler(t reflect.Type) bool {
	return t.Implements(_textUnmarshalerType) || reflect.PtrTo(t).Implements(_textUnmarshalerType)
}

// convert turns raw request values into a value of type t. Slices take
// every value, other types take the first one.
func convert(values []string, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.Slice && t != _bytesType && !isTextUnmarshaler(t) {
		out := reflect.MakeSlice(t, 0, len(values))
		for _, s := range values {
			v, err := convertOne(s, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out = reflect.Append(out, v)
		}
		return out, nil
	}

	if len(values) == 0 {
		return reflect.Zero(t), nil
	}
	return convertOne(values[0], t)
}

func convertOne(s string, t reflect.Type) (reflect.Value, error) {
	switch {
	case t.Kind() == reflect.Ptr && t.Implements(_textUnmarshalerType):
		v := reflect.New(t.Elem())
		if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, err
		}
		return v, nil
	case reflect.PtrTo(t).Implements(_textUnmarshalerType):
		v := reflect.New(t)
		if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, err
		}
		return v.Elem(), nil
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := cast.ToBoolE(s)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(s)
		if err != nil {
			return reflect.Value{}, err
		}
		if v.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("%q overflows %v", s, t)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(s)
		if err != nil {
			return reflect.Value{}, err
		}
		if v.OverflowUint(n) {
			return reflect.Value{}, fmt.Errorf("%q overflows %v", s, t)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return reflect.Value{}, err
		}
		if v.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("%q overflows %v", s, t)
		}
		v.SetFloat(f)
	case reflect.Slice:
		if t != _bytesType {
			return reflect.Value{}, fmt.Errorf("cannot convert string to %v", t)
		}
		v.SetBytes([]byte(s))
	default:
		return reflect.Value{}, fmt.Errorf("cannot convert string to %v", t)
	}
	return v, nil
}
