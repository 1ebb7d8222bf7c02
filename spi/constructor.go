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

import (
	"fmt"
	"reflect"

	"go.uber.org/digrest/internal/digreflect"
)

// Constructor is a function that builds a resource, such as
//
//	func NewUserResource(svc *UserService) *UserResource
//
// The first result is the type the constructor declares. An optional
// trailing error result reports construction failures.
type Constructor struct {
	fn reflect.Value
}

// NewConstructor validates fn and wraps it in a Constructor.
func NewConstructor(fn interface{}) (Constructor, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return Constructor{}, fmt.Errorf("constructor must be a function, got %T", fn)
	}

	t := v.Type()
	switch {
	case t.NumOut() == 1 && !digreflect.IsErr(t.Out(0)):
	case t.NumOut() == 2 && !digreflect.IsErr(t.Out(0)) && t.Out(1) == digreflect.ErrorType():
	default:
		return Constructor{}, fmt.Errorf("constructor %v must return a value and an optional error, got %v",
			digreflect.FuncName(fn), t)
	}
	if t.IsVariadic() {
		return Constructor{}, fmt.Errorf("constructor %v must not be variadic", digreflect.FuncName(fn))
	}
	return Constructor{fn: v}, nil
}

// MustConstructor is like NewConstructor but panics on invalid input.
func MustConstructor(fn interface{}) Constructor {
	c, err := NewConstructor(fn)
	if err != nil {
		panic(err)
	}
	return c
}

// ZeroConstructor returns a parameterless Constructor of t that yields a new
// zero value. For pointer types the pointee is allocated.
func ZeroConstructor(t reflect.Type) Constructor {
	ft := reflect.FuncOf(nil, []reflect.Type{t}, false)
	fn := reflect.MakeFunc(ft, func([]reflect.Value) []reflect.Value {
		if t.Kind() == reflect.Ptr {
			return []reflect.Value{reflect.New(t.Elem())}
		}
		return []reflect.Value{reflect.Zero(t)}
	})
	return Constructor{fn: fn}
}

// IsZero reports whether c holds no function.
func (c Constructor) IsZero() bool { return !c.fn.IsValid() }

// Func returns the underlying function.
func (c Constructor) Func() interface{} { return c.fn.Interface() }

// Type returns the function type of the constructor.
func (c Constructor) Type() reflect.Type { return c.fn.Type() }

// DeclaringType is the type the constructor produces.
func (c Constructor) DeclaringType() reflect.Type { return c.fn.Type().Out(0) }

// NumIn returns the number of parameters the constructor takes.
func (c Constructor) NumIn() int { return c.fn.Type().NumIn() }

// In returns the type of the i'th parameter.
func (c Constructor) In(i int) reflect.Type { return c.fn.Type().In(i) }

// Call invokes the constructor with args.
func (c Constructor) Call(args []reflect.Value) (interface{}, error) {
	if len(args) != c.NumIn() {
		return nil, fmt.Errorf("%v takes %d arguments, got %d", c, c.NumIn(), len(args))
	}
	for i, arg := range args {
		if !arg.Type().AssignableTo(c.In(i)) {
			return nil, fmt.Errorf("%v: argument %d: cannot use %v as %v", c, i, arg.Type(), c.In(i))
		}
	}

	out := c.fn.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func (c Constructor) String() string {
	if c.IsZero() {
		return "<nil constructor>"
	}
	return digreflect.FuncName(c.fn.Interface())
}
