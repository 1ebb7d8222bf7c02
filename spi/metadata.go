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
)

// Source is where the value of a Parameter comes from.
type Source int

// Parameter sources.
const (
	// ContextParam values come from the request itself: *http.Request,
	// http.ResponseWriter or context.Context.
	ContextParam Source = iota
	QueryParam
	HeaderParam
	PathParam
	CookieParam
	FormParam
)

var _sourceNames = map[Source]string{
	ContextParam: "context",
	QueryParam:   "query",
	HeaderParam:  "header",
	PathParam:    "path",
	CookieParam:  "cookie",
	FormParam:    "form",
}

func (s Source) String() string {
	if name, ok := _sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// ParseSource returns the Source with the given name.
func ParseSource(name string) (Source, bool) {
	for s, n := range _sourceNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// Parameter describes a single injectable value.
type Parameter struct {
	Source Source

	// Name is the query key, header name, path variable, cookie or form
	// field. Unused for ContextParam.
	Name string

	// Type is the Go type the value is converted to.
	Type reflect.Type

	// DefaultValue is used when the request carries no value.
	DefaultValue string
}

func (p Parameter) String() string {
	if p.Source == ContextParam {
		return fmt.Sprintf("context %v", p.Type)
	}
	return fmt.Sprintf("%v %q (%v)", p.Source, p.Name, p.Type)
}

// FieldParameter is a Parameter injected into a struct field.
type FieldParameter struct {
	Parameter

	Field reflect.StructField
}

// SetterParameter is a Parameter passed to a single-argument method.
type SetterParameter struct {
	Parameter

	Setter reflect.Method
}

// ConstructorParameter is a Parameter passed to a constructor.
type ConstructorParameter struct {
	Parameter

	Index int
}

// MethodParameter is a Parameter passed to a resource method.
type MethodParameter struct {
	Parameter

	Index int
}

// ResourceLocator is a method reachable below a resource path.
type ResourceLocator struct {
	// Path relative to the resource class path.
	Path string

	// Method is looked up on the resource type, so Func takes the receiver
	// as its first argument.
	Method reflect.Method

	Params []MethodParameter
}

// ResourceMethod is a ResourceLocator bound to an HTTP method.
type ResourceMethod struct {
	ResourceLocator

	HTTPMethod string
}

// ResourceClass is the framework's description of a resource type.
type ResourceClass interface {
	// Path the resource is mounted at.
	Path() string

	// Type of the resource, usually a pointer to a struct.
	Type() reflect.Type

	// Constructors declared for the type, in declaration order.
	Constructors() []Constructor

	// Constructor the framework itself may use, or nil if none of the
	// declared constructors is eligible.
	Constructor() ResourceConstructor

	Fields() []FieldParameter
	Setters() []SetterParameter
	ResourceMethods() []ResourceMethod
	ResourceLocators() []ResourceLocator
}

// ResourceConstructor describes how a ResourceClass is constructed.
type ResourceConstructor interface {
	ResourceClass() ResourceClass
	Constructor() Constructor
	Params() []ConstructorParameter
}
