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
	"net/http"
	"reflect"
)

// ConstructorInjector builds resource instances.
type ConstructorInjector interface {
	// Construct builds an instance outside of a request.
	Construct(unwrapAsync bool) (interface{}, error)

	// ConstructRequest builds an instance for the given request.
	ConstructRequest(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error)

	// InjectableArguments computes the constructor arguments outside of a
	// request. The result is a []interface{}, or a Stage of one.
	InjectableArguments(unwrapAsync bool) (interface{}, error)

	// InjectableArgumentsRequest computes the constructor arguments for the
	// given request.
	InjectableArgumentsRequest(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error)
}

// PropertyInjector fills the properties of an existing instance.
type PropertyInjector interface {
	Inject(target interface{}, unwrapAsync bool) (Stage, error)
	InjectRequest(req *http.Request, w http.ResponseWriter, target interface{}, unwrapAsync bool) (Stage, error)
}

// ValueInjector produces the value of a single parameter.
type ValueInjector interface {
	Inject(unwrapAsync bool) (interface{}, error)
	InjectRequest(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error)
}

// MethodInjector calls a resource method with its extracted arguments.
type MethodInjector interface {
	// Invoke calls the method on target. The result is the method's first
	// non-error result, or nil.
	Invoke(req *http.Request, w http.ResponseWriter, target interface{}, unwrapAsync bool) (interface{}, error)

	// Arguments extracts the method arguments without calling it.
	Arguments(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error)
}

// InjectorFactory creates the injectors a framework uses for a resource.
type InjectorFactory interface {
	CreateConstructor(c Constructor) ConstructorInjector
	CreateResourceConstructor(rc ResourceConstructor) ConstructorInjector

	CreatePropertyInjector(t reflect.Type) PropertyInjector
	CreateResourcePropertyInjector(rc ResourceClass) PropertyInjector

	// CreateParameterExtractor builds an extractor from a parameter
	// descriptor.
	CreateParameterExtractor(p Parameter) (ValueInjector, error)

	// CreateFieldExtractor builds an extractor from the tags of a struct
	// field of owner. With useDefault unset, default tags are ignored.
	CreateFieldExtractor(owner reflect.Type, field reflect.StructField, useDefault bool) (ValueInjector, error)

	CreateMethodInjector(m ResourceLocator) (MethodInjector, error)
}

// ResourceClassProcessor may rewrite a ResourceClass before the framework
// registers it.
type ResourceClassProcessor interface {
	Process(rc ResourceClass) ResourceClass
}
