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

package digrest

import (
	"fmt"
	"net/http"
	"reflect"

	"go.uber.org/digrest/core"
	"go.uber.org/digrest/restevent"
	"go.uber.org/digrest/spi"
)

// InjectorFactory builds resource instances and fills their fields from the
// container installed in a Registry. Parameter extraction and method
// invocation are left to a default strategy.
type InjectorFactory struct {
	registry *Registry
	defaults spi.InjectorFactory
	log      restevent.Logger
}

var _ spi.InjectorFactory = (*InjectorFactory)(nil)

// NewInjectorFactory builds an InjectorFactory backed by r. A nil r uses
// the DefaultRegistry and nil defaults uses core.NewInjectorFactory().
func NewInjectorFactory(r *Registry, defaults spi.InjectorFactory, opts ...Option) *InjectorFactory {
	if r == nil {
		r = DefaultRegistry()
	}
	if defaults == nil {
		defaults = core.NewInjectorFactory()
	}
	o := newOptions(opts)
	return &InjectorFactory{registry: r, defaults: defaults, log: o.log}
}

// CreateConstructor resolves the type c declares from the container; the
// container decides how to build it. Injectable arguments are computed by
// the default strategy.
func (f *InjectorFactory) CreateConstructor(c spi.Constructor) spi.ConstructorInjector {
	return &constructorInjector{
		factory: f,
		target:  declaringType(c),
		delegate: func() spi.ConstructorInjector {
			return f.defaults.CreateConstructor(c)
		},
	}
}

// CreateResourceConstructor is CreateConstructor for a constructor
// descriptor.
func (f *InjectorFactory) CreateResourceConstructor(rc spi.ResourceConstructor) spi.ConstructorInjector {
	return &constructorInjector{
		factory: f,
		target:  declaringType(rc.Constructor()),
		delegate: func() spi.ConstructorInjector {
			return f.defaults.CreateResourceConstructor(rc)
		},
	}
}

// CreatePropertyInjector fills the `inject:""` fields of instances from
// the container.
func (f *InjectorFactory) CreatePropertyInjector(reflect.Type) spi.PropertyInjector {
	return &propertyInjector{factory: f}
}

func (f *InjectorFactory) CreateResourcePropertyInjector(spi.ResourceClass) spi.PropertyInjector {
	return &propertyInjector{factory: f}
}

func (f *InjectorFactory) CreateParameterExtractor(p spi.Parameter) (spi.ValueInjector, error) {
	return f.defaults.CreateParameterExtractor(p)
}

func (f *InjectorFactory) CreateFieldExtractor(owner reflect.Type, field reflect.StructField, useDefault bool) (spi.ValueInjector, error) {
	return f.defaults.CreateFieldExtractor(owner, field, useDefault)
}

func (f *InjectorFactory) CreateMethodInjector(m spi.ResourceLocator) (spi.MethodInjector, error) {
	return f.defaults.CreateMethodInjector(m)
}

// request carries the request a call is made for, if any.
type request struct {
	req *http.Request
	w   http.ResponseWriter
}

// graph returns the root container, or a new request scope of it.
func (f *InjectorFactory) graph(r *request) (Graph, error) {
	c, err := f.registry.GetOrFail()
	if err != nil {
		return nil, err
	}
	if r == nil {
		return c, nil
	}
	return f.registry.DeriveRequestScope(c, r.req, r.w)
}

func (f *InjectorFactory) construct(t reflect.Type, r *request, unwrapAsync bool) (interface{}, error) {
	g, err := f.graph(r)
	if err != nil {
		return nil, err
	}

	v, err := g.Resolve(t)
	f.log.LogEvent(&restevent.Resolved{
		TypeName:      typeName(t),
		RequestScoped: r != nil,
		Err:           err,
	})
	if err != nil {
		return nil, err
	}
	if unwrapAsync {
		return spi.Completed(v), nil
	}
	return v, nil
}

func (f *InjectorFactory) inject(target interface{}, r *request) (spi.Stage, error) {
	g, err := f.graph(r)
	if err != nil {
		return nil, err
	}

	err = g.InjectMembers(target)
	f.log.LogEvent(&restevent.MembersInjected{
		TypeName:      fmt.Sprintf("%T", target),
		RequestScoped: r != nil,
		Err:           err,
	})
	if err != nil {
		return nil, err
	}
	return spi.Completed(nil), nil
}

type constructorInjector struct {
	factory  *InjectorFactory
	target   reflect.Type
	delegate func() spi.ConstructorInjector
}

func (c *constructorInjector) Construct(unwrapAsync bool) (interface{}, error) {
	return c.factory.construct(c.target, nil, unwrapAsync)
}

func (c *constructorInjector) ConstructRequest(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	return c.factory.construct(c.target, &request{req: req, w: w}, unwrapAsync)
}

func (c *constructorInjector) InjectableArguments(unwrapAsync bool) (interface{}, error) {
	return c.delegate().InjectableArguments(unwrapAsync)
}

func (c *constructorInjector) InjectableArgumentsRequest(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	return c.delegate().InjectableArgumentsRequest(req, w, unwrapAsync)
}

// propertyInjector always reports an already completed Stage; member
// injection has no result.
type propertyInjector struct {
	factory *InjectorFactory
}

func (p *propertyInjector) Inject(target interface{}, _ bool) (spi.Stage, error) {
	return p.factory.inject(target, nil)
}

func (p *propertyInjector) InjectRequest(req *http.Request, w http.ResponseWriter, target interface{}, _ bool) (spi.Stage, error) {
	return p.factory.inject(target, &request{req: req, w: w})
}

func declaringType(c spi.Constructor) reflect.Type {
	if c.IsZero() {
		return nil
	}
	return c.DeclaringType()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
