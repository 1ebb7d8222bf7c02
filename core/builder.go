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
	"fmt"
	"net/http"
	"reflect"

	"go.uber.org/digrest/spi"
	"go.uber.org/multierr"
)

// ResourceOption configures a resource built with BuildResource.
type ResourceOption interface {
	apply(*resourceBuilder)
}

type resourceOptionFunc func(*resourceBuilder)

func (f resourceOptionFunc) apply(b *resourceBuilder) { f(b) }

type resourceBuilder struct {
	rc   *resourceClass
	errs error
}

func (b *resourceBuilder) fail(err error) {
	b.errs = multierr.Append(b.errs, err)
}

// BuildResource describes the resource type of sample, mounted at path.
// Pass a typed nil such as (*UserResource)(nil) as the sample.
//
// Fields are read from struct tags. The first declared constructor whose
// parameters are all request context types becomes the resource
// constructor; if none qualifies, Constructor returns nil.
func BuildResource(path string, sample interface{}, opts ...ResourceOption) (spi.ResourceClass, error) {
	t := reflect.TypeOf(sample)
	if t == nil {
		return nil, fmt.Errorf("cannot build resource at %q from untyped nil", path)
	}

	b := &resourceBuilder{rc: &resourceClass{
		path:   path,
		typ:    t,
		fields: fieldParameters(t),
	}}
	for _, opt := range opts {
		opt.apply(b)
	}
	if b.errs != nil {
		return nil, b.errs
	}

	rc := b.rc
	for _, c := range rc.ctors {
		if params, ok := contextParameters(c); ok {
			rc.ctor = &resourceConstructor{class: rc, ctor: c, params: params}
			break
		}
	}
	return rc, nil
}

func contextParameters(c spi.Constructor) ([]spi.ConstructorParameter, bool) {
	params := make([]spi.ConstructorParameter, c.NumIn())
	for i := range params {
		if !IsContextType(c.In(i)) {
			return nil, false
		}
		params[i] = spi.ConstructorParameter{
			Parameter: spi.Parameter{Source: spi.ContextParam, Type: c.In(i)},
			Index:     i,
		}
	}
	return params, true
}

// WithConstructor declares constructor functions for the resource, in
// order. Each must produce the resource type.
func WithConstructor(fns ...interface{}) ResourceOption {
	return resourceOptionFunc(func(b *resourceBuilder) {
		for _, fn := range fns {
			c, err := spi.NewConstructor(fn)
			if err != nil {
				b.fail(err)
				continue
			}
			if c.DeclaringType() != b.rc.typ {
				b.fail(fmt.Errorf("constructor %v produces %v, not %v", c, c.DeclaringType(), b.rc.typ))
				continue
			}
			b.rc.ctors = append(b.rc.ctors, c)
		}
	})
}

// Route serves method of the resource at path, relative to the resource
// path. Parameters describe the method arguments in order; trailing
// arguments of request context types may be left out.
func Route(httpMethod, path, method string, params ...spi.Parameter) ResourceOption {
	return resourceOptionFunc(func(b *resourceBuilder) {
		loc, err := b.locator(path, method, params)
		if err != nil {
			b.fail(err)
			return
		}
		b.rc.methods = append(b.rc.methods, spi.ResourceMethod{
			ResourceLocator: loc,
			HTTPMethod:      httpMethod,
		})
	})
}

// GET is shorthand for Route(http.MethodGet, ...).
func GET(path, method string, params ...spi.Parameter) ResourceOption {
	return Route(http.MethodGet, path, method, params...)
}

// POST is shorthand for Route(http.MethodPost, ...).
func POST(path, method string, params ...spi.Parameter) ResourceOption {
	return Route(http.MethodPost, path, method, params...)
}

// PUT is shorthand for Route(http.MethodPut, ...).
func PUT(path, method string, params ...spi.Parameter) ResourceOption {
	return Route(http.MethodPut, path, method, params...)
}

// DELETE is shorthand for Route(http.MethodDelete, ...).
func DELETE(path, method string, params ...spi.Parameter) ResourceOption {
	return Route(http.MethodDelete, path, method, params...)
}

// WithLocator declares a sub-resource locator. Deployment does not route
// locators; they are available to injector factories through
// ResourceLocators.
func WithLocator(path, method string, params ...spi.Parameter) ResourceOption {
	return resourceOptionFunc(func(b *resourceBuilder) {
		loc, err := b.locator(path, method, params)
		if err != nil {
			b.fail(err)
			return
		}
		b.rc.locators = append(b.rc.locators, loc)
	})
}

// WithSetter injects p by calling a single-argument method.
func WithSetter(method string, p spi.Parameter) ResourceOption {
	return resourceOptionFunc(func(b *resourceBuilder) {
		m, ok := b.rc.typ.MethodByName(method)
		if !ok {
			b.fail(fmt.Errorf("%v has no method %v", b.rc.typ, method))
			return
		}
		if m.Type.NumIn() != 2 {
			b.fail(fmt.Errorf("setter %v of %v must take exactly one argument", method, b.rc.typ))
			return
		}
		p.Type = m.Type.In(1)
		b.rc.setters = append(b.rc.setters, spi.SetterParameter{Parameter: p, Setter: m})
	})
}

func (b *resourceBuilder) locator(path, method string, params []spi.Parameter) (spi.ResourceLocator, error) {
	m, ok := b.rc.typ.MethodByName(method)
	if !ok {
		return spi.ResourceLocator{}, fmt.Errorf("%v has no method %v", b.rc.typ, method)
	}

	n := m.Type.NumIn() - 1
	if len(params) > n {
		return spi.ResourceLocator{}, fmt.Errorf("method %v takes %d parameters, %d described", method, n, len(params))
	}

	mps := make([]spi.MethodParameter, n)
	for i := 0; i < n; i++ {
		argType := m.Type.In(i + 1)
		var p spi.Parameter
		switch {
		case i < len(params):
			p = params[i]
		case IsContextType(argType):
			p = Context()
		default:
			return spi.ResourceLocator{}, fmt.Errorf("method %v: no parameter described for argument %d (%v)", method, i, argType)
		}
		p.Type = argType
		mps[i] = spi.MethodParameter{Parameter: p, Index: i}
	}
	return spi.ResourceLocator{Path: path, Method: m, Params: mps}, nil
}

type resourceClass struct {
	path     string
	typ      reflect.Type
	ctors    []spi.Constructor
	ctor     spi.ResourceConstructor
	fields   []spi.FieldParameter
	setters  []spi.SetterParameter
	methods  []spi.ResourceMethod
	locators []spi.ResourceLocator
}

var _ spi.ResourceClass = (*resourceClass)(nil)

func (rc *resourceClass) Path() string                          { return rc.path }
func (rc *resourceClass) Type() reflect.Type                    { return rc.typ }
func (rc *resourceClass) Constructors() []spi.Constructor       { return rc.ctors }
func (rc *resourceClass) Constructor() spi.ResourceConstructor  { return rc.ctor }
func (rc *resourceClass) Fields() []spi.FieldParameter          { return rc.fields }
func (rc *resourceClass) Setters() []spi.SetterParameter        { return rc.setters }
func (rc *resourceClass) ResourceMethods() []spi.ResourceMethod { return rc.methods }
func (rc *resourceClass) ResourceLocators() []spi.ResourceLocator {
	return rc.locators
}

type resourceConstructor struct {
	class  spi.ResourceClass
	ctor   spi.Constructor
	params []spi.ConstructorParameter
}

var _ spi.ResourceConstructor = (*resourceConstructor)(nil)

func (c *resourceConstructor) ResourceClass() spi.ResourceClass   { return c.class }
func (c *resourceConstructor) Constructor() spi.Constructor       { return c.ctor }
func (c *resourceConstructor) Params() []spi.ConstructorParameter { return c.params }
