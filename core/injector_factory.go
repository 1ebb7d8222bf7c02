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

// InjectorFactory builds injectors by reflection from parameter
// descriptors. It holds no state and is safe for concurrent use.
type InjectorFactory struct{}

var _ spi.InjectorFactory = (*InjectorFactory)(nil)

// NewInjectorFactory returns the default injector factory.
func NewInjectorFactory() *InjectorFactory {
	return &InjectorFactory{}
}

// CreateConstructor describes every parameter of c as a context parameter.
func (f *InjectorFactory) CreateConstructor(c spi.Constructor) spi.ConstructorInjector {
	params := make([]spi.ConstructorParameter, c.NumIn())
	for i := range params {
		params[i] = spi.ConstructorParameter{
			Parameter: spi.Parameter{Source: spi.ContextParam, Type: c.In(i)},
			Index:     i,
		}
	}
	return &constructorInjector{ctor: c, params: params}
}

func (f *InjectorFactory) CreateResourceConstructor(rc spi.ResourceConstructor) spi.ConstructorInjector {
	return &constructorInjector{ctor: rc.Constructor(), params: rc.Params()}
}

// CreatePropertyInjector injects the tagged fields of t.
func (f *InjectorFactory) CreatePropertyInjector(t reflect.Type) spi.PropertyInjector {
	return &propertyInjector{fields: fieldParameters(t)}
}

func (f *InjectorFactory) CreateResourcePropertyInjector(rc spi.ResourceClass) spi.PropertyInjector {
	return &propertyInjector{fields: rc.Fields(), setters: rc.Setters()}
}

func (f *InjectorFactory) CreateParameterExtractor(p spi.Parameter) (spi.ValueInjector, error) {
	return newValueInjector(p)
}

func (f *InjectorFactory) CreateFieldExtractor(owner reflect.Type, field reflect.StructField, useDefault bool) (spi.ValueInjector, error) {
	p, ok := fieldParameter(field, useDefault)
	if !ok {
		return nil, fmt.Errorf("field %v of %v has no parameter tag", field.Name, owner)
	}
	return newValueInjector(p)
}

func (f *InjectorFactory) CreateMethodInjector(m spi.ResourceLocator) (spi.MethodInjector, error) {
	return newMethodInjector(m)
}

type constructorInjector struct {
	ctor   spi.Constructor
	params []spi.ConstructorParameter
}

func (c *constructorInjector) Construct(unwrapAsync bool) (interface{}, error) {
	return c.ConstructRequest(nil, nil, unwrapAsync)
}

func (c *constructorInjector) ConstructRequest(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	args, err := c.arguments(req, w)
	if err != nil {
		return nil, err
	}
	v, err := c.ctor.Call(args)
	if err != nil {
		return nil, err
	}
	return wrap(v, unwrapAsync), nil
}

func (c *constructorInjector) InjectableArguments(unwrapAsync bool) (interface{}, error) {
	return c.InjectableArgumentsRequest(nil, nil, unwrapAsync)
}

func (c *constructorInjector) InjectableArgumentsRequest(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	args, err := c.arguments(req, w)
	if err != nil {
		return nil, err
	}
	return wrap(interfaces(args), unwrapAsync), nil
}

// arguments refuses descriptors that do not cover every constructor
// parameter.
func (c *constructorInjector) arguments(req *http.Request, w http.ResponseWriter) ([]reflect.Value, error) {
	if c.ctor.IsZero() {
		return nil, fmt.Errorf("no constructor to inject")
	}
	if len(c.params) != c.ctor.NumIn() {
		return nil, fmt.Errorf("%v takes %d parameters but %d are described",
			c.ctor, c.ctor.NumIn(), len(c.params))
	}

	args := make([]reflect.Value, len(c.params))
	described := make([]bool, len(c.params))
	var errs error
	for _, p := range c.params {
		if err := checkIndex(described, p.Index); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%v: %v", c.ctor, err))
			continue
		}
		v, err := extract(p.Parameter, req, w)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		args[p.Index] = v
	}
	errs = multierr.Append(errs, checkDescribed(c.ctor.String(), described))
	if errs != nil {
		return nil, errs
	}
	return args, nil
}

// checkIndex marks index i as described, failing if it is out of range or
// already taken.
func checkIndex(described []bool, i int) error {
	if i < 0 || i >= len(described) {
		return fmt.Errorf("parameter index %d out of range", i)
	}
	if described[i] {
		return fmt.Errorf("parameter %d is described more than once", i)
	}
	described[i] = true
	return nil
}

// checkDescribed fails for every parameter left without a descriptor.
func checkDescribed(name string, described []bool) error {
	var errs error
	for i, ok := range described {
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%v: parameter %d is not described", name, i))
		}
	}
	return errs
}

type propertyInjector struct {
	fields  []spi.FieldParameter
	setters []spi.SetterParameter
}

// Inject applies default values only, since nothing else is known outside
// of a request.
func (p *propertyInjector) Inject(target interface{}, unwrapAsync bool) (spi.Stage, error) {
	return p.InjectRequest(nil, nil, target, unwrapAsync)
}

func (p *propertyInjector) InjectRequest(req *http.Request, w http.ResponseWriter, target interface{}, unwrapAsync bool) (spi.Stage, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("property injection expected a pointer to a struct, got %T", target)
	}

	var errs error
	for _, fp := range p.fields {
		if skipOutsideRequest(req, fp.Parameter) {
			continue
		}
		val, err := extract(fp.Parameter, req, w)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		field := v.Elem().FieldByIndex(fp.Field.Index)
		if !field.CanSet() {
			errs = multierr.Append(errs, fmt.Errorf("cannot set field %v of %T", fp.Field.Name, target))
			continue
		}
		field.Set(val)
	}

	for _, sp := range p.setters {
		if skipOutsideRequest(req, sp.Parameter) {
			continue
		}
		val, err := extract(sp.Parameter, req, w)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		sp.Setter.Func.Call([]reflect.Value{v, val})
	}

	if errs != nil {
		return nil, errs
	}
	return spi.Completed(nil), nil
}

func skipOutsideRequest(req *http.Request, p spi.Parameter) bool {
	return req == nil && (p.Source == spi.ContextParam || p.DefaultValue == "")
}

func extract(p spi.Parameter, req *http.Request, w http.ResponseWriter) (reflect.Value, error) {
	vi, err := newValueInjector(p)
	if err != nil {
		return reflect.Value{}, err
	}
	return vi.value(req, w)
}

type methodInjector struct {
	loc    spi.ResourceLocator
	params []*valueInjector
}

var _ spi.MethodInjector = (*methodInjector)(nil)

func newMethodInjector(loc spi.ResourceLocator) (*methodInjector, error) {
	if !loc.Method.Func.IsValid() {
		return nil, fmt.Errorf("resource locator %q has no method", loc.Path)
	}

	mt := loc.Method.Type
	if n := mt.NumIn() - 1; len(loc.Params) != n {
		return nil, fmt.Errorf("method %v takes %d parameters but %d are described",
			loc.Method.Name, n, len(loc.Params))
	}
	if err := checkResults(loc.Method); err != nil {
		return nil, err
	}

	params := make([]*valueInjector, len(loc.Params))
	described := make([]bool, len(loc.Params))
	var errs error
	for _, mp := range loc.Params {
		if err := checkIndex(described, mp.Index); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("method %v: %v", loc.Method.Name, err))
			continue
		}

		p := mp.Parameter
		want := mt.In(mp.Index + 1)
		if p.Type == nil {
			p.Type = want
		}
		if p.Type != want {
			errs = multierr.Append(errs, fmt.Errorf("method %v: parameter %d is %v, described as %v",
				loc.Method.Name, mp.Index, want, p.Type))
			continue
		}

		vi, err := newValueInjector(p)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("method %v: %v", loc.Method.Name, err))
			continue
		}
		params[mp.Index] = vi
	}
	errs = multierr.Append(errs, checkDescribed("method "+loc.Method.Name, described))
	if errs != nil {
		return nil, errs
	}
	return &methodInjector{loc: loc, params: params}, nil
}

func checkResults(m reflect.Method) error {
	mt := m.Type
	switch mt.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if mt.Out(1) == _errorType && mt.Out(0) != _errorType {
			return nil
		}
	}
	return fmt.Errorf("method %v must return at most a value and an error, got %v", m.Name, mt)
}

var _errorType = reflect.TypeOf((*error)(nil)).Elem()

func (m *methodInjector) Arguments(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	args, err := m.arguments(req, w)
	if err != nil {
		return nil, err
	}
	return wrap(interfaces(args), unwrapAsync), nil
}

func (m *methodInjector) arguments(req *http.Request, w http.ResponseWriter) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(m.params))
	var errs error
	for i, vi := range m.params {
		v, err := vi.value(req, w)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		args[i] = v
	}
	return args, errs
}

func (m *methodInjector) Invoke(req *http.Request, w http.ResponseWriter, target interface{}, unwrapAsync bool) (interface{}, error) {
	recv := reflect.ValueOf(target)
	if !recv.IsValid() || !recv.Type().AssignableTo(m.loc.Method.Type.In(0)) {
		return nil, fmt.Errorf("cannot invoke %v on %T", m.loc.Method.Name, target)
	}

	args, err := m.arguments(req, w)
	if err != nil {
		return nil, err
	}

	out := m.loc.Method.Func.Call(append([]reflect.Value{recv}, args...))
	var result interface{}
	for _, o := range out {
		if o.Type() == _errorType {
			if !o.IsNil() {
				return nil, o.Interface().(error)
			}
			continue
		}
		result = o.Interface()
	}
	return wrap(result, unwrapAsync), nil
}

func interfaces(vs []reflect.Value) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v.Interface()
	}
	return out
}
