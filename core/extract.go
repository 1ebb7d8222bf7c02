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
	"context"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"go.uber.org/digrest/spi"
)

var (
	_requestType        = reflect.TypeOf((*http.Request)(nil))
	_responseWriterType = reflect.TypeOf((*http.ResponseWriter)(nil)).Elem()
	_contextType        = reflect.TypeOf((*context.Context)(nil)).Elem()

	// Order in which field tags are looked up.
	_tagSources = []spi.Source{
		spi.QueryParam,
		spi.HeaderParam,
		spi.PathParam,
		spi.CookieParam,
		spi.FormParam,
		spi.ContextParam,
	}
)

// IsContextType reports whether values of t are supplied by the request
// itself.
func IsContextType(t reflect.Type) bool {
	return t == _requestType || t == _responseWriterType || t == _contextType
}

// Query describes a query string parameter.
func Query(name string) spi.Parameter { return spi.Parameter{Source: spi.QueryParam, Name: name} }

// Header describes a request header.
func Header(name string) spi.Parameter { return spi.Parameter{Source: spi.HeaderParam, Name: name} }

// PathVar describes a chi URL parameter.
func PathVar(name string) spi.Parameter { return spi.Parameter{Source: spi.PathParam, Name: name} }

// Cookie describes a cookie value.
func Cookie(name string) spi.Parameter { return spi.Parameter{Source: spi.CookieParam, Name: name} }

// Form describes a form field of the request body.
func Form(name string) spi.Parameter { return spi.Parameter{Source: spi.FormParam, Name: name} }

// Context describes a value supplied by the request itself.
func Context() spi.Parameter { return spi.Parameter{Source: spi.ContextParam} }

// fieldParameter reads the parameter tags of f.
func fieldParameter(f reflect.StructField, useDefault bool) (spi.Parameter, bool) {
	for _, src := range _tagSources {
		name, ok := f.Tag.Lookup(src.String())
		if !ok {
			continue
		}
		p := spi.Parameter{Source: src, Name: name, Type: f.Type}
		if useDefault {
			p.DefaultValue = f.Tag.Get("default")
		}
		return p, true
	}
	return spi.Parameter{}, false
}

// fieldParameters lists the tagged exported fields of t or of the struct
// t points to.
func fieldParameters(t reflect.Type) []spi.FieldParameter {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []spi.FieldParameter
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		if p, ok := fieldParameter(f, true); ok {
			fields = append(fields, spi.FieldParameter{Parameter: p, Field: f})
		}
	}
	return fields
}

// valueInjector extracts a single parameter from a request.
type valueInjector struct {
	p spi.Parameter
}

var _ spi.ValueInjector = (*valueInjector)(nil)

func newValueInjector(p spi.Parameter) (*valueInjector, error) {
	switch {
	case p.Type == nil:
		return nil, fmt.Errorf("%v parameter %q has no type", p.Source, p.Name)
	case p.Source == spi.ContextParam:
		if !IsContextType(p.Type) {
			return nil, fmt.Errorf("cannot inject %v from the request context", p.Type)
		}
		return &valueInjector{p: p}, nil
	case p.Name == "":
		return nil, fmt.Errorf("%v parameter of type %v has no name", p.Source, p.Type)
	case !convertible(p.Type):
		return nil, fmt.Errorf("cannot convert %v to %v", p, p.Type)
	}

	if p.DefaultValue != "" {
		if _, err := convert([]string{p.DefaultValue}, p.Type); err != nil {
			return nil, fmt.Errorf("invalid default value %q for %v: %v", p.DefaultValue, p, err)
		}
	}
	return &valueInjector{p: p}, nil
}

func (v *valueInjector) Inject(unwrapAsync bool) (interface{}, error) {
	return v.InjectRequest(nil, nil, unwrapAsync)
}

func (v *valueInjector) InjectRequest(req *http.Request, w http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	val, err := v.value(req, w)
	if err != nil {
		return nil, err
	}
	return wrap(val.Interface(), unwrapAsync), nil
}

// value extracts the parameter. Without a request, only defaults apply.
func (v *valueInjector) value(req *http.Request, w http.ResponseWriter) (reflect.Value, error) {
	p := v.p
	if p.Source == spi.ContextParam {
		if req == nil {
			return reflect.Value{}, fmt.Errorf("%v is only available during a request", p.Type)
		}
		switch p.Type {
		case _requestType:
			return reflect.ValueOf(req), nil
		case _responseWriterType:
			return reflect.ValueOf(&w).Elem(), nil
		default:
			ctx := req.Context()
			return reflect.ValueOf(&ctx).Elem(), nil
		}
	}

	var (
		raw   []string
		found bool
	)
	if req != nil {
		var err error
		raw, found, err = lookup(req, p)
		if err != nil {
			return reflect.Value{}, badRequest(err, "read %v", p)
		}
	}
	if !found {
		if p.DefaultValue == "" {
			return reflect.Zero(p.Type), nil
		}
		raw = []string{p.DefaultValue}
	}

	out, err := convert(raw, p.Type)
	if err != nil {
		return reflect.Value{}, badRequest(err, "invalid %v", p)
	}
	return out, nil
}

func lookup(req *http.Request, p spi.Parameter) ([]string, bool, error) {
	switch p.Source {
	case spi.QueryParam:
		vs, ok := req.URL.Query()[p.Name]
		return vs, ok, nil
	case spi.HeaderParam:
		vs := req.Header.Values(p.Name)
		return vs, len(vs) > 0, nil
	case spi.PathParam:
		s := chi.URLParam(req, p.Name)
		return []string{s}, s != "", nil
	case spi.CookieParam:
		c, err := req.Cookie(p.Name)
		if err != nil {
			return nil, false, nil
		}
		return []string{c.Value}, true, nil
	case spi.FormParam:
		if err := req.ParseForm(); err != nil {
			return nil, false, err
		}
		vs, ok := req.PostForm[p.Name]
		return vs, ok, nil
	}
	return nil, false, fmt.Errorf("unknown parameter source %v", p.Source)
}

func wrap(v interface{}, unwrapAsync bool) interface{} {
	if unwrapAsync {
		return spi.Completed(v)
	}
	return v
}
