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
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"sync"

	"go.uber.org/dig"
	"go.uber.org/digrest/internal/digreflect"
	"go.uber.org/digrest/restevent"
)

var (
	_requestType        = reflect.TypeOf((*http.Request)(nil))
	_responseWriterType = reflect.TypeOf((*http.ResponseWriter)(nil)).Elem()
)

// Graph resolves values from a dependency graph.
type Graph interface {
	// Resolve returns the value of type t, building it and its
	// dependencies if needed.
	Resolve(t reflect.Type) (interface{}, error)

	// InjectMembers fills the exported fields of the struct target points
	// to that carry an `inject:""` tag, or all of them if the struct embeds
	// dig.In. Other dig tags on those fields, such as name, group and
	// optional, apply. Optional fields with no binding are left untouched.
	InjectMembers(target interface{}) error
}

var (
	_ Graph = (*Container)(nil)
	_ Graph = (*Scope)(nil)
)

// Container is the process-wide dependency graph.
//
// Values added with Provide and Supply are built at most once. Values added
// with ProvideRequest are built at most once per Scope. The root graph is
// not reentrant: a root constructor must not call back into its Container.
type Container struct {
	log restevent.Logger

	mu           sync.Mutex // guards the fields below and every call into root
	root         *dig.Container
	rootKeys     map[digreflect.Key]struct{}
	requestKeys  map[digreflect.Key]struct{}
	bridges      []interface{}
	requestCtors []interface{}
}

// NewContainer builds an empty Container.
func NewContainer(opts ...Option) *Container {
	o := newOptions(opts)
	return &Container{
		log:         o.log,
		root:        dig.New(),
		rootKeys:    make(map[digreflect.Key]struct{}),
		requestKeys: make(map[digreflect.Key]struct{}),
	}
}

// Provide adds constructors whose results are shared by the whole process.
// Constructors may return dig.Out structs to produce named values and value
// group members.
func (c *Container) Provide(constructors ...interface{}) error {
	for _, ctor := range constructors {
		keys, err := c.provide(ctor)
		c.log.LogEvent(&restevent.Provided{
			Constructor:     ctor,
			OutputTypeNames: keyNames(keys),
			Err:             err,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Supply adds values to the container as if they had been provided using a
// constructor that simply returns them. The most specific type of each
// value is used.
func (c *Container) Supply(values ...interface{}) error {
	for _, value := range values {
		ctor, err := newSupplyConstructor(value)
		if err == nil {
			_, err = c.provide(ctor)
		}
		c.log.LogEvent(&restevent.Supplied{
			TypeName: fmt.Sprintf("%T", value),
			Err:      err,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ProvideRequest adds constructors that run again for every Scope. They may
// depend on values of the root graph and on the *http.Request and
// http.ResponseWriter the Scope is bound to.
//
// A request-scoped result may not share its type and name with a result of
// the root graph. Value groups may be fed from both.
func (c *Container) ProvideRequest(constructors ...interface{}) error {
	for _, ctor := range constructors {
		keys, err := c.provideRequest(ctor)
		c.log.LogEvent(&restevent.Provided{
			Constructor:     ctor,
			OutputTypeNames: keyNames(keys),
			RequestScoped:   true,
			Err:             err,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) provide(ctor interface{}) ([]digreflect.Key, error) {
	keys, err := digreflect.ResultKeys(ctor)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := checkKeys(keys, c.requestKeys, "per request"); err != nil {
		return keys, err
	}
	if err := c.root.Provide(ctor); err != nil {
		return keys, err
	}
	for _, k := range keys {
		// Several constructors may feed the same group; one bridge serves
		// all of them.
		if _, ok := c.rootKeys[k]; ok {
			continue
		}
		c.rootKeys[k] = struct{}{}
		c.bridges = append(c.bridges, c.bridge(k))
	}
	return keys, nil
}

func (c *Container) provideRequest(ctor interface{}) ([]digreflect.Key, error) {
	keys, err := digreflect.ResultKeys(ctor)
	if err != nil {
		return nil, err
	}
	// Let dig reject malformed constructors now rather than on the first
	// request.
	if err := dig.New().Provide(ctor); err != nil {
		return keys, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := checkKeys(keys, c.rootKeys, "in the root graph"); err != nil {
		return keys, err
	}
	if err := checkKeys(keys, c.requestKeys, "per request"); err != nil {
		return keys, err
	}
	for _, k := range keys {
		c.requestKeys[k] = struct{}{}
	}
	c.requestCtors = append(c.requestCtors, ctor)
	return keys, nil
}

// checkKeys rejects reserved types and keys that are already in provided.
func checkKeys(keys []digreflect.Key, provided map[digreflect.Key]struct{}, where string) error {
	for _, k := range keys {
		if k.Type == _requestType || k.Type == _responseWriterType {
			return fmt.Errorf("cannot provide %v: it is bound to the current request", k)
		}
		if k.Group != "" {
			continue
		}
		if _, ok := provided[k]; ok {
			return fmt.Errorf("cannot provide %v: already provided %v", k, where)
		}
	}
	return nil
}

// bridge returns a constructor for request scopes that produces k by
// resolving it from the root graph when a scope first needs it.
func (c *Container) bridge(k digreflect.Key) interface{} {
	valueType := k.Type
	var inTag, outTag reflect.StructTag
	switch {
	case k.Group != "":
		valueType = reflect.SliceOf(k.Type)
		inTag = reflect.StructTag(fmt.Sprintf("group:%q", k.Group))
		outTag = reflect.StructTag(fmt.Sprintf("group:%q", k.Group+",flatten"))
	case k.Name != "":
		inTag = reflect.StructTag(fmt.Sprintf("name:%q", k.Name))
		outTag = inTag
	}

	inType := reflect.StructOf([]reflect.StructField{
		digreflect.InField(),
		{Name: "Value", Type: valueType, Tag: inTag},
	})
	outType := reflect.StructOf([]reflect.StructField{
		digreflect.OutField(),
		{Name: "Value", Type: valueType, Tag: outTag},
	})

	ft := reflect.FuncOf(nil, []reflect.Type{outType, digreflect.ErrorType()}, false)
	fv := reflect.MakeFunc(ft, func([]reflect.Value) []reflect.Value {
		out := reflect.New(outType).Elem()
		in, err := extract(c.invoke, inType)
		if err != nil {
			return []reflect.Value{out, reflect.ValueOf(&err).Elem()}
		}
		out.Field(1).Set(in.Field(1))
		return []reflect.Value{out, reflect.Zero(digreflect.ErrorType())}
	})
	return fv.Interface()
}

func (c *Container) invoke(function interface{}, opts ...dig.InvokeOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root.Invoke(function, opts...)
}

// Resolve returns the root value of type t.
func (c *Container) Resolve(t reflect.Type) (interface{}, error) {
	return resolve(c.invoke, t)
}

// InjectMembers fills the `inject:""` fields of target from the root graph.
func (c *Container) InjectMembers(target interface{}) error {
	return injectMembers(c.invoke, target)
}

// RequestScope derives a new Scope bound to req and w. The Scope sees every
// root value and builds its own request-scoped values.
func (c *Container) RequestScope(req *http.Request, w http.ResponseWriter) (*Scope, error) {
	c.mu.Lock()
	ctors := make([]interface{}, 0, len(c.bridges)+len(c.requestCtors)+2)
	ctors = append(ctors,
		func() *http.Request { return req },
		func() http.ResponseWriter { return w },
	)
	ctors = append(ctors, c.bridges...)
	ctors = append(ctors, c.requestCtors...)
	c.mu.Unlock()

	dc := dig.New(dig.DeferAcyclicVerification())
	for _, ctor := range ctors {
		if err := dc.Provide(ctor); err != nil {
			return nil, err
		}
	}
	return &Scope{c: dc, req: req, w: w}, nil
}

// Scope is the dependency graph of a single request. It is not safe for
// concurrent use and is never reused across requests.
type Scope struct {
	c   *dig.Container
	req *http.Request
	w   http.ResponseWriter
}

// Request returns the request the scope is bound to.
func (s *Scope) Request() *http.Request { return s.req }

// ResponseWriter returns the response writer the scope is bound to.
func (s *Scope) ResponseWriter() http.ResponseWriter { return s.w }

// Resolve returns the value of type t, building request-scoped values as
// needed.
func (s *Scope) Resolve(t reflect.Type) (interface{}, error) {
	return resolve(s.c.Invoke, t)
}

// InjectMembers fills the `inject:""` fields of target from the scope.
func (s *Scope) InjectMembers(target interface{}) error {
	return injectMembers(s.c.Invoke, target)
}

type invoker func(function interface{}, opts ...dig.InvokeOption) error

// extract invokes a function taking a single parameter of type t and
// returns the argument dig passed to it.
func extract(invoke invoker, t reflect.Type) (reflect.Value, error) {
	var result reflect.Value
	ft := reflect.FuncOf([]reflect.Type{t}, nil, false)
	fv := reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		result = args[0]
		return nil
	})
	if err := invoke(fv.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return result, nil
}

func resolve(invoke invoker, t reflect.Type) (interface{}, error) {
	if t == nil {
		return nil, errors.New("cannot resolve an untyped nil")
	}
	v, err := extract(invoke, t)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func injectMembers(invoke invoker, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("expected a pointer to a struct, got %T", target)
	}

	v = v.Elem()
	t := v.Type()

	// Targets embedding dig.In have every exported field injected.
	all := digreflect.IsIn(t)

	// The generated struct embeds dig.In and mirrors every injectable field
	// of the target; targets[i] receives field i+1 of it.
	fields := []reflect.StructField{digreflect.InField()}
	var targets []member
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" || (f.Anonymous && f.Type == digreflect.InField().Type) {
			continue
		}
		if _, ok := f.Tag.Lookup("inject"); !ok && !all {
			continue
		}
		optional, _ := strconv.ParseBool(f.Tag.Get("optional"))
		fields = append(fields, reflect.StructField{
			Name: f.Name,
			Type: f.Type,
			Tag:  f.Tag,
		})
		targets = append(targets, member{value: v.Field(i), optional: optional})
	}
	if len(targets) == 0 {
		return nil
	}

	in, err := extract(invoke, reflect.StructOf(fields))
	if err != nil {
		return err
	}
	for i, m := range targets {
		got := in.Field(i + 1)
		// Unbound optional members keep their current value.
		if m.optional && got.IsZero() {
			continue
		}
		m.value.Set(got)
	}
	return nil
}

type member struct {
	value    reflect.Value
	optional bool
}

// newSupplyConstructor returns a function that takes no parameters and
// returns the given value.
func newSupplyConstructor(value interface{}) (interface{}, error) {
	switch value.(type) {
	case nil:
		return nil, errors.New("untyped nil passed to Supply")
	case error:
		return nil, errors.New("error value passed to Supply")
	}

	returnTypes := []reflect.Type{reflect.TypeOf(value)}
	returnValues := []reflect.Value{reflect.ValueOf(value)}

	ft := reflect.FuncOf([]reflect.Type{}, returnTypes, false)
	fv := reflect.MakeFunc(ft, func([]reflect.Value) []reflect.Value {
		return returnValues
	})
	return fv.Interface(), nil
}

func keyNames(keys []digreflect.Key) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return names
}
