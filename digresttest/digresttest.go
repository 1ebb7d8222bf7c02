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

// Package digresttest provides test helpers for code built on digrest.
package digresttest

import (
	"fmt"
	"net/http"
	"reflect"
	"sync"

	"go.uber.org/digrest"
	"go.uber.org/digrest/restevent"
	"go.uber.org/digrest/spi"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Errorf(string, ...interface{})
	FailNow()
}

// NewContainer builds a Container from root constructors, failing the test
// if any of them is rejected.
func NewContainer(t TB, constructors ...interface{}) *digrest.Container {
	c := digrest.NewContainer()
	if err := c.Provide(constructors...); err != nil {
		t.Errorf("container didn't accept constructors: %v", err)
		t.FailNow()
	}
	return c
}

// NewRegistry builds a Registry with c installed.
func NewRegistry(c *digrest.Container, opts ...digrest.Option) *digrest.Registry {
	r := digrest.NewRegistry(opts...)
	r.Configure(c)
	return r
}

// Spy is a restevent.Logger that records the events it receives.
type Spy struct {
	mu     sync.Mutex
	events []restevent.Event
}

var _ restevent.Logger = (*Spy)(nil)

// LogEvent records e.
func (s *Spy) LogEvent(e restevent.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns the recorded events in order.
func (s *Spy) Events() []restevent.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]restevent.Event(nil), s.events...)
}

// EventTypes returns the type names of the recorded events, such as
// "Provided".
func (s *Spy) EventTypes() []string {
	events := s.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = reflect.TypeOf(e).Elem().Name()
	}
	return types
}

// Reset forgets the recorded events.
func (s *Spy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// Sentinel is produced by every injector of a Strategy unless the
// Strategy's Value is set.
var Sentinel = &struct{ name string }{"digresttest.Sentinel"}

// Strategy is a spi.InjectorFactory for testing code that delegates to a
// default strategy. Every injector it builds returns Value and records the
// calls made on it.
type Strategy struct {
	// Value is returned by every injector. Defaults to Sentinel.
	Value interface{}

	// Err, if set, is returned by every injector instead of Value.
	Err error

	mu    sync.Mutex
	calls []string
}

var _ spi.InjectorFactory = (*Strategy)(nil)

// NewStrategy builds a Strategy that produces Sentinel.
func NewStrategy() *Strategy {
	return &Strategy{Value: Sentinel}
}

// Calls returns the recorded calls in order, such as
// "CreateConstructor(*app.Handler)" and "InjectableArguments".
func (s *Strategy) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *Strategy) record(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *Strategy) result(unwrapAsync bool) (interface{}, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if unwrapAsync {
		return spi.Completed(s.Value), nil
	}
	return s.Value, nil
}

func (s *Strategy) CreateConstructor(c spi.Constructor) spi.ConstructorInjector {
	s.record("CreateConstructor(%v)", c.Type())
	return strategyInjector{s}
}

func (s *Strategy) CreateResourceConstructor(rc spi.ResourceConstructor) spi.ConstructorInjector {
	s.record("CreateResourceConstructor(%v)", rc.Constructor().Type())
	return strategyInjector{s}
}

func (s *Strategy) CreatePropertyInjector(t reflect.Type) spi.PropertyInjector {
	s.record("CreatePropertyInjector(%v)", t)
	return strategyProperties{s}
}

func (s *Strategy) CreateResourcePropertyInjector(rc spi.ResourceClass) spi.PropertyInjector {
	s.record("CreateResourcePropertyInjector(%v)", rc.Type())
	return strategyProperties{s}
}

func (s *Strategy) CreateParameterExtractor(p spi.Parameter) (spi.ValueInjector, error) {
	s.record("CreateParameterExtractor(%v)", p)
	return strategyInjector{s}, nil
}

func (s *Strategy) CreateFieldExtractor(owner reflect.Type, field reflect.StructField, useDefault bool) (spi.ValueInjector, error) {
	s.record("CreateFieldExtractor(%v.%v, %v)", owner, field.Name, useDefault)
	return strategyInjector{s}, nil
}

func (s *Strategy) CreateMethodInjector(m spi.ResourceLocator) (spi.MethodInjector, error) {
	s.record("CreateMethodInjector(%v)", m.Method.Name)
	return strategyInjector{s}, nil
}

// strategyInjector implements the constructor, value and method injectors
// of spi.
type strategyInjector struct{ s *Strategy }

var (
	_ spi.ConstructorInjector = strategyInjector{}
	_ spi.ValueInjector       = strategyInjector{}
	_ spi.MethodInjector      = strategyInjector{}
	_ spi.PropertyInjector    = strategyProperties{}
)

func (i strategyInjector) Construct(unwrapAsync bool) (interface{}, error) {
	i.s.record("Construct")
	return i.s.result(unwrapAsync)
}

func (i strategyInjector) ConstructRequest(_ *http.Request, _ http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	i.s.record("ConstructRequest")
	return i.s.result(unwrapAsync)
}

func (i strategyInjector) InjectableArguments(unwrapAsync bool) (interface{}, error) {
	i.s.record("InjectableArguments")
	return i.s.result(unwrapAsync)
}

func (i strategyInjector) InjectableArgumentsRequest(_ *http.Request, _ http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	i.s.record("InjectableArgumentsRequest")
	return i.s.result(unwrapAsync)
}

func (i strategyInjector) Inject(unwrapAsync bool) (interface{}, error) {
	i.s.record("Inject")
	return i.s.result(unwrapAsync)
}

func (i strategyInjector) InjectRequest(_ *http.Request, _ http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	i.s.record("InjectRequest")
	return i.s.result(unwrapAsync)
}

func (i strategyInjector) Invoke(_ *http.Request, _ http.ResponseWriter, _ interface{}, unwrapAsync bool) (interface{}, error) {
	i.s.record("Invoke")
	return i.s.result(unwrapAsync)
}

func (i strategyInjector) Arguments(_ *http.Request, _ http.ResponseWriter, unwrapAsync bool) (interface{}, error) {
	i.s.record("Arguments")
	return i.s.result(unwrapAsync)
}

type strategyProperties struct{ s *Strategy }

func (p strategyProperties) Inject(_ interface{}, _ bool) (spi.Stage, error) {
	p.s.record("InjectProperties")
	if p.s.Err != nil {
		return nil, p.s.Err
	}
	return spi.Completed(nil), nil
}

func (p strategyProperties) InjectRequest(_ *http.Request, _ http.ResponseWriter, _ interface{}, _ bool) (spi.Stage, error) {
	p.s.record("InjectPropertiesRequest")
	if p.s.Err != nil {
		return nil, p.s.Err
	}
	return spi.Completed(nil), nil
}
