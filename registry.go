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

	"go.uber.org/atomic"
	"go.uber.org/digrest/restevent"
)

var (
	// ErrNotConfigured is returned when a container is required but none
	// was installed in the registry.
	ErrNotConfigured = errors.New("digrest: no container configured")

	// ErrInvalidHandle is returned when a request scope is derived from a
	// nil container.
	ErrInvalidHandle = errors.New("digrest: invalid container handle")
)

// Registry holds the container that serves resource instances.
//
// Configure must happen before the first request that needs the container.
// Reads are atomic, so a container installed during traffic is seen by
// later requests while in-flight requests keep the one they loaded.
type Registry struct {
	handle atomic.Pointer[Container]
	log    restevent.Logger
}

// NewRegistry builds an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	o := newOptions(opts)
	return &Registry{log: o.log}
}

// Configure installs c, replacing any previously installed container.
func (r *Registry) Configure(c *Container) {
	old := r.handle.Swap(c)
	r.log.LogEvent(&restevent.Configured{Replaced: old != nil})
}

// Get returns the installed container, if any.
func (r *Registry) Get() (*Container, bool) {
	c := r.handle.Load()
	return c, c != nil
}

// GetOrFail returns the installed container or ErrNotConfigured.
func (r *Registry) GetOrFail() (*Container, error) {
	c := r.handle.Load()
	if c == nil {
		r.log.LogEvent(&restevent.NotConfigured{})
		return nil, ErrNotConfigured
	}
	return c, nil
}

// DeriveRequestScope builds a new request scope of c bound to req and w.
// Every call returns a new Scope.
func (r *Registry) DeriveRequestScope(c *Container, req *http.Request, w http.ResponseWriter) (*Scope, error) {
	if c == nil {
		return nil, fmt.Errorf("cannot derive a request scope: %w", ErrInvalidHandle)
	}
	return c.RequestScope(req, w)
}

var _defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by components that
// were not given one.
func DefaultRegistry() *Registry { return _defaultRegistry }

// SetContainer installs c in the DefaultRegistry.
func SetContainer(c *Container) { _defaultRegistry.Configure(c) }

// GetContainer returns the container installed in the DefaultRegistry.
func GetContainer() (*Container, bool) { return _defaultRegistry.Get() }
