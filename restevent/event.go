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

package restevent

// Event defines an event emitted by digrest.
type Event interface {
	event() // Only restevent can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*Configured) event()             {}
func (*NotConfigured) event()          {}
func (*Provided) event()               {}
func (*Supplied) event()               {}
func (*Resolved) event()               {}
func (*MembersInjected) event()        {}
func (*ConstructorSynthesized) event() {}

// Configured is emitted when a container is installed in a registry.
type Configured struct {
	// Replaced is set if a previously installed container was replaced.
	Replaced bool
}

// NotConfigured is emitted when a container was required but none was
// installed.
type NotConfigured struct{}

// Provided is emitted when a constructor is added to a container.
type Provided struct {
	Constructor interface{}

	// OutputTypeNames is a list of names of types that are produced by
	// this constructor.
	OutputTypeNames []string

	// RequestScoped is set for constructors that run once per request
	// scope.
	RequestScoped bool

	Err error
}

// Supplied is emitted when a value is supplied to a container.
type Supplied struct {
	TypeName string
	Err      error
}

// Resolved is emitted after a value was requested from a container or a
// request scope.
type Resolved struct {
	TypeName      string
	RequestScoped bool
	Err           error
}

// MembersInjected is emitted after the fields of an existing value were
// filled from a container or a request scope.
type MembersInjected struct {
	TypeName      string
	RequestScoped bool
	Err           error
}

// ConstructorSynthesized is emitted when a placeholder constructor
// descriptor is produced for a resource type the framework could not
// construct on its own.
type ConstructorSynthesized struct {
	TypeName string

	// Constructor is the name of the declared constructor the placeholder
	// points at.
	Constructor string
}
