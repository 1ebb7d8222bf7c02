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
	"go.uber.org/digrest/restevent"
	"go.uber.org/digrest/spi"
)

// ResourceClassProcessor makes resources whose constructors take container
// services acceptable to the framework.
//
// A framework refuses to register a resource it has no eligible
// constructor for. Process gives such resources a placeholder constructor
// descriptor; the InjectorFactory never calls it and resolves the resource
// type from the container instead.
type ResourceClassProcessor struct {
	log restevent.Logger
}

var _ spi.ResourceClassProcessor = (*ResourceClassProcessor)(nil)

// NewResourceClassProcessor builds a ResourceClassProcessor.
func NewResourceClassProcessor(opts ...Option) *ResourceClassProcessor {
	o := newOptions(opts)
	return &ResourceClassProcessor{log: o.log}
}

// Process returns rc unchanged if the framework already has a constructor
// for it. Otherwise it returns a view of rc whose Constructor is a
// parameterless descriptor of the first declared constructor, or of a
// zero-value allocator if rc declares none.
func (p *ResourceClassProcessor) Process(rc spi.ResourceClass) spi.ResourceClass {
	if rc == nil || rc.Constructor() != nil {
		return rc
	}

	ctor := spi.ZeroConstructor(rc.Type())
	if ctors := rc.Constructors(); len(ctors) > 0 {
		ctor = ctors[0]
	}

	view := &containerResource{ResourceClass: rc}
	view.ctor = &placeholderConstructor{class: view, ctor: ctor}
	p.log.LogEvent(&restevent.ConstructorSynthesized{
		TypeName:    typeName(rc.Type()),
		Constructor: ctor.String(),
	})
	return view
}

// containerResource is a ResourceClass whose instances come from the
// container.
type containerResource struct {
	spi.ResourceClass

	ctor *placeholderConstructor
}

func (r *containerResource) Constructor() spi.ResourceConstructor { return r.ctor }

// placeholderConstructor describes a constructor without parameters so the
// framework's validation accepts it.
type placeholderConstructor struct {
	class spi.ResourceClass
	ctor  spi.Constructor
}

func (c *placeholderConstructor) ResourceClass() spi.ResourceClass { return c.class }

func (c *placeholderConstructor) Constructor() spi.Constructor { return c.ctor }

func (c *placeholderConstructor) Params() []spi.ConstructorParameter {
	return []spi.ConstructorParameter{}
}
