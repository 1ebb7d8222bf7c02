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

// Package digrest lets an HTTP resource framework obtain resource instances,
// injected fields and constructor arguments from a dig container instead of
// constructing them itself.
//
// A Container wraps the process-wide dig graph. Values that live for the
// whole process are added with Provide and Supply; values that must be
// rebuilt for every request are added with ProvideRequest and may depend on
// the current *http.Request and http.ResponseWriter.
//
//	c := digrest.NewContainer()
//	if err := c.Provide(NewUserStore); err != nil {
//		log.Fatal(err)
//	}
//	if err := c.ProvideRequest(NewUserResource); err != nil {
//		log.Fatal(err)
//	}
//
// The Container is installed in a Registry, which the InjectorFactory
// consults whenever the framework needs an instance. Resources whose only
// constructors take container services are made acceptable to the framework
// by a ResourceClassProcessor.
//
//	reg := digrest.NewRegistry()
//	reg.Configure(c)
//
//	d := core.NewDeployment(
//		core.WithInjectorFactory(digrest.NewInjectorFactory(reg, nil)),
//		core.WithProcessors(digrest.NewResourceClassProcessor()),
//	)
//
// The registry must be configured before the first request arrives.
// Replacing the container while requests are in flight is allowed; each
// request sees either the old or the new container.
package digrest
