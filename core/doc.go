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

// Package core is the default injection strategy of a resource framework and
// a minimal deployment that serves resources over a chi router.
//
// Parameters are taken from the request by source: query strings, headers,
// chi path variables, cookies, form fields, or the request context itself
// (*http.Request, http.ResponseWriter and context.Context). Struct fields opt
// in with tags:
//
//	type UserResource struct {
//		Limit int    `query:"limit" default:"20"`
//		Trace string `header:"X-Trace-Id"`
//	}
//
// A resource type is described with BuildResource and served by a
// Deployment. The Deployment asks its spi.InjectorFactory for injectors, so
// a factory backed by a dependency injection container can take over
// construction.
package core
