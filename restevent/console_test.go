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

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	someError := errors.New("some error")

	tests := []struct {
		name string
		give Event
		want string
	}{
		{
			name: "Configured",
			give: &Configured{},
			want: "[digrest] CONFIGURE\tinstalled container\n",
		},
		{
			name: "ConfiguredReplaced",
			give: &Configured{Replaced: true},
			want: "[digrest] CONFIGURE\treplaced container\n",
		},
		{
			name: "NotConfigured",
			give: &NotConfigured{},
			want: "[digrest] ERROR\t\tcontainer not configured\n",
		},
		{
			name: "Provided",
			give: &Provided{Constructor: bytes.NewBuffer, OutputTypeNames: []string{"*bytes.Buffer"}},
			want: "[digrest] PROVIDE\t*bytes.Buffer <= bytes.NewBuffer()\n",
		},
		{
			name: "ProvidedRequestScoped",
			give: &Provided{Constructor: bytes.NewBuffer, OutputTypeNames: []string{"*bytes.Buffer"}, RequestScoped: true},
			want: "[digrest] PROVIDE REQUEST\t*bytes.Buffer <= bytes.NewBuffer()\n",
		},
		{
			name: "ProvidedError",
			give: &Provided{Constructor: bytes.NewBuffer, Err: someError},
			want: "[digrest] ERROR\t\tFailed to provide bytes.NewBuffer(): some error\n",
		},
		{
			name: "Supplied",
			give: &Supplied{TypeName: "*bytes.Buffer"},
			want: "[digrest] SUPPLY\t*bytes.Buffer\n",
		},
		{
			name: "SuppliedError",
			give: &Supplied{TypeName: "*bytes.Buffer", Err: someError},
			want: "[digrest] ERROR\t\tFailed to supply *bytes.Buffer: some error\n",
		},
		{
			name: "Resolved",
			give: &Resolved{TypeName: "*bytes.Buffer"},
			want: "",
		},
		{
			name: "ResolvedError",
			give: &Resolved{TypeName: "*bytes.Buffer", Err: someError},
			want: "[digrest] ERROR\t\tFailed to resolve *bytes.Buffer: some error\n",
		},
		{
			name: "MembersInjectedError",
			give: &MembersInjected{TypeName: "*bytes.Buffer", Err: someError},
			want: "[digrest] ERROR\t\tFailed to inject members of *bytes.Buffer: some error\n",
		},
		{
			name: "ConstructorSynthesized",
			give: &ConstructorSynthesized{TypeName: "*users.Resource", Constructor: "users.New()"},
			want: "[digrest] PLACEHOLDER\t*users.Resource => users.New()\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buff bytes.Buffer
			(&ConsoleLogger{W: &buff}).LogEvent(tt.give)

			assert.Equal(t, tt.want, buff.String())
		})
	}
}
