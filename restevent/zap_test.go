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
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestZapLogger(t *testing.T) {
	t.Parallel()

	someError := errors.New("some error")

	tests := []struct {
		name        string
		give        Event
		wantMessage string
		wantFields  map[string]interface{}
	}{
		{
			name:        "Configured",
			give:        &Configured{Replaced: true},
			wantMessage: "container configured",
			wantFields:  map[string]interface{}{"replaced": true},
		},
		{
			name:        "NotConfigured",
			give:        &NotConfigured{},
			wantMessage: "container not configured",
			wantFields:  map[string]interface{}{},
		},
		{
			name:        "Provided",
			give:        &Provided{Constructor: bytes.NewBuffer, OutputTypeNames: []string{"*bytes.Buffer"}},
			wantMessage: "provided",
			wantFields: map[string]interface{}{
				"constructor":   "bytes.NewBuffer()",
				"type":          "*bytes.Buffer",
				"requestScoped": false,
			},
		},
		{
			name:        "ProvidedError",
			give:        &Provided{Constructor: bytes.NewBuffer, Err: someError},
			wantMessage: "error encountered while providing",
			wantFields: map[string]interface{}{
				"constructor": "bytes.NewBuffer()",
				"error":       "some error",
			},
		},
		{
			name:        "Supplied",
			give:        &Supplied{TypeName: "*bytes.Buffer"},
			wantMessage: "supplied",
			wantFields:  map[string]interface{}{"type": "*bytes.Buffer"},
		},
		{
			name:        "SuppliedError",
			give:        &Supplied{TypeName: "*bytes.Buffer", Err: someError},
			wantMessage: "error encountered while supplying",
			wantFields: map[string]interface{}{
				"type":  "*bytes.Buffer",
				"error": "some error",
			},
		},
		{
			name:        "Resolved",
			give:        &Resolved{TypeName: "*bytes.Buffer", RequestScoped: true},
			wantMessage: "resolved",
			wantFields: map[string]interface{}{
				"type":          "*bytes.Buffer",
				"requestScoped": true,
			},
		},
		{
			name:        "ResolvedError",
			give:        &Resolved{TypeName: "*bytes.Buffer", Err: someError},
			wantMessage: "resolve failed",
			wantFields: map[string]interface{}{
				"type":          "*bytes.Buffer",
				"requestScoped": false,
				"error":         "some error",
			},
		},
		{
			name:        "MembersInjected",
			give:        &MembersInjected{TypeName: "*bytes.Buffer"},
			wantMessage: "members injected",
			wantFields: map[string]interface{}{
				"type":          "*bytes.Buffer",
				"requestScoped": false,
			},
		},
		{
			name:        "MembersInjectedError",
			give:        &MembersInjected{TypeName: "*bytes.Buffer", RequestScoped: true, Err: someError},
			wantMessage: "member injection failed",
			wantFields: map[string]interface{}{
				"type":          "*bytes.Buffer",
				"requestScoped": true,
				"error":         "some error",
			},
		},
		{
			name:        "ConstructorSynthesized",
			give:        &ConstructorSynthesized{TypeName: "*users.Resource", Constructor: "users.New()"},
			wantMessage: "synthesized placeholder constructor",
			wantFields: map[string]interface{}{
				"type":        "*users.Resource",
				"constructor": "users.New()",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, observedLogs := observer.New(zap.DebugLevel)
			(&ZapLogger{Logger: zap.New(core)}).LogEvent(tt.give)

			logs := observedLogs.TakeAll()
			require.Len(t, logs, 1)
			got := logs[0]

			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.wantFields, got.ContextMap())
		})
	}
}

func TestZapLoggerLevels(t *testing.T) {
	t.Parallel()

	core, observedLogs := observer.New(zap.InfoLevel)
	logger := &ZapLogger{Logger: zap.New(core)}

	logger.LogEvent(&Resolved{TypeName: "*bytes.Buffer"})
	logger.LogEvent(&MembersInjected{TypeName: "*bytes.Buffer"})
	assert.Zero(t, observedLogs.Len(), "successful per-request events must be debug level")

	logger.LogEvent(&Resolved{TypeName: "*bytes.Buffer", Err: errors.New("great sadness")})
	assert.Equal(t, 1, observedLogs.FilterMessage("resolve failed").Len())
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		NopLogger.LogEvent(&Configured{})
	})
	assert.Equal(t, "NopLogger", NopLogger.String())
}
