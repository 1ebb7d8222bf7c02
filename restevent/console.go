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
	"fmt"
	"io"

	"go.uber.org/digrest/internal/digreflect"
)

// ConsoleLogger is a digrest event logger that attempts to write
// human-readable messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[digrest] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Configured:
		if e.Replaced {
			l.logf("CONFIGURE\treplaced container")
		} else {
			l.logf("CONFIGURE\tinstalled container")
		}
	case *NotConfigured:
		l.logf("ERROR\t\tcontainer not configured")
	case *Provided:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to provide %v: %v", digreflect.FuncName(e.Constructor), e.Err)
			return
		}
		verb := "PROVIDE"
		if e.RequestScoped {
			verb = "PROVIDE REQUEST"
		}
		for _, rtype := range e.OutputTypeNames {
			l.logf("%s\t%v <= %v", verb, rtype, digreflect.FuncName(e.Constructor))
		}
	case *Supplied:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to supply %v: %v", e.TypeName, e.Err)
		} else {
			l.logf("SUPPLY\t%v", e.TypeName)
		}
	case *Resolved:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to resolve %v: %v", e.TypeName, e.Err)
		}
	case *MembersInjected:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to inject members of %v: %v", e.TypeName, e.Err)
		}
	case *ConstructorSynthesized:
		l.logf("PLACEHOLDER\t%v => %v", e.TypeName, e.Constructor)
	}
}
