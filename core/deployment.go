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

package core

import (
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/digrest/spi"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Deployment serves registered resources.
//
// Resources are registered before the Deployment starts serving; Register
// is not safe to call concurrently with ServeHTTP.
type Deployment struct {
	factory    spi.InjectorFactory
	processors []spi.ResourceClassProcessor
	router     chi.Router
	log        *zap.Logger
	json       jsoniter.API
}

// DeploymentOption configures a Deployment.
type DeploymentOption interface {
	apply(*Deployment)
}

type deploymentOptionFunc func(*Deployment)

func (f deploymentOptionFunc) apply(d *Deployment) { f(d) }

// WithInjectorFactory sets the factory that builds resource injectors.
// Defaults to NewInjectorFactory().
func WithInjectorFactory(f spi.InjectorFactory) DeploymentOption {
	return deploymentOptionFunc(func(d *Deployment) {
		d.factory = f
	})
}

// WithProcessors adds processors that may rewrite every registered
// resource, in order.
func WithProcessors(ps ...spi.ResourceClassProcessor) DeploymentOption {
	return deploymentOptionFunc(func(d *Deployment) {
		d.processors = append(d.processors, ps...)
	})
}

// WithRouter mounts resources on r instead of a new chi router.
func WithRouter(r chi.Router) DeploymentOption {
	return deploymentOptionFunc(func(d *Deployment) {
		d.router = r
	})
}

// WithLogger sets the logger used for failed requests.
func WithLogger(log *zap.Logger) DeploymentOption {
	return deploymentOptionFunc(func(d *Deployment) {
		d.log = log
	})
}

// NewDeployment builds an empty Deployment.
func NewDeployment(opts ...DeploymentOption) *Deployment {
	d := &Deployment{
		factory: NewInjectorFactory(),
		router:  chi.NewRouter(),
		log:     zap.NewNop(),
		json:    jsoniter.ConfigCompatibleWithStandardLibrary,
	}
	for _, opt := range opts {
		opt.apply(d)
	}
	return d
}

// Register serves rc with a new instance for every request. Only resource
// methods are mounted; resource locators are described for injector
// factories but not routed.
func (d *Deployment) Register(rc spi.ResourceClass) error {
	return d.register(rc, false)
}

// RegisterSingleton constructs rc once, outside of any request, and serves
// every request with that instance.
func (d *Deployment) RegisterSingleton(rc spi.ResourceClass) error {
	return d.register(rc, true)
}

type instanceFunc func(*http.Request, http.ResponseWriter) (interface{}, error)

func (d *Deployment) register(rc spi.ResourceClass, singleton bool) error {
	for _, p := range d.processors {
		rc = p.Process(rc)
	}

	ctor := rc.Constructor()
	if ctor == nil {
		return errors.Errorf("could not find constructor for type %v", rc.Type())
	}

	ci := d.factory.CreateResourceConstructor(ctor)
	pi := d.factory.CreateResourcePropertyInjector(rc)

	var newInstance instanceFunc
	if singleton {
		obj, err := ci.Construct(false)
		if err != nil {
			return errors.Wrapf(err, "construct singleton %v", rc.Type())
		}
		if _, err := pi.Inject(obj, false); err != nil {
			return errors.Wrapf(err, "inject singleton %v", rc.Type())
		}
		newInstance = func(*http.Request, http.ResponseWriter) (interface{}, error) {
			return obj, nil
		}
	} else {
		newInstance = func(r *http.Request, w http.ResponseWriter) (interface{}, error) {
			obj, err := ci.ConstructRequest(r, w, false)
			if err != nil {
				return nil, err
			}
			if _, err := pi.InjectRequest(r, w, obj, false); err != nil {
				return nil, err
			}
			return obj, nil
		}
	}

	var errs error
	for _, m := range rc.ResourceMethods() {
		mi, err := d.factory.CreateMethodInjector(m.ResourceLocator)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		pattern := path.Join("/", rc.Path(), m.Path)
		d.router.Method(m.HTTPMethod, pattern, d.handler(newInstance, mi))
		d.log.Debug("registered resource method",
			zap.String("method", m.HTTPMethod),
			zap.String("pattern", pattern),
			zap.Stringer("type", rc.Type()),
			zap.Bool("singleton", singleton))
	}
	for _, loc := range rc.ResourceLocators() {
		d.log.Debug("resource locator not served",
			zap.String("pattern", path.Join("/", rc.Path(), loc.Path)),
			zap.String("method", loc.Method.Name),
			zap.Stringer("type", rc.Type()))
	}
	return errs
}

func (d *Deployment) handler(newInstance instanceFunc, mi spi.MethodInjector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, err := newInstance(r, w)
		if err != nil {
			d.fail(w, r, err)
			return
		}

		res, err := mi.Invoke(r, w, obj, false)
		if err != nil {
			d.fail(w, r, err)
			return
		}
		d.write(w, r, res)
	}
}

func (d *Deployment) write(w http.ResponseWriter, r *http.Request, res interface{}) {
	switch v := res.(type) {
	case nil:
	case string:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(v))
	case []byte:
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(v)
	default:
		w.Header().Set("Content-Type", "application/json")
		if err := d.json.NewEncoder(w).Encode(v); err != nil {
			d.log.Error("failed to encode response", zap.String("path", r.URL.Path), zap.Error(err))
		}
	}
}

func (d *Deployment) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	d.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	http.Error(w, http.StatusText(status), status)
}

// ServeHTTP dispatches to the registered resources.
func (d *Deployment) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.router.ServeHTTP(w, r)
}
