// Copyright 2015 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/common/model"

	"github.com/rtimmons/there-will-be-blood/metrics/internal"
	"github.com/rtimmons/there-will-be-blood/metrics/token"
)

var errRegistryClosed = errors.New("registry is closed")

// RegistryOpts bundles the options for creating a Registry. All fields are
// optional and can safely be left at their zero value.
type RegistryOpts struct {
	// SampleCapacity caps the samples each token retains. Zero means
	// token.DefaultCapacity.
	SampleCapacity int

	// Overflow selects what tokens do with recordings once
	// SampleCapacity is reached.
	Overflow token.OverflowPolicy
}

// entry pairs a token with the name it was registered under; tokens
// themselves don't know their names.
type entry[T any] struct {
	name string
	tok  T
}

// Registry owns every token of an application. It hands out stable token
// pointers via lookup-or-create access by name and kind; requesting an
// already-registered name returns the existing token, so later callers
// share its state. An application is intended to register its tokens only
// during startup.
//
// A Registry is the single owner of its tokens' storage. Obtain one with
// NewRegistry; the zero value is not usable, and a Registry must not be
// copied after first use.
type Registry struct {
	noCopy noCopy

	mtx      sync.RWMutex
	opts     RegistryOpts
	timers   map[uint64]entry[*token.Time]
	counters map[uint64]entry[*token.Count]
	gauges   map[uint64]entry[*token.Gauge]
	closed   bool
}

// NewRegistry builds a fresh, empty registry with default options.
func NewRegistry() *Registry {
	return NewRegistryWithOpts(RegistryOpts{})
}

// NewRegistryWithOpts builds a fresh, empty registry based on the provided
// RegistryOpts.
func NewRegistryWithOpts(opts RegistryOpts) *Registry {
	return &Registry{
		opts:     opts,
		timers:   make(map[uint64]entry[*token.Time]),
		counters: make(map[uint64]entry[*token.Count]),
		gauges:   make(map[uint64]entry[*token.Gauge]),
	}
}

// Run returns the timing token registered under name, creating it on first
// use. The returned pointer stays valid for the registry's lifetime.
//
// Run panics if name is not a valid metric name or if the registry has been
// closed.
func (r *Registry) Run(name string) *token.Time {
	sig := signature(timeKind, name)
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.mustUsable(name)
	if e, ok := r.timers[sig]; ok {
		return e.tok
	}
	t := token.NewTime(internal.NewGate(), r.tokenOptions())
	r.timers[sig] = entry[*token.Time]{name: name, tok: t}
	return t
}

// Count returns the counting token registered under name, creating it on
// first use. Panics on an invalid name or a closed registry.
func (r *Registry) Count(name string) *token.Count {
	sig := signature(countKind, name)
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.mustUsable(name)
	if e, ok := r.counters[sig]; ok {
		return e.tok
	}
	c := token.NewCount(internal.NewGate(), r.tokenOptions())
	r.counters[sig] = entry[*token.Count]{name: name, tok: c}
	return c
}

// Gauge returns the gauge token registered under name, creating it on first
// use. Panics on an invalid name or a closed registry.
func (r *Registry) Gauge(name string) *token.Gauge {
	sig := signature(gaugeKind, name)
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.mustUsable(name)
	if e, ok := r.gauges[sig]; ok {
		return e.tok
	}
	g := token.NewGauge(internal.NewGate(), r.tokenOptions())
	r.gauges[sig] = entry[*token.Gauge]{name: name, tok: g}
	return g
}

// Close seals every token the registry owns. Recordings through previously
// returned tokens are dropped (and counted) from then on, and the tokens
// report Expired. Registering on a closed registry panics. Close is
// idempotent.
func (r *Registry) Close() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	g := internal.NewGate()
	for _, e := range r.timers {
		e.tok.Seal(g)
	}
	for _, e := range r.counters {
		e.tok.Seal(g)
	}
	for _, e := range r.gauges {
		e.tok.Seal(g)
	}
}

// mustUsable is called with r.mtx held.
func (r *Registry) mustUsable(name string) {
	if r.closed {
		panic(errRegistryClosed)
	}
	if !model.IsValidMetricName(model.LabelValue(name)) {
		panic(fmt.Errorf("%q is not a valid token name", name))
	}
}

func (r *Registry) tokenOptions() token.Options {
	return token.Options{
		Capacity: r.opts.SampleCapacity,
		Overflow: r.opts.Overflow,
	}
}

// noCopy triggers go vet's copylocks check when a Registry is copied by
// value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
