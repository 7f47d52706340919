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

package token

import (
	"time"

	"github.com/rtimmons/there-will-be-blood/metrics/internal"
)

// GaugeSample is one recorded reading: at At, the observed value was Value.
// E.g. "at 1pm there were 7 threads".
type GaugeSample struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// Gauge is a token for an instantaneous observed value. Its current value
// is whatever was set last.
//
// To create Gauge instances, use NewGauge; application code obtains them
// from a registry instead.
type Gauge struct {
	series[float64]
}

// NewGauge constructs a gauge token. The gate restricts callers to this
// module; see the registry's Gauge method.
func NewGauge(_ internal.Gate, opts Options) *Gauge {
	g := &Gauge{}
	g.init(opts)
	return g
}

// Set records (now, val).
func (g *Gauge) Set(val float64) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.log.append(g.now(), val)
}

// Read returns the most recently set value, or 0 when nothing has been set.
func (g *Gauge) Read() float64 {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	if s, ok := g.log.last(); ok {
		return s.val
	}
	return 0
}

// Samples returns a copy of the recorded readings, in append order.
func (g *Gauge) Samples() []GaugeSample {
	var out []GaugeSample
	g.each(func(at time.Time, v float64) {
		out = append(out, GaugeSample{At: at, Value: v})
	})
	return out
}
