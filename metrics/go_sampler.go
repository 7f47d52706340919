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
	"runtime"
	"runtime/pprof"

	"github.com/rtimmons/there-will-be-blood/metrics/token"
)

// GoSampler records Go runtime state — goroutines, OS threads, memory
// statistics, and completed GC cycles — into tokens owned by a Registry.
// Like ProcessSampler it is one-shot per call: nothing runs in the
// background. Sample calls must not be concurrent with each other.
type GoSampler struct {
	goroutines  *token.Gauge
	threads     *token.Gauge
	heapAlloc   *token.Gauge
	heapObjects *token.Gauge
	sysBytes    *token.Gauge
	gcCycles    *token.Count

	lastNumGC uint32
}

// NewGoSampler registers the runtime tokens on r.
func NewGoSampler(r *Registry) *GoSampler {
	return &GoSampler{
		goroutines:  r.Gauge("go_goroutines"),
		threads:     r.Gauge("go_threads"),
		heapAlloc:   r.Gauge("go_memstats_heap_alloc_bytes"),
		heapObjects: r.Gauge("go_memstats_heap_objects"),
		sysBytes:    r.Gauge("go_memstats_sys_bytes"),
		gcCycles:    r.Count("go_gc_cycles_total"),
	}
}

// Sample reads the runtime once and records one observation per token.
//
// Note that ReadMemStats stops the world; sampling cadence is the caller's
// trade-off.
func (s *GoSampler) Sample() {
	s.goroutines.Set(float64(runtime.NumGoroutine()))
	s.threads.Set(float64(pprof.Lookup("threadcreate").Count()))

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.heapAlloc.Set(float64(ms.HeapAlloc))
	s.heapObjects.Set(float64(ms.HeapObjects))
	s.sysBytes.Set(float64(ms.Sys))

	if ms.NumGC > s.lastNumGC {
		s.gcCycles.Add(uint64(ms.NumGC - s.lastNumGC))
	}
	s.lastNumGC = ms.NumGC
}
