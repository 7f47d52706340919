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
	"sync/atomic"
	"time"

	"github.com/rtimmons/there-will-be-blood/metrics/internal"
)

// CountSample is one recorded counter reading: at At, the running total was
// Total. E.g. "at 2pm, 3 requests had been handled".
type CountSample struct {
	At    time.Time `json:"at"`
	Total uint64    `json:"total"`
}

// Count is a token for a value that only ever goes up. Components using it
// don't know the total, just that they affected it. The delta is unsigned,
// so the total is monotonically non-decreasing by construction; values that
// can also go down belong in a Gauge.
//
// To create Count instances, use NewCount; application code obtains them
// from a registry instead.
type Count struct {
	// total holds the running sum. It has to go first in the struct to
	// guarantee alignment for atomic operations.
	// http://golang.org/pkg/sync/atomic/#pkg-note-BUG
	total uint64

	series[uint64]
}

// NewCount constructs a counting token. The gate restricts callers to this
// module; see the registry's Count method.
func NewCount(_ internal.Gate, opts Options) *Count {
	c := &Count{}
	c.init(opts)
	return c
}

// Inc adds 1 to the counter.
func (c *Count) Inc() {
	c.Add(1)
}

// Add adds delta to the running total and records (now, new total).
// Concurrent calls never lose updates, and the recorded totals are
// non-decreasing in append order.
func (c *Count) Add(delta uint64) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.log.sealed {
		c.log.dropped++
		return
	}
	total := atomic.AddUint64(&c.total, delta)
	c.log.append(c.now(), total)
}

// Total returns the running total. Safe to call while other goroutines
// record.
func (c *Count) Total() uint64 {
	return atomic.LoadUint64(&c.total)
}

// Samples returns a copy of the recorded totals, in append order.
func (c *Count) Samples() []CountSample {
	var out []CountSample
	c.each(func(at time.Time, v uint64) {
		out = append(out, CountSample{At: at, Total: v})
	})
	return out
}
