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

	"github.com/beorn7/perks/quantile"

	"github.com/rtimmons/there-will-be-blood/metrics/internal"
)

// quantileTargets are the ranks the duration stream is optimized to answer,
// with their allowed absolute error.
var quantileTargets = map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}

// DurationSample is one recorded timing: at At, something took Duration.
// E.g. "at noon the query took 10ms".
type DurationSample struct {
	At       time.Time     `json:"at"`
	Duration time.Duration `json:"duration"`
}

// Time is a token that records elapsed-time measurements. Use Start or a
// Timed to produce them. Recordings are safe from multiple goroutines.
//
// To create Time instances, use NewTime; application code obtains them from
// a registry instead.
type Time struct {
	series[time.Duration]

	// quantiles streams every recorded duration, in seconds. Guarded by
	// the series mutex.
	quantiles *quantile.Stream
}

// NewTime constructs a timing token. The gate restricts callers to this
// module; see the registry's Run method.
func NewTime(_ internal.Gate, opts Options) *Time {
	t := &Time{quantiles: quantile.NewTargeted(quantileTargets)}
	t.init(opts)
	return t
}

// Start captures the current instant and returns a Stopper bound to this
// token. Nothing is recorded until the Stopper's Stop is called.
func (t *Time) Start() *Stopper {
	return &Stopper{start: t.now(), tok: t}
}

// Wrap runs fn and records how long it took, even when fn panics.
func (t *Time) Wrap(fn func()) {
	defer NewTimed(t).Stop()
	fn()
}

// Samples returns a copy of the recorded timings, in append order.
func (t *Time) Samples() []DurationSample {
	var out []DurationSample
	t.each(func(at time.Time, d time.Duration) {
		out = append(out, DurationSample{At: at, Duration: d})
	})
	return out
}

// Quantile returns the estimated q-quantile (0 ≤ q ≤ 1) over every duration
// recorded so far, or 0 when nothing has been recorded. Estimates are
// tightest at the targeted ranks 0.5, 0.9, and 0.99.
func (t *Time) Quantile(q float64) time.Duration {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.quantiles.Count() == 0 {
		return 0
	}
	return time.Duration(t.quantiles.Query(q) * float64(time.Second))
}

func (t *Time) record(at time.Time, d time.Duration) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.log.sealed {
		t.log.dropped++
		return
	}
	t.log.append(at, d)
	t.quantiles.Insert(d.Seconds())
}

// Stopper is the transient half of a timing: it holds the start instant and
// the token to report to. Produce one with Time.Start, finish it with Stop.
type Stopper struct {
	start time.Time
	tok   *Time
}

// Stop records (now, now−start) on the originating token and returns the
// elapsed duration.
//
// Technically you can call Stop multiple times and report data multiple
// times. Nothing incorrect about this: each call appends one more sample.
func (s *Stopper) Stop() time.Duration {
	now := s.tok.now()
	elapsed := now.Sub(s.start)
	s.tok.record(now, elapsed)
	return elapsed
}
