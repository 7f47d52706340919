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
)

// DefaultCapacity is the per-token sample limit used when Options.Capacity
// is zero. Ten million entries, the sizing the library has always assumed
// for a full application run between restarts.
const DefaultCapacity = 10 * 1000 * 1000

// defaultChunk is the allocation unit of a sample log. Appending never
// relocates entries that earlier appends produced; the log grows by linking
// new chunks instead.
const defaultChunk = 16 * 1024

// OverflowPolicy selects what a sample log does with appends once it holds
// Capacity samples. Growth past the limit is never silent: one of the
// counters reported by Dropped or Evicted moves on every overflowing append.
type OverflowPolicy int

const (
	// OverflowDropNew rejects appends at capacity. Rejected samples are
	// counted and reported by the token's Dropped method.
	OverflowDropNew OverflowPolicy = iota
	// OverflowEvictOldest discards the oldest chunk of samples to make
	// room, so the log keeps the newest observations. Discarded samples
	// are counted and reported by the token's Evicted method.
	OverflowEvictOldest
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowDropNew:
		return "drop-new"
	case OverflowEvictOldest:
		return "evict-oldest"
	}
	return "unknown"
}

type sample[V any] struct {
	at  time.Time
	val V
}

// sampleLog is an ordered, append-only log of (timestamp, value) samples,
// stored in fixed-size chunks. It is not synchronized; the owning token's
// mutex guards every method.
type sampleLog[V any] struct {
	chunks [][]sample[V]
	size   int

	limit  int
	chunk  int
	policy OverflowPolicy

	sealed  bool
	dropped uint64
	evicted uint64
}

func newSampleLog[V any](limit int, policy OverflowPolicy) sampleLog[V] {
	l := sampleLog[V]{limit: limit, policy: policy}
	l.normalize()
	// The first chunk is allocated up front so the first recordings on the
	// hot path never pay for it.
	l.chunks = append(l.chunks, make([]sample[V], 0, l.chunk))
	return l
}

func (l *sampleLog[V]) normalize() {
	if l.limit <= 0 {
		l.limit = DefaultCapacity
	}
	if l.chunk <= 0 {
		l.chunk = defaultChunk
	}
	if l.chunk > l.limit {
		l.chunk = l.limit
	}
}

// append stores one sample. It reports false when the sample was not
// retained, either because the log is sealed or because it is at capacity
// under OverflowDropNew.
func (l *sampleLog[V]) append(at time.Time, v V) bool {
	l.normalize()
	if l.sealed {
		l.dropped++
		return false
	}
	if l.size >= l.limit {
		if l.policy != OverflowEvictOldest || len(l.chunks) == 0 {
			l.dropped++
			return false
		}
		gone := len(l.chunks[0])
		l.chunks = l.chunks[1:]
		l.size -= gone
		l.evicted += uint64(gone)
	}
	if len(l.chunks) == 0 || len(l.chunks[len(l.chunks)-1]) == cap(l.chunks[len(l.chunks)-1]) {
		l.chunks = append(l.chunks, make([]sample[V], 0, l.chunk))
	}
	last := len(l.chunks) - 1
	l.chunks[last] = append(l.chunks[last], sample[V]{at: at, val: v})
	l.size++
	return true
}

func (l *sampleLog[V]) last() (sample[V], bool) {
	for i := len(l.chunks) - 1; i >= 0; i-- {
		if n := len(l.chunks[i]); n > 0 {
			return l.chunks[i][n-1], true
		}
	}
	var zero sample[V]
	return zero, false
}

func (l *sampleLog[V]) each(fn func(at time.Time, v V)) {
	for _, c := range l.chunks {
		for _, s := range c {
			fn(s.at, s.val)
		}
	}
}
