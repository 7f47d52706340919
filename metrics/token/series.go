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
	"sync"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/rtimmons/there-will-be-blood/metrics/internal"
)

// Options bundles the storage configuration for a token. All fields are
// optional and can safely be left at their zero value.
type Options struct {
	// Capacity caps the number of samples the token retains. Zero means
	// DefaultCapacity.
	Capacity int

	// Overflow selects what happens to recordings once Capacity is
	// reached.
	Overflow OverflowPolicy

	// now is for testing purposes, by default it's time.Now.
	now func() time.Time
}

// series is the store shared by every token kind: a mutex-guarded sample log
// plus the token's creation stamp and clock. Embedding it gives each token
// the common accessors below.
type series[V any] struct {
	mtx sync.Mutex
	log sampleLog[V]

	createdTs *timestamppb.Timestamp

	// now is for testing purposes, by default it's time.Now.
	now func() time.Time
}

// init is called once by the token constructors, before the series is
// shared.
func (s *series[V]) init(opts Options) {
	if opts.now == nil {
		opts.now = time.Now
	}
	s.log = newSampleLog[V](opts.Capacity, opts.Overflow)
	s.createdTs = timestamppb.New(opts.now())
	s.now = opts.now
}

// Len returns the number of samples currently retained.
func (s *series[V]) Len() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.log.size
}

// Dropped returns how many recordings were rejected, either at capacity
// under OverflowDropNew or after the owning registry was closed.
func (s *series[V]) Dropped() uint64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.log.dropped
}

// Evicted returns how many retained samples were discarded to make room
// under OverflowEvictOldest.
func (s *series[V]) Evicted() uint64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.log.evicted
}

// Expired reports whether the owning registry has been closed. Recordings
// through an expired token are dropped and counted, never stored.
func (s *series[V]) Expired() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.log.sealed
}

// CreatedAt returns the instant the token was constructed.
func (s *series[V]) CreatedAt() time.Time {
	return s.createdTs.AsTime()
}

// Seal expires the token. Only the registry can produce the gate, so only
// registry teardown can seal.
func (s *series[V]) Seal(_ internal.Gate) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.log.sealed = true
}

// each copies out the samples under one lock acquisition.
func (s *series[V]) each(fn func(at time.Time, v V)) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.log.each(fn)
}
