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

import "sync/atomic"

// Timed is a scoped timer: it starts timing when constructed and records
// exactly one sample no matter how its scope exits. Use it with defer:
//
//	func handle() {
//	    defer token.NewTimed(queries).Stop()
//	    // Do actual work.
//	}
//
// The deferred Stop runs on normal return, early return, and panic
// unwinding alike. Unlike a bare Stopper, calling Stop on a Timed more than
// once records nothing extra.
type Timed struct {
	stopped uint32
	s       *Stopper
}

// NewTimed starts timing against t.
func NewTimed(t *Time) *Timed {
	return &Timed{s: t.Start()}
}

// Stop records the elapsed duration. Second and later calls are no-ops.
func (td *Timed) Stop() {
	if atomic.CompareAndSwapUint32(&td.stopped, 0, 1) {
		td.s.Stop()
	}
}
