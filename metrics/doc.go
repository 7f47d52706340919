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

// Package metrics provides embeddable instrumentation primitives: named
// timing, counting, and gauge tokens handed out by a Registry.
//
// An application creates one Registry for its lifecycle and registers its
// tokens during startup:
//
//	reg := metrics.NewRegistry()
//	queries := reg.Run("query")
//	threads := reg.Gauge("threads")
//	completed := reg.Count("completed")
//
// It then records through the tokens from anywhere, including concurrently:
//
//	defer token.NewTimed(queries).Stop()
//	threads.Set(100)
//	completed.Inc()
//
// Requesting an already-registered name returns the existing token, so
// independent components naming the same signal share one instrumentation
// point. Registration itself should finish single-threaded during startup;
// recording is safe from many goroutines afterwards.
//
// All data stays in memory and is scoped to the registry's lifetime. Use
// Registry.Snapshot for point-in-time read access.
package metrics
