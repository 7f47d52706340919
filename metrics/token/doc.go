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

// Package token implements the recording handles handed out by the metrics
// registry: timers, counters, and gauges.
//
// Tokens do the heavy lifting. Each one owns an append-only log of samples,
// values observed at points in time. A token lives as long as the registry
// that created it. Tokens are registered under a name for reporting purposes,
// but the tokens themselves don't know their names.
//
// Recording into a token is safe from multiple goroutines. Constructing
// tokens is not something application code does: the constructors require a
// capability from this module's internal package and are reachable only
// through the registry.
package token
