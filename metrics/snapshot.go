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
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/rtimmons/there-will-be-blood/metrics/token"
)

var jsonEnc = jsoniter.ConfigCompatibleWithStandardLibrary

// TimerSnapshot is the state of one timing token at snapshot time.
type TimerSnapshot struct {
	Name    string                 `json:"name"`
	Samples []token.DurationSample `json:"samples"`
	P50     time.Duration          `json:"p50"`
	P90     time.Duration          `json:"p90"`
	P99     time.Duration          `json:"p99"`
}

// CounterSnapshot is the state of one counting token at snapshot time.
type CounterSnapshot struct {
	Name    string              `json:"name"`
	Total   uint64              `json:"total"`
	Samples []token.CountSample `json:"samples"`
}

// GaugeSnapshot is the state of one gauge token at snapshot time.
type GaugeSnapshot struct {
	Name    string              `json:"name"`
	Value   float64             `json:"value"`
	Samples []token.GaugeSample `json:"samples"`
}

// Snapshot is a point-in-time copy of everything a registry has recorded,
// sorted by token name within each kind. It is detached from the registry:
// reading it needs no locks and recording continues unaffected.
type Snapshot struct {
	TakenAt  time.Time         `json:"taken_at"`
	Timers   []TimerSnapshot   `json:"timers"`
	Counters []CounterSnapshot `json:"counters"`
	Gauges   []GaugeSnapshot   `json:"gauges"`
}

// MarshalJSON renders the snapshot for debug dumps.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return jsonEnc.Marshal(plain(s))
}

// Snapshot copies out the current state of every registered token.
func (r *Registry) Snapshot() Snapshot {
	r.mtx.RLock()
	timers := make([]entry[*token.Time], 0, len(r.timers))
	for _, e := range r.timers {
		timers = append(timers, e)
	}
	counters := make([]entry[*token.Count], 0, len(r.counters))
	for _, e := range r.counters {
		counters = append(counters, e)
	}
	gauges := make([]entry[*token.Gauge], 0, len(r.gauges))
	for _, e := range r.gauges {
		gauges = append(gauges, e)
	}
	r.mtx.RUnlock()

	s := Snapshot{TakenAt: time.Now()}
	for _, e := range timers {
		s.Timers = append(s.Timers, TimerSnapshot{
			Name:    e.name,
			Samples: e.tok.Samples(),
			P50:     e.tok.Quantile(0.5),
			P90:     e.tok.Quantile(0.9),
			P99:     e.tok.Quantile(0.99),
		})
	}
	for _, e := range counters {
		s.Counters = append(s.Counters, CounterSnapshot{
			Name:    e.name,
			Total:   e.tok.Total(),
			Samples: e.tok.Samples(),
		})
	}
	for _, e := range gauges {
		s.Gauges = append(s.Gauges, GaugeSnapshot{
			Name:    e.name,
			Value:   e.tok.Read(),
			Samples: e.tok.Samples(),
		})
	}
	sort.Slice(s.Timers, func(i, j int) bool { return s.Timers[i].Name < s.Timers[j].Name })
	sort.Slice(s.Counters, func(i, j int) bool { return s.Counters[i].Name < s.Counters[j].Name })
	sort.Slice(s.Gauges, func(i, j int) bool { return s.Gauges[i].Name < s.Gauges[j].Name })
	return s
}
