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
	"fmt"

	"github.com/prometheus/procfs"

	"github.com/rtimmons/there-will-be-blood/metrics/token"
)

// ProcessSampler records the current state of the running process — CPU,
// memory, and file descriptor usage as well as the process start time —
// into gauges owned by a Registry. Each call to Sample appends one reading
// per gauge; invoke it from wherever the application schedules periodic
// work. Nothing runs in the background.
type ProcessSampler struct {
	proc procfs.Proc

	cpuSeconds *token.Gauge
	openFDs    *token.Gauge
	maxFDs     *token.Gauge
	vsize      *token.Gauge
	rss        *token.Gauge
	startTime  *token.Gauge
}

// NewProcessSampler registers the process gauges on r and binds the sampler
// to the current process. It fails where procfs is unavailable.
func NewProcessSampler(r *Registry) (*ProcessSampler, error) {
	proc, err := procfs.Self()
	if err != nil {
		return nil, fmt.Errorf("process sampler: %w", err)
	}
	return &ProcessSampler{
		proc:       proc,
		cpuSeconds: r.Gauge("process_cpu_seconds_total"),
		openFDs:    r.Gauge("process_open_fds"),
		maxFDs:     r.Gauge("process_max_fds"),
		vsize:      r.Gauge("process_virtual_memory_bytes"),
		rss:        r.Gauge("process_resident_memory_bytes"),
		startTime:  r.Gauge("process_start_time_seconds"),
	}, nil
}

// Sample reads procfs once and records one observation per gauge. Readings
// that procfs cannot provide on this system are skipped rather than
// recorded as zeros.
func (s *ProcessSampler) Sample() error {
	stat, err := s.proc.Stat()
	if err != nil {
		return fmt.Errorf("process sampler: %w", err)
	}
	s.cpuSeconds.Set(stat.CPUTime())
	s.vsize.Set(float64(stat.VirtualMemory()))
	s.rss.Set(float64(stat.ResidentMemory()))
	if startTime, err := stat.StartTime(); err == nil {
		s.startTime.Set(startTime)
	}
	if fds, err := s.proc.FileDescriptorsLen(); err == nil {
		s.openFDs.Set(float64(fds))
	}
	if limits, err := s.proc.Limits(); err == nil {
		s.maxFDs.Set(float64(limits.OpenFiles))
	}
	return nil
}
