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
	"testing"
	"time"

	"github.com/rtimmons/there-will-be-blood/metrics/token"
)

func TestRegistrySharesTokensByName(t *testing.T) {
	reg := NewRegistry()
	first := reg.Run("query")
	second := reg.Run("query")
	if first != second {
		t.Fatal("Expected both lookups to return the same token.")
	}
	// A sample recorded through one handle is observable via the other.
	first.Start().Stop()
	if expected, got := 1, second.Len(); expected != got {
		t.Errorf("Expected %d samples via the second handle, got %d.", expected, got)
	}

	if c1, c2 := reg.Count("completed"), reg.Count("completed"); c1 != c2 {
		t.Error("Expected both counter lookups to return the same token.")
	}
	if g1, g2 := reg.Gauge("threads"), reg.Gauge("threads"); g1 != g2 {
		t.Error("Expected both gauge lookups to return the same token.")
	}
}

func TestRegistryKindsAreIndependent(t *testing.T) {
	reg := NewRegistry()
	reg.Run("shared").Start().Stop()
	reg.Count("shared").Inc()
	reg.Gauge("shared").Set(1)
	if expected, got := 1, reg.Run("shared").Len(); expected != got {
		t.Errorf("Expected %d timer samples, got %d.", expected, got)
	}
	if expected, got := uint64(1), reg.Count("shared").Total(); expected != got {
		t.Errorf("Expected counter total %d, got %d.", expected, got)
	}
	if expected, got := 1.0, reg.Gauge("shared").Read(); expected != got {
		t.Errorf("Expected gauge reading %f, got %f.", expected, got)
	}
}

func TestRegistryInvalidNamePanics(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"", "has space", "0leading", "dash-ed"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic registering %q.", name)
				}
			}()
			reg.Count(name)
		}()
	}
}

func TestRegistryCloseSealsTokens(t *testing.T) {
	reg := NewRegistry()
	queries := reg.Run("query")
	completed := reg.Count("completed")
	threads := reg.Gauge("threads")
	completed.Add(3)
	threads.Set(12)

	reg.Close()

	completed.Inc()
	threads.Set(99)
	queries.Start().Stop()

	if expected, got := uint64(3), completed.Total(); expected != got {
		t.Errorf("Expected total %d after close, got %d.", expected, got)
	}
	if expected, got := 12.0, threads.Read(); expected != got {
		t.Errorf("Expected reading %f after close, got %f.", expected, got)
	}
	if expected, got := 0, queries.Len(); expected != got {
		t.Errorf("Expected %d timer samples after close, got %d.", expected, got)
	}
	for _, expired := range []bool{queries.Expired(), completed.Expired(), threads.Expired()} {
		if !expired {
			t.Error("Expected every token to report expired after close.")
		}
	}
	if expected, got := uint64(1), queries.Dropped(); expected != got {
		t.Errorf("Expected %d dropped timer samples, got %d.", expected, got)
	}
}

func TestRegistryRegisterAfterClosePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Close()
	defer func() {
		if recover() == nil {
			t.Error("Expected panic registering on a closed registry.")
		}
	}()
	reg.Run("late")
}

func TestRegistryCloseIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Count("completed").Inc()
	reg.Close()
	reg.Close()
}

func TestRegistryOptsPropagate(t *testing.T) {
	reg := NewRegistryWithOpts(RegistryOpts{SampleCapacity: 2})
	count := reg.Count("bounded")
	for i := 0; i < 5; i++ {
		count.Inc()
	}
	if expected, got := 2, count.Len(); expected != got {
		t.Errorf("Expected %d retained samples, got %d.", expected, got)
	}
	if expected, got := uint64(3), count.Dropped(); expected != got {
		t.Errorf("Expected %d dropped, got %d.", expected, got)
	}
	if expected, got := uint64(5), count.Total(); expected != got {
		t.Errorf("Expected total %d, got %d.", expected, got)
	}
}

func TestRegistryEvictOldestPropagates(t *testing.T) {
	reg := NewRegistryWithOpts(RegistryOpts{
		SampleCapacity: 4,
		Overflow:       token.OverflowEvictOldest,
	})
	gauge := reg.Gauge("rolling")
	for i := 0; i < 6; i++ {
		gauge.Set(float64(i))
	}
	if expected, got := 5.0, gauge.Read(); expected != got {
		t.Errorf("Expected newest reading %f, got %f.", expected, got)
	}
	if gauge.Evicted() == 0 {
		t.Error("Expected evictions past capacity.")
	}
}

func TestRegistryTokenCreationStamps(t *testing.T) {
	before := time.Now().Add(-time.Second)
	reg := NewRegistry()
	created := reg.Count("completed").CreatedAt()
	if created.Before(before) || created.After(time.Now().Add(time.Second)) {
		t.Errorf("Implausible creation stamp %v.", created)
	}
}
