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
	"testing"
	"time"

	"github.com/rtimmons/there-will-be-blood/metrics/internal"
)

// fakeClock advances by step on every reading.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimeStartStop(t *testing.T) {
	tok := NewTime(internal.NewGate(), Options{
		now: fakeClock(time.Unix(1000, 0), 5*time.Millisecond),
	})
	stopper := tok.Start()
	if expected, got := 0, tok.Len(); expected != got {
		t.Errorf("Expected %d samples before stop, got %d.", expected, got)
	}
	elapsed := stopper.Stop()
	if expected, got := 5*time.Millisecond, elapsed; expected != got {
		t.Errorf("Expected elapsed %v, got %v.", expected, got)
	}
	samples := tok.Samples()
	if expected, got := 1, len(samples); expected != got {
		t.Fatalf("Expected %d samples, got %d.", expected, got)
	}
	if expected, got := 5*time.Millisecond, samples[0].Duration; expected != got {
		t.Errorf("Expected recorded duration %v, got %v.", expected, got)
	}
}

func TestStopperStopsRepeatedly(t *testing.T) {
	tok := NewTime(internal.NewGate(), Options{
		now: fakeClock(time.Unix(1000, 0), time.Millisecond),
	})
	stopper := tok.Start()
	for i := 0; i < 3; i++ {
		stopper.Stop()
	}
	samples := tok.Samples()
	if expected, got := 3, len(samples); expected != got {
		t.Fatalf("Expected %d samples, got %d.", expected, got)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].At.Before(samples[i-1].At) {
			t.Errorf("timestamps not non-decreasing at sample %d", i)
		}
		if samples[i].Duration < samples[i-1].Duration {
			t.Errorf("durations shrank at sample %d", i)
		}
	}
}

func TestTimeWallClock(t *testing.T) {
	tok := NewTime(internal.NewGate(), Options{})
	stopper := tok.Start()
	time.Sleep(time.Millisecond)
	stopper.Stop()
	samples := tok.Samples()
	if expected, got := 1, len(samples); expected != got {
		t.Fatalf("Expected %d samples, got %d.", expected, got)
	}
	if samples[0].Duration <= 0 {
		t.Errorf("Expected positive duration, got %v.", samples[0].Duration)
	}
}

func TestTimeQuantile(t *testing.T) {
	tok := NewTime(internal.NewGate(), Options{
		now: fakeClock(time.Unix(1000, 0), time.Millisecond),
	})
	if expected, got := time.Duration(0), tok.Quantile(0.5); expected != got {
		t.Errorf("Expected %v on empty token, got %v.", expected, got)
	}
	for i := 0; i < 100; i++ {
		tok.Start().Stop()
	}
	// Every recorded duration is exactly one fake-clock step.
	median := tok.Quantile(0.5)
	if median < time.Millisecond/2 || median > 2*time.Millisecond {
		t.Errorf("Expected median near %v, got %v.", time.Millisecond, median)
	}
}

func TestTimeSealedDrops(t *testing.T) {
	tok := NewTime(internal.NewGate(), Options{
		now: fakeClock(time.Unix(1000, 0), time.Millisecond),
	})
	stopper := tok.Start()
	tok.Seal(internal.NewGate())
	stopper.Stop()
	if expected, got := 0, tok.Len(); expected != got {
		t.Errorf("Expected %d samples after seal, got %d.", expected, got)
	}
	if expected, got := uint64(1), tok.Dropped(); expected != got {
		t.Errorf("Expected %d dropped, got %d.", expected, got)
	}
	if !tok.Expired() {
		t.Error("Expected token to report expired after seal.")
	}
}

func TestTimeCreatedAt(t *testing.T) {
	start := time.Unix(1000, 0)
	tok := NewTime(internal.NewGate(), Options{now: fakeClock(start, time.Second)})
	if got := tok.CreatedAt(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("Expected creation stamp %v, got %v.", start.Add(time.Second), got)
	}
}
