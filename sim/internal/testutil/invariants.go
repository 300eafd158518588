// Package testutil provides shared test infrastructure for the disk simulator.
// It consolidates trace invariant assertions used across the sim/ and
// sim/experiment/ test packages. It must not import sim/ so that sim tests can use it.
package testutil

import (
	"testing"

	"github.com/mikolajkapica/hdd-schedulers/sim/trace"
)

// AssertTraceInBounds checks that every sample lies on the device.
func AssertTraceInBounds(t *testing.T, samples []trace.Sample, trackCount int) {
	t.Helper()
	for i, s := range samples {
		if s.Track < 0 || s.Track >= trackCount {
			t.Fatalf("sample %d: track %d outside [0, %d)", i, s.Track, trackCount)
		}
	}
}

// AssertUnitSteps checks that sample times strictly increase and that
// consecutive samples are one track apart. When wrap is true the single transition from
// the top track to track 0 is also accepted.
func AssertUnitSteps(t *testing.T, samples []trace.Sample, startTrack, trackCount int, wrap bool) {
	t.Helper()
	prevTrack := startTrack
	prevTime := int64(0)
	for i, s := range samples {
		if s.Time <= prevTime {
			t.Fatalf("sample %d: time %d does not advance past %d", i, s.Time, prevTime)
		}
		delta := s.Track - prevTrack
		wrapped := wrap && prevTrack == trackCount-1 && s.Track == 0
		if delta != 1 && delta != -1 && !wrapped {
			t.Fatalf("sample %d: head moved %d -> %d in one step", i, prevTrack, s.Track)
		}
		prevTrack, prevTime = s.Track, s.Time
	}
}

// AssertConservation checks that every request reached a terminal state.
func AssertConservation(t *testing.T, completed, missed, total int) {
	t.Helper()
	if completed+missed != total {
		t.Errorf("completed (%d) + missed (%d) = %d, want %d", completed, missed, completed+missed, total)
	}
}
