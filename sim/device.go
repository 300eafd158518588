// Models the storage device: a single head moving one track per tick over a
// fixed range of tracks; every movement is recorded to a trace sink.

package sim

import (
	"fmt"

	"github.com/mikolajkapica/hdd-schedulers/sim/trace"
)

// Device is the disk under simulation. The simulator is its only writer;
// policies read CurrentTrack, ScanRight and Clock.
type Device struct {
	TrackCount   int
	CurrentTrack int
	ScanRight    bool  // active Scan direction; true = towards higher tracks
	SeekCount    int64 // unit head movements so far
	Clock        int64 // virtual time in ticks

	sink trace.Sink
}

// NewDevice creates a device with the head parked on track 0, facing right.
// A nil sink discards the trace.
func NewDevice(trackCount int, sink trace.Sink) *Device {
	if trackCount <= 1 {
		panic(fmt.Sprintf("NewDevice: trackCount must be > 1, got %d", trackCount))
	}
	if sink == nil {
		sink = trace.Discard
	}
	return &Device{
		TrackCount: trackCount,
		ScanRight:  true,
		sink:       sink,
	}
}

// Distance returns the number of unit steps between the head and track.
func (d *Device) Distance(track int) int {
	if track > d.CurrentTrack {
		return track - d.CurrentTrack
	}
	return d.CurrentTrack - track
}

// Step moves the head by exactly one track according to the movement rule of
// policy p, advancing the clock and seek counter and recording the sample.
// target is ignored by Scan and CScan, which sweep regardless of it.
func (d *Device) Step(p Policy, target int) {
	switch p {
	case Scan:
		d.stepScan()
	case CScan:
		d.CurrentTrack++
		if d.CurrentTrack == d.TrackCount {
			d.CurrentTrack = 0
		}
	default:
		if target > d.CurrentTrack {
			d.CurrentTrack++
		} else if target < d.CurrentTrack {
			d.CurrentTrack--
		} else {
			panic(fmt.Sprintf("Device.Step: head already on target track %d", target))
		}
	}

	if d.CurrentTrack < 0 || d.CurrentTrack >= d.TrackCount {
		panic(fmt.Sprintf("Device.Step: head left the device: track %d not in [0, %d)", d.CurrentTrack, d.TrackCount))
	}

	d.Clock++
	d.SeekCount++
	d.sink.Record(trace.Sample{Time: d.Clock, Track: d.CurrentTrack})
}

func (d *Device) stepScan() {
	// A greedy seek may leave the head on the edge it is facing.
	if d.ScanRight && d.CurrentTrack == d.TrackCount-1 {
		d.ScanRight = false
	} else if !d.ScanRight && d.CurrentTrack == 0 {
		d.ScanRight = true
	}

	if d.ScanRight {
		d.CurrentTrack++
		if d.CurrentTrack == d.TrackCount-1 {
			d.ScanRight = false
		}
	} else {
		d.CurrentTrack--
		if d.CurrentTrack == 0 {
			d.ScanRight = true
		}
	}
}

// Tick advances the clock by one without moving the head.
func (d *Device) Tick() {
	d.Clock++
}
