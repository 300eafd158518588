// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mikolajkapica/hdd-schedulers/sim/trace"
)

// Simulator is the core object that holds the device, the request collections
// and the unit-time loop. Each request lives in exactly one of Unreleased,
// ReadyQ, RealtimeQ, Completed or Missed at any time.
type Simulator struct {
	Config   Config
	Policies PolicyConfig
	Device   *Device

	// Requests holds every request in generation order; it is never reordered.
	Requests []*Request

	// Unreleased requests have not arrived yet.
	Unreleased []*Request
	// ReadyQ holds arrived best-effort requests, RealtimeQ arrived real-time ones.
	ReadyQ    *ReadySet
	RealtimeQ *ReadySet

	Completed []*Request
	Missed    []*Request
}

// NewSimulator builds a simulator over requests, which it takes ownership of.
// In single-tier mode every real-time request is demoted to best-effort.
func NewSimulator(cfg Config, policies PolicyConfig, requests []*Request, sink trace.Sink) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := policies.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policies: %w", err)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("no requests to simulate")
	}

	demoted := 0
	for _, req := range requests {
		if req.Track < 0 || req.Track >= cfg.TrackCount {
			return nil, fmt.Errorf("request %d targets track %d outside [0, %d)", req.ID, req.Track, cfg.TrackCount)
		}
		if req.State != StateUnreleased && req.State != StateRealTime {
			return nil, fmt.Errorf("request %d is already %s", req.ID, req.State)
		}
		if req.IsRealTime() && !policies.DualTier() {
			req.Class = ClassBestEffort
			req.State = StateUnreleased
			req.DeadlineTime = 0
			demoted++
		}
	}
	if demoted > 0 {
		logrus.Warnf("single-tier run %s: %d real-time requests treated as best-effort", policies.Name(), demoted)
	}

	return &Simulator{
		Config:     cfg,
		Policies:   policies,
		Device:     NewDevice(cfg.TrackCount, sink),
		Requests:   requests,
		Unreleased: append([]*Request(nil), requests...),
		ReadyQ:     &ReadySet{},
		RealtimeQ:  &ReadySet{},
	}, nil
}

// Run advances the simulation until every request has completed or missed
// its deadline, and returns the run summary.
func (sim *Simulator) Run() Summary {
	logrus.Infof("[tick %07d] Starting %s with %d requests on %d tracks",
		sim.Device.Clock, sim.Policies.Name(), len(sim.Requests), sim.Device.TrackCount)
	for !sim.Done() {
		sim.Step()
	}
	logrus.Infof("[tick %07d] Simulation ended: %d completed, %d missed, %d seeks",
		sim.Device.Clock, len(sim.Completed), len(sim.Missed), sim.Device.SeekCount)
	return NewSummary(sim)
}

// Done reports whether every request reached a terminal state.
func (sim *Simulator) Done() bool {
	return len(sim.Completed)+len(sim.Missed) == len(sim.Requests)
}

// Step runs one iteration of the loop: promotion, expiry, then either one
// full seek-and-serve or one idle tick.
func (sim *Simulator) Step() {
	sim.promote()
	if sim.Policies.DualTier() {
		sim.expire()
		if sim.Done() {
			return
		}
	}

	if sim.ReadyQ.Len() == 0 && sim.RealtimeQ.Len() == 0 {
		sim.Device.Tick()
		return
	}

	// Real-time work preempts best-effort once selected.
	if sim.Policies.DualTier() {
		if req := Select(sim.Policies.RealtimePolicy, sim.RealtimeQ.Items(), sim.Device); req != nil {
			sim.serveRealtime(req)
			return
		}
	}
	if req := Select(sim.Policies.Policy, sim.ReadyQ.Items(), sim.Device); req != nil {
		sim.serveBestEffort(req)
		return
	}
	sim.idle()
}

// promote moves every arrived request into its tier's ready set.
func (sim *Simulator) promote() {
	clock := sim.Device.Clock
	pending := sim.Unreleased[:0]
	for _, req := range sim.Unreleased {
		if req.ArrivalTime > clock {
			pending = append(pending, req)
			continue
		}
		req.ReadyTime = clock
		if req.IsRealTime() {
			req.SetState(StateRealTimeReady)
			sim.RealtimeQ.Enqueue(req)
		} else {
			req.SetState(StateReady)
			sim.ReadyQ.Enqueue(req)
		}
	}
	for i := len(pending); i < len(sim.Unreleased); i++ {
		sim.Unreleased[i] = nil
	}
	sim.Unreleased = pending
}

// expire marks every real-time request whose deadline has passed as missed.
func (sim *Simulator) expire() {
	clock := sim.Device.Clock
	pending := sim.Unreleased[:0]
	for _, req := range sim.Unreleased {
		if req.IsRealTime() && req.DeadlineTime <= clock {
			sim.miss(req)
			continue
		}
		pending = append(pending, req)
	}
	for i := len(pending); i < len(sim.Unreleased); i++ {
		sim.Unreleased[i] = nil
	}
	sim.Unreleased = pending

	for _, req := range sim.RealtimeQ.Partition(func(r *Request) bool { return r.DeadlineTime <= clock }) {
		sim.miss(req)
	}
}

// serveRealtime seeks to a real-time request one track at a time. Under
// FeasibleDeadlineScan, best-effort requests on the tracks passed en route
// are served as the head crosses them.
func (sim *Simulator) serveRealtime(req *Request) {
	sim.RealtimeQ.Remove(req)
	req.ServiceTime = sim.Device.Clock
	logrus.Debugf("[tick %07d] %v selects %d (track %d, deadline %d) from track %d",
		sim.Device.Clock, sim.Policies.RealtimePolicy, req.ID, req.Track, req.DeadlineTime, sim.Device.CurrentTrack)

	sweep := sim.Policies.RealtimePolicy == FeasibleDeadlineScan
	for sim.Device.CurrentTrack != req.Track {
		sim.Device.Step(sim.Policies.RealtimePolicy, req.Track)
		sim.accrue(sim.ReadyQ)
		sim.accrue(sim.RealtimeQ)
		if sweep {
			sim.serveInPassing()
		}
	}

	if sim.Device.Clock <= req.DeadlineTime {
		sim.complete(req)
	} else {
		sim.miss(req)
	}
}

// serveInPassing completes the best-effort requests on the head's current track.
func (sim *Simulator) serveInPassing() {
	track := sim.Device.CurrentTrack
	for _, req := range sim.ReadyQ.Partition(func(r *Request) bool { return r.Track == track }) {
		req.ServiceTime = sim.Device.Clock
		sim.complete(req)
	}
}

// serveBestEffort seeks to a best-effort request one track at a time.
// Real-time requests do not accrue waiting time meanwhile.
func (sim *Simulator) serveBestEffort(req *Request) {
	sim.ReadyQ.Remove(req)
	req.ServiceTime = sim.Device.Clock
	logrus.Debugf("[tick %07d] %v selects %d (track %d) from track %d",
		sim.Device.Clock, sim.Policies.Policy, req.ID, req.Track, sim.Device.CurrentTrack)

	for sim.Device.CurrentTrack != req.Track {
		sim.Device.Step(sim.Policies.Policy, req.Track)
		sim.accrue(sim.ReadyQ)
	}
	sim.complete(req)
}

// idle spends one tick with nothing selected. Sweeping policies keep the head
// moving towards the edge they are facing.
func (sim *Simulator) idle() {
	sim.accrue(sim.ReadyQ)
	if sim.Policies.Policy.IsSweep() {
		sim.Device.Step(sim.Policies.Policy, sim.Device.CurrentTrack)
		return
	}
	sim.Device.Tick()
}

func (sim *Simulator) accrue(rs *ReadySet) {
	for _, req := range rs.Items() {
		req.WaitingTime++
	}
}

func (sim *Simulator) complete(req *Request) {
	req.SetState(StateCompleted)
	req.CompletionTime = sim.Device.Clock
	sim.Completed = append(sim.Completed, req)
	logrus.Debugf("[tick %07d] Completed %d on track %d after waiting %d", sim.Device.Clock, req.ID, req.Track, req.WaitingTime)
}

func (sim *Simulator) miss(req *Request) {
	req.SetState(StateMissed)
	req.CompletionTime = sim.Device.Clock
	sim.Missed = append(sim.Missed, req)
	logrus.Debugf("[tick %07d] Missed %d (deadline %d)", sim.Device.Clock, req.ID, req.DeadlineTime)
}
