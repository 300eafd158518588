package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikolajkapica/hdd-schedulers/sim/internal/testutil"
	"github.com/mikolajkapica/hdd-schedulers/sim/trace"
)

func bestEffort(id, track int, arrival int64) *Request {
	return NewRequest(id, ClassBestEffort, track, arrival, 0)
}

func realTime(id, track int, arrival, deadline int64) *Request {
	return NewRequest(id, ClassRealTime, track, arrival, deadline)
}

func policies(be, rt Policy) PolicyConfig {
	return PolicyConfig{Policy: be, RealtimePolicy: rt}
}

// mustRun builds a simulator over a trackCount-track device and runs it to the end.
func mustRun(t *testing.T, trackCount int, pc PolicyConfig, reqs ...*Request) (*Simulator, Summary, *trace.Recorder) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TrackCount = trackCount
	cfg.RequestCount = len(reqs)
	rec := trace.NewRecorder()
	sim, err := NewSimulator(cfg, pc, reqs, rec)
	require.NoError(t, err)
	return sim, sim.Run(), rec
}

func TestNewSimulator_RejectsBadInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrackCount = 10

	tests := []struct {
		name string
		cfg  Config
		pc   PolicyConfig
		reqs []*Request
	}{
		{"invalid config", Config{}, policies(Scan, NoPolicy), []*Request{bestEffort(0, 1, 0)}},
		{"invalid policies", cfg, policies(EarliestDeadlineFirst, NoPolicy), []*Request{bestEffort(0, 1, 0)}},
		{"no requests", cfg, policies(Scan, NoPolicy), nil},
		{"track out of range", cfg, policies(Scan, NoPolicy), []*Request{bestEffort(0, 10, 0)}},
		{"negative track", cfg, policies(Scan, NoPolicy), []*Request{bestEffort(0, -1, 0)}},
		{"already completed", cfg, policies(Scan, NoPolicy), []*Request{{ID: 0, State: StateCompleted}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimulator(tt.cfg, tt.pc, tt.reqs, nil)
			assert.Error(t, err)
		})
	}
}

func TestSimulator_FCFS_ServesInArrivalOrder(t *testing.T) {
	// GIVEN two best-effort requests on tracks 3 and 1, both arriving at 0
	a, b := bestEffort(0, 3, 0), bestEffort(1, 1, 0)

	// WHEN FCFS runs
	sim, s, rec := mustRun(t, 10, policies(FirstComeFirstServed, NoPolicy), a, b)

	// THEN track 3 is served first and b waits for the whole 3-track seek
	assert.Equal(t, []int{0, 1}, ids(sim.Completed))
	assert.Equal(t, int64(0), a.WaitingTime)
	assert.Equal(t, int64(3), b.WaitingTime)
	assert.Equal(t, int64(5), s.SeekCount)
	assert.Equal(t, int64(5), s.FinalClock)
	assert.InDelta(t, 1.5, s.AverageWaitingTime, 1e-9)
	assert.Equal(t, []int{1, 2, 3, 2, 1}, tracks(rec.Samples))
}

func TestSimulator_SSTF_ServesNearestFirst(t *testing.T) {
	a, b := bestEffort(0, 3, 0), bestEffort(1, 1, 0)

	sim, s, _ := mustRun(t, 10, policies(ShortestSeekTimeFirst, NoPolicy), a, b)

	assert.Equal(t, []int{1, 0}, ids(sim.Completed))
	assert.Equal(t, int64(3), s.SeekCount)
	assert.Equal(t, int64(3), s.FinalClock)
	assert.InDelta(t, 0.5, s.AverageWaitingTime, 1e-9)
}

func TestSimulator_EmptyReadySets_TickWithoutMoving(t *testing.T) {
	// GIVEN a single request that arrives late
	req := bestEffort(0, 2, 7)

	// WHEN Scan runs
	_, s, rec := mustRun(t, 10, policies(Scan, NoPolicy), req)

	// THEN the head holds still until arrival and then seeks two tracks
	assert.Equal(t, int64(9), s.FinalClock)
	assert.Equal(t, int64(2), s.SeekCount)
	assert.Equal(t, []trace.Sample{{Time: 8, Track: 1}, {Time: 9, Track: 2}}, rec.Samples)
	assert.Zero(t, req.WaitingTime)
}

func TestSimulator_Scan_IdleSweepReachesEdgeAndTurns(t *testing.T) {
	// GIVEN a 5-track disk, a request on track 3 at t=0 and one on track 1 at t=4
	a, b := bestEffort(0, 3, 0), bestEffort(1, 1, 4)

	// WHEN Scan runs
	_, s, rec := mustRun(t, 5, policies(Scan, NoPolicy), a, b)

	// THEN the head idles once to the top edge, turns and sweeps down to track 1
	assert.Equal(t, []int{1, 2, 3, 4, 3, 2, 1}, tracks(rec.Samples))
	assert.Equal(t, int64(7), s.SeekCount)
	assert.Equal(t, int64(8), s.FinalClock)
	assert.Equal(t, int64(1), b.WaitingTime)
	assert.Equal(t, b.ServiceTime-b.ReadyTime, b.WaitingTime)
}

func TestSimulator_CScan_IdleSweepWrapsToTrackZero(t *testing.T) {
	a, b := bestEffort(0, 3, 0), bestEffort(1, 1, 4)

	_, s, rec := mustRun(t, 5, policies(CScan, NoPolicy), a, b)

	assert.Equal(t, []int{1, 2, 3, 4, 0, 1}, tracks(rec.Samples))
	assert.Equal(t, int64(6), s.SeekCount)
	assert.Equal(t, int64(7), s.FinalClock)
	assert.Equal(t, int64(2), b.WaitingTime)
}

func TestSimulator_EDF_LateArrival_IsMissed(t *testing.T) {
	// GIVEN a real-time request 5 tracks away with a deadline at t=3
	req := realTime(0, 5, 0, 3)

	// WHEN EDF runs
	sim, s, _ := mustRun(t, 10, policies(FirstComeFirstServed, EarliestDeadlineFirst), req)

	// THEN the head still travels there and the request is missed on arrival
	assert.Equal(t, 1, s.Missed)
	assert.Zero(t, s.Completed)
	assert.Equal(t, int64(5), s.FinalClock)
	assert.Equal(t, int64(5), s.SeekCount)
	assert.Equal(t, StateMissed, req.State)
	assert.Equal(t, int64(5), req.CompletionTime)
	assert.Equal(t, []int{0}, ids(sim.Missed))
}

func TestSimulator_FDScan_InfeasibleRequest_ExpiresWithoutSeeking(t *testing.T) {
	req := realTime(0, 5, 0, 3)

	_, s, rec := mustRun(t, 10, policies(FirstComeFirstServed, FeasibleDeadlineScan), req)

	assert.Equal(t, 1, s.Missed)
	assert.Equal(t, int64(3), s.FinalClock)
	assert.Zero(t, s.SeekCount)
	assert.Zero(t, rec.Len())
	assert.Equal(t, int64(3), req.CompletionTime)
}

func TestSimulator_ZeroHorizon_MissedOnRelease(t *testing.T) {
	req := realTime(0, 0, 0, 0)

	_, s, _ := mustRun(t, 10, policies(Scan, EarliestDeadlineFirst), req)

	assert.Equal(t, 1, s.Missed)
	assert.Zero(t, s.FinalClock)
}

func TestSimulator_FDScan_ServesBestEffortInPassing(t *testing.T) {
	// GIVEN a best-effort request on track 2 and a loose real-time one on track 5
	be, rt := bestEffort(0, 2, 0), realTime(1, 5, 0, 100)

	// WHEN FD-SCAN drives the real-time tier
	sim, s, _ := mustRun(t, 10, policies(FirstComeFirstServed, FeasibleDeadlineScan), be, rt)

	// THEN the best-effort request completes as the head crosses track 2
	assert.Equal(t, []int{0, 1}, ids(sim.Completed))
	assert.Equal(t, int64(5), s.SeekCount)
	assert.Equal(t, int64(5), s.FinalClock)
	assert.Equal(t, int64(2), be.WaitingTime)
	assert.Equal(t, int64(2), be.ServiceTime)
	assert.Equal(t, int64(2), be.CompletionTime)
	assert.Equal(t, 1, s.CompletedBestEffort)
	assert.Equal(t, 1, s.CompletedRealTime)
}

func TestSimulator_EDF_DoesNotServeInPassing(t *testing.T) {
	be, rt := bestEffort(0, 2, 0), realTime(1, 5, 0, 100)

	sim, s, _ := mustRun(t, 10, policies(FirstComeFirstServed, EarliestDeadlineFirst), be, rt)

	// The head returns from track 5 to track 2 afterwards.
	assert.Equal(t, []int{1, 0}, ids(sim.Completed))
	assert.Equal(t, int64(8), s.SeekCount)
	assert.Equal(t, int64(8), s.FinalClock)
	assert.Equal(t, int64(5), be.WaitingTime)
}

func TestSimulator_RealTimePreemptsBestEffort(t *testing.T) {
	// GIVEN a nearer best-effort request and a farther real-time one, both at t=0
	be, rt := bestEffort(0, 1, 0), realTime(1, 4, 0, 50)

	// WHEN a dual-tier run starts
	sim, _, rec := mustRun(t, 10, policies(ShortestSeekTimeFirst, EarliestDeadlineFirst), be, rt)

	// THEN the real-time request is served first
	assert.Equal(t, []int{1, 0}, ids(sim.Completed))
	assert.Equal(t, []int{1, 2, 3, 4, 3, 2, 1}, tracks(rec.Samples))
}

func TestSimulator_RealTimePeersAccrueWhileAnotherIsServed(t *testing.T) {
	a, b := realTime(0, 3, 0, 10), realTime(1, 5, 0, 20)

	_, s, _ := mustRun(t, 10, policies(FirstComeFirstServed, EarliestDeadlineFirst), a, b)

	assert.Equal(t, 2, s.Completed)
	assert.Zero(t, a.WaitingTime)
	assert.Equal(t, int64(3), b.WaitingTime)
	assert.InDelta(t, 1.5, s.AverageWaitingRealTime, 1e-9)
}

func TestSimulator_RealTimeDoesNotAccrueDuringBestEffortOrIdle(t *testing.T) {
	// GIVEN an infeasible real-time request and a best-effort one on track 2
	be, rt := bestEffort(0, 2, 0), realTime(1, 9, 0, 3)

	// WHEN FD-SCAN skips the real-time request
	_, s, _ := mustRun(t, 10, policies(FirstComeFirstServed, FeasibleDeadlineScan), be, rt)

	// THEN best-effort service and the idle tick leave its waiting time at zero
	assert.Equal(t, int64(3), s.FinalClock)
	assert.Equal(t, int64(2), s.SeekCount)
	assert.Equal(t, StateMissed, rt.State)
	assert.Zero(t, rt.WaitingTime)
}

func TestSimulator_SingleTier_DemotesRealTime(t *testing.T) {
	// GIVEN a real-time request whose deadline cannot be met
	req := realTime(0, 2, 0, 1)

	// WHEN no real-time policy is configured
	sim, s, _ := mustRun(t, 10, policies(Scan, NoPolicy), req)

	// THEN it is served as best-effort and nothing is missed
	assert.Equal(t, ClassBestEffort, req.Class)
	assert.Zero(t, req.DeadlineTime)
	assert.Equal(t, StateCompleted, req.State)
	assert.Zero(t, s.Missed)
	assert.Empty(t, sim.Missed)
	assert.Equal(t, 1, s.CompletedBestEffort)
}

func TestSimulator_Promotion_KeepsGenerationOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrackCount = 10
	reqs := []*Request{bestEffort(0, 5, 2), bestEffort(1, 6, 0), bestEffort(2, 7, 1), realTime(3, 8, 0, 50)}
	sim, err := NewSimulator(cfg, policies(FirstComeFirstServed, EarliestDeadlineFirst), reqs, nil)
	require.NoError(t, err)

	// WHEN the clock reaches 2 and promotion runs
	sim.Device.Clock = 2
	sim.promote()

	// THEN each tier holds its requests in generation order
	assert.Equal(t, []int{0, 1, 2}, ids(sim.ReadyQ.Items()))
	assert.Equal(t, []int{3}, ids(sim.RealtimeQ.Items()))
	assert.Empty(t, sim.Unreleased)
	assert.Equal(t, StateRealTimeReady, reqs[3].State)
	assert.Equal(t, int64(2), reqs[0].ReadyTime)
}

func TestSimulator_Run_EveryRequestEndsTerminal(t *testing.T) {
	reqs := []*Request{
		bestEffort(0, 9, 0), realTime(1, 4, 3, 8), bestEffort(2, 0, 5),
		realTime(3, 7, 6, 30), bestEffort(4, 4, 12), realTime(5, 1, 12, 13),
	}

	sim, s, rec := mustRun(t, 10, policies(CScan, FeasibleDeadlineScan), reqs...)

	testutil.AssertConservation(t, s.Completed, s.Missed, len(reqs))
	testutil.AssertTraceInBounds(t, rec.Samples, 10)
	testutil.AssertUnitSteps(t, rec.Samples, 0, 10, true)
	for _, r := range reqs {
		assert.True(t, r.State.IsTerminal(), "request %d ended %s", r.ID, r.State)
	}
	assert.Zero(t, sim.ReadyQ.Len())
	assert.Zero(t, sim.RealtimeQ.Len())
}
