// Summarises a finished run: seek cost, elapsed virtual time, waiting times
// and deadline compliance.

package sim

import (
	"fmt"
	"io"
	"slices"
)

// Summary aggregates statistics about a finished simulation
// for final reporting and cross-policy comparison.
type Summary struct {
	Policy         string `json:"policy"`
	RealtimePolicy string `json:"realtime_policy"`

	SeekCount  int64 `json:"seek_count"`  // unit head movements
	FinalClock int64 `json:"final_clock"` // ticks until the last request finished

	Completed           int `json:"completed"`
	Missed              int `json:"missed"`
	CompletedBestEffort int `json:"completed_best_effort"`
	CompletedRealTime   int `json:"completed_real_time"`

	// Waiting times are averaged over completed requests only; 0 when none completed.
	AverageWaitingTime       float64 `json:"average_waiting_time"`
	AverageWaitingBestEffort float64 `json:"average_waiting_best_effort"`
	AverageWaitingRealTime   float64 `json:"average_waiting_real_time"`
	WaitingP50               float64 `json:"waiting_p50"`
	WaitingP90               float64 `json:"waiting_p90"`
	WaitingP99               float64 `json:"waiting_p99"`
}

// NewSummary computes the summary of sim in its current state.
func NewSummary(sim *Simulator) Summary {
	s := Summary{
		Policy:         sim.Policies.Policy.String(),
		RealtimePolicy: sim.Policies.RealtimePolicy.String(),
		SeekCount:      sim.Device.SeekCount,
		FinalClock:     sim.Device.Clock,
		Completed:      len(sim.Completed),
		Missed:         len(sim.Missed),
	}

	all := make([]int64, 0, len(sim.Completed))
	var bestEffort, realTime []int64
	for _, req := range sim.Completed {
		all = append(all, req.WaitingTime)
		if req.IsRealTime() {
			realTime = append(realTime, req.WaitingTime)
		} else {
			bestEffort = append(bestEffort, req.WaitingTime)
		}
	}
	s.CompletedBestEffort = len(bestEffort)
	s.CompletedRealTime = len(realTime)
	s.AverageWaitingTime = CalculateMean(all)
	s.AverageWaitingBestEffort = CalculateMean(bestEffort)
	s.AverageWaitingRealTime = CalculateMean(realTime)

	if len(all) > 0 {
		slices.Sort(all)
		s.WaitingP50 = CalculatePercentile(all, 50)
		s.WaitingP90 = CalculatePercentile(all, 90)
		s.WaitingP99 = CalculatePercentile(all, 99)
	}
	return s
}

// Print displays the summary in a human-readable block.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Policy               : %s\n", s.Policy)
	fmt.Fprintf(w, "Real-time Policy     : %s\n", s.RealtimePolicy)
	fmt.Fprintf(w, "Seek Count           : %d\n", s.SeekCount)
	fmt.Fprintf(w, "Final Clock          : %d ticks\n", s.FinalClock)
	fmt.Fprintf(w, "Completed Requests   : %d (best-effort %d, real-time %d)\n", s.Completed, s.CompletedBestEffort, s.CompletedRealTime)
	fmt.Fprintf(w, "Missed Deadlines     : %d\n", s.Missed)
	if s.Completed > 0 {
		fmt.Fprintf(w, "Average Waiting Time : %.2f ticks\n", s.AverageWaitingTime)
		fmt.Fprintf(w, "Waiting p50/p90/p99  : %.2f / %.2f / %.2f ticks\n", s.WaitingP50, s.WaitingP90, s.WaitingP99)
	}
}
