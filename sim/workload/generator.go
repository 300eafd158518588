// Package workload generates the synthetic request streams the simulator runs on.
package workload

import (
	"fmt"
	"math/rand"

	"github.com/mikolajkapica/hdd-schedulers/sim"
)

// GenerateRequests creates cfg.RequestCount requests from cfg.Seed.
// Deterministic given the same config: identical seeds yield identical
// sequences, which cross-policy comparison relies on.
// Requests are returned in generation order with IDs 0..n-1; they are
// not sorted by arrival time.
func GenerateRequests(cfg sim.Config) ([]*sim.Request, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload config: %w", err)
	}

	rng := newRandFromSeed(cfg.Seed)
	requests := make([]*sim.Request, 0, cfg.RequestCount)
	for i := 0; i < cfg.RequestCount; i++ {
		// draw order is part of the stream: track, arrival, class
		track := rng.Intn(cfg.TrackCount)
		arrival := rng.Int63n(cfg.MaxArrivalTime)
		class := sim.ClassBestEffort
		if rng.Float64() < cfg.RealtimeFraction {
			class = sim.ClassRealTime
		}
		requests = append(requests, sim.NewRequest(i, class, track, arrival, arrival+cfg.DeadlineHorizon))
	}
	return requests, nil
}

// newRandFromSeed creates a new *rand.Rand from a seed (avoids importing math/rand in callers).
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
