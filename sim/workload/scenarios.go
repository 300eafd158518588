package workload

import (
	"fmt"
	"sort"

	"github.com/mikolajkapica/hdd-schedulers/sim"
)

// Built-in scenario presets for common workload patterns.
// Each returns a valid sim.Config ready for use with GenerateRequests.

// ScenarioReference is the reference experiment: 50 requests over 20000 ticks
// on a 1000-track disk.
func ScenarioReference(seed int64) sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

// ScenarioBurst packs the same request count into a short arrival window so
// the ready sets stay long and policy ordering dominates.
func ScenarioBurst(seed int64) sim.Config {
	cfg := ScenarioReference(seed)
	cfg.RequestCount = 200
	cfg.MaxArrivalTime = 2000
	return cfg
}

// ScenarioRealtimeHeavy makes half the requests real-time with a deadline
// shorter than a full sweep of the disk.
func ScenarioRealtimeHeavy(seed int64) sim.Config {
	cfg := ScenarioReference(seed)
	cfg.RequestCount = 100
	cfg.RealtimeFraction = 0.5
	cfg.DeadlineHorizon = 800
	return cfg
}

// ScenarioSmallDisk runs a dense workload on a 100-track disk, where sweeps
// are short and most requests sit close to the head.
func ScenarioSmallDisk(seed int64) sim.Config {
	cfg := ScenarioReference(seed)
	cfg.TrackCount = 100
	cfg.RequestCount = 300
	cfg.MaxArrivalTime = 5000
	cfg.DeadlineHorizon = 150
	cfg.RealtimeFraction = 0.2
	return cfg
}

var scenarios = map[string]func(int64) sim.Config{
	"reference":  ScenarioReference,
	"burst":      ScenarioBurst,
	"realtime":   ScenarioRealtimeHeavy,
	"small-disk": ScenarioSmallDisk,
}

// Scenario returns the named preset seeded with seed.
func Scenario(name string, seed int64) (sim.Config, error) {
	fn, ok := scenarios[name]
	if !ok {
		return sim.Config{}, fmt.Errorf("unknown scenario %q; valid: %v", name, ScenarioNames())
	}
	return fn(seed), nil
}

// ScenarioNames lists the preset names in sorted order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
