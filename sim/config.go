package sim

import "fmt"

// Default workload parameters, matching the reference experiment.
const (
	DefaultTrackCount       = 1000
	DefaultRequestCount     = 50
	DefaultMaxArrivalTime   = 20000
	DefaultDeadlineHorizon  = 5000
	DefaultRealtimeFraction = 0.1
	DefaultSeed             = 412123420
)

// Config groups the workload and device parameters of one simulation run.
// Passed by value; the simulator and generator never modify it.
type Config struct {
	TrackCount       int     `yaml:"track_count"`       // tracks on the device (must be > 1)
	RequestCount     int     `yaml:"request_count"`     // requests generated at t=0 (must be > 0)
	MaxArrivalTime   int64   `yaml:"max_arrival_time"`  // arrivals drawn from [0, MaxArrivalTime) (must be > 0)
	DeadlineHorizon  int64   `yaml:"deadline_horizon"`  // real-time deadline = arrival + horizon (must be >= 0)
	RealtimeFraction float64 `yaml:"realtime_fraction"` // probability a request is real-time, in [0, 1]
	Seed             int64   `yaml:"seed"`              // workload RNG seed
}

// DefaultConfig returns the reference experiment parameters.
func DefaultConfig() Config {
	return Config{
		TrackCount:       DefaultTrackCount,
		RequestCount:     DefaultRequestCount,
		MaxArrivalTime:   DefaultMaxArrivalTime,
		DeadlineHorizon:  DefaultDeadlineHorizon,
		RealtimeFraction: DefaultRealtimeFraction,
		Seed:             DefaultSeed,
	}
}

// Validate rejects configurations that would never terminate or that leave
// nothing to average over.
func (c Config) Validate() error {
	if c.TrackCount <= 1 {
		return fmt.Errorf("track_count must be greater than 1, got %d", c.TrackCount)
	}
	if c.RequestCount <= 0 {
		return fmt.Errorf("request_count must be positive, got %d", c.RequestCount)
	}
	if c.MaxArrivalTime <= 0 {
		return fmt.Errorf("max_arrival_time must be positive, got %d", c.MaxArrivalTime)
	}
	if c.DeadlineHorizon < 0 {
		return fmt.Errorf("deadline_horizon must be non-negative, got %d", c.DeadlineHorizon)
	}
	if c.RealtimeFraction < 0 || c.RealtimeFraction > 1 {
		return fmt.Errorf("realtime_fraction must be in [0, 1], got %g", c.RealtimeFraction)
	}
	return nil
}

// PolicyConfig selects the policy of each tier.
type PolicyConfig struct {
	Policy         Policy // best-effort tier
	RealtimePolicy Policy // real-time tier; NoPolicy runs single-tier
}

// DualTier reports whether a real-time tier shares the device.
func (pc PolicyConfig) DualTier() bool {
	return pc.RealtimePolicy != NoPolicy
}

// Name identifies the combination, e.g. "Scan" or "Scan_EarliestDeadlineFirst".
func (pc PolicyConfig) Name() string {
	if !pc.DualTier() {
		return pc.Policy.String()
	}
	return pc.Policy.String() + "_" + pc.RealtimePolicy.String()
}

// Validate checks that each tier runs a policy it can use: deadline policies
// on the real-time tier only, the others on the best-effort tier only.
func (pc PolicyConfig) Validate() error {
	if _, ok := policyNames[pc.Policy]; !ok {
		return fmt.Errorf("best-effort policy is required")
	}
	if pc.Policy.IsDeadlinePolicy() {
		return fmt.Errorf("%v orders by deadline and cannot drive the best-effort tier", pc.Policy)
	}
	if !pc.DualTier() {
		return nil
	}
	if _, ok := policyNames[pc.RealtimePolicy]; !ok {
		return fmt.Errorf("unknown real-time policy %v", pc.RealtimePolicy)
	}
	if !pc.RealtimePolicy.IsDeadlinePolicy() {
		return fmt.Errorf("%v ignores deadlines and cannot drive the real-time tier", pc.RealtimePolicy)
	}
	return nil
}
