package trace

// TraceSummary aggregates statistics from a sample sequence.
type TraceSummary struct {
	Samples  int
	MinTrack int
	MaxTrack int
	// Reversals counts changes of movement direction between unit steps.
	// A wrap from the top track back to track 0 is counted in Wraps instead.
	Reversals int
	Wraps     int
	LastTime  int64
}

// Summarize computes aggregate statistics from samples recorded by a device
// whose head started on startTrack.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(samples []Sample, startTrack int) *TraceSummary {
	summary := &TraceSummary{}
	if len(samples) == 0 {
		return summary
	}

	summary.Samples = len(samples)
	summary.MinTrack = samples[0].Track
	summary.MaxTrack = samples[0].Track

	prev := startTrack
	lastDir := 0
	for _, s := range samples {
		summary.MinTrack = min(summary.MinTrack, s.Track)
		summary.MaxTrack = max(summary.MaxTrack, s.Track)

		delta := s.Track - prev
		switch {
		case delta == 1 || delta == -1:
			if lastDir != 0 && delta != lastDir {
				summary.Reversals++
			}
			lastDir = delta
		case delta < -1:
			// only a wraparound moves the head more than one track
			summary.Wraps++
			lastDir = 1
		}
		prev = s.Track
	}
	summary.LastTime = samples[len(samples)-1].Time

	return summary
}
