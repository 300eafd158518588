// Package trace provides head-movement trace recording for disk scheduling runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Sample is one unit head movement: the device clock after the step and the
// track the head landed on.
type Sample struct {
	Time  int64
	Track int
}

// Sink consumes samples in the order the device produces them.
type Sink interface {
	Record(s Sample)
}

// Recorder collects samples in memory.
type Recorder struct {
	Samples []Sample
}

// NewRecorder creates a Recorder ready for recording.
func NewRecorder() *Recorder {
	return &Recorder{Samples: make([]Sample, 0)}
}

// Record appends a sample.
func (r *Recorder) Record(s Sample) {
	r.Samples = append(r.Samples, s)
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int {
	return len(r.Samples)
}

type discard struct{}

func (discard) Record(Sample) {}

// Discard is a Sink that drops every sample.
var Discard Sink = discard{}

// Tee fans every sample out to all of the given sinks, in order.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) Record(s Sample) {
	for _, sink := range t {
		sink.Record(s)
	}
}
