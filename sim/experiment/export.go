package experiment

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var runLabels = []string{"policy", "realtime_policy"}

// RegisterResults exposes every result as gauges on reg, labelled by policy
// and real-time policy.
func RegisterResults(reg prometheus.Registerer, results []Result) error {
	seeks := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hdd_sim_seek_count",
		Help: "Unit head movements over the whole run.",
	}, runLabels)
	clock := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hdd_sim_final_clock",
		Help: "Virtual ticks until the last request finished.",
	}, runLabels)
	waiting := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hdd_sim_average_waiting_time",
		Help: "Mean waiting time of completed requests, in ticks.",
	}, runLabels)
	requests := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hdd_sim_requests",
		Help: "Requests by terminal outcome.",
	}, append(append([]string{}, runLabels...), "outcome"))

	for _, c := range []prometheus.Collector{seeks, clock, waiting, requests} {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("registering run metrics: %w", err)
		}
	}

	for _, r := range results {
		s := r.Summary
		seeks.WithLabelValues(s.Policy, s.RealtimePolicy).Set(float64(s.SeekCount))
		clock.WithLabelValues(s.Policy, s.RealtimePolicy).Set(float64(s.FinalClock))
		waiting.WithLabelValues(s.Policy, s.RealtimePolicy).Set(s.AverageWaitingTime)
		requests.WithLabelValues(s.Policy, s.RealtimePolicy, "completed").Set(float64(s.Completed))
		requests.WithLabelValues(s.Policy, s.RealtimePolicy, "missed").Set(float64(s.Missed))
	}
	return nil
}

// WriteMetrics writes results to path in the Prometheus text exposition
// format, suitable for a node_exporter textfile collector.
func WriteMetrics(path string, results []Result) error {
	reg := prometheus.NewRegistry()
	if err := RegisterResults(reg, results); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
