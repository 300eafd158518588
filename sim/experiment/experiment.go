// Package experiment runs policy combinations against a shared workload and
// collects their summaries and traces for comparison.
package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikolajkapica/hdd-schedulers/sim"
	"github.com/mikolajkapica/hdd-schedulers/sim/trace"
	"github.com/mikolajkapica/hdd-schedulers/sim/workload"
)

// Result bundles all outputs from one combination run.
type Result struct {
	Policies sim.PolicyConfig
	Summary  sim.Summary
	Trace    *trace.TraceSummary
	// TracePath is the CSV file the trace was written to; empty if none.
	TracePath string

	WallTime time.Duration // wall-clock duration of the run
}

// Run generates the workload described by cfg and simulates it under
// policies, streaming head movements to sink (nil discards them).
func Run(cfg sim.Config, policies sim.PolicyConfig, sink trace.Sink) (sim.Summary, error) {
	requests, err := workload.GenerateRequests(cfg)
	if err != nil {
		return sim.Summary{}, err
	}
	s, err := sim.NewSimulator(cfg, policies, requests, sink)
	if err != nil {
		return sim.Summary{}, err
	}
	return s.Run(), nil
}

// DefaultCombinations returns every best-effort policy alone, then paired
// with each real-time policy.
func DefaultCombinations() []sim.PolicyConfig {
	var bestEffort, realTime []sim.Policy
	for _, p := range sim.AllPolicies {
		if p.IsDeadlinePolicy() {
			realTime = append(realTime, p)
		} else {
			bestEffort = append(bestEffort, p)
		}
	}

	combos := make([]sim.PolicyConfig, 0, len(bestEffort)*(len(realTime)+1))
	for _, be := range bestEffort {
		combos = append(combos, sim.PolicyConfig{Policy: be, RealtimePolicy: sim.NoPolicy})
	}
	for _, rt := range realTime {
		for _, be := range bestEffort {
			combos = append(combos, sim.PolicyConfig{Policy: be, RealtimePolicy: rt})
		}
	}
	return combos
}

// TraceFileName is the CSV file name used for a combination's trace.
func TraceFileName(policies sim.PolicyConfig) string {
	return policies.Name() + ".csv"
}

// RunAll runs each combination on the same workload, one after another.
// When traceDir is non-empty every trace is written to traceDir/<name>.csv.
func RunAll(cfg sim.Config, combos []sim.PolicyConfig, traceDir string) ([]Result, error) {
	if traceDir != "" {
		if err := os.MkdirAll(traceDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
	}

	results := make([]Result, 0, len(combos))
	for _, pc := range combos {
		res, err := runOne(cfg, pc, traceDir)
		if err != nil {
			return results, fmt.Errorf("%s: %w", pc.Name(), err)
		}
		logrus.Infof("%-40s seeks=%d clock=%d completed=%d missed=%d avg_wait=%.2f",
			pc.Name(), res.Summary.SeekCount, res.Summary.FinalClock,
			res.Summary.Completed, res.Summary.Missed, res.Summary.AverageWaitingTime)
		results = append(results, res)
	}
	return results, nil
}

func runOne(cfg sim.Config, pc sim.PolicyConfig, traceDir string) (res Result, err error) {
	res.Policies = pc
	recorder := trace.NewRecorder()
	var sink trace.Sink = recorder

	var csvOut *trace.CSVWriter
	if traceDir != "" {
		res.TracePath = filepath.Join(traceDir, TraceFileName(pc))
		f, createErr := os.Create(res.TracePath)
		if createErr != nil {
			return res, fmt.Errorf("creating trace file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("closing trace file: %w", closeErr)
			}
		}()
		csvOut = trace.NewCSVWriter(f)
		sink = trace.Tee(recorder, csvOut)
	}

	start := time.Now()
	res.Summary, err = Run(cfg, pc, sink)
	res.WallTime = time.Since(start)
	if err != nil {
		return res, err
	}
	if csvOut != nil {
		if err := csvOut.Flush(); err != nil {
			return res, err
		}
	}
	res.Trace = trace.Summarize(recorder.Samples, 0)
	return res, nil
}
