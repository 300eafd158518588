package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mikolajkapica/hdd-schedulers/sim"
	"github.com/mikolajkapica/hdd-schedulers/sim/experiment"
	"github.com/mikolajkapica/hdd-schedulers/sim/trace"
	"github.com/mikolajkapica/hdd-schedulers/sim/workload"
)

var (
	// Workload flags, shared by every command
	trackCount       int     // Tracks on the device
	requestCount     int     // Number of requests
	maxArrivalTime   int64   // Arrivals are drawn from [0, max-arrival)
	deadlineHorizon  int64   // Real-time deadline offset from arrival
	realtimeFraction float64 // Probability a request is real-time
	seed             int64   // Workload RNG seed
	configPath       string  // Optional defaults.yaml
	scenarioName     string  // Optional built-in workload preset
	logLevel         string  // Log verbosity level

	// run flags
	policyName         string // Best-effort tier policy
	realtimePolicyName string // Real-time tier policy; "none" runs single-tier
	traceFile          string // Optional CSV trace output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hdd-schedulers",
	Short: "Discrete-event simulator for disk head scheduling policies",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd simulates a single policy combination
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling policy combination",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		pc, err := parsePolicies(policyName, realtimePolicyName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		var sink trace.Sink
		var csvOut *trace.CSVWriter
		if traceFile != "" {
			f, err := os.Create(traceFile)
			if err != nil {
				logrus.Fatalf("Failed to create trace file: %v", err)
			}
			defer f.Close()
			csvOut = trace.NewCSVWriter(f)
			sink = csvOut
		}

		summary, err := experiment.Run(cfg, pc, sink)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if csvOut != nil {
			if err := csvOut.Flush(); err != nil {
				logrus.Fatalf("Failed to write trace: %v", err)
			}
		}
		summary.Print(cmd.OutOrStdout())

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parsePolicies resolves the best-effort and real-time policy names into a
// validated combination.
func parsePolicies(bestEffort, realTime string) (sim.PolicyConfig, error) {
	be, err := sim.ParsePolicy(bestEffort)
	if err != nil {
		return sim.PolicyConfig{}, fmt.Errorf("--policy: %w", err)
	}
	rt, err := sim.ParsePolicy(realTime)
	if err != nil {
		return sim.PolicyConfig{}, fmt.Errorf("--rt-policy: %w", err)
	}
	pc := sim.PolicyConfig{Policy: be, RealtimePolicy: rt}
	if err := pc.Validate(); err != nil {
		return sim.PolicyConfig{}, err
	}
	return pc, nil
}

// resolveConfig layers the workload configuration: built-in defaults, then
// a scenario preset or the defaults file, then any flag the user set
// explicitly. The defaults file is returned for its combination list.
func resolveConfig(cmd *cobra.Command) (sim.Config, *File, error) {
	cfg := sim.DefaultConfig()
	var file *File

	switch {
	case scenarioName != "":
		preset, err := workload.Scenario(scenarioName, sim.DefaultSeed)
		if err != nil {
			return sim.Config{}, nil, err
		}
		cfg = preset
	case configPath != "":
		f, err := loadDefaultsConfig(configPath)
		if err != nil {
			return sim.Config{}, nil, err
		}
		cfg, file = f.Workload, &f
	}

	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, file, nil
}

// applyFlagOverrides copies only the flags the user actually set, so that
// flag defaults never overwrite values from a file or preset.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.Config) {
	flags := cmd.Flags()
	if flags.Changed("tracks") {
		cfg.TrackCount = trackCount
	}
	if flags.Changed("requests") {
		cfg.RequestCount = requestCount
	}
	if flags.Changed("max-arrival") {
		cfg.MaxArrivalTime = maxArrivalTime
	}
	if flags.Changed("deadline") {
		cfg.DeadlineHorizon = deadlineHorizon
	}
	if flags.Changed("rt-fraction") {
		cfg.RealtimeFraction = realtimeFraction
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
}

// init sets up CLI flags and subcommands
func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&trackCount, "tracks", sim.DefaultTrackCount, "Number of tracks on the device")
	pf.IntVar(&requestCount, "requests", sim.DefaultRequestCount, "Number of requests to generate")
	pf.Int64Var(&maxArrivalTime, "max-arrival", sim.DefaultMaxArrivalTime, "Upper bound (exclusive) of request arrival times, in ticks")
	pf.Int64Var(&deadlineHorizon, "deadline", sim.DefaultDeadlineHorizon, "Real-time deadline offset from arrival, in ticks")
	pf.Float64Var(&realtimeFraction, "rt-fraction", sim.DefaultRealtimeFraction, "Probability that a request is real-time")
	pf.Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for random request generation")
	pf.StringVar(&configPath, "config", "", "Path to a defaults YAML file")
	pf.StringVar(&scenarioName, "scenario", "", fmt.Sprintf("Built-in workload preset %v", workload.ScenarioNames()))
	pf.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.MarkFlagsMutuallyExclusive("config", "scenario")

	runCmd.Flags().StringVar(&policyName, "policy", "scan", "Best-effort policy (fcfs, sstf, scan, cscan)")
	runCmd.Flags().StringVar(&realtimePolicyName, "rt-policy", "none", "Real-time policy (edf, fdscan, none)")
	runCmd.Flags().StringVar(&traceFile, "trace-file", "", "Write the head trace as time,track CSV to this file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
