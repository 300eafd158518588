package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mikolajkapica/hdd-schedulers/sim"
	"github.com/mikolajkapica/hdd-schedulers/sim/experiment"
)

var (
	traceDir    string
	metricsFile string
	plotScript  string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every policy combination on the same workload",
	Long: "Run each best-effort policy alone and paired with each real-time policy " +
		"on one generated workload, print a comparison table and optionally write " +
		"per-combination traces, Prometheus metrics and plots.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, file, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		combos := experiment.DefaultCombinations()
		if file != nil && len(file.Combinations) > 0 {
			combos, err = file.PolicyConfigs()
			if err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Infof("Comparing %d combinations: %d requests on %d tracks, seed %d",
			len(combos), cfg.RequestCount, cfg.TrackCount, cfg.Seed)
		logrus.Debugf("Combinations: %v", combinationNames(combos))

		results, err := experiment.RunAll(cfg, combos, traceDir)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		experiment.WriteTable(cmd.OutOrStdout(), results)

		if metricsFile != "" {
			if err := experiment.WriteMetrics(metricsFile, results); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Wrote metrics to %s", metricsFile)
		}
		if plotScript != "" {
			if traceDir == "" {
				logrus.Warnf("--plot-script given without --trace-dir; nothing to plot")
			} else if err := experiment.Plot(plotScript); err != nil {
				logrus.Errorf("Plotting failed: %v", err)
			}
		}
	},
}

// combinationNames lists the names of combos for log output.
func combinationNames(combos []sim.PolicyConfig) []string {
	names := make([]string, len(combos))
	for i, pc := range combos {
		names[i] = pc.Name()
	}
	return names
}

func init() {
	compareCmd.Flags().StringVar(&traceDir, "trace-dir", "csv", "Directory for per-combination time,track CSV traces (empty disables)")
	compareCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write results in Prometheus text format to this file")
	compareCmd.Flags().StringVar(&plotScript, "plot-script", "", "Python script to run over the traces after all runs")

	rootCmd.AddCommand(compareCmd)
}
