package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mikolajkapica/hdd-schedulers/sim"
)

// Combination names one policy pairing in defaults.yaml.
type Combination struct {
	Policy         string `yaml:"policy"`
	RealtimePolicy string `yaml:"realtime_policy"`
}

// File represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type File struct {
	Version      string        `yaml:"version"`
	Workload     sim.Config    `yaml:"workload"`
	Combinations []Combination `yaml:"combinations"`
}

// loadDefaultsConfig parses a defaults file. Workload keys missing from the
// file keep their built-in defaults; unknown keys are an error.
func loadDefaultsConfig(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading defaults file: %w", err)
	}
	return parseDefaultsConfig(data)
}

func parseDefaultsConfig(data []byte) (File, error) {
	f := File{Workload: sim.DefaultConfig()}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	return f, nil
}

// PolicyConfigs resolves every listed combination, failing on the first
// unknown or misplaced policy.
func (f File) PolicyConfigs() ([]sim.PolicyConfig, error) {
	combos := make([]sim.PolicyConfig, 0, len(f.Combinations))
	for i, c := range f.Combinations {
		pc, err := parsePolicies(c.Policy, c.RealtimePolicy)
		if err != nil {
			return nil, fmt.Errorf("combinations[%d]: %w", i, err)
		}
		combos = append(combos, pc)
	}
	return combos, nil
}
