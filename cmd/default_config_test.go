package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikolajkapica/hdd-schedulers/sim"
)

func TestParseDefaultsConfig_PartialWorkload_KeepsDefaults(t *testing.T) {
	// GIVEN a file that only sets the track count
	data := []byte("version: \"1\"\nworkload:\n  track_count: 200\n")

	// WHEN it is parsed
	f, err := parseDefaultsConfig(data)

	// THEN the other workload fields keep their built-in values
	require.NoError(t, err)
	want := sim.DefaultConfig()
	want.TrackCount = 200
	assert.Equal(t, want, f.Workload)
	assert.Empty(t, f.Combinations)
}

func TestParseDefaultsConfig_UnknownKey_ReturnsError(t *testing.T) {
	// a typo must not be silently ignored
	_, err := parseDefaultsConfig([]byte("workload:\n  track_cuont: 200\n"))
	assert.Error(t, err)

	_, err = parseDefaultsConfig([]byte("workloads: {}\n"))
	assert.Error(t, err)
}

func TestFile_PolicyConfigs(t *testing.T) {
	f, err := parseDefaultsConfig([]byte(`
combinations:
  - policy: sstf
  - policy: cscan
    realtime_policy: fdscan
`))
	require.NoError(t, err)

	combos, err := f.PolicyConfigs()

	require.NoError(t, err)
	assert.Equal(t, []sim.PolicyConfig{
		{Policy: sim.ShortestSeekTimeFirst, RealtimePolicy: sim.NoPolicy},
		{Policy: sim.CScan, RealtimePolicy: sim.FeasibleDeadlineScan},
	}, combos)
}

func TestFile_PolicyConfigs_MisplacedPolicy_ReturnsError(t *testing.T) {
	f := File{Combinations: []Combination{{Policy: "edf"}}}

	_, err := f.PolicyConfigs()

	assert.Error(t, err)
}

func TestLoadDefaultsConfig_RepositoryFile(t *testing.T) {
	path := "defaults.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Join("..", "defaults.yaml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skip("defaults.yaml not found, skipping integration test")
		}
	}

	f, err := loadDefaultsConfig(path)
	require.NoError(t, err)
	assert.NoError(t, f.Workload.Validate())
	_, err = f.PolicyConfigs()
	assert.NoError(t, err)
}

func TestLoadDefaultsConfig_MissingFile_ReturnsError(t *testing.T) {
	_, err := loadDefaultsConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
