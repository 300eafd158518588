package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikolajkapica/hdd-schedulers/sim"
)

func testConfig() sim.Config {
	return sim.Config{
		TrackCount:       200,
		RequestCount:     500,
		MaxArrivalTime:   10000,
		DeadlineHorizon:  300,
		RealtimeFraction: 0.3,
		Seed:             7,
	}
}

func TestGenerateRequests_SameSeed_IdenticalSequences(t *testing.T) {
	// GIVEN two generations from the same config
	first, err := GenerateRequests(testConfig())
	require.NoError(t, err)
	second, err := GenerateRequests(testConfig())
	require.NoError(t, err)

	// THEN every request matches field for field
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, *first[i], *second[i], "request %d differs", i)
	}
}

func TestGenerateRequests_DifferentSeeds_DifferentSequences(t *testing.T) {
	cfgA, cfgB := testConfig(), testConfig()
	cfgB.Seed = cfgA.Seed + 1

	a, err := GenerateRequests(cfgA)
	require.NoError(t, err)
	b, err := GenerateRequests(cfgB)
	require.NoError(t, err)

	anyDifferent := false
	for i := range a {
		if a[i].Track != b[i].Track || a[i].ArrivalTime != b[i].ArrivalTime {
			anyDifferent = true
			break
		}
	}
	assert.True(t, anyDifferent, "different seeds produced identical workloads")
}

func TestGenerateRequests_FieldsWithinConfiguredRanges(t *testing.T) {
	cfg := testConfig()
	requests, err := GenerateRequests(cfg)
	require.NoError(t, err)
	require.Len(t, requests, cfg.RequestCount)

	for i, req := range requests {
		assert.Equal(t, i, req.ID, "IDs follow generation order")
		assert.GreaterOrEqual(t, req.Track, 0)
		assert.Less(t, req.Track, cfg.TrackCount)
		assert.GreaterOrEqual(t, req.ArrivalTime, int64(0))
		assert.Less(t, req.ArrivalTime, cfg.MaxArrivalTime)
		assert.Zero(t, req.WaitingTime)

		switch req.Class {
		case sim.ClassRealTime:
			assert.Equal(t, sim.StateRealTime, req.State)
			assert.Equal(t, req.ArrivalTime+cfg.DeadlineHorizon, req.DeadlineTime)
		case sim.ClassBestEffort:
			assert.Equal(t, sim.StateUnreleased, req.State)
			assert.Zero(t, req.DeadlineTime)
		default:
			t.Fatalf("request %d has unknown class %q", i, req.Class)
		}
	}
}

func TestGenerateRequests_RealtimeFractionExtremes(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     sim.RequestClass
	}{
		{"none real-time", 0, sim.ClassBestEffort},
		{"all real-time", 1, sim.ClassRealTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.RealtimeFraction = tt.fraction
			requests, err := GenerateRequests(cfg)
			require.NoError(t, err)
			for _, req := range requests {
				assert.Equal(t, tt.want, req.Class)
			}
		})
	}
}

func TestGenerateRequests_RealtimeFraction_DoesNotShiftTracksOrArrivals(t *testing.T) {
	// GIVEN the same seed with and without real-time requests
	cfgNone, cfgHalf := testConfig(), testConfig()
	cfgNone.RealtimeFraction = 0
	cfgHalf.RealtimeFraction = 0.5

	none, err := GenerateRequests(cfgNone)
	require.NoError(t, err)
	half, err := GenerateRequests(cfgHalf)
	require.NoError(t, err)

	// THEN only the class draw differs
	for i := range none {
		assert.Equal(t, none[i].Track, half[i].Track)
		assert.Equal(t, none[i].ArrivalTime, half[i].ArrivalTime)
	}
}

func TestGenerateRequests_InvalidConfig_ReturnsError(t *testing.T) {
	cfg := testConfig()
	cfg.RequestCount = 0

	requests, err := GenerateRequests(cfg)

	assert.Error(t, err)
	assert.Nil(t, requests)
}
