package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulator_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LossRate = 2.0
	_, err := NewSimulator(cfg)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewSimulator with bad config: got %v, want ErrConfiguration", err)
	}
}

func TestSimulator_LosslessSingleRing_FullCoverage(t *testing.T) {
	// GIVEN a 3x3 grid with zero loss, every node in range of the sink
	cfg := Config{
		MaxTransmissions: 1,
		LossRate:         0.0,
		MaxHops:          1,
		GuardTime:        100,
		Seed:             42,
		Interference:     true,
	}
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	// WHEN the run completes
	res := s.Run()

	// THEN the flood reaches every node in the trigger tick
	assert.Equal(t, 9, res.DeviceCount)
	assert.True(t, res.FloodSuccess)
	assert.Equal(t, 1.0, res.FloodCoverage)
	assert.Equal(t, Tick(100), res.CompletionTime)

	// the sink triggers once and all nine nodes relay once
	assert.Equal(t, 10, res.TotalTransmissions)
}

func TestSimulator_LossRateOne_OnlySinkSeesFlood(t *testing.T) {
	// GIVEN certain loss on every transmission
	cfg := Config{
		MaxTransmissions: 1,
		LossRate:         1.0,
		MaxHops:          1,
		GuardTime:        100,
		Seed:             42,
		Interference:     true,
	}
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	res := s.Run()

	// THEN coverage is the initiator alone
	assert.False(t, res.FloodSuccess)
	assert.InDelta(t, 1.0/9.0, res.FloodCoverage, 1e-9)
	assert.Equal(t, Tick(0), res.CompletionTime)

	// the sink still transmits its trigger and its relay
	assert.Equal(t, 2, res.TotalTransmissions)
}

func TestSimulator_SameSeed_SameOutcome(t *testing.T) {
	// GIVEN two simulators built from the identical config
	cfg := DefaultConfig()
	cfg.Seed = 42

	run := func() (Results, map[NodeID]map[string][]Tick) {
		s, err := NewSimulator(cfg)
		require.NoError(t, err)
		res := s.Run()
		books := make(map[NodeID]map[string][]Tick)
		for _, n := range s.Registry().Nodes() {
			books[n.ID()] = n.FloodTimes()
		}
		return res, books
	}

	// WHEN both run to completion
	res1, books1 := run()
	res2, books2 := run()

	// THEN results and per-node reception bookkeeping are bit-identical,
	// flood id strings included
	assert.Equal(t, res1, res2)
	assert.Equal(t, books1, books2)
}

func TestSimulator_DifferentSeeds_MayDiverge(t *testing.T) {
	// at loss 0.6 the first-ring receptions depend on the draws, so at
	// least one of a batch of seeds should deviate from the rest
	cfg := DefaultConfig()

	seen := map[float64]bool{}
	for seed := int64(0); seed < 8; seed++ {
		cfg.Seed = seed
		s, err := NewSimulator(cfg)
		require.NoError(t, err)
		seen[s.Run().FloodCoverage] = true
	}
	assert.Greater(t, len(seen), 1, "eight different seeds all produced identical coverage")
}

func TestSimulator_GridSizeMatchesMaxHops(t *testing.T) {
	for _, hops := range []int{1, 2, 3} {
		cfg := DefaultConfig()
		cfg.MaxHops = hops
		s, err := NewSimulator(cfg)
		require.NoError(t, err)
		side := 2*hops + 1
		assert.Equal(t, side*side, s.Registry().Len(), "maxHops=%d", hops)
	}
}
