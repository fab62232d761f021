package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/game"
)

func TestParamVectorMatchesDefaults(t *testing.T) {
	pv := NewParamVector()
	cfg := config.MustDefaults()
	assert.Equal(t, pv.DefaultVector(), pv.ExtractFromConfig(cfg))
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	require.Len(t, back, pv.Dim())
	for i := range raw {
		assert.InDelta(t, raw[i], back[i], 1e-9, pv.Specs[i].Name)
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.MustDefaults()

	values := pv.DefaultVector()
	values[0] = -10 // item_weight below range
	values[5] = 2.0 // boundary_guard above range
	pv.ApplyToConfig(cfg, values)

	assert.Equal(t, 0.1, cfg.Autopilot.ItemWeight)
	assert.Equal(t, 0.98, cfg.Autopilot.BoundaryGuard)
	assert.Equal(t, 3.0, cfg.Autopilot.ChestBias)
}

func TestComputeFitness(t *testing.T) {
	results := []game.RunResult{
		{Outcome: game.OutcomeTimeExpired, SessionCoins: 100.9},
		{Outcome: game.OutcomeDefeated, SessionCoins: 100.2, BossVictories: 1},
	}
	fitness, quality := computeFitness(results)

	// Equal floored coins: zero spread, half survived, half beat the boss
	wantQuality := 0.5*0.5 + 0.3*1 + 0.2*0.5
	assert.InDelta(t, wantQuality, quality, 1e-9)
	assert.InDelta(t, -100*(1+0.2*wantQuality), fitness, 1e-9)
}

func TestComputeQualitySingleSession(t *testing.T) {
	q := computeQuality(1, 50, math.NaN(), 0)
	assert.InDelta(t, 0.5, q, 1e-9)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2m05s", formatDuration(125*time.Second))
	assert.Equal(t, "1h01m01s", formatDuration(time.Hour+61*time.Second))
}
