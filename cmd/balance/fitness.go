package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/economy"
	"github.com/pthm-cable/snakeclash/game"
)

// FitnessEvaluator plays headless autopilot sessions and scores the weights.
type FitnessEvaluator struct {
	params   *ParamVector
	sessions int
	seeds    []int64
	base     *config.Config

	mu          sync.Mutex
	bestFitness float64
	bestResults []game.RunResult
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, sessions int, seeds []int64, base *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		sessions:    max(sessions, 1),
		seeds:       seeds,
		base:        base,
		bestFitness: math.Inf(1),
	}
}

// BestResults returns the session results of the best evaluation so far.
func (fe *FitnessEvaluator) BestResults() []game.RunResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestResults
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	results []game.RunResult
	err     error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative mean session currency scaled by a quality bonus.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Each seed gets its own sessions and repository
	out := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			res, err := game.RunHeadless(cfg, economy.NewMemoryRepository(), game.HeadlessOptions{
				Sessions: fe.sessions,
				Seed:     s,
			})
			out[idx] = seedResult{results: res, err: err}
		}(i, seed)
	}
	wg.Wait()

	var all []game.RunResult
	for _, r := range out {
		if r.err != nil {
			// Configs the session rejects are worst-case
			return math.Inf(1)
		}
		all = append(all, r.results...)
	}

	fitness, quality := computeFitness(all)

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestResults = all
	}
	fe.lastQuality = quality
	fe.mu.Unlock()

	return fitness
}

// copyConfig returns a copy of the base config. Config holds only value
// sections, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.base
	return &cfg
}

// Quality component weights.
const (
	qualityWeightSurvival  = 0.5
	qualityWeightStability = 0.3
	qualityWeightBoss      = 0.2
)

// computeFitness scores a batch of sessions.
// Formula: -(meanCoins × (1.0 + 0.2 × quality))
// Currency dominates; quality separates weights with similar earnings.
func computeFitness(results []game.RunResult) (fitness, quality float64) {
	if len(results) == 0 {
		return 0, 0
	}
	coins := make([]float64, len(results))
	var survived, bossWins float64
	for i, r := range results {
		coins[i] = math.Floor(r.SessionCoins)
		if r.Outcome == game.OutcomeTimeExpired {
			survived++
		}
		if r.BossVictories > 0 {
			bossWins++
		}
	}
	mean, std := stat.MeanStdDev(coins, nil)
	quality = computeQuality(survived/float64(len(results)), mean, std, bossWins/float64(len(results)))
	return -(mean * (1.0 + 0.2*quality)), quality
}

// computeQuality combines survival rate, earnings stability and boss rate
// into [0, 1].
func computeQuality(survivalRate, mean, std, bossRate float64) float64 {
	stability := 0.0
	if mean > 0 && !math.IsNaN(std) {
		cv := std / mean
		stability = math.Exp(-cv * cv)
	}
	q := qualityWeightSurvival*survivalRate +
		qualityWeightStability*stability +
		qualityWeightBoss*bossRate
	return clamp01(q)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
