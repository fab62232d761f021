package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	Session     int     `csv:"session"`
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"sim_time"`

	// State at window end
	PlayerLevel     float64 `csv:"player_level"`
	ArenaRadius     float64 `csv:"arena_radius"`
	ComboMultiplier float64 `csv:"combo_mult"`
	SessionCoins    float64 `csv:"session_coins"`
	Items           int     `csv:"items"`
	Bots            int     `csv:"bots"`

	// Events during window
	FoodPickups   int     `csv:"food_pickups"`
	ChestPickups  int     `csv:"chest_pickups"`
	Kills         int     `csv:"kills"`
	BossSpawns    int     `csv:"boss_spawns"`
	BossVictories int     `csv:"boss_victories"`
	ComboPeak     int     `csv:"combo_peak"`
	LevelGained   float64 `csv:"level_gained"`
	CoinsGained   float64 `csv:"coins_gained"`

	// Opponent level distribution (sampled at window end)
	BotLevelMean float64 `csv:"bot_level_mean"`
	BotLevelStd  float64 `csv:"bot_level_std"`
	BotLevelP10  float64 `csv:"bot_level_p10"`
	BotLevelP50  float64 `csv:"bot_level_p50"`
	BotLevelP90  float64 `csv:"bot_level_p90"`
}

// ComputeLevelStats calculates mean, std, and empirical percentiles.
// Std is zero for fewer than two values.
func ComputeLevelStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if n > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("session", s.Session),
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("sim_time", s.WindowEnd),
		slog.Float64("player_level", s.PlayerLevel),
		slog.Float64("arena_radius", s.ArenaRadius),
		slog.Float64("combo_mult", s.ComboMultiplier),
		slog.Float64("session_coins", s.SessionCoins),
		slog.Int("items", s.Items),
		slog.Int("bots", s.Bots),
		slog.Int("food_pickups", s.FoodPickups),
		slog.Int("chest_pickups", s.ChestPickups),
		slog.Int("kills", s.Kills),
		slog.Int("boss_spawns", s.BossSpawns),
		slog.Int("boss_victories", s.BossVictories),
		slog.Int("combo_peak", s.ComboPeak),
		slog.Float64("level_gained", s.LevelGained),
		slog.Float64("coins_gained", s.CoinsGained),
		slog.Float64("bot_level_mean", s.BotLevelMean),
		slog.Float64("bot_level_std", s.BotLevelStd),
		slog.Float64("bot_level_p50", s.BotLevelP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
