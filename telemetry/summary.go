package telemetry

import "log/slog"

// SessionSummary is one row of sessions.csv.
type SessionSummary struct {
	Session       int     `csv:"session"`
	Seed          int64   `csv:"seed"`
	Outcome       string  `csv:"outcome"`
	Elapsed       float64 `csv:"elapsed"`
	Ticks         int64   `csv:"ticks"`
	FinalLevel    float64 `csv:"final_level"`
	SessionCoins  float64 `csv:"session_coins"`
	CoinsBanked   int     `csv:"coins_banked"`
	FoodPickups   int     `csv:"food_pickups"`
	ChestPickups  int     `csv:"chest_pickups"`
	Kills         int     `csv:"kills"`
	BossSpawns    int     `csv:"boss_spawns"`
	BossVictories int     `csv:"boss_victories"`
	ComboPeak     int     `csv:"combo_peak"`
}

// SessionTally accumulates whole-session counts alongside the windowed collector.
type SessionTally struct {
	FoodPickups   int
	ChestPickups  int
	Kills         int
	BossSpawns    int
	BossVictories int
	ComboPeak     int
}

// Add folds a window into the tally.
func (t *SessionTally) Add(w WindowStats) {
	t.FoodPickups += w.FoodPickups
	t.ChestPickups += w.ChestPickups
	t.Kills += w.Kills
	t.BossSpawns += w.BossSpawns
	t.BossVictories += w.BossVictories
	t.ComboPeak = max(t.ComboPeak, w.ComboPeak)
}

// Apply copies the tally into a summary.
func (t SessionTally) Apply(s *SessionSummary) {
	s.FoodPickups = t.FoodPickups
	s.ChestPickups = t.ChestPickups
	s.Kills = t.Kills
	s.BossSpawns = t.BossSpawns
	s.BossVictories = t.BossVictories
	s.ComboPeak = t.ComboPeak
}

// LogValue implements slog.LogValuer for structured logging.
func (s SessionSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("session", s.Session),
		slog.Int64("seed", s.Seed),
		slog.String("outcome", s.Outcome),
		slog.Float64("elapsed", s.Elapsed),
		slog.Int64("ticks", s.Ticks),
		slog.Float64("final_level", s.FinalLevel),
		slog.Float64("session_coins", s.SessionCoins),
		slog.Int("coins_banked", s.CoinsBanked),
		slog.Int("kills", s.Kills),
		slog.Int("boss_victories", s.BossVictories),
		slog.Int("combo_peak", s.ComboPeak),
	)
}
