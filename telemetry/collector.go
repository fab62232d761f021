// Package telemetry aggregates session events into windowed stats and
// writes them as CSV and JSON for balancing runs.
package telemetry

import "github.com/pthm-cable/snakeclash/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStart float64

	// Event counters for current window
	foodPickups   int
	chestPickups  int
	kills         int
	bossSpawns    int
	bossVictories int
	comboPeak     int
	levelGained   float64
	coinsGained   float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordPickup records an item pickup.
func (c *Collector) RecordPickup(kind components.ItemKind, levelGain, coinGain float64) {
	if kind == components.KindChest {
		c.chestPickups++
	} else {
		c.foodPickups++
	}
	c.levelGained += levelGain
	c.coinsGained += coinGain
}

// RecordKill records a bot kill.
func (c *Collector) RecordKill(levelGain, coinGain float64) {
	c.kills++
	c.levelGained += levelGain
	c.coinsGained += coinGain
}

// RecordCombo tracks the peak combo count in the window.
func (c *Collector) RecordCombo(count int) {
	if count > c.comboPeak {
		c.comboPeak = count
	}
}

// RecordBossSpawn records a boss appearing.
func (c *Collector) RecordBossSpawn() {
	c.bossSpawns++
}

// RecordBossVictory records a boss defeated by the player.
func (c *Collector) RecordBossVictory(levelGain, coinGain float64) {
	c.bossVictories++
	c.levelGained += levelGain
	c.coinsGained += coinGain
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush(elapsed float64) bool {
	return elapsed-c.windowStart >= c.windowDurationSec
}

// Sample is the state observed at the end of a window.
type Sample struct {
	Session         int
	Elapsed         float64
	PlayerLevel     float64
	ArenaRadius     float64
	ComboMultiplier float64
	SessionCoins    float64
	ItemCount       int
	BotLevels       []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(s Sample) WindowStats {
	mean, std, p10, p50, p90 := ComputeLevelStats(s.BotLevels)

	stats := WindowStats{
		Session:     s.Session,
		WindowStart: c.windowStart,
		WindowEnd:   s.Elapsed,

		PlayerLevel:     s.PlayerLevel,
		ArenaRadius:     s.ArenaRadius,
		ComboMultiplier: s.ComboMultiplier,
		SessionCoins:    s.SessionCoins,
		Items:           s.ItemCount,
		Bots:            len(s.BotLevels),

		FoodPickups:   c.foodPickups,
		ChestPickups:  c.chestPickups,
		Kills:         c.kills,
		BossSpawns:    c.bossSpawns,
		BossVictories: c.bossVictories,
		ComboPeak:     c.comboPeak,
		LevelGained:   c.levelGained,
		CoinsGained:   c.coinsGained,

		BotLevelMean: mean,
		BotLevelStd:  std,
		BotLevelP10:  p10,
		BotLevelP50:  p50,
		BotLevelP90:  p90,
	}

	c.Reset(s.Elapsed)
	return stats
}

// Reset clears counters and starts a new window at the given time.
func (c *Collector) Reset(windowStart float64) {
	c.windowStart = windowStart
	c.foodPickups = 0
	c.chestPickups = 0
	c.kills = 0
	c.bossSpawns = 0
	c.bossVictories = 0
	c.comboPeak = 0
	c.levelGained = 0
	c.coinsGained = 0
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
