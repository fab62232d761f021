package systems

import "github.com/pthm-cable/snakeclash/config"

// BossState is the encounter state machine position.
type BossState uint8

const (
	BossInactive BossState = iota
	BossActive
	BossVictory
	BossDefeat
)

func (s BossState) String() string {
	switch s {
	case BossInactive:
		return "inactive"
	case BossActive:
		return "active"
	case BossVictory:
		return "victory"
	case BossDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// BossResult is the outcome of one proximity check.
type BossResult uint8

const (
	BossNoContact BossResult = iota
	BossDrained
	BossDefeated     // Player won
	BossKilledPlayer // Player lost
)

// BossEncounter tracks the boss health pool and encounter state.
type BossEncounter struct {
	cfg     *config.BossConfig
	state   BossState
	health  float64
	spawned bool // At least one boss this session
}

// NewBossEncounter creates an inactive encounter.
func NewBossEncounter(cfg *config.BossConfig) *BossEncounter {
	return &BossEncounter{cfg: cfg}
}

// ShouldSpawn reports whether a boss should appear for the given player level.
// Without rematch a session sees at most one boss.
func (b *BossEncounter) ShouldSpawn(playerLevel float64) bool {
	if playerLevel <= b.cfg.TriggerLevel {
		return false
	}
	switch b.state {
	case BossInactive:
		return !b.spawned
	case BossVictory:
		return b.cfg.Rematch
	default:
		return false
	}
}

// Activate moves the encounter to active with a full health pool.
func (b *BossEncounter) Activate() {
	b.state = BossActive
	b.health = b.cfg.Health
	b.spawned = true
}

// Resolve runs the proximity check for one tick.
func (b *BossEncounter) Resolve(playerLevel, bossLevel float64, dist float32, dt float64) BossResult {
	if b.state != BossActive || float64(dist) >= b.cfg.Proximity {
		return BossNoContact
	}
	if playerLevel < bossLevel {
		b.state = BossDefeat
		return BossKilledPlayer
	}
	b.health -= b.cfg.DrainRate * dt
	if b.health <= 0 {
		b.health = 0
		b.state = BossVictory
		return BossDefeated
	}
	return BossDrained
}

// HealthFraction returns health/max in [0, 1]; zero when no boss is active.
func (b *BossEncounter) HealthFraction() float64 {
	if b.state != BossActive || b.cfg.Health <= 0 {
		return 0
	}
	return b.health / b.cfg.Health
}

// Health returns the remaining health pool.
func (b *BossEncounter) Health() float64 { return b.health }

// State returns the current state.
func (b *BossEncounter) State() BossState { return b.state }

// Active reports whether a boss is in play.
func (b *BossEncounter) Active() bool { return b.state == BossActive }

// Reset returns to inactive and clears the per-session spawn flag.
func (b *BossEncounter) Reset() {
	b.state = BossInactive
	b.health = 0
	b.spawned = false
}
