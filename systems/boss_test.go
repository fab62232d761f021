package systems

import (
	"testing"

	"github.com/pthm-cable/snakeclash/config"
)

func TestBossSpawnThreshold(t *testing.T) {
	cfg := config.MustDefaults().Boss
	b := NewBossEncounter(&cfg)

	if b.ShouldSpawn(99) || b.ShouldSpawn(100) {
		t.Error("boss should not spawn at or below the trigger level")
	}
	if !b.ShouldSpawn(101) {
		t.Fatal("boss should spawn above the trigger level")
	}

	b.Activate()
	if b.State() != BossActive || b.Health() != 500 {
		t.Errorf("after Activate: state=%v health=%v", b.State(), b.Health())
	}
	if b.ShouldSpawn(200) {
		t.Error("boss should not spawn while one is active")
	}
	if b.HealthFraction() != 1 {
		t.Errorf("HealthFraction = %v, want 1", b.HealthFraction())
	}
}

func TestBossDrainToVictory(t *testing.T) {
	cfg := config.MustDefaults().Boss
	b := NewBossEncounter(&cfg)
	b.Activate()

	// Out of range: nothing happens
	if r := b.Resolve(600, 500, 10, 0.1); r != BossNoContact {
		t.Errorf("at proximity edge: result %v, want no contact", r)
	}

	// 500 health at 50/s needs 10s
	var result BossResult
	ticks := 0
	for result != BossDefeated && ticks < 200 {
		result = b.Resolve(600, 500, 5, 0.1)
		ticks++
	}
	if result != BossDefeated {
		t.Fatal("boss never defeated")
	}
	if ticks < 99 || ticks > 101 {
		t.Errorf("ticks to victory = %d, want ~100", ticks)
	}
	if b.State() != BossVictory {
		t.Errorf("state = %v, want victory", b.State())
	}
	if b.HealthFraction() != 0 {
		t.Errorf("HealthFraction after victory = %v", b.HealthFraction())
	}
}

func TestBossDefeatsWeakerPlayer(t *testing.T) {
	cfg := config.MustDefaults().Boss
	b := NewBossEncounter(&cfg)
	b.Activate()

	if r := b.Resolve(120, 500, 3, 0.1); r != BossKilledPlayer {
		t.Errorf("result = %v, want player killed", r)
	}
	if b.State() != BossDefeat {
		t.Errorf("state = %v, want defeat", b.State())
	}
	if b.Health() != 500 {
		t.Errorf("health drained by weaker player: %v", b.Health())
	}
}

func TestBossRematchPolicy(t *testing.T) {
	tests := []struct {
		name    string
		rematch bool
		want    bool
	}{
		{"single boss per session", false, false},
		{"rematch enabled", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.MustDefaults().Boss
			cfg.Rematch = tt.rematch
			b := NewBossEncounter(&cfg)
			b.Activate()
			for b.Resolve(600, 500, 1, 1) != BossDefeated {
			}
			if got := b.ShouldSpawn(700); got != tt.want {
				t.Errorf("ShouldSpawn after victory = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBossReset(t *testing.T) {
	cfg := config.MustDefaults().Boss
	b := NewBossEncounter(&cfg)
	b.Activate()
	b.Reset()
	if b.State() != BossInactive || !b.ShouldSpawn(101) {
		t.Error("Reset should allow a fresh spawn")
	}
}
