package game

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/economy"
	"github.com/pthm-cable/snakeclash/systems"
)

const step float32 = 0.1

// emptyArena starts a session with no bots or items so tests can place
// exactly what they need.
func emptyArena(t *testing.T, mutate func(*config.Config)) (*Session, *economy.MemoryRepository) {
	t.Helper()
	cfg := config.MustDefaults()
	cfg.Bots.Count = 0
	cfg.Items.FoodCount = 0
	cfg.Items.ChestCount = 0
	if mutate != nil {
		mutate(cfg)
	}

	repo := economy.NewMemoryRepository()
	s, err := NewSession(cfg, repo, Options{
		Seed:   7,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s, repo
}

func (s *Session) setPlayerLevel(level float64) {
	s.bodyMap.Get(s.player).Level = level
}

func (s *Session) placeBot(x, y float32, level float64) ecs.Entity {
	e := s.spawnBot(components.Position{X: x, Y: y})
	s.bodyMap.Get(e).Level = level
	return e
}

func (s *Session) countBots() int {
	n := 0
	query := s.botFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

func (s *Session) countItems() (food, chests int) {
	query := s.itemFilter.Query()
	for query.Next() {
		_, item := query.Get()
		if item.Kind == components.KindChest {
			chests++
		} else {
			food++
		}
	}
	return food, chests
}

func eventsOf(events []Event, kind EventKind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestStartSpawnsPopulation(t *testing.T) {
	cfg := config.MustDefaults()
	repo := economy.NewMemoryRepositoryWith(economy.Record{
		Coins:    50,
		Upgrades: economy.Upgrades{Level: 2, Speed: 1, Magnet: 4},
	})
	s, err := NewSession(cfg, repo, Options{Seed: 1, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	require.NoError(t, s.Start())

	assert.True(t, s.Playing())
	assert.Equal(t, 20.0, s.PlayerLevel())
	assert.InDelta(t, 8.4, s.Stats().MoveSpeed, 1e-9)
	assert.InDelta(t, 10.0, s.Stats().MagnetRadius, 1e-9)
	assert.Equal(t, cfg.Bots.Count, s.countBots())

	food, chests := s.countItems()
	assert.Equal(t, cfg.Items.FoodCount, food)
	assert.Equal(t, cfg.Items.ChestCount, chests)

	assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.MustDefaults()
	cfg.Combo.StepCount = 0
	_, err := NewSession(cfg, nil, Options{})
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = NewSession(nil, nil, Options{})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestBotKill(t *testing.T) {
	s, _ := emptyArena(t, nil)
	s.placeBot(0, 0, 5)

	events := s.Tick(step, systems.NoSteering)

	kills := eventsOf(events, EventKill)
	require.Len(t, kills, 1)
	// Kill registers 5, so the multiplier is already 1.2
	assert.InDelta(t, 5*0.4*1.2, kills[0].LevelGain, 1e-9)
	assert.InDelta(t, 100*1.2, kills[0].CoinGain, 1e-9)
	assert.InDelta(t, 10+2.4, s.PlayerLevel(), 1e-9)
	assert.InDelta(t, 120.0, s.SessionCurrency(), 1e-9)

	combos := eventsOf(events, EventComboChange)
	require.NotEmpty(t, combos)
	assert.Equal(t, 5, combos[0].Combo)

	// Replacement bot and kill pellets
	assert.Equal(t, 1, s.countBots())
	food, _ := s.countItems()
	assert.Equal(t, s.cfg.Bots.KillPellets, food)
	assert.True(t, s.Playing())
}

func TestBotDefeatsPlayer(t *testing.T) {
	s, repo := emptyArena(t, nil)
	s.placeBot(0, 0, 50)

	events := s.Tick(step, systems.NoSteering)

	assert.Equal(t, OutcomeDefeated, s.Outcome())
	assert.False(t, s.Playing())
	require.Len(t, eventsOf(events, EventOutcome), 1)

	food, _ := s.countItems()
	assert.Equal(t, s.cfg.Bots.DeathPellets, food)

	assert.Equal(t, 1, repo.Puts())
	rec, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, 500, rec.Coins)
}

func TestChestPickup(t *testing.T) {
	s, _ := emptyArena(t, nil)
	s.setPlayerLevel(50)
	s.spawnItem(components.KindChest, components.Position{X: 0.5, Y: 0})
	// Four prior pickups: the chest makes five and lifts the multiplier
	s.combo.Register(4)

	events := s.Tick(step, systems.NoSteering)

	pickups := eventsOf(events, EventPickup)
	require.Len(t, pickups, 1)
	assert.Equal(t, components.KindChest, pickups[0].Item)
	assert.InDelta(t, 60.0, pickups[0].LevelGain, 1e-9)
	assert.InDelta(t, 240.0, pickups[0].CoinGain, 1e-9)
	assert.InDelta(t, 110.0, s.PlayerLevel(), 1e-9)
	assert.InDelta(t, 240.0, s.SessionCurrency(), 1e-9)

	food, chests := s.countItems()
	assert.Equal(t, 1, chests, "chest refilled")
	assert.Equal(t, s.cfg.Items.ChestPellets, food)
}

func TestFoodPickupOutsideRangeIsPulled(t *testing.T) {
	s, _ := emptyArena(t, nil)
	e := s.spawnItem(components.KindFood, components.Position{X: 3, Y: 0})

	events := s.Tick(step, systems.NoSteering)

	assert.Empty(t, eventsOf(events, EventPickup))
	require.True(t, s.world.Alive(e))
	assert.Less(t, s.posMap.Get(e).X, float32(3))
}

func TestBossSpawnsAboveTrigger(t *testing.T) {
	s, _ := emptyArena(t, nil)
	s.setPlayerLevel(100)
	s.Tick(step, systems.NoSteering)
	assert.False(t, s.hasBoss, "trigger is strictly greater than 100")

	s.setPlayerLevel(150)
	events := s.Tick(step, systems.NoSteering)

	require.Len(t, eventsOf(events, EventBossSpawned), 1)
	require.True(t, s.hasBoss)
	assert.Equal(t, 500.0, s.bodyMap.Get(s.boss).Level)
	assert.Equal(t, 500.0, s.bossEnc.Health())

	v := s.View()
	require.NotNil(t, v.Boss)
	assert.Equal(t, 1.0, v.BossHealth)

	// One boss per session
	s.Tick(step, systems.NoSteering)
	bosses := 0
	query := ecs.NewFilter1[components.Boss](s.world).Query()
	for query.Next() {
		bosses++
	}
	assert.Equal(t, 1, bosses)
}

func TestBossVictory(t *testing.T) {
	s, _ := emptyArena(t, func(c *config.Config) { c.Boss.Health = 10 })
	s.setPlayerLevel(600)
	s.Tick(step, systems.NoSteering)
	require.True(t, s.hasBoss)

	var defeated []Event
	for i := 0; i < 5 && s.hasBoss; i++ {
		*s.posMap.Get(s.boss) = *s.posMap.Get(s.player)
		defeated = append(defeated, eventsOf(s.Tick(step, systems.NoSteering), EventBossDefeated)...)
	}

	require.Len(t, defeated, 1)
	assert.Equal(t, OutcomeVictoryContinues, defeated[0].Outcome)
	assert.False(t, s.hasBoss)
	assert.True(t, s.Playing())
	assert.InDelta(t, 800.0, s.PlayerLevel(), 1e-9)
	assert.InDelta(t, 1000.0, s.SessionCurrency(), 1e-9)

	// No rematch by default
	s.Tick(step, systems.NoSteering)
	assert.False(t, s.hasBoss)
}

func TestBossDefeatsPlayer(t *testing.T) {
	s, repo := emptyArena(t, nil)
	s.setPlayerLevel(150)
	s.Tick(step, systems.NoSteering)
	require.True(t, s.hasBoss)

	*s.posMap.Get(s.boss) = *s.posMap.Get(s.player)
	s.Tick(step, systems.NoSteering)

	assert.Equal(t, OutcomeDefeated, s.Outcome())
	assert.Equal(t, 1, repo.Puts())
}

func TestOutOfBounds(t *testing.T) {
	s, repo := emptyArena(t, nil)
	*s.posMap.Get(s.player) = components.Position{X: 399.9, Y: 0}
	s.rotMap.Get(s.player).Heading = math.Pi / 2

	s.Tick(step, systems.NoSteering)

	assert.Equal(t, OutcomeOutOfBounds, s.Outcome())
	assert.True(t, s.Ended())
	assert.Equal(t, 1, repo.Puts())
}

func TestComboDecay(t *testing.T) {
	s, _ := emptyArena(t, nil)
	s.combo.Register(5)

	for i := 0; i < 19; i++ {
		s.Tick(step, systems.NoSteering)
	}
	assert.Equal(t, 5, s.View().ComboCount)
	assert.InDelta(t, 1.2, s.View().ComboMultiplier, 1e-9)

	events := s.Tick(step, systems.NoSteering)
	combos := eventsOf(events, EventComboChange)
	require.Len(t, combos, 1)
	assert.Equal(t, 0, combos[0].Combo)
	assert.Equal(t, 1.0, combos[0].Multiplier)
}

func TestTimeExpiryCommitsOnce(t *testing.T) {
	s, repo := emptyArena(t, func(c *config.Config) { c.Session.TimeLimit = 1 })
	s.sessionCoins = 37.9

	var ticks int
	for s.Playing() && ticks < 100 {
		s.Tick(step, systems.Steering{Angle: math.Pi, Strength: 1})
		ticks++
	}

	assert.Equal(t, 10, ticks)
	assert.Equal(t, OutcomeTimeExpired, s.Outcome())
	assert.Equal(t, 0.0, s.Remaining())
	assert.Equal(t, "0:00", s.View().RemainingText)

	rec, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, 537, rec.Coins)

	// Later ends and ticks change nothing
	s.End(OutcomeDefeated)
	assert.Nil(t, s.Tick(step, systems.NoSteering))
	assert.Equal(t, OutcomeTimeExpired, s.Outcome())
	assert.Equal(t, 1, repo.Puts())
}

func TestEndIgnoresNonTerminal(t *testing.T) {
	s, repo := emptyArena(t, nil)
	s.End(OutcomeVictoryContinues)
	s.End(OutcomeNone)
	assert.True(t, s.Playing())
	assert.Equal(t, 0, repo.Puts())
}

func TestTeardownDiscardsAbandonedSession(t *testing.T) {
	s, repo := emptyArena(t, nil)
	s.placeBot(100, 100, 5)
	s.spawnItem(components.KindFood, components.Position{X: 50, Y: 50})
	s.sessionCoins = 300

	s.Teardown()

	assert.False(t, s.Playing())
	assert.Nil(t, s.Tick(step, systems.NoSteering))
	assert.Equal(t, 0, repo.Puts())
	assert.Equal(t, 0, s.countBots())
	food, chests := s.countItems()
	assert.Zero(t, food+chests)
	assert.Equal(t, 0.0, s.PlayerLevel())

	// Idempotent
	s.Teardown()
}

func TestTickClampsDelta(t *testing.T) {
	s, _ := emptyArena(t, nil)
	s.Tick(5, systems.NoSteering)
	assert.InDelta(t, 0.1, s.Elapsed(), 1e-6)

	s.Tick(float32(math.NaN()), systems.NoSteering)
	s.Tick(-1, systems.NoSteering)
	assert.InDelta(t, 0.1, s.Elapsed(), 1e-6)
	assert.Equal(t, int64(3), s.Ticks())
}

func TestTickClampFollowsSessionMaxDT(t *testing.T) {
	s, _ := emptyArena(t, func(c *config.Config) {
		c.Session.MaxDT = 0.5
		// A hand-built config carries no derived values
		c.Derived = config.DerivedConfig{}
	})

	s.Tick(0.4, systems.NoSteering)
	assert.InDelta(t, 0.4, s.Elapsed(), 1e-6)

	s.Tick(2, systems.NoSteering)
	assert.InDelta(t, 0.9, s.Elapsed(), 1e-6)
}

func TestMagnetConsumesEveryItemInRange(t *testing.T) {
	s, _ := emptyArena(t, nil)
	s.stats.MagnetRadius = 100
	for i := 0; i < 200; i++ {
		s.spawnItem(components.KindFood, components.Position{X: 0.1, Y: 0.1})
	}

	events := s.Tick(step, systems.NoSteering)

	assert.Len(t, eventsOf(events, EventPickup), 200)
	food, _ := s.countItems()
	assert.Equal(t, 200, food, "every pickup queues a replacement")
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{120, "2:00"},
		{119.9, "1:59"},
		{61, "1:01"},
		{9.5, "0:09"},
		{0, "0:00"},
		{-3, "0:00"},
		{math.NaN(), "0:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := config.MustDefaults()
	cfg.Session.TimeLimit = 5
	repo := economy.NewMemoryRepository()

	results, err := RunHeadless(cfg, repo, HeadlessOptions{
		Sessions: 2,
		Seed:     11,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	total := 0
	for _, r := range results {
		assert.True(t, r.Outcome.Terminal(), "outcome %s", r.Outcome)
		assert.LessOrEqual(t, r.Elapsed, 5.0+1e-6)
		total += int(math.Floor(r.SessionCoins))
	}
	assert.Equal(t, 2, repo.Puts())
	rec, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, 500+total, rec.Coins)
}
