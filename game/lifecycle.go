package game

import (
	"math"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/economy"
	"github.com/pthm-cable/snakeclash/systems"
)

// Start reads the economy, resets the arena and spawns the opening population.
func (s *Session) Start() error {
	if s.state != stateIdle {
		return ErrAlreadyStarted
	}

	rec, substituted, err := economy.Load(s.repo, &s.cfg.Economy)
	if err != nil {
		return err
	}
	if substituted {
		s.logger.Info("economy_default_substituted", "coins", rec.Coins)
	}
	s.stats = economy.Stats(rec.Upgrades, &s.cfg.Player)

	s.arena.Reset()
	s.combo.Reset()
	s.bossEnc.Reset()
	s.elapsed = 0
	s.sessionCoins = 0
	s.tick = 0
	s.startedAt = time.Now()

	s.spawnPlayer()
	for i := 0; i < s.cfg.Items.FoodCount; i++ {
		s.spawnItem(components.KindFood, systems.SquarePoint(s.rng, s.cfg.Items.FieldSize))
	}
	for i := 0; i < s.cfg.Items.ChestCount; i++ {
		s.spawnItem(components.KindChest, systems.SquarePoint(s.rng, s.cfg.Items.FieldSize))
	}
	for i := 0; i < s.cfg.Bots.Count; i++ {
		s.spawnBot(systems.SquarePoint(s.rng, s.cfg.Bots.SpawnExtent))
	}

	s.state = statePlaying
	s.logger.Info("session_started",
		"start_level", s.stats.StartLevel,
		"move_speed", s.stats.MoveSpeed,
		"magnet_radius", s.stats.MagnetRadius,
		"bots", s.cfg.Bots.Count,
		"items", s.cfg.Items.FoodCount+s.cfg.Items.ChestCount,
	)
	return nil
}

// End latches a terminal outcome and commits session currency once.
// Calls after the first terminal outcome, or with a non-terminal outcome, are no-ops.
func (s *Session) End(o Outcome) {
	if s.state != statePlaying || !o.Terminal() {
		return
	}
	s.state = stateEnded
	s.outcome = o
	s.emit(Event{Kind: EventOutcome, Outcome: o})
	s.commit()

	s.logger.Info("session_ended",
		"outcome", o.String(),
		"elapsed", s.elapsed,
		"level", math.Floor(s.PlayerLevel()),
		"session_coins", math.Floor(s.sessionCoins),
		"ticks", s.tick,
	)
}

// commit writes session currency to the economy exactly once.
func (s *Session) commit() {
	if s.committed {
		return
	}
	s.committed = true
	if _, err := economy.Commit(s.repo, &s.cfg.Economy, s.sessionCoins); err != nil {
		s.logger.Error("economy_commit_failed", "error", err, "session_coins", s.sessionCoins)
	}
}

// Teardown removes every entity and resets timers. A session torn down before
// reaching a terminal outcome discards its currency. Later ticks are no-ops.
func (s *Session) Teardown() {
	if s.state == stateTornDown {
		return
	}
	if s.state == statePlaying {
		s.logger.Info("session_abandoned", "elapsed", s.elapsed, "discarded_coins", s.sessionCoins)
	}

	s.removals = s.removals[:0]
	query := s.allFilter.Query()
	for query.Next() {
		s.removals = append(s.removals, query.Entity())
	}
	s.flushRemovals()

	s.hasBoss = false
	s.combo.Reset()
	s.arena.Reset()
	s.bossEnc.Reset()
	s.pendingItems = s.pendingItems[:0]
	s.pendingBots = s.pendingBots[:0]
	s.events = s.events[:0]
	s.state = stateTornDown
}

// spawnPlayer creates the player at the origin with upgrade-derived stats.
func (s *Session) spawnPlayer() {
	pos := components.Position{}
	rot := components.Rotation{}
	motion := components.Motion{Speed: float32(s.stats.MoveSpeed)}
	body := components.Body{Level: s.stats.StartLevel}
	trail := components.NewTrail(s.cfg.Creature.HistoryCap)

	s.player = s.playerMapper.NewEntity(&pos, &rot, &motion, &body, &trail, &components.Player{})
	systems.PlaceCreature(s.creature(s.player), pos.X, pos.Y, &s.cfg.Creature)
}

// spawnBot creates an opponent with a random level and heading.
func (s *Session) spawnBot(at components.Position) ecs.Entity {
	cfg := &s.cfg.Bots
	rot := components.Rotation{Heading: systems.NormalizeAngle(s.rng.Float32() * 2 * math.Pi)}
	motion := components.Motion{Speed: float32(cfg.Speed)}
	body := components.Body{Level: cfg.MinLevel + s.rng.Float64()*cfg.LevelRange}
	trail := components.NewTrail(s.cfg.Creature.HistoryCap)

	e := s.botMapper.NewEntity(&at, &rot, &motion, &body, &trail, &components.Bot{})
	systems.PlaceCreature(s.creature(e), at.X, at.Y, &s.cfg.Creature)
	return e
}

// spawnBoss creates the boss facing the player.
func (s *Session) spawnBoss() {
	cfg := &s.cfg.Boss
	pos := components.Position{X: float32(cfg.SpawnX), Y: float32(cfg.SpawnY)}
	player := s.posMap.Get(s.player)
	rot := components.Rotation{Heading: systems.HeadingTo(player.X-pos.X, player.Y-pos.Y)}
	motion := components.Motion{Speed: float32(cfg.Speed)}
	body := components.Body{Level: cfg.Level}
	trail := components.NewTrail(s.cfg.Creature.HistoryCap)

	s.boss = s.bossMapper.NewEntity(&pos, &rot, &motion, &body, &trail, &components.Boss{})
	systems.PlaceCreature(s.creature(s.boss), pos.X, pos.Y, &s.cfg.Creature)
	s.hasBoss = true
	s.bossEnc.Activate()

	s.emit(Event{Kind: EventBossSpawned, X: pos.X, Y: pos.Y})
	s.logger.Info("boss_spawned", "elapsed", s.elapsed, "player_level", s.PlayerLevel())
}

// spawnItem creates a collectible of the given kind.
func (s *Session) spawnItem(kind components.ItemKind, at components.Position) ecs.Entity {
	item := systems.ItemTemplate(kind, &s.cfg.Items)
	return s.itemMapper.NewEntity(&at, &item)
}

// queueItem defers an item spawn to the next flush.
func (s *Session) queueItem(kind components.ItemKind) {
	s.pendingItems = append(s.pendingItems, pendingItem{kind: kind})
}

// queuePellets defers n food items scattered around c.
func (s *Session) queuePellets(n int, c components.Position) {
	for i := 0; i < n; i++ {
		s.pendingItems = append(s.pendingItems, pendingItem{kind: components.KindFood, pos: c, scatter: true})
	}
}

// flushRemovals removes deferred entities. Call with no query open.
func (s *Session) flushRemovals() {
	for _, e := range s.removals {
		if s.world.Alive(e) {
			s.world.RemoveEntity(e)
		}
	}
	s.removals = s.removals[:0]
}

// flushSpawns creates deferred items and bots. Call with no query open.
func (s *Session) flushSpawns() {
	for _, p := range s.pendingItems {
		var at components.Position
		if p.scatter {
			at = systems.ScatterPoint(s.rng, p.pos, s.cfg.Items.PelletScatter)
		} else {
			at = systems.SquarePoint(s.rng, s.cfg.Items.FieldSize)
		}
		s.spawnItem(p.kind, at)
	}
	s.pendingItems = s.pendingItems[:0]

	for _, at := range s.pendingBots {
		s.spawnBot(at)
	}
	s.pendingBots = s.pendingBots[:0]
}
