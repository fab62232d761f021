package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/systems"
)

// Tick advances the session by dt seconds with the given steering input.
// dt is clamped to the configured maximum. The returned events are valid
// until the next call. Ticks outside the playing state are no-ops.
//
// Rule order is fixed: player advance, boss spawn, items, boss, arena,
// bots, combo decay, clock, player boundary.
func (s *Session) Tick(dt float32, steer systems.Steering) []Event {
	if s.state != statePlaying {
		return nil
	}
	s.events = s.events[:0]

	if !(dt > 0) {
		dt = 0
	} else if maxDT := float32(s.cfg.Session.MaxDT); dt > maxDT {
		dt = maxDT
	}
	dt64 := float64(dt)
	s.tick++

	systems.AdvanceCreature(s.creature(s.player), dt, steer, &s.cfg.Creature)

	if s.bossEnc.ShouldSpawn(s.PlayerLevel()) {
		s.spawnBoss()
	}

	s.resolveItems(dt)

	s.resolveBoss(dt, dt64)
	if s.state != statePlaying {
		return s.events
	}

	s.arena.Tick(dt64)

	s.updateBots(dt)
	if s.state != statePlaying {
		return s.events
	}

	if s.combo.Tick(dt64) {
		s.emitCombo()
	}

	s.elapsed += dt64
	if s.elapsed >= s.cfg.Session.TimeLimit {
		s.End(OutcomeTimeExpired)
		return s.events
	}

	player := s.posMap.Get(s.player)
	if s.arena.Violates(player.X, player.Y) {
		s.End(OutcomeOutOfBounds)
	}
	return s.events
}

// resolveItems pulls items inside the magnet radius and consumes those within
// pickup range of the player's head.
func (s *Session) resolveItems(dt float32) {
	s.grid.Clear()
	query := s.itemFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		s.grid.Insert(query.Entity(), pos.X, pos.Y)
	}

	head := *s.posMap.Get(s.player)
	radius := float32(s.stats.MagnetRadius)
	pickup := float32(s.cfg.Items.PickupRadius)

	// Every item in range is pulled, so the query is unbounded
	s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], head.X, head.Y, radius, 0, s.posMap)
	for _, n := range s.neighbors {
		// Pickup uses the distance before this tick's pull
		dist := float32(math.Sqrt(float64(n.DistSq)))
		pos := s.posMap.Get(n.E)
		systems.MagnetPull(pos, head, dist, radius, s.cfg.Items.MagnetPull, dt)
		if dist < pickup {
			s.removals = append(s.removals, n.E)
		}
	}

	for _, e := range s.removals {
		s.consume(*s.itemMap.Get(e), *s.posMap.Get(e))
	}
	s.flushRemovals()
	s.flushSpawns()
}

// consume applies an item reward and queues its replacement.
func (s *Session) consume(item components.Item, at components.Position) {
	s.combo.Register(1)
	mult := s.combo.Multiplier()
	levelGain := item.LevelGain * mult
	coinGain := item.CoinGain * mult

	body := s.bodyMap.Get(s.player)
	body.Level = systems.ClampLevel(body.Level + levelGain)
	s.sessionCoins += coinGain

	s.emit(Event{Kind: EventPickup, Item: item.Kind, LevelGain: levelGain, CoinGain: coinGain, X: at.X, Y: at.Y})
	s.emitCombo()

	s.queueItem(item.Kind)
	if item.Kind == components.KindChest {
		s.queuePellets(s.cfg.Items.ChestPellets, at)
	}
}

// resolveBoss steers the boss at the player and runs the proximity check.
func (s *Session) resolveBoss(dt float32, dt64 float64) {
	if !s.hasBoss {
		return
	}

	boss := s.creature(s.boss)
	player := s.posMap.Get(s.player)
	boss.Rot.Heading = systems.HeadingTo(player.X-boss.Pos.X, player.Y-boss.Pos.Y)
	systems.AdvanceCreature(boss, dt, systems.NoSteering, &s.cfg.Creature)

	dist := systems.Distance(player.X, player.Y, boss.Pos.X, boss.Pos.Y)
	playerBody := s.bodyMap.Get(s.player)

	switch s.bossEnc.Resolve(playerBody.Level, boss.Body.Level, dist, dt64) {
	case systems.BossDefeated:
		cfg := &s.cfg.Boss
		at := *boss.Pos
		playerBody.Level = systems.ClampLevel(playerBody.Level + cfg.RewardLevel)
		s.sessionCoins += cfg.RewardCoins

		s.removals = append(s.removals, s.boss)
		s.flushRemovals()
		s.hasBoss = false

		s.emit(Event{
			Kind:      EventBossDefeated,
			LevelGain: cfg.RewardLevel,
			CoinGain:  cfg.RewardCoins,
			Outcome:   OutcomeVictoryContinues,
			X:         at.X,
			Y:         at.Y,
		})
		s.logger.Info("boss_defeated", "elapsed", s.elapsed, "player_level", playerBody.Level)
	case systems.BossKilledPlayer:
		s.End(OutcomeDefeated)
	}
}

// botKill records a defeated bot for the deferred pass.
type botKill struct {
	e  ecs.Entity
	at components.Position
}

// updateBots wanders, advances and redirects bots, then resolves collisions
// with the player. Rewards apply in iteration order; removal is deferred.
func (s *Session) updateBots(dt float32) {
	cfg := &s.cfg.Bots
	player := *s.posMap.Get(s.player)
	playerBody := s.bodyMap.Get(s.player)
	wander := float32(cfg.Wander)
	collide := float32(cfg.CollideRadius)

	var kills []botKill
	defeated := false

	query := s.botFilter.Query()
	for query.Next() {
		pos, rot, motion, body, trail, _ := query.Get()
		c := systems.Creature{Pos: pos, Rot: rot, Motion: motion, Body: body, Trail: trail}

		rot.Heading = systems.NormalizeAngle(rot.Heading + (s.rng.Float32()-0.5)*wander)
		systems.AdvanceCreature(c, dt, systems.NoSteering, &s.cfg.Creature)

		// Bots outside the boundary turn back toward the centre
		if s.arena.Violates(pos.X, pos.Y) {
			rot.Heading = systems.HeadingTo(-pos.X, -pos.Y)
		}

		if systems.Distance(player.X, player.Y, pos.X, pos.Y) >= collide {
			continue
		}
		if playerBody.Level >= body.Level {
			s.rewardKill(playerBody, body.Level, *pos)
			kills = append(kills, botKill{e: query.Entity(), at: *pos})
			continue
		}
		defeated = true
		query.Close()
		break
	}

	for _, k := range kills {
		s.removals = append(s.removals, k.e)
		s.queuePellets(cfg.KillPellets, k.at)
		s.pendingBots = append(s.pendingBots, systems.SquarePoint(s.rng, cfg.SpawnExtent))
	}
	if defeated {
		s.queuePellets(cfg.DeathPellets, player)
	}
	s.flushRemovals()
	s.flushSpawns()

	if defeated {
		s.End(OutcomeDefeated)
	}
}

// rewardKill applies the kill combo and scaled rewards.
func (s *Session) rewardKill(playerBody *components.Body, botLevel float64, at components.Position) {
	cfg := &s.cfg.Bots
	s.combo.Register(cfg.KillCombo)
	mult := s.combo.Multiplier()
	levelGain := botLevel * cfg.KillLevelFactor * mult
	coinGain := cfg.KillCoins * mult

	playerBody.Level = systems.ClampLevel(playerBody.Level + levelGain)
	s.sessionCoins += coinGain

	s.emit(Event{Kind: EventKill, LevelGain: levelGain, CoinGain: coinGain, X: at.X, Y: at.Y})
	s.emitCombo()
}

// emitCombo reports the current combo state.
func (s *Session) emitCombo() {
	s.emit(Event{Kind: EventComboChange, Combo: s.combo.Count(), Multiplier: s.combo.Multiplier()})
}
