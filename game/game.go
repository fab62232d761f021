// Package game runs one arena session: it owns the entity world, applies the
// per-tick rules in a fixed order and reports outcomes.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/config"
	"github.com/pthm-cable/snakeclash/economy"
	"github.com/pthm-cable/snakeclash/systems"
)

// ErrAlreadyStarted is returned by Start on a session that has been started.
var ErrAlreadyStarted = errors.New("session already started")

type sessionState uint8

const (
	stateIdle sessionState = iota
	statePlaying
	stateEnded
	stateTornDown
)

// Options configures a session.
type Options struct {
	Seed    int64        // RNG seed (0 = time-based)
	Logger  *slog.Logger // nil = slog.Default()
	OnEvent func(Event)  // Called synchronously for every event
}

// Session is one play-through from Start to a terminal outcome.
// All methods must be called from the same goroutine.
type Session struct {
	cfg    *config.Config
	repo   economy.Repository
	rng    *rand.Rand
	logger *slog.Logger

	world *ecs.World

	// Entity mappers
	playerMapper *ecs.Map6[
		components.Position,
		components.Rotation,
		components.Motion,
		components.Body,
		components.Trail,
		components.Player,
	]
	botMapper *ecs.Map6[
		components.Position,
		components.Rotation,
		components.Motion,
		components.Body,
		components.Trail,
		components.Bot,
	]
	bossMapper *ecs.Map6[
		components.Position,
		components.Rotation,
		components.Motion,
		components.Body,
		components.Trail,
		components.Boss,
	]
	itemMapper *ecs.Map2[components.Position, components.Item]

	botFilter *ecs.Filter6[
		components.Position,
		components.Rotation,
		components.Motion,
		components.Body,
		components.Trail,
		components.Bot,
	]
	itemFilter *ecs.Filter2[components.Position, components.Item]
	allFilter  *ecs.Filter1[components.Position]

	// Individual component mappers for lookups
	posMap    *ecs.Map[components.Position]
	rotMap    *ecs.Map[components.Rotation]
	motionMap *ecs.Map[components.Motion]
	bodyMap   *ecs.Map[components.Body]
	trailMap  *ecs.Map[components.Trail]
	itemMap   *ecs.Map[components.Item]

	player  ecs.Entity
	boss    ecs.Entity
	hasBoss bool

	// Rule systems
	grid    *systems.SpatialGrid
	combo   *systems.ComboTracker
	arena   *systems.Arena
	bossEnc *systems.BossEncounter

	// Session state
	state        sessionState
	outcome      Outcome
	committed    bool
	stats        economy.PlayerStats
	elapsed      float64
	sessionCoins float64
	tick         int64
	startedAt    time.Time

	// Per-tick buffers
	events       []Event
	onEvent      func(Event)
	neighbors    []systems.Neighbor
	pendingItems []pendingItem
	pendingBots  []components.Position
	removals     []ecs.Entity
}

// pendingItem is an item spawn deferred until no query is open.
type pendingItem struct {
	kind    components.ItemKind
	pos     components.Position
	scatter bool // pos is a scatter centre; false = random field position
}

// NewSession validates cfg and creates an idle session.
func NewSession(cfg *config.Config, repo economy.Repository, opts Options) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	if repo == nil {
		repo = economy.NewMemoryRepository()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()

	s := &Session{
		cfg:     cfg,
		repo:    repo,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
		world:   world,
		onEvent: opts.OnEvent,

		playerMapper: ecs.NewMap6[
			components.Position,
			components.Rotation,
			components.Motion,
			components.Body,
			components.Trail,
			components.Player,
		](world),
		botMapper: ecs.NewMap6[
			components.Position,
			components.Rotation,
			components.Motion,
			components.Body,
			components.Trail,
			components.Bot,
		](world),
		bossMapper: ecs.NewMap6[
			components.Position,
			components.Rotation,
			components.Motion,
			components.Body,
			components.Trail,
			components.Boss,
		](world),
		itemMapper: ecs.NewMap2[components.Position, components.Item](world),

		botFilter: ecs.NewFilter6[
			components.Position,
			components.Rotation,
			components.Motion,
			components.Body,
			components.Trail,
			components.Bot,
		](world),
		itemFilter: ecs.NewFilter2[components.Position, components.Item](world),
		allFilter:  ecs.NewFilter1[components.Position](world),

		posMap:    ecs.NewMap[components.Position](world),
		rotMap:    ecs.NewMap[components.Rotation](world),
		motionMap: ecs.NewMap[components.Motion](world),
		bodyMap:   ecs.NewMap[components.Body](world),
		trailMap:  ecs.NewMap[components.Trail](world),
		itemMap:   ecs.NewMap[components.Item](world),

		grid:    systems.NewSpatialGrid(float32(2*cfg.Arena.StartRadius), float32(cfg.Items.GridCellSize)),
		combo:   systems.NewComboTracker(&cfg.Combo),
		arena:   systems.NewArena(&cfg.Arena),
		bossEnc: systems.NewBossEncounter(&cfg.Boss),
	}

	return s, nil
}

// creature returns the component pointers of a creature entity.
func (s *Session) creature(e ecs.Entity) systems.Creature {
	return systems.Creature{
		Pos:    s.posMap.Get(e),
		Rot:    s.rotMap.Get(e),
		Motion: s.motionMap.Get(e),
		Body:   s.bodyMap.Get(e),
		Trail:  s.trailMap.Get(e),
	}
}

// emit records an event for this tick and forwards it to the listener.
func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
	if s.onEvent != nil {
		s.onEvent(e)
	}
}

// Outcome returns the latched terminal outcome, or OutcomeNone.
func (s *Session) Outcome() Outcome { return s.outcome }

// Playing reports whether the session accepts ticks.
func (s *Session) Playing() bool { return s.state == statePlaying }

// Ended reports whether a terminal outcome has been latched.
func (s *Session) Ended() bool { return s.state == stateEnded }

// SessionCurrency returns currency accrued this session.
func (s *Session) SessionCurrency() float64 { return s.sessionCoins }

// Elapsed returns simulated seconds since Start.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Remaining returns seconds left before time expiry, never negative.
func (s *Session) Remaining() float64 {
	return max(s.cfg.Session.TimeLimit-s.elapsed, 0)
}

// Ticks returns the number of ticks simulated.
func (s *Session) Ticks() int64 { return s.tick }

// Stats returns the upgrade-derived stats the session started with.
func (s *Session) Stats() economy.PlayerStats { return s.stats }

// PlayerLevel returns the player's current level.
func (s *Session) PlayerLevel() float64 {
	if s.state != statePlaying && s.state != stateEnded {
		return 0
	}
	return s.bodyMap.Get(s.player).Level
}

// Config returns the session configuration.
func (s *Session) Config() *config.Config { return s.cfg }
