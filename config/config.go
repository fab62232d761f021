// Package config provides configuration loading and validation for the arena simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned (wrapped) when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Session   SessionConfig   `yaml:"session"`
	Arena     ArenaConfig     `yaml:"arena"`
	Creature  CreatureConfig  `yaml:"creature"`
	Player    PlayerConfig    `yaml:"player"`
	Items     ItemsConfig     `yaml:"items"`
	Bots      BotsConfig      `yaml:"bots"`
	Boss      BossConfig      `yaml:"boss"`
	Combo     ComboConfig     `yaml:"combo"`
	Economy   EconomyConfig   `yaml:"economy"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical front-end.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	Zoom      float32 `yaml:"zoom"` // Pixels per arena unit
}

// SessionConfig holds session clock parameters.
type SessionConfig struct {
	TimeLimit float64 `yaml:"time_limit"` // Seconds per session
	MaxDT     float64 `yaml:"max_dt"`     // Per-tick delta clamp
}

// ArenaConfig holds the shrinking boundary parameters.
type ArenaConfig struct {
	StartRadius float64 `yaml:"start_radius"`
	MinRadius   float64 `yaml:"min_radius"`
	ShrinkRate  float64 `yaml:"shrink_rate"` // Units per second
}

// CreatureConfig holds movement and trailing-body parameters shared by all creatures.
type CreatureConfig struct {
	HistoryCap    int     `yaml:"history_cap"`
	HistoryStride int     `yaml:"history_stride"` // History samples per segment
	FollowFactor  float64 `yaml:"follow_factor"`  // Per-tick segment smoothing
	GrowthDivisor float64 `yaml:"growth_divisor"`
	BaseSegments  int     `yaml:"base_segments"`
	MaxSegments   int     `yaml:"max_segments"`
	TurnRate      float64 `yaml:"turn_rate"`      // Radians per second
	SteerDeadzone float64 `yaml:"steer_deadzone"` // Strength below this = no steering
}

// PlayerConfig holds the base player stats and per-upgrade increments.
type PlayerConfig struct {
	BaseLevel        float64 `yaml:"base_level"`
	LevelPerUpgrade  float64 `yaml:"level_per_upgrade"`
	BaseSpeed        float64 `yaml:"base_speed"`
	SpeedPerUpgrade  float64 `yaml:"speed_per_upgrade"`
	BaseMagnet       float64 `yaml:"base_magnet"`
	MagnetPerUpgrade float64 `yaml:"magnet_per_upgrade"`
}

// ItemsConfig holds item field parameters.
type ItemsConfig struct {
	FieldSize     float64 `yaml:"field_size"` // Side of the square spawn region
	FoodCount     int     `yaml:"food_count"`
	ChestCount    int     `yaml:"chest_count"`
	PickupRadius  float64 `yaml:"pickup_radius"`
	MagnetPull    float64 `yaml:"magnet_pull"`
	FoodLevel     float64 `yaml:"food_level"`
	FoodCoins     float64 `yaml:"food_coins"`
	ChestLevel    float64 `yaml:"chest_level"`
	ChestCoins    float64 `yaml:"chest_coins"`
	ChestPellets  int     `yaml:"chest_pellets"`
	PelletScatter float64 `yaml:"pellet_scatter"` // Side of the scatter square
	GridCellSize  float64 `yaml:"grid_cell_size"`
}

// BotsConfig holds AI opponent parameters.
type BotsConfig struct {
	Count           int     `yaml:"count"`
	SpawnExtent     float64 `yaml:"spawn_extent"` // Side of the square spawn region
	MinLevel        float64 `yaml:"min_level"`
	LevelRange      float64 `yaml:"level_range"`
	Speed           float64 `yaml:"speed"`
	Wander          float64 `yaml:"wander"` // Max heading drift per tick
	CollideRadius   float64 `yaml:"collide_radius"`
	KillCombo       int     `yaml:"kill_combo"`
	KillLevelFactor float64 `yaml:"kill_level_factor"`
	KillCoins       float64 `yaml:"kill_coins"`
	KillPellets     int     `yaml:"kill_pellets"`
	DeathPellets    int     `yaml:"death_pellets"`
}

// BossConfig holds boss encounter parameters.
type BossConfig struct {
	TriggerLevel float64 `yaml:"trigger_level"`
	Level        float64 `yaml:"level"`
	Health       float64 `yaml:"health"`
	Speed        float64 `yaml:"speed"`
	SpawnX       float64 `yaml:"spawn_x"`
	SpawnY       float64 `yaml:"spawn_y"`
	Proximity    float64 `yaml:"proximity"`
	DrainRate    float64 `yaml:"drain_rate"` // Health per second
	RewardLevel  float64 `yaml:"reward_level"`
	RewardCoins  float64 `yaml:"reward_coins"`
	Rematch      bool    `yaml:"rematch"` // Allow another boss after a victory
}

// ComboConfig holds combo multiplier parameters.
type ComboConfig struct {
	Window    float64 `yaml:"window"`     // Seconds before decay
	StepCount int     `yaml:"step_count"` // Count per multiplier step
	StepBonus float64 `yaml:"step_bonus"`
}

// EconomyConfig holds persistent economy parameters.
type EconomyConfig struct {
	DefaultCoins    int     `yaml:"default_coins"`
	DailyReward     int     `yaml:"daily_reward"`
	DailyInterval   float64 `yaml:"daily_interval"` // Hours between claims
	UpgradeBaseCost int     `yaml:"upgrade_base_cost"`
	UpgradeCostStep int     `yaml:"upgrade_cost_step"`
}

// AutopilotConfig holds steering weights for headless play.
type AutopilotConfig struct {
	ItemWeight    float64 `yaml:"item_weight"`
	ChestBias     float64 `yaml:"chest_bias"`
	PreyWeight    float64 `yaml:"prey_weight"`
	ThreatWeight  float64 `yaml:"threat_weight"`
	ThreatRange   float64 `yaml:"threat_range"`
	BoundaryGuard float64 `yaml:"boundary_guard"` // Fraction of arena radius where homing begins
	ScanRadius    float64 `yaml:"scan_radius"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32 // Screen.Width as float32
	ScreenH32    float32 // Screen.Height as float32
	ShrinkTime   float64 // Seconds from start radius to floor
	HistoryNeeds int     // History length needed to feed every segment
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// MustDefaults is like Defaults but panics on error. Intended for tests and tools.
func MustDefaults() *Config {
	cfg, err := Defaults()
	if err != nil {
		panic(fmt.Sprintf("config: failed to load defaults: %v", err))
	}
	return cfg
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	if c.Arena.ShrinkRate > 0 {
		c.Derived.ShrinkTime = (c.Arena.StartRadius - c.Arena.MinRadius) / c.Arena.ShrinkRate
	}
	c.Derived.HistoryNeeds = c.Creature.MaxSegments * c.Creature.HistoryStride
}

// Validate refreshes the derived values, then rejects non-positive speeds,
// radii and time limits. Values are never clamped here; a bad file fails
// session construction.
func (c *Config) Validate() error {
	c.computeDerived()

	positive := []struct {
		name  string
		value float64
	}{
		{"session.time_limit", c.Session.TimeLimit},
		{"session.max_dt", c.Session.MaxDT},
		{"arena.start_radius", c.Arena.StartRadius},
		{"arena.min_radius", c.Arena.MinRadius},
		{"arena.shrink_rate", c.Arena.ShrinkRate},
		{"creature.growth_divisor", c.Creature.GrowthDivisor},
		{"creature.turn_rate", c.Creature.TurnRate},
		{"player.base_speed", c.Player.BaseSpeed},
		{"player.base_magnet", c.Player.BaseMagnet},
		{"items.field_size", c.Items.FieldSize},
		{"items.pickup_radius", c.Items.PickupRadius},
		{"items.magnet_pull", c.Items.MagnetPull},
		{"items.grid_cell_size", c.Items.GridCellSize},
		{"bots.speed", c.Bots.Speed},
		{"bots.spawn_extent", c.Bots.SpawnExtent},
		{"bots.collide_radius", c.Bots.CollideRadius},
		{"boss.health", c.Boss.Health},
		{"boss.proximity", c.Boss.Proximity},
		{"combo.window", c.Combo.Window},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.value)
		}
	}

	// Boss speed may be zero for a stationary boss.
	if c.Boss.Speed < 0 {
		return fmt.Errorf("%w: boss.speed must not be negative, got %v", ErrInvalid, c.Boss.Speed)
	}
	if c.Arena.MinRadius > c.Arena.StartRadius {
		return fmt.Errorf("%w: arena.min_radius %v exceeds start_radius %v", ErrInvalid, c.Arena.MinRadius, c.Arena.StartRadius)
	}
	if c.Creature.HistoryCap <= 0 || c.Creature.HistoryStride <= 0 {
		return fmt.Errorf("%w: creature history cap and stride must be positive", ErrInvalid)
	}
	if c.Creature.MaxSegments < c.Creature.BaseSegments || c.Creature.BaseSegments < 0 {
		return fmt.Errorf("%w: creature.max_segments must be >= base_segments >= 0", ErrInvalid)
	}
	if c.Creature.HistoryCap < c.Derived.HistoryNeeds {
		return fmt.Errorf("%w: creature.history_cap %d cannot feed %d segments at stride %d (need %d)",
			ErrInvalid, c.Creature.HistoryCap, c.Creature.MaxSegments, c.Creature.HistoryStride, c.Derived.HistoryNeeds)
	}
	if c.Combo.StepCount <= 0 {
		return fmt.Errorf("%w: combo.step_count must be positive", ErrInvalid)
	}
	if c.Items.FoodCount < 0 || c.Items.ChestCount < 0 || c.Bots.Count < 0 {
		return fmt.Errorf("%w: population counts must not be negative", ErrInvalid)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
